package motorcontroller

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/golang/glog"
)

// Drivetrain defaults.
const (
	// ControlRate of the drivetrain loop in Hz.
	ControlRate = 1000
	// DefaultLinearJerk in m/s³.
	DefaultLinearJerk = 50.0
	// DefaultAngularJerk in rad/s³.
	DefaultAngularJerk = 300.0
)

// Motors drives the four wheels.
type Motors interface {
	// Regulate sets the target wheel speeds in rad/s and returns the
	// measured ones.
	Regulate(target [4]float64) ([4]float64, error)
	// Stop lets the wheels run free.
	Stop() error
}

// Drivetrain follows Signals.MovementSetpoint with a jerk limited velocity
// profile and publishes the measured velocity to Signals.RobotVelocity.
type Drivetrain struct {
	Motors      Motors
	Signals     *Signals
	LinearJerk  float64
	AngularJerk float64

	velocity Movement
	// acceleration per axis, in m/s² and rad/s².
	acceleration Movement
}

// NewDrivetrain creates a Drivetrain.
func NewDrivetrain(motors Motors, signals *Signals) *Drivetrain {
	return &Drivetrain{
		Motors:      motors,
		Signals:     signals,
		LinearJerk:  DefaultLinearJerk,
		AngularJerk: DefaultAngularJerk,
	}
}

// Step advances the profile by dt seconds towards setpoint and returns the
// profiled velocity.
func (d *Drivetrain) Step(setpoint Movement, dt float64) Movement {
	linear := float64(d.Signals.Config.LinearAcceleration.Get()) / 1000
	angular := float64(d.Signals.Config.AngularAcceleration.Get()) / 1024
	velocityErr := setpoint.Sub(d.velocity)

	d.acceleration.Forward = calcAcceleration(d.acceleration.Forward, velocityErr.Forward, d.LinearJerk, linear, dt)
	d.acceleration.Left = calcAcceleration(d.acceleration.Left, velocityErr.Left, d.LinearJerk, linear, dt)
	d.acceleration.CounterClockwise = calcAcceleration(d.acceleration.CounterClockwise, velocityErr.CounterClockwise, d.AngularJerk, angular, dt)

	d.velocity.Forward += d.acceleration.Forward * dt
	d.velocity.Left += d.acceleration.Left * dt
	d.velocity.CounterClockwise += d.acceleration.CounterClockwise * dt
	return d.velocity
}

// Run implements Runnable. The motors are stopped when the loop ends.
func (d *Drivetrain) Run(ctx context.Context) error {
	period := time.Second / ControlRate
	dt := period.Seconds()
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	defer func() {
		glog.Warning("stopping all motors")
		if err := d.Motors.Stop(); err != nil {
			glog.Errorf("couldn't stop motors: %v", err)
		}
	}()

	glog.Info("regulating drivetrain")
	for {
		velocity := d.Step(d.Signals.MovementSetpoint.Get(), dt)
		actual, err := d.Motors.Regulate(WheelSpeeds(velocity))
		if err != nil {
			return fmt.Errorf("regulate motors: %w", err)
		}
		// Reported at wire resolution.
		d.Signals.RobotVelocity.SetIfDifferent(MovementFromWire(Velocity(actual).Wire()))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// calcAcceleration returns the jerk limited acceleration for one control
// step. The acceleration ramps up to maxAccel while the velocity error is
// large and ramps down to zero once the error is within the velocity
// covered by the ramp down, without overshooting zero.
func calcAcceleration(accel, velocityErr, jerk, maxAccel, dt float64) float64 {
	margin := accel * accel / (2 * jerk)
	step := jerk * dt
	if math.Abs(velocityErr) <= margin {
		if accel < 0 {
			return min(accel+step, 0)
		}
		return max(accel-step, 0)
	}
	if velocityErr < 0 {
		return max(accel-step, -maxAccel)
	}
	return min(accel+step, maxAccel)
}
