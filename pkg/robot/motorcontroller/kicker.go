package motorcontroller

import (
	"context"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/soccer.go/pkg/robot/config"
)

// kickPolynomial maps the kick speed in m/s onto the solenoid pulse in us,
// lowest order first.
var kickPolynomial = [...]float64{149.71060934, 152.85497417, 49.25610639, -14.2552025, 1.74646057}

// KickTime returns the solenoid pulse kicking the ball with speed mm/s.
func KickTime(speed uint16) time.Duration {
	s := float64(speed) / 1000
	var us float64
	for i := len(kickPolynomial) - 1; i >= 0; i-- {
		us = us*s + kickPolynomial[i]
	}
	if us < 0 {
		return 0
	}
	return time.Duration(us) * time.Microsecond
}

// ChargeDAC returns the DAC value charging the capacitor to volts, given
// the DAC value of the calibration voltage.
func ChargeDAC(volts uint8, dac230 uint16) uint16 {
	v := uint32(volts) * uint32(dac230) / CalibrationVoltage
	if v > config.MaxKickerCapDAC {
		v = config.MaxKickerCapDAC
	}
	return uint16(v)
}

// CapVoltage converts an ADC sample into the capacitor voltage, given the
// ADC value of the calibration voltage.
func CapVoltage(adc, adc230 uint16) uint8 {
	if adc230 == 0 {
		return 0
	}
	v := uint32(adc) * CalibrationVoltage / uint32(adc230)
	if v > 0xff {
		return 0xff
	}
	return uint8(v)
}

// KickerDriver controls the kicker board.
type KickerDriver interface {
	// Charge enables the charger with the target set by the DAC value.
	Charge(dac uint16) error
	// Discharge disables the charger and drains the capacitor.
	Discharge() error
	// Kick fires the solenoids for d.
	Kick(ctx context.Context, d time.Duration) error
}

// CapSensor is implemented by a KickerDriver able to sample the capacitor
// voltage.
type CapSensor interface {
	CapADC() (uint16, error)
}

// DefaultSampleInterval is the capacitor voltage sampling interval.
const DefaultSampleInterval = 100 * time.Millisecond

// Kicker charges the capacitor and fires the solenoids.
//
// A kick request while the ball is in the dribbler fires at once, otherwise
// the pulse is armed in Signals.KickRawDuration and fires when the ball
// arrives.
type Kicker struct {
	Driver         KickerDriver
	Signals        *Signals
	SampleInterval time.Duration
}

// NewKicker creates a Kicker.
func NewKicker(driver KickerDriver, signals *Signals) *Kicker {
	return &Kicker{Driver: driver, Signals: signals, SampleInterval: DefaultSampleInterval}
}

// Run implements Runnable.
func (k *Kicker) Run(ctx context.Context) error {
	ballSub, err := k.Signals.HasBall.Subscribe()
	if err != nil {
		return err
	}
	defer ballSub.Close()
	voltageSub, err := k.Signals.KickerSetVoltage.Subscribe()
	if err != nil {
		return err
	}
	defer voltageSub.Close()
	speedSub, err := k.Signals.KickSpeed.Subscribe()
	if err != nil {
		return err
	}
	defer speedSub.Close()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	ballCh := watch(runCtx, ballSub)
	voltageCh := watch(runCtx, voltageSub)
	speedCh := watch(runCtx, speedSub)

	var sampleCh <-chan time.Time
	sensor, canSample := k.Driver.(CapSensor)
	if canSample {
		interval := k.SampleInterval
		if interval <= 0 {
			interval = DefaultSampleInterval
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		sampleCh = ticker.C
	}

	glog.Info("Starting kicker loop")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case hasBall := <-ballCh:
			k.ballChanged(ctx, hasBall)
		case volts := <-voltageCh:
			k.setVoltage(volts)
		case speed := <-speedCh:
			k.speedChanged(ctx, speed)
		case <-sampleCh:
			adc, err := sensor.CapADC()
			if err != nil {
				glog.Errorf("couldn't sample cap voltage: %v", err)
				continue
			}
			k.Signals.KickerCapVoltage.SetIfDifferent(CapVoltage(adc, k.Signals.Config.KickerCapADC230V.Get()))
		}
	}
}

func (k *Kicker) ballChanged(ctx context.Context, hasBall bool) {
	glog.V(1).Infof("got ball update %v", hasBall)
	if d := k.Signals.KickRawDuration.Get(); hasBall && d != 0 {
		k.kick(ctx, d)
	}
}

func (k *Kicker) setVoltage(volts uint8) {
	if volts == 0 {
		glog.V(1).Info("discharging")
		if err := k.Driver.Discharge(); err != nil {
			glog.Errorf("couldn't discharge kicker: %v", err)
		}
		return
	}
	glog.V(1).Infof("setting voltage %dV", volts)
	if err := k.Driver.Charge(ChargeDAC(volts, k.Signals.Config.KickerCapDAC230V.Get())); err != nil {
		glog.Errorf("couldn't charge kicker: %v", err)
	}
}

func (k *Kicker) speedChanged(ctx context.Context, speed uint16) {
	if speed == 0 {
		glog.V(1).Info("commanded to not kick")
		k.Signals.KickRawDuration.Set(0)
		return
	}
	d := KickTime(speed)
	glog.V(1).Infof("commanded to kick with %dmm/s, %s", speed, d)
	if k.Signals.HasBall.Get() {
		k.kick(ctx, d)
		return
	}
	k.Signals.KickRawDuration.SetIfDifferent(d)
}

// kick fires and disarms.
func (k *Kicker) kick(ctx context.Context, d time.Duration) {
	glog.Warningf("kicking for %s", d)
	if err := k.Driver.Kick(ctx, d); err != nil {
		glog.Errorf("couldn't kick: %v", err)
	}
	k.Signals.KickRawDuration.Set(0)
}
