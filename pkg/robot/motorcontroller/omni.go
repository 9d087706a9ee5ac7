package motorcontroller

import "math"

// Wheel geometry. The front wheels sit 30° and the back wheels 45° off the
// lateral axis. The first two wheels are the back wheels.
const (
	sinFrontWheels = 0.5
	cosFrontWheels = 0.8660254037844386 // √3/2
	sinBackWheels  = math.Sqrt2 / 2
	cosBackWheels  = math.Sqrt2 / 2

	// RobotRadius is the distance of the wheels from the center in m.
	RobotRadius = 0.08
	// WheelRadius in m.
	WheelRadius = 0.031
)

// WheelSpeeds returns the wheel speeds in rad/s producing m.
func WheelSpeeds(m Movement) [4]float64 {
	rot := RobotRadius * m.CounterClockwise
	return [4]float64{
		(cosBackWheels*m.Forward - sinBackWheels*m.Left + rot) / WheelRadius,
		(-cosBackWheels*m.Forward - sinBackWheels*m.Left + rot) / WheelRadius,
		(cosFrontWheels*m.Forward + sinFrontWheels*m.Left + rot) / WheelRadius,
		(-cosFrontWheels*m.Forward + sinFrontWheels*m.Left + rot) / WheelRadius,
	}
}

const (
	sinWheelsSum     = sinBackWheels + sinFrontWheels
	cosWheelsSquared = cosBackWheels*cosBackWheels + cosFrontWheels*cosFrontWheels
	leftFactor       = WheelRadius / sinWheelsSum / 2
	forwardFactor    = 2 * cosWheelsSquared / WheelRadius
	rotationFactor   = 2 * sinWheelsSum * RobotRadius / WheelRadius
)

// Velocity is the least squares inverse of WheelSpeeds.
func Velocity(w [4]float64) Movement {
	return Movement{
		Forward: cosBackWheels/forwardFactor*(w[0]-w[1]) +
			cosFrontWheels/forwardFactor*(w[2]-w[3]),
		Left: leftFactor * (-w[0] - w[1] + w[2] + w[3]),
		CounterClockwise: sinFrontWheels/rotationFactor*(w[0]+w[1]) +
			sinBackWheels/rotationFactor*(w[2]+w[3]),
	}
}
