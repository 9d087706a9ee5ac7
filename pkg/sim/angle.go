package sim

import "math"

// Degrees creates an Angle from degrees.
func Degrees(d float64) Angle {
	return Radians(d * math.Pi / 180)
}

// Radians creates an Angle from radians.
func Radians(r float64) Angle {
	r = math.Remainder(r, 2*math.Pi)
	if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return Angle(r)
}

// Add returns a + a1 normalized.
func (a Angle) Add(a1 Angle) Angle {
	return Radians(float64(a) + float64(a1))
}

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float64 {
	return float64(a) * 180 / math.Pi
}

// Cos wraps math.Cos.
func (a Angle) Cos() float64 {
	return math.Cos(float64(a))
}

// Sin wraps math.Sin.
func (a Angle) Sin() float64 {
	return math.Sin(float64(a))
}

// Project projects a distance along the heading into X and Y.
func (a Angle) Project(dist float64) Pos2D {
	return Pos2D{X: dist * a.Cos(), Y: dist * a.Sin()}
}

// Unsigned returns the angle in [0, 2π) as reported by the vision system.
func (a Angle) Unsigned() float64 {
	if a < 0 {
		return float64(a) + 2*math.Pi
	}
	return float64(a)
}
