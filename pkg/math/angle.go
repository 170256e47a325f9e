package math

import "math"

// Degrees is an angle in degrees. Everything else in this package takes radians
// as a plain float32; Radians is the only conversion point.
type Degrees float32

// Radians converts d to radians.
func (d Degrees) Radians() float32 {
	return float32(float64(d) * math.Pi / 180.0)
}
