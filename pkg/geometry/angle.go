package geometry

import "math"

// DEG1 is one degree in radians
const DEG1 = math.Pi / 180

// NormalizeAngle wraps an angle into (-π, π]
func NormalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle > math.Pi {
		angle -= 2 * math.Pi
	}
	if angle <= -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// RadToDeg converts radians to degrees
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// CosSin returns cos and sin of angle with values within 1e-12 of 0 or ±1
// snapped, so quarter turns produce exact matrices.
func CosSin(angle float64) (float64, float64) {
	sin, cos := math.Sincos(angle)
	return snapUnit(cos), snapUnit(sin)
}

func snapUnit(v float64) float64 {
	for _, target := range []float64{-1, 0, 1} {
		if math.Abs(v-target) < 1e-12 {
			return target
		}
	}
	return v
}
