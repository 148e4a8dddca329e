package gamemath

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float64) float64 {
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates from a toward b by t. t is clamped to [0, 1] so a damping
// step can never overshoot its target.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*Clamp(t, 0, 1)
}

// DampToward moves speed toward zero by the lerp factor. Values that decay
// below epsilon snap to zero so a resting body actually comes to rest.
func DampToward(speed, factor float64) float64 {
	const epsilon = 1e-6
	speed = Lerp(speed, 0, factor)
	if speed < epsilon && speed > -epsilon {
		return 0
	}
	return speed
}
