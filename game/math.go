package game

import (
	"github.com/chewxy/math32"
)

// ApproxEqualRel determines whether y is within a tolerance relative to the magnitude of x, that is, if
// |x-y| <= factor*|x|. Note that the test is not symmetric and never passes for x == 0 unless y == 0.
func ApproxEqualRel(x, y, factor float32) bool {
	return math32.Abs(x-y) <= factor*math32.Abs(x)
}

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// StepToward moves v by step toward target. It does not clamp, so v may overshoot target by up to step.
func StepToward(v, target, step float32) float32 {
	if v < target {
		return v + step
	} else if v > target {
		return v - step
	}
	return v
}

// Clamp32 ...
func Clamp32(v, lo, hi float32) float32 {
	return math32.Min(math32.Max(v, lo), hi)
}
