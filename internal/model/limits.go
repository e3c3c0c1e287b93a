package model

import "math"

// MaxCount is the largest stock, basket or reservation count. The columns are
// INTEGER.
const MaxCount = math.MaxInt32

// CheckedSum returns a+b, or false when the sum leaves [0, MaxCount].
func CheckedSum(a, b int) (int, bool) {
	if b > 0 && a > MaxCount-b {
		return 0, false
	}
	sum := a + b
	if sum < 0 || sum > MaxCount {
		return 0, false
	}
	return sum, true
}
