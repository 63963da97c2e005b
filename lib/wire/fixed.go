package wire

import (
	"math"

	"github.com/waygo/waygo/lib/errors"
)

// Fixed is the protocol's signed 24.8 fixed-point number.
type Fixed int32

const (
	maxFixedInt = 1<<23 - 1
	minFixedInt = -(1 << 23)
)

// FixedFromInt converts an integer exactly; values outside the 24-bit
// integral range of the format fail with ValueOutOfRange.
func FixedFromInt(v int32) (Fixed, error) {
	if v > maxFixedInt || v < minFixedInt {
		return 0, errors.ValueOutOfRange.Clone().SetData("value", v)
	}

	return Fixed(v * 256), nil
}

// FixedFromFloat rounds to the nearest representable value; precision loss
// beyond 1/256 is expected.
func FixedFromFloat(v float64) Fixed {
	return Fixed(int32(math.Round(v * 256)))
}

func (f Fixed) Int() int32 {
	return int32(f) / 256
}

func (f Fixed) Float() float64 {
	return float64(f) / 256
}
