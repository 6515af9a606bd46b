package mathutil

import (
	"math/bits"
	"unsafe"
)

const bitsInInt64 = unsafe.Sizeof(int64(0)) * 8

// AbsInt64 returns the absolute value of val.
// AbsInt64(math.MinInt64) is math.MinInt64, which is 1<<63 once converted to uint64.
func AbsInt64(val int64) int64 {
	mask := val >> (bitsInInt64 - 1)
	return (val + mask) ^ mask
}

func SameSign(a, b int64) bool {
	return (a>>63 ^ b>>63) == 0
}

func Int64Sign(v int64) int {
	if v == 0 {
		return 0
	}
	return [...]int{1, -1}[uint64(v)>>63]
}

// QuoShl returns (x << shift) / y, with the shifted dividend held in 128 bits.
// The quotient is truncated toward zero, only its low 64 bits are kept.
// shift must be less than 64. QuoShl panics with a runtime error if y == 0.
func QuoShl(x, y int64, shift uint) int64 {
	ux, uy := uint64(AbsInt64(x)), uint64(AbsInt64(y))
	hi, lo := ux>>(64-shift), ux<<shift
	// the part of the quotient above 64 bits is dropped.
	hi %= uy
	q, _ := bits.Div64(hi, lo, uy)
	if !SameSign(x, y) {
		return -int64(q)
	}
	return int64(q)
}
