// Package lza implements leading-zero anticipation: predicting the
// number of leading zeros of a difference a-b while the subtraction
// itself is still in flight, instead of counting them afterwards.
package lza

import "math/bits"

// Predict anticipates the number of leading zeros of a-b within a
// frame of 'width' bits, assuming a >= b and both operands fit the
// frame. The prediction equals the true count or undershoots it by
// exactly one, never more, so a caller can verify it with a single
// test shift.
//
// For every position an indicator bit marks where the highest nonzero
// result bit can appear:
//
//	f[i] = (a XOR b)[i] AND (a OR NOT b)[i-1]
//
// with the borrow-in position below the frame taken as set. The first
// set bit of f, scanned from the most significant end, is the
// prediction.
func Predict(a, b uint32, width int) int {
	f := (a ^ b) & ((a|^b)<<1 | 1)
	if f == 0 { // a == b
		return width
	}
	return bits.LeadingZeros32(f) - (32 - width)
}
