// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fpadd

import "github.com/avdva/fpadd/internal/lza"

const (
	// the close-path frame: a 24-bit significand over one extra bit,
	// enough to align an exponent difference of one without loss.
	closeWidth  = mantBits + 2
	closeTopBit = 1 << (closeWidth - 1)
)

// AddClose adds or subtracts two operands whose exponents differ by at
// most one. bigger must carry the greater exponent; ties may be broken
// either way. The result is unspecified if the preconditions do not
// hold.
//
// Effective subtraction with near-equal exponents can cancel many
// leading bits. Instead of counting zeros after the fact, both
// possible operand orders are run through the leading-zero anticipator
// up front, and the borrow of the real subtraction selects the valid
// prediction.
func AddClose(bigger, smaller uint32, subtract bool, expDiff uint32) uint32 {
	effSub := sign(bigger)^sign(smaller)^opWord(subtract) != 0

	big := significand(bigger) << 1
	small := significand(smaller) << 1 >> expDiff

	sgn, e := sign(bigger), exp(bigger)
	if !effSub {
		sum := big + small
		if sum&(closeTopBit<<1) != 0 {
			// the addition carried out: the two low bits of the
			// widened sum become guard and round.
			return roundPack(sgn, e, 1, sum<<1, false)
		}
		return roundPack(sgn, e, 0, sum<<2, false)
	}

	predBig := lza.Predict(big, small, closeWidth)
	predSmall := lza.Predict(small, big, closeWidth)

	diff, pred := big-small, predBig
	if small > big {
		// equal exponents and a larger mantissa on the other side:
		// the magnitude is the negated difference and the sign flips.
		diff, pred = small-big, predSmall
		sgn ^= 1
	}
	if diff == 0 {
		// exact cancellation rounds to +0.
		return 0
	}

	// the anticipator can undershoot by one; a test shift of the
	// result tells whether the top bit lands where predicted.
	if diff>>uint(closeWidth-1-pred)&1 == 0 {
		pred++
	}
	diff <<= uint(pred)

	return roundPack(sgn, e, -int32(pred), diff<<2, false)
}
