// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fpadd

const (
	// the far-path frame: a 24-bit significand shifted up by three
	// positions, leaving room for guard, round and sticky below it.
	farTopBit   = 1 << (mantBits + 3)
	farCarryBit = farTopBit << 1

	// past this shift the whole aligned significand is sticky.
	stickyShift = 32
)

// AddFar adds or subtracts two operands whose exponents differ by
// expDiff >= 2. bigger must carry the greater exponent. The result is
// unspecified if the preconditions do not hold.
func AddFar(bigger, smaller uint32, subtract bool, expDiff uint32) uint32 {
	effSub := sign(bigger)^sign(smaller)^opWord(subtract) != 0

	big := significand(bigger) << 3

	// Align the smaller significand to the bigger one's binary point.
	// Bits shifted below the frame collapse into the sticky flag; for
	// very large differences the operand lands entirely below the
	// round position and only its stickiness survives.
	var small word
	var sticky bool
	if expDiff >= stickyShift {
		sticky = true
	} else {
		full := significand(smaller) << 3
		small = full >> expDiff
		sticky = full&(1<<expDiff-1) != 0
	}

	var adj int32
	var sum word
	if effSub {
		sum = big - small
		if sticky {
			// the discarded tail borrows one more from the
			// difference and keeps the sticky flag set.
			sum--
		}
		if sum&farTopBit == 0 {
			// cancellation reaches at most one bit here, a
			// single left shift renormalizes.
			sum <<= 1
			adj--
		}
	} else {
		sum = big + small
		if sum&farCarryBit != 0 {
			sticky = sticky || sum&1 != 0
			sum >>= 1
			adj++
		}
	}

	return roundPack(sign(bigger), exp(bigger), adj, sum, sticky)
}
