// Copyright 2020 Aleksandr Demakin. All rights reserved.

// package fpadd implements IEEE-754 single-precision addition and
// subtraction over raw 32-bit patterns. The work is split between two
// datapaths selected by exponent difference: a far path, where the
// operands are at least two binary orders apart and rounding is driven
// by guard/round/sticky bits collected during alignment, and a close
// path, where the exponents differ by at most one and heavy mantissa
// cancellation is absorbed with a leading-zero anticipator.
//
// Operands must be normalized finite numbers (biased exponent in
// [1, 254]). Zeros, subnormals, NaNs and infinities are outside the
// contract: the package never fails on them, but the bits it returns
// are unspecified.
package fpadd

import (
	"fmt"
	"math"
)

type word = uint32

const (
	expBits  = 8
	mantBits = 23

	expMask  = 1<<expBits - 1
	mantMask = 1<<mantBits - 1
	signMask = 1 << (expBits + mantBits)

	// the implicit leading 1 of a normalized significand.
	hiddenBit = 1 << mantBits

	// exponent differences below this go to the close path.
	farThreshold = 2
)

func sign(v word) word {
	return v >> (expBits + mantBits)
}

func exp(v word) word {
	return v >> mantBits & expMask
}

func mant(v word) word {
	return v & mantMask
}

func split(v word) (sign, exp, mant word) {
	return v >> (expBits + mantBits), v >> mantBits & expMask, v & mantMask
}

// significand prefixes the hidden bit to the stored mantissa.
func significand(v word) word {
	return hiddenBit | mant(v)
}

func pack(sign, exp, mant word) word {
	return sign<<(expBits+mantBits) | exp<<mantBits | mant&mantMask
}

func opWord(subtract bool) word {
	if subtract {
		return 1
	}
	return 0
}

// FlipSign inverts the sign bit of a packed float.
func FlipSign(v uint32) uint32 {
	return v ^ signMask
}

// DebugString returns the value of v together with its unpacked
// fields, for logs and test failures.
func DebugString(v uint32) string {
	s, e, m := split(v)
	return fmt.Sprintf("%v {s:%d e:%d m:0x%06x}", math.Float32frombits(v), s, e, m)
}

// Add returns a+b, or a-b if subtract is set.
// Arguments and the result are raw IEEE-754 single-precision words.
//
// The exponents are compared with a pair of subtractions; the one that
// does not borrow is the absolute difference, and the borrow tells
// which operand is bigger. Equal exponents leave the operands in place.
func Add(a, b uint32, subtract bool) uint32 {
	bigger, smaller, diff := a, b, exp(a)-exp(b)
	swapped := diff > expMask // a-b borrowed, so b has the larger exponent
	if swapped {
		bigger, smaller, diff = b, a, exp(b)-exp(a)
	}
	var res uint32
	if diff >= farThreshold {
		res = AddFar(bigger, smaller, subtract, diff)
	} else {
		res = AddClose(bigger, smaller, subtract, diff)
	}
	if swapped && subtract {
		// a-b = -(b-a)
		res = FlipSign(res)
	}
	return res
}

// roundPack finishes both datapaths: the frame holds a 24-bit
// significand over three extra low-order bits (guard, round and a
// partial sticky), sticky collects everything discarded below the
// frame. Round-to-nearest-even bumps the significand iff
// guard && (round || sticky || odd), and a carry out of the top bit is
// renormalized with one more right shift. adj accumulates every
// exponent adjustment as a single signed increment on top of the
// bigger operand's exponent.
func roundPack(sgn, e word, adj int32, frame word, sticky bool) uint32 {
	m := frame >> 3
	guard := frame&4 != 0
	rest := frame&3 != 0 || sticky
	if guard && (rest || m&1 != 0) {
		m++
		if m == hiddenBit<<1 {
			m >>= 1
			adj++
		}
	}
	return pack(sgn, word(int32(e)+adj), m)
}
