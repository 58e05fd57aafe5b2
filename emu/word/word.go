/*
   Word: EDVAC sign-magnitude 44-bit value.

   Copyright (c) 2024, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   ROBERT M SUPNIK BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/
package word

import (
	"fmt"
	"math/big"
)

/*
   A Word is a single EDVAC quantity: 44 bits, sign-magnitude. Bit 0 (the
   low-order bit of the stored representation) is the sign: 0 for
   non-negative, 1 for negative. Bits 1..43 hold the 43-bit magnitude. Both
   +0 and -0 are representable as distinct bit patterns but compare equal as
   signed values.

   The value is kept in two forms at once: the canonical 44-bit pattern
   (Rep) used for bitwise operations (Extract, Wire transfers, assembler
   output) and a cached signed integer (Value) used for arithmetic. This
   mirrors the historical machine, which kept a sign-magnitude register but
   whose arithmetic unit operated on the true value.
*/

const (
	// BitWidth is the width in bits of a full EDVAC word, sign included.
	BitWidth = 44

	// MagnitudeBits is the width in bits of the magnitude field (bits 1..43).
	MagnitudeBits = 43

	// U43Max is the largest representable magnitude, 2^43 - 1.
	U43Max uint64 = (1 << MagnitudeBits) - 1
)

// Word is a sign-magnitude 44-bit value. Zero value is +0.
type Word struct {
	rep   uint64 // canonical 44-bit representation
	value int64  // cached signed value
}

// FromBits constructs a Word directly from its 44-bit representation. Bits
// above bit 43 are ignored by the caller's convention but not masked here;
// callers that build a Rep from shifts are expected to keep it in range.
func FromBits(rep uint64) Word {
	return Word{rep: rep, value: fromBitsToInt64(rep)}
}

// FromInt64 constructs a Word from a signed integer. Returns an error if the
// magnitude exceeds U43Max: this is a programming error (spec.md
// ProgrammingAssertion), not a recoverable condition.
func FromInt64(value int64) (Word, error) {
	abs := absUint64(value)
	if abs > U43Max {
		return Word{}, fmt.Errorf("word: value %d exceeds 43-bit magnitude", value)
	}
	rep := abs << 1
	if value < 0 {
		rep |= 0b1
	}
	return Word{rep: rep, value: value}, nil
}

// MustFromInt64 is FromInt64 but panics on overflow; used for constants built
// from literals known to be in range at compile time.
func MustFromInt64(value int64) Word {
	w, err := FromInt64(value)
	if err != nil {
		panic(err)
	}
	return w
}

// Bits returns the canonical 44-bit representation.
func (w Word) Bits() uint64 {
	return w.rep
}

// Int64 returns the cached signed value.
func (w Word) Int64() int64 {
	return w.value
}

// IsNegative reports whether the cached signed value is strictly negative.
// Note: -0 has its sign bit set but IsNegative is false, since the value is
// zero.
func (w Word) IsNegative() bool {
	return w.value < 0
}

// SetSign returns a copy of w with the sign bit forced to the given value,
// keeping the magnitude the same.
func (w Word) SetSign(negative bool) Word {
	if negative {
		w.rep |= 0b1
		if w.value > 0 {
			w.value = -w.value
		}
	} else {
		w.rep &^= 0b1
		if w.value < 0 {
			w.value = -w.value
		}
	}
	return w
}

// Neg returns -w, preserving the distinction between +0 and -0.
func (w Word) Neg() Word {
	return Word{rep: w.rep ^ 0b1, value: -w.value}
}

// Equal reports whether two words hold the same signed value (not whether
// their bit patterns match -- +0 and -0 are Equal).
func (w Word) Equal(o Word) bool {
	return w.value == o.value
}

// OverflowingAdd adds two words in the signed domain. If the magnitude of
// the true sum exceeds U43Max, the returned Word holds the excess beyond
// capacity (sum - U43Max) and overflowed is true.
func (w Word) OverflowingAdd(o Word) (sum Word, overflowed bool) {
	total := w.value + o.value
	if absUint64(total) > U43Max {
		excess := total - int64(U43Max)
		return wordFromWrappedInt64(excess), true
	}
	result, err := FromInt64(total)
	if err != nil {
		// Unreachable: absUint64(total) <= U43Max was just checked.
		panic(err)
	}
	return result, false
}

// OverflowingSub is OverflowingAdd(w, -o).
func (w Word) OverflowingSub(o Word) (diff Word, overflowed bool) {
	return w.OverflowingAdd(o.Neg())
}

// Mul computes the full double-precision product of w and o, split into a
// high (most significant 43 bits) and low (least significant 43 bits) word,
// both stamped with the product's sign. Multiplication never overflows: the
// full 86-bit magnitude always fits two words.
func (w Word) Mul(o Word) (high, low Word) {
	product := new(big.Int).Mul(big.NewInt(w.value), big.NewInt(o.value))
	negative := product.Sign() < 0
	product.Abs(product)

	mask := new(big.Int).SetUint64(U43Max)
	highMag := new(big.Int).Rsh(product, MagnitudeBits)
	highMag.And(highMag, mask)
	lowMag := new(big.Int).And(product, mask)

	high = FromBits(highMag.Uint64() << 1).SetSign(negative)
	low = FromBits(lowMag.Uint64() << 1).SetSign(negative)
	return high, low
}

// OverflowingDiv computes a rounded quotient/remainder pair: quotient is
// (w.value << 43) / o.value, remainder is the corresponding scaled
// remainder, both taking the sign of the quotient. overflowed is true if the
// division traps (divide by zero) or the quotient's magnitude exceeds
// U43Max.
func (w Word) OverflowingDiv(o Word) (quotient, remainder Word, overflowed bool) {
	if o.value == 0 {
		return Word{}, Word{}, true
	}

	a := new(big.Int).Lsh(big.NewInt(w.value), MagnitudeBits)
	b := big.NewInt(o.value)

	highHalf := new(big.Int)
	rem := new(big.Int)
	highHalf.QuoRem(a, b, rem)

	negative := highHalf.Sign() < 0
	highMag := new(big.Int).Abs(highHalf)
	overflowed = highMag.Cmp(new(big.Int).SetUint64(U43Max)) > 0

	remScaled := new(big.Int).Lsh(new(big.Int).Abs(rem), MagnitudeBits)
	if rem.Sign() < 0 {
		remScaled.Neg(remScaled)
	}
	lowHalf := new(big.Int)
	lowHalf.Quo(remScaled, b)
	lowMag := new(big.Int).Abs(lowHalf)

	quotient = FromBits(new(big.Int).And(highMag, new(big.Int).SetUint64(U43Max)).Uint64()<<1).SetSign(negative)
	remainder = FromBits(new(big.Int).And(lowMag, new(big.Int).SetUint64(U43Max)).Uint64()<<1).SetSign(negative)
	return quotient, remainder, overflowed
}

// String renders the word as a 44-character binary string (bit 43 first,
// sign last), matching the original machine's debug trace convention.
func (w Word) String() string {
	return fmt.Sprintf("%0*b", BitWidth, w.rep)
}

func fromBitsToInt64(rep uint64) int64 {
	magnitude := int64(rep >> 1)
	if rep&1 == 1 {
		return -magnitude
	}
	return magnitude
}

func absUint64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}

// wordFromWrappedInt64 builds a Word from an excess-beyond-capacity value
// that is itself guaranteed (by the add/sub overflow arithmetic) to fit
// within the 43-bit magnitude.
func wordFromWrappedInt64(v int64) Word {
	w, err := FromInt64(v)
	if err != nil {
		panic(err)
	}
	return w
}
