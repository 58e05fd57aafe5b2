package word

import "testing"

func TestFromInt64RoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 5000, -5000, int64(U43Max), -int64(U43Max)}
	for _, v := range cases {
		w, err := FromInt64(v)
		if err != nil {
			t.Fatalf("FromInt64(%d): unexpected error: %v", v, err)
		}
		if w.Int64() != v {
			t.Errorf("FromInt64(%d).Int64() = %d", v, w.Int64())
		}
	}
}

func TestFromInt64OutOfRange(t *testing.T) {
	if _, err := FromInt64(int64(U43Max) + 1); err == nil {
		t.Errorf("FromInt64(U43Max+1): expected error, got nil")
	}
}

func TestNegPreservesSignedZero(t *testing.T) {
	zero := MustFromInt64(0)
	negZero := zero.Neg()
	if negZero.Int64() != 0 {
		t.Errorf("Neg(0).Int64() = %d, want 0", negZero.Int64())
	}
	if negZero.Bits() == zero.Bits() {
		t.Errorf("Neg(0) should flip the sign bit even though the value stays zero")
	}
}

func TestOverflowingAdd(t *testing.T) {
	a := MustFromInt64(10)
	b := MustFromInt64(20)
	sum, overflowed := a.OverflowingAdd(b)
	if overflowed {
		t.Fatalf("10+20 should not overflow")
	}
	if sum.Int64() != 30 {
		t.Errorf("10+20 = %d, want 30", sum.Int64())
	}

	big1 := MustFromInt64(int64(U43Max))
	one := MustFromInt64(1)
	sum, overflowed = big1.OverflowingAdd(one)
	if !overflowed {
		t.Fatalf("U43Max+1 should overflow")
	}
	// excess = sum - U43Max = (U43Max+1) - U43Max = 1.
	if sum.Int64() != 1 {
		t.Errorf("U43Max+1 excess = %d, want 1", sum.Int64())
	}
}

func TestOverflowingSub(t *testing.T) {
	a := MustFromInt64(10)
	b := MustFromInt64(20)
	diff, overflowed := a.OverflowingSub(b)
	if overflowed {
		t.Fatalf("10-20 should not overflow")
	}
	if diff.Int64() != -10 {
		t.Errorf("10-20 = %d, want -10", diff.Int64())
	}
}

func TestMulSignAndConcatenation(t *testing.T) {
	a := MustFromInt64(7)
	b := MustFromInt64(-3)
	high, low := a.Mul(b)
	// 7*3 = 21 fits entirely in the low word, so high comes back zero
	// magnitude. A zero-magnitude Word's cached value is never negative (the
	// +0/-0 convention IsNegative documents), so the stamped sign is only
	// visible on the bit pattern here, not through IsNegative.
	if high.Bits()&1 == 0 {
		t.Errorf("7 * -3: high word's sign bit should be set")
	}
	if !low.IsNegative() {
		t.Errorf("7 * -3: low word should carry the product's sign")
	}
	product := high.Int64()
	if product != 0 {
		t.Errorf("7 * -3: high word magnitude = %d, want 0", product)
	}
	if -low.Int64() != 21 {
		t.Errorf("7 * -3: low word magnitude = %d, want 21", -low.Int64())
	}
}

func TestMulHighWordNonZero(t *testing.T) {
	// 2^22 * -2^22 = -2^44, which doesn't fit in one 43-bit magnitude: high
	// word carries magnitude 2, low word is exactly zero.
	a := MustFromInt64(1 << 22)
	b := MustFromInt64(-(1 << 22))
	high, low := a.Mul(b)
	if !high.IsNegative() {
		t.Errorf("high word should be negative")
	}
	if high.Int64() != -2 {
		t.Errorf("high word = %d, want -2", high.Int64())
	}
	if low.Int64() != 0 {
		t.Errorf("low word = %d, want 0", low.Int64())
	}
}

func TestOverflowingDivNoOverflowForSmallFraction(t *testing.T) {
	// The scaled quotient (1<<43)/100 fits comfortably in 43 bits.
	dividend := MustFromInt64(1)
	divisor := MustFromInt64(100)
	quotient, _, overflowed := dividend.OverflowingDiv(divisor)
	if overflowed {
		t.Fatalf("1/100 should not overflow")
	}
	if quotient.Int64() == 0 {
		t.Errorf("1/100: expected a nonzero scaled quotient")
	}
}

func TestOverflowingDivOverflowsWhenScaledQuotientTooLarge(t *testing.T) {
	// high_half = (100<<43)/7 is far larger than U43Max: per the scaled
	// division convention, only a dividend smaller than the divisor yields
	// a quotient that fits in one word.
	dividend := MustFromInt64(100)
	divisor := MustFromInt64(7)
	_, _, overflowed := dividend.OverflowingDiv(divisor)
	if !overflowed {
		t.Errorf("100/7: scaled quotient exceeds 43 bits, should overflow")
	}
}

func TestOverflowingDivByZero(t *testing.T) {
	dividend := MustFromInt64(1)
	divisor := MustFromInt64(0)
	_, _, overflowed := dividend.OverflowingDiv(divisor)
	if !overflowed {
		t.Errorf("divide by zero should report overflow")
	}
}
