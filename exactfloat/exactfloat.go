// Package exactfloat implements an arbitrary-precision binary
// floating-point type backed by math/big, trimmed to the arithmetic the
// exact Geometry Kernel variant actually calls: construction from a
// float64, Add/Sub/Mul, LessThan, Abs, and Sgn. The teacher's ToDouble/
// ToString/rounding-mode API served diagnostics and a "print an exact
// result" use case this module never needs, since the kernel only ever
// asks an ExactFloat for its sign.
package exactfloat

import (
	"math"
	"math/big"
)

const (
	maxExp             = 200 * 1000 * 1000
	minExp             = -maxExp
	maxPrec            = 64 << 20
	expNaN             = math.MaxInt32
	expInfinity        = math.MaxInt32 - 1
	expZero            = math.MaxInt32 - 2
	doubleMantissaBits = 53
)

type ExactFloat struct {
	sign   int
	bn_exp int
	bn     *big.Int
}

func NewExactFloat(v float64) ExactFloat {
	f := ExactFloat{bn: big.NewInt(0)}
	sb := math.Signbit(v)
	if sb {
		f.sign = -1
	} else {
		f.sign = 1
	}
	if math.IsNaN(v) {
		f.set_nan()
	} else if math.IsInf(v, int(f.sign)) {
		f.set_inf(f.sign)
	} else {
		frac, exp := math.Frexp(math.Abs(v))
		m := uint64(math.Ldexp(frac, doubleMantissaBits))
		f.bn = f.bn.SetUint64(m)
		f.bn_exp = exp - doubleMantissaBits
		f.Canonicalize()
	}
	return f
}

func Abs(a ExactFloat) ExactFloat {
	return a.CopyWithSign(+1)
}

func SignedZero(sign int) ExactFloat {
	f := NewExactFloat(math.Copysign(0, float64(sign)))
	f.set_zero(sign)
	return f
}

func Infinity(sign int) ExactFloat {
	f := NewExactFloat(math.Inf(sign))
	f.set_inf(sign)
	return f
}

func NaN() ExactFloat {
	f := NewExactFloat(0)
	f.set_nan()
	return f
}

func (a ExactFloat) LessThan(b ExactFloat) bool {
	// NaN is unordered compared to everything, including itself.
	if a.IsNaN() || b.IsNaN() {
		return false
	}
	// Positive and negative zero are equal.
	if a.is_zero() && b.is_zero() {
		return false
	}
	// Otherwise, anything negative is less than anything positive.
	if a.sign != b.sign {
		return a.sign < b.sign
	}
	// Now we just compare absolute values.
	if a.sign > 0 {
		return a.UnsignedLess(b)
	}
	return b.UnsignedLess(a)
}

func (a ExactFloat) UnsignedLess(b ExactFloat) bool {
	// Handle the zero/infinity cases (NaN has already been done).
	if a.is_inf() || b.is_zero() {
		return false
	}
	if a.is_zero() || b.is_inf() {
		return true
	}
	// If the high-order bit positions differ, we are done.
	cmp := a.exp() - b.exp()
	if cmp != 0 {
		return cmp < 0
	}
	// Otherwise shift one of the two values so that they both have
	// the same bn_exp and then compare the mantissas.
	if a.bn_exp >= b.bn_exp {
		return a.ScaleAndCompare(b) < 0
	}
	return b.ScaleAndCompare(a) > 0
}

func (a ExactFloat) ScaleAndCompare(b ExactFloat) int {
	tmp := a
	tmp.bn = tmp.bn.Lsh(tmp.bn, uint(a.bn_exp-b.bn_exp))
	return tmp.bn.Cmp(b.bn)
}

func (f *ExactFloat) Canonicalize() {
	if !f.is_normal() {
		return
	}

	// Underflow/overflow occurs if exp() is not in [MinExp, MaxExp].
	// We also convert a zero mantissa to signed zero.
	my_exp := f.exp()
	if my_exp < minExp || f.bn.BitLen() == 0 {
		f.set_zero(f.sign)
	} else if my_exp > maxExp {
		f.set_inf(f.sign)
	} else if f.bn.BitLen() > 0 && f.bn.Bit(0) != 0 {
		shift := count_low_zero_bits(f.bn)
		if shift > 0 {
			f.bn_exp += shift
		}
	}
	if f.prec() > maxPrec {
		f.set_nan()
	}
}

func (f ExactFloat) Add(b ExactFloat) ExactFloat {
	return SignedSum(f.sign, &f, b.sign, &b)
}

func (f ExactFloat) Sub(b ExactFloat) ExactFloat {
	return SignedSum(f.sign, &f, -b.sign, &b)
}

func (f ExactFloat) Mul(b ExactFloat) ExactFloat {
	result_sign := f.sign * b.sign
	if !f.is_normal() || !b.is_normal() {
		// Handle zero, inf, and NaN according to IEEE 754-2008.
		if f.is_nan() {
			return f
		}
		if b.is_nan() {
			return b
		}
		if f.is_inf() {
			// Infinity times zero yields NaN.
			if b.is_zero() {
				return NaN()
			}
			return Infinity(result_sign)
		}
		if b.is_inf() {
			if f.is_zero() {
				return NaN()
			}
			return Infinity(result_sign)
		}
		return SignedZero(result_sign)
	}
	r := NewExactFloat(0)
	r.sign = result_sign
	r.bn_exp = f.bn_exp + b.bn_exp
	r.bn = r.bn.Mul(f.bn, b.bn)
	r.Canonicalize()
	return r
}

// SignedSum computes a_sign*|a| + b_sign*|b|, the shared implementation
// behind Add and Sub.
func SignedSum(a_sign int, a *ExactFloat, b_sign int, b *ExactFloat) ExactFloat {
	if !a.is_normal() || !b.is_normal() {
		// Handle zero, inf, and NaN according to IEEE 754-2008.
		if a.is_nan() {
			return *a
		}
		if b.is_nan() {
			return *b
		}
		if a.is_inf() {
			// Adding two infinities with opposite signs yields NaN.
			if b.is_inf() && a_sign != b_sign {
				return NaN()
			}
			return Infinity(a_sign)
		}
		if b.is_inf() {
			return Infinity(b_sign)
		}
		if a.is_zero() {
			if !b.is_zero() {
				return b.CopyWithSign(b_sign)
			}
			// Adding two zeros with the same sign preserves the sign
			if a_sign == b_sign {
				return SignedZero(a_sign)
			}
			return SignedZero(+1)
		}
		return a.CopyWithSign(a_sign)
	}
	// Swap the numbers if necessary so that "a" has the larger bn_exp.
	if a.bn_exp < b.bn_exp {
		a_sign, b_sign = b_sign, a_sign
		a, b = b, a
	}
	// Shift "a" if necessary so that both values have the same bn_exp.
	r := NewExactFloat(0)
	if a.bn_exp > b.bn_exp {
		r.bn = r.bn.Lsh(a.bn, uint(a.bn_exp-b.bn_exp))
		a = &r // The only field of "a" used below is bn.
	}
	r.bn_exp = b.bn_exp
	if a_sign == b_sign {
		r.bn = r.bn.Add(a.bn, b.bn)
		r.sign = a_sign
	} else {
		r.bn = r.bn.Sub(a.bn, b.bn)
		if r.bn.BitLen() == 0 {
			r.sign = +1
		} else if r.bn.Sign() == -1 {
			// The magnitude of "b" was larger.
			r.sign = b_sign
			r.bn = r.bn.Mul(r.bn, big.NewInt(-1))
		} else {
			// The were equal, or the magnitude of "a" was larger.
			r.sign = a_sign
		}
	}
	r.Canonicalize()
	return r
}

func (f ExactFloat) CopyWithSign(sign int) ExactFloat {
	r := f
	r.sign = sign
	return r
}

func (f *ExactFloat) set_nan() {
	f.sign = 1
	f.bn_exp = expNaN
	f.bn = f.bn.SetUint64(0)
}

func (f *ExactFloat) set_zero(sign int) {
	f.sign = sign
	f.bn_exp = expZero
	f.bn = f.bn.SetUint64(0)
}

func (f *ExactFloat) set_inf(sign int) {
	f.sign = sign
	f.bn_exp = expInfinity
	f.bn = f.bn.SetUint64(0)
}

func (f ExactFloat) prec() int {
	return f.bn.BitLen()
}

func (f ExactFloat) IsNaN() bool { return f.is_nan() }

func (f ExactFloat) exp() int {
	return int(f.bn_exp) + f.bn.BitLen()
}

func (f ExactFloat) is_zero() bool {
	return f.bn_exp == expZero
}

func (f ExactFloat) is_inf() bool {
	return f.bn_exp == expInfinity
}

func (f ExactFloat) is_nan() bool {
	return f.bn_exp == expNaN
}

func (f ExactFloat) is_normal() bool {
	return f.bn_exp < expZero
}

// Return +1 if this ExactFloat is positive, -1 if it is negative, and 0
// if it is zero or NaN (unlike the raw sign field, which is never zero).
func (f ExactFloat) Sgn() int {
	if f.is_nan() || f.is_zero() {
		return 0
	}
	return f.sign
}

// XXX: I don't like this code. I _think_ it matches BN_ext_count_low_zero_bits
// in the C++ exactfloat.cc version. Needs more testing.
func count_low_zero_bits(bn *big.Int) int {
	count := 0
	words := bn.Bits()
	for i := 0; i < len(words); i++ {
		if words[i] == 0 {
			count += 64 //8 * int(unsafe.Sizeof(&words[i]))
		} else {
			for j := 0; j < bn.BitLen(); j++ {
				if bn.Bit(j) == 0 {
					count++
				} else {
					break
				}
			}
			break
		}
	}
	return count
}
