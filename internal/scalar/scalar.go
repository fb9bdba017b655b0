// Package scalar implements the exact scalar ring used for diagram weights.
//
// A Scalar is 2^pow · (c0 + c1·ω + c2·ω² + c3·ω³) with ω = e^{iπ/4} and
// integer coefficients. Since ω⁴ = −1 the four coefficients span Z[ω], and
// every value reachable from Clifford+T rewrites is representable exactly.
//
// Values are kept in normal form: zero has pow 0, otherwise the coefficients
// are not all even. Normal form is unique, so == on Scalar is value equality.
//
// Coefficients are int64. Arithmetic is checked: TryAdd and TryMul return
// ErrOverflow when a result does not fit, and Add and Mul panic with it.
package scalar

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"

	"github.com/roach88/stabdecomp/internal/phase"
)

// ErrInexactPhase is returned when a phase is not a multiple of π/4.
var ErrInexactPhase = errors.New("phase is not a multiple of pi/4")

// ErrOverflow is returned when a coefficient does not fit in an int64.
var ErrOverflow = errors.New("scalar coefficient overflow")

// Scalar is an exact element of the ring. The zero value is 0.
type Scalar struct {
	pow int
	c   [4]int64
}

// Zero returns the additive identity.
func Zero() Scalar { return Scalar{} }

// One returns the multiplicative identity.
func One() Scalar { return Scalar{c: [4]int64{1, 0, 0, 0}} }

// Exact builds 2^pow · (c0 + c1ω + c2ω² + c3ω³) in normal form.
func Exact(pow int, coeffs [4]int64) Scalar {
	return Scalar{pow: pow, c: coeffs}.Normalize()
}

// Sqrt2 returns √2 = ω − ω³.
func Sqrt2() Scalar { return Scalar{c: [4]int64{0, 1, 0, -1}} }

// Sqrt2Pow returns √2^n for any integer n.
func Sqrt2Pow(n int) Scalar {
	if n%2 == 0 {
		return Scalar{pow: n / 2, c: [4]int64{1, 0, 0, 0}}
	}
	return Scalar{pow: (n - 1) / 2, c: [4]int64{0, 1, 0, -1}}
}

// Omega returns ω^k.
func Omega(k int) Scalar {
	k %= 8
	if k < 0 {
		k += 8
	}
	var s Scalar
	if k < 4 {
		s.c[k] = 1
	} else {
		s.c[k-4] = -1
	}
	return s
}

// FromPhase returns e^{iπp}. The phase must be a multiple of π/4.
func FromPhase(p phase.Phase) (Scalar, error) {
	den := p.Denom()
	if 4%den != 0 {
		return Scalar{}, fmt.Errorf("%w: %s", ErrInexactPhase, p)
	}
	return Omega(int(p.Num() * (4 / den))), nil
}

// Pow returns the power of two.
func (s Scalar) Pow() int { return s.pow }

// Coeffs returns the ω-basis coefficients.
func (s Scalar) Coeffs() [4]int64 { return s.c }

// IsZero reports whether s is 0.
func (s Scalar) IsZero() bool {
	return s.c == [4]int64{}
}

// Equal reports value equality, normalizing both sides.
func (s Scalar) Equal(o Scalar) bool {
	return s.Normalize() == o.Normalize()
}

// Normalize returns s in normal form.
func (s Scalar) Normalize() Scalar {
	if s.IsZero() {
		return Scalar{}
	}
	for s.c[0]%2 == 0 && s.c[1]%2 == 0 && s.c[2]%2 == 0 && s.c[3]%2 == 0 {
		for i := range s.c {
			s.c[i] /= 2
		}
		s.pow++
	}
	return s
}

// Add returns s + o. It panics with ErrOverflow if the sum is not
// representable; use TryAdd where that must be handled.
func (s Scalar) Add(o Scalar) Scalar {
	r, err := s.TryAdd(o)
	if err != nil {
		panic(err)
	}
	return r
}

// TryAdd returns s + o, or ErrOverflow if aligning the exponents or adding
// the coefficients leaves the int64 range.
func (s Scalar) TryAdd(o Scalar) (Scalar, error) {
	if s.IsZero() {
		return o.Normalize(), nil
	}
	if o.IsZero() {
		return s.Normalize(), nil
	}
	if s.pow < o.pow {
		s, o = o, s
	}
	// s has the larger exponent; bring it down to o's.
	shift := s.pow - o.pow
	var r Scalar
	r.pow = o.pow
	for i := range r.c {
		hi, ok := shiftLeft(s.c[i], shift)
		if !ok {
			return Scalar{}, fmt.Errorf("%w: %s + %s", ErrOverflow, s, o)
		}
		if r.c[i], ok = add(hi, o.c[i]); !ok {
			return Scalar{}, fmt.Errorf("%w: %s + %s", ErrOverflow, s, o)
		}
	}
	return r.Normalize(), nil
}

// Neg returns -s. It panics with ErrOverflow for a coefficient of MinInt64.
func (s Scalar) Neg() Scalar {
	for i := range s.c {
		if s.c[i] == math.MinInt64 {
			panic(fmt.Errorf("%w: -%s", ErrOverflow, s))
		}
		s.c[i] = -s.c[i]
	}
	return s
}

// Mul returns s·o. It panics with ErrOverflow if the product is not
// representable; use TryMul where that must be handled.
func (s Scalar) Mul(o Scalar) Scalar {
	r, err := s.TryMul(o)
	if err != nil {
		panic(err)
	}
	return r
}

// TryMul returns s·o, or ErrOverflow if a coefficient leaves the int64 range.
func (s Scalar) TryMul(o Scalar) (Scalar, error) {
	var r Scalar
	r.pow = s.pow + o.pow
	for i := 0; i < 4; i++ {
		if s.c[i] == 0 {
			continue
		}
		for j := 0; j < 4; j++ {
			p, ok := mul(s.c[i], o.c[j])
			k := i + j
			if ok && k >= 4 {
				// ω⁴ = −1
				k -= 4
				p, ok = mul(p, -1)
			}
			if ok {
				r.c[k], ok = add(r.c[k], p)
			}
			if !ok {
				return Scalar{}, fmt.Errorf("%w: %s * %s", ErrOverflow, s, o)
			}
		}
	}
	return r.Normalize(), nil
}

// shiftLeft returns x·2^k and whether it fits.
func shiftLeft(x int64, k int) (int64, bool) {
	if x == 0 {
		return 0, true
	}
	if k >= 63 {
		return 0, false
	}
	r := x << k
	return r, r>>k == x
}

func add(a, b int64) (int64, bool) {
	r := a + b
	// Overflow iff both operands share a sign the result lacks.
	return r, (a^r)&(b^r) >= 0
}

func mul(a, b int64) (int64, bool) {
	hi, lo := bits.Mul64(magnitude(a), magnitude(b))
	if hi != 0 {
		return 0, false
	}
	if (a < 0) != (b < 0) {
		if lo > 1<<63 {
			return 0, false
		}
		return -int64(lo), true
	}
	if lo > math.MaxInt64 {
		return 0, false
	}
	return int64(lo), true
}

func magnitude(x int64) uint64 {
	if x < 0 {
		return -uint64(x)
	}
	return uint64(x)
}

// Complex128 returns a floating point approximation, for display only.
func (s Scalar) Complex128() complex128 {
	var z complex128
	for k, c := range s.c {
		if c == 0 {
			continue
		}
		z += complex(float64(c), 0) * cmplx.Exp(complex(0, math.Pi*float64(k)/4))
	}
	return z * complex(math.Ldexp(1, s.pow), 0)
}

func (s Scalar) String() string {
	return fmt.Sprintf("2^%d*[%d,%d,%d,%d]", s.pow, s.c[0], s.c[1], s.c[2], s.c[3])
}
