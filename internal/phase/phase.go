// Package phase implements exact rational phases in units of π, reduced modulo 2.
package phase

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase is a rational multiple of π in [0, 2). The zero value is the zero phase.
type Phase struct {
	num int64
	den int64
}

// Zero returns the zero phase.
func Zero() Phase { return Phase{num: 0, den: 1} }

// One returns π.
func One() Phase { return Phase{num: 1, den: 1} }

// New returns num/den reduced modulo 2. Panics on a zero denominator.
func New(num, den int64) Phase {
	if den == 0 {
		panic("phase: zero denominator")
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs(num), den)
	num, den = num/g, den/g

	m := 2 * den
	num %= m
	if num < 0 {
		num += m
	}
	return Phase{num: num, den: den}
}

// Num returns the numerator of the reduced phase.
func (p Phase) Num() int64 { return p.num }

// Denom returns the denominator of the reduced phase. Always positive.
func (p Phase) Denom() int64 {
	if p.den == 0 {
		return 1
	}
	return p.den
}

// Add returns p + q modulo 2.
func (p Phase) Add(q Phase) Phase {
	pd, qd := p.Denom(), q.Denom()
	return New(p.num*qd+q.num*pd, pd*qd)
}

// Neg returns -p modulo 2.
func (p Phase) Neg() Phase {
	return New(-p.num, p.Denom())
}

// Equal reports whether p and q are the same phase.
func (p Phase) Equal(q Phase) bool {
	return p.num == q.num && p.Denom() == q.Denom()
}

// IsZero reports whether p is 0.
func (p Phase) IsZero() bool { return p.num == 0 }

// IsT reports whether p is an odd multiple of π/4.
func (p Phase) IsT() bool { return p.Denom() == 4 }

// IsClifford reports whether p is a multiple of π/2.
func (p Phase) IsClifford() bool { return p.Denom() <= 2 }

// IsPauli reports whether p is 0 or π.
func (p Phase) IsPauli() bool { return p.Denom() == 1 }

// String renders the phase as "0", "1" or "n/d".
func (p Phase) String() string {
	if p.Denom() == 1 {
		return strconv.FormatInt(p.num, 10)
	}
	return fmt.Sprintf("%d/%d", p.num, p.Denom())
}

// Parse accepts "n", "n/d" and "-n/d". Surrounding whitespace is ignored.
func Parse(s string) (Phase, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero(), nil
	}
	numStr, denStr, hasDen := strings.Cut(s, "/")
	num, err := strconv.ParseInt(strings.TrimSpace(numStr), 10, 64)
	if err != nil {
		return Phase{}, fmt.Errorf("parse phase %q: %w", s, err)
	}
	den := int64(1)
	if hasDen {
		den, err = strconv.ParseInt(strings.TrimSpace(denStr), 10, 64)
		if err != nil {
			return Phase{}, fmt.Errorf("parse phase %q: %w", s, err)
		}
		if den == 0 {
			return Phase{}, fmt.Errorf("parse phase %q: zero denominator", s)
		}
	}
	return New(num, den), nil
}

// MustParse is Parse for literals in tests and tables.
func MustParse(s string) Phase {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func abs(a int64) int64 {
	if a < 0 {
		return -a
	}
	return a
}
