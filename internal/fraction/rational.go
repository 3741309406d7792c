// Package fraction implements exact fraction values and the number theory
// the trainer explains to learners: GCD, LCM, prime factors, reduction and
// mixed-number conversion.
package fraction

import "fmt"

// Rational is an exact fraction Num/Den with Den > 0.
//
// Values are not reduced on construction: 8/12 and 2/3 are distinct
// Rationals that compare Equivalent. Learners work with unreduced forms,
// so the engine has to keep them.
type Rational struct {
	Num int
	Den int
}

// New returns n/d. It panics when d <= 0.
func New(n, d int) Rational {
	if d <= 0 {
		panic(fmt.Sprintf("fraction: invalid denominator %d", d))
	}
	return Rational{Num: n, Den: d}
}

// Whole returns the integer n as n/1.
func Whole(n int) Rational {
	return Rational{Num: n, Den: 1}
}

// Reduced returns r in lowest terms.
func (r Rational) Reduced() Rational {
	n, d := Reduce(r.Num, r.Den)
	return Rational{Num: n, Den: d}
}

// IsReduced reports whether r is already in lowest terms.
func (r Rational) IsReduced() bool {
	return r.Reduced() == r
}

// Equivalent reports whether r and o denote the same value.
func (r Rational) Equivalent(o Rational) bool {
	return r.Num*o.Den == o.Num*r.Den
}

// Cmp compares the values of r and o and returns -1, 0 or +1.
func (r Rational) Cmp(o Rational) int {
	lhs, rhs := r.Num*o.Den, o.Num*r.Den
	switch {
	case lhs < rhs:
		return -1
	case lhs > rhs:
		return 1
	default:
		return 0
	}
}

// Add returns r + o expressed over lcm(r.Den, o.Den), unreduced.
func (r Rational) Add(o Rational) Rational {
	l := LCM(r.Den, o.Den)
	return Rational{Num: r.Num*(l/r.Den) + o.Num*(l/o.Den), Den: l}
}

// Sub returns r - o expressed over lcm(r.Den, o.Den), unreduced.
func (r Rational) Sub(o Rational) Rational {
	l := LCM(r.Den, o.Den)
	return Rational{Num: r.Num*(l/r.Den) - o.Num*(l/o.Den), Den: l}
}

// ExpandTo rewrites r over den. ok is false when den is not a multiple of
// r.Den.
func (r Rational) ExpandTo(den int) (Rational, bool) {
	if den <= 0 || den%r.Den != 0 {
		return r, false
	}
	m := den / r.Den
	return Rational{Num: r.Num * m, Den: den}, true
}

// Mixed returns the mixed-number view of r without reducing it.
func (r Rational) Mixed() Mixed {
	w, n := ToMixed(r.Num, r.Den)
	return Mixed{Whole: w, Num: n, Den: r.Den}
}

// IsProper reports whether |Num| < Den.
func (r Rational) IsProper() bool {
	return abs(r.Num) < r.Den
}

// IsZero reports whether r has value zero.
func (r Rational) IsZero() bool {
	return r.Num == 0
}

func (r Rational) String() string {
	if r.Den == 1 {
		return fmt.Sprintf("%d", r.Num)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Mixed is a whole part plus a proper fraction, 0 <= Num < Den.
type Mixed struct {
	Whole int
	Num   int
	Den   int
}

// Improper returns the Rational equal to m.
func (m Mixed) Improper() Rational {
	return Rational{Num: FromMixed(m.Whole, m.Num, m.Den), Den: m.Den}
}

func (m Mixed) String() string {
	switch {
	case m.Num == 0:
		return fmt.Sprintf("%d", m.Whole)
	case m.Whole == 0:
		return fmt.Sprintf("%d/%d", m.Num, m.Den)
	default:
		return fmt.Sprintf("%d %d/%d", m.Whole, m.Num, m.Den)
	}
}
