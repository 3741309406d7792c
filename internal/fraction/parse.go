package fraction

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrZeroDenominator is returned by Parse for input like "3/0".
var ErrZeroDenominator = errors.New("zero denominator")

// Parse reads a fraction written the way a learner types it:
// "5", "3/4", "-3/4" or "1 3/4". Surrounding whitespace is ignored.
// A negative denominator moves its sign to the numerator.
func Parse(s string) (Rational, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Rational{}, fmt.Errorf("empty fraction")
	}

	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		if !strings.Contains(s, "/") {
			n, err := strconv.Atoi(s)
			if err != nil {
				return Rational{}, fmt.Errorf("invalid integer %q: %w", s, err)
			}
			return Whole(n), nil
		}
		return parseSimple(s)

	case 2:
		w, err := strconv.Atoi(fields[0])
		if err != nil {
			return Rational{}, fmt.Errorf("invalid whole part %q: %w", fields[0], err)
		}
		frac, err := parseSimple(fields[1])
		if err != nil {
			return Rational{}, err
		}
		if frac.Num < 0 {
			return Rational{}, fmt.Errorf("invalid mixed number %q: negative fraction part", s)
		}
		n := FromMixed(abs(w), frac.Num, frac.Den)
		if w < 0 || strings.HasPrefix(fields[0], "-") {
			n = -n
		}
		return Rational{Num: n, Den: frac.Den}, nil

	default:
		return Rational{}, fmt.Errorf("invalid fraction format: %q", s)
	}
}

// MustParse is Parse for literals in tests and tables. It panics on error.
func MustParse(s string) Rational {
	r, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("fraction: MustParse(%q): %v", s, err))
	}
	return r
}

func parseSimple(s string) (Rational, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return Rational{}, fmt.Errorf("invalid fraction format: %q", s)
	}
	num, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Rational{}, fmt.Errorf("invalid numerator: %w", err)
	}
	den, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Rational{}, fmt.Errorf("invalid denominator: %w", err)
	}
	if den == 0 {
		return Rational{}, fmt.Errorf("parse %q: %w", s, ErrZeroDenominator)
	}
	if den < 0 {
		num, den = -num, -den
	}
	return Rational{Num: num, Den: den}, nil
}
