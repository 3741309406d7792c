package checker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/fractiz/internal/taskgen"
)

// ParseAnswer reads an answer typed on the command line. Binary modes take
// two mixed numbers joined by the task operator ("8/12 + 9/12",
// "2 5/4 - 1 3/4"); other modes take one ("2/5", "2 3/4"). Parts are kept
// as typed, so "1 7/4" is not normalised.
func ParseAnswer(mode taskgen.Mode, s string) (Answer, error) {
	var a Answer
	s = strings.TrimSpace(s)
	if !mode.Binary() {
		w, n, d, err := parseTriple(s)
		if err != nil {
			return a, err
		}
		a = Answer{Whole1: w, Num1: n, Den1: d, Den2: 1}
		return a, nil
	}

	op := " + "
	if mode == taskgen.ModeSubtract {
		op = " - "
	}
	left, right, ok := strings.Cut(s, op)
	if !ok {
		return a, fmt.Errorf("answer %q: expected two parts joined by %q", s, strings.TrimSpace(op))
	}
	w1, n1, d1, err := parseTriple(left)
	if err != nil {
		return a, err
	}
	w2, n2, d2, err := parseTriple(right)
	if err != nil {
		return a, err
	}
	return Answer{Whole1: w1, Num1: n1, Den1: d1, Whole2: w2, Num2: n2, Den2: d2}, nil
}

// parseTriple reads "w", "n/d" or "w n/d" with non-negative parts.
func parseTriple(s string) (w, n, d int, err error) {
	fields := strings.Fields(s)
	atoi := func(part string) (int, error) {
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("answer %q: %q is not a non-negative integer", s, part)
		}
		return v, nil
	}

	var frac string
	switch len(fields) {
	case 1:
		if !strings.Contains(fields[0], "/") {
			w, err = atoi(fields[0])
			return w, 0, 1, err
		}
		frac = fields[0]
	case 2:
		if w, err = atoi(fields[0]); err != nil {
			return 0, 0, 0, err
		}
		frac = fields[1]
	default:
		return 0, 0, 0, fmt.Errorf("answer %q: expected w, n/d or w n/d", s)
	}

	num, den, ok := strings.Cut(frac, "/")
	if !ok {
		return 0, 0, 0, fmt.Errorf("answer %q: expected a fraction after the whole part", s)
	}
	if n, err = atoi(num); err != nil {
		return 0, 0, 0, err
	}
	if d, err = atoi(den); err != nil {
		return 0, 0, 0, err
	}
	return w, n, d, nil
}
