package solution

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/fractiz/internal/fraction"
	"github.com/abhisek/fractiz/internal/taskgen"
)

// Options tunes the generated solution.
type Options struct {
	// PreReduce reduces the operands of an add or subtract task before the
	// common denominator is found.
	PreReduce bool `yaml:"pre_reduce"`
}

// Build returns the worked solution of task. It panics on a nil task.
func Build(task *taskgen.Task, opts Options) []Step {
	if task == nil {
		panic("solution: nil task")
	}
	var s steps
	switch task.Mode {
	case taskgen.ModeAdd, taskgen.ModeSubtract:
		buildBinary(&s, task, opts)
	case taskgen.ModeReduce:
		buildReduce(&s, task)
	case taskgen.ModeMixedToImproper:
		buildToImproper(&s, task)
	case taskgen.ModeImproperToMixed:
		buildToMixed(&s, task)
	default:
		panic(fmt.Sprintf("solution: unsupported mode %q", task.Mode))
	}
	return s.list
}

func buildBinary(s *steps, t *taskgen.Task, opts Options) {
	a, b := t.A.Mixed(), t.B.Mixed()
	fa := fraction.New(a.Num, a.Den)
	fb := fraction.New(b.Num, b.Den)
	op := t.Operator()

	if opts.PreReduce {
		var lines []string
		if fa.Num != 0 && !fa.IsReduced() {
			r := fa.Reduced()
			lines = append(lines, fa.String()+Arrow+r.String())
			fa = r
		}
		if fb.Num != 0 && !fb.IsReduced() {
			r := fb.Reduced()
			lines = append(lines, fb.String()+Arrow+r.String())
			fb = r
		}
		if len(lines) > 0 {
			s.section("Reduce the fractions first")
			s.say("%s", strings.Join(lines, "\n"))
		}
	}

	l := fraction.LCM(fa.Den, fb.Den)
	ea, _ := fa.ExpandTo(l)
	eb, _ := fb.ExpandTo(l)

	if fa.Den != fb.Den {
		merged, missing := fraction.LCMFactors(fa.Den, fb.Den)
		s.section("Find the least common denominator")
		s.say("Split the denominators into prime factors:\n%d = %s\n%d = %s",
			fa.Den, factors(fraction.PrimeFactors(fa.Den)),
			fb.Den, factors(fraction.PrimeFactors(fb.Den)))
		if len(missing) == 0 {
			s.say("%d already has every factor of %d, so the common denominator is %d.", fa.Den, fb.Den, l)
		} else {
			s.say("Take the factors of %d and add the missing ones (%s):\n%s = %d",
				fa.Den, factors(missing), factors(merged), l)
		}

		s.section("Find the extra factors")
		s.say("First fraction: %d ÷ %d = %d\nSecond fraction: %d ÷ %d = %d",
			l, fa.Den, l/fa.Den, l, fb.Den, l/fb.Den)
		s.say("Multiply each numerator and denominator by its factor:\n%s %s %s%s%s %s %s",
			mixed(a.Whole, fa.Num, fa.Den), op, mixed(b.Whole, fb.Num, fb.Den), Arrow,
			mixed(a.Whole, ea.Num, l), op, mixed(b.Whole, eb.Num, l))
	}

	w1, n1 := a.Whole, ea.Num
	w2, n2 := b.Whole, eb.Num
	var w, n int
	if t.Mode == taskgen.ModeSubtract {
		if n1 < n2 && w1 > 0 {
			s.section("Borrow one whole")
			s.say("%d/%d is smaller than %d/%d, so take 1 from the whole part:\n%s%s%d %d/%d",
				n1, l, n2, l, mixed(w1, n1, l), Arrow, w1-1, n1+l, l)
			w1--
			n1 += l
		}
		s.section("Subtract")
		if w1 != 0 || w2 != 0 {
			s.say("Subtract the whole parts: %d - %d = %d", w1, w2, w1-w2)
		}
		s.say("Subtract the numerators:\n%d/%d - %d/%d%s%d/%d", n1, l, n2, l, Arrow, n1-n2, l)
		w, n = w1-w2, n1-n2
	} else {
		s.section("Add")
		if w1 != 0 || w2 != 0 {
			s.say("Add the whole parts: %d + %d = %d", w1, w2, w1+w2)
		}
		s.say("Add the numerators:\n%d/%d + %d/%d%s%d/%d", n1, l, n2, l, Arrow, n1+n2, l)
		w, n = w1+w2, n1+n2
	}

	if n >= l {
		carry := n / l
		s.section("Take out the whole part")
		s.say("%d/%d is more than one whole:\n%s%s%s", n, l, mixedRaw(w, n, l), Arrow, mixedRaw(w+carry, n-carry*l, l))
		w += carry
		n -= carry * l
	}

	if n != 0 {
		if g := fraction.GCD(n, l); g > 1 {
			s.section("Reduce the result")
			s.say("GCD(%d, %d) = %d. Divide the numerator and the denominator by %d:\n%d/%d%s%d/%d",
				n, l, g, g, n, l, Arrow, n/g, l/g)
		}
	}

	s.answer(t.Result.Mixed())
}

func buildReduce(s *steps, t *taskgen.Task) {
	n, d := t.A.Num, t.A.Den
	if n == 0 {
		s.section("Zero numerator")
		s.say("Zero parts of any whole is zero:\n%s%s%s", t.A, Arrow, t.Result)
		s.answer(t.Result)
		return
	}

	s.section("Factor the numerator and the denominator")
	s.say("%d = %s\n%d = %s", n, factors(fraction.PrimeFactors(n)), d, factors(fraction.PrimeFactors(d)))

	g := fraction.GCD(n, d)
	if g == 1 {
		s.say("There are no common factors, so %s is already in lowest terms.", t.A)
		s.answer(t.Result)
		return
	}

	s.section("Find the greatest common divisor")
	s.say("Common factors: %s\nGCD(%d, %d) = %d", factors(fraction.CommonFactors(n, d)), n, d, g)

	s.section("Divide")
	s.say("Divide the numerator and the denominator by %d:\n%s%s%s", g, t.A, Arrow, t.A.Reduced())
	s.answer(t.Result)
}

func buildToImproper(s *steps, t *taskgen.Task) {
	m := t.A.Mixed()
	s.section("Multiply and add")
	s.say("Multiply the whole part by the denominator and add the numerator:\n%d * %d + %d = %d",
		m.Whole, m.Den, m.Num, t.A.Num)
	s.say("Keep the denominator:\n%s%s%s", m, Arrow, t.A)

	if g := fraction.GCD(t.A.Num, t.A.Den); g > 1 {
		s.section("Reduce the result")
		s.say("GCD(%d, %d) = %d:\n%s%s%s", t.A.Num, t.A.Den, g, t.A, Arrow, t.A.Reduced())
	}
	s.answer(t.Result)
}

func buildToMixed(s *steps, t *taskgen.Task) {
	m := t.A.Mixed()
	s.section("Divide with remainder")
	s.say("%d ÷ %d = %d remainder %d", t.A.Num, t.A.Den, m.Whole, m.Num)
	s.say("The quotient is the whole part, the remainder is the numerator:\n%s%s%s", t.A, Arrow, m)

	if m.Num != 0 {
		if g := fraction.GCD(m.Num, m.Den); g > 1 {
			s.section("Reduce the fraction part")
			s.say("GCD(%d, %d) = %d:\n%d/%d%s%d/%d", m.Num, m.Den, g, m.Num, m.Den, Arrow, m.Num/g, m.Den/g)
		}
	}
	s.answer(t.Result.Mixed())
}

// factors renders a factor list as "2 * 2 * 3".
func factors(fs []int) string {
	if len(fs) == 0 {
		return "1"
	}
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = strconv.Itoa(f)
	}
	return strings.Join(parts, " * ")
}

// mixed renders w n/d, dropping a zero whole part.
func mixed(w, n, d int) string {
	if w == 0 {
		return fmt.Sprintf("%d/%d", n, d)
	}
	return fmt.Sprintf("%d %d/%d", w, n, d)
}

// mixedRaw is mixed, except that an exact whole number renders as "w".
func mixedRaw(w, n, d int) string {
	if n == 0 && w != 0 {
		return strconv.Itoa(w)
	}
	return mixed(w, n, d)
}
