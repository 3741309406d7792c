package fraction

import "fmt"

// GCD returns the greatest common divisor of |a| and |b|.
// GCD(0, 0) is undefined and panics.
func GCD(a, b int) int {
	a, b = abs(a), abs(b)
	if a == 0 && b == 0 {
		panic("fraction: GCD(0, 0) is undefined")
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of two positive integers.
func LCM(a, b int) int {
	if a <= 0 || b <= 0 {
		panic(fmt.Sprintf("fraction: LCM(%d, %d) needs positive arguments", a, b))
	}
	return a / GCD(a, b) * b
}

// PrimeFactors returns the prime factors of n in ascending order, with
// multiplicity. Values below 2 have no factors.
func PrimeFactors(n int) []int {
	factors := []int{}
	if n < 2 {
		return factors
	}
	for p := 2; p*p <= n; p++ {
		for n%p == 0 {
			factors = append(factors, p)
			n /= p
		}
	}
	if n > 1 {
		factors = append(factors, n)
	}
	return factors
}

// LCMFactors explains how lcm(d1, d2) is built: every prime factor of d1,
// followed by the factors of d2 that d1 does not already supply. It returns
// the merged list and the missing list. The product of merged equals
// LCM(d1, d2).
func LCMFactors(d1, d2 int) (merged, missing []int) {
	merged = PrimeFactors(d1)
	available := countFactors(merged)
	missing = []int{}
	for _, f := range PrimeFactors(d2) {
		if available[f] > 0 {
			available[f]--
			continue
		}
		missing = append(missing, f)
	}
	merged = append(merged, missing...)
	return merged, missing
}

// CommonFactors returns the multiset intersection of the prime factors of
// a and b. Its product equals GCD(a, b).
func CommonFactors(a, b int) []int {
	available := countFactors(PrimeFactors(abs(b)))
	common := []int{}
	for _, f := range PrimeFactors(abs(a)) {
		if available[f] > 0 {
			available[f]--
			common = append(common, f)
		}
	}
	return common
}

// Product multiplies a list of factors. The empty product is 1.
func Product(factors []int) int {
	p := 1
	for _, f := range factors {
		p *= f
	}
	return p
}

// Reduce divides n and d by their greatest common divisor. The sign ends
// up on the numerator and zero reduces to 0/1. d must not be zero.
func Reduce(n, d int) (int, int) {
	if d == 0 {
		panic("fraction: Reduce with zero denominator")
	}
	if d < 0 {
		n, d = -n, -d
	}
	if n == 0 {
		return 0, 1
	}
	g := GCD(n, d)
	return n / g, d / g
}

// ToMixed splits n/d into a whole part and a non-negative remainder using
// floor division. d must be positive.
func ToMixed(n, d int) (whole, num int) {
	if d <= 0 {
		panic(fmt.Sprintf("fraction: ToMixed with denominator %d", d))
	}
	whole = n / d
	num = n % d
	if num < 0 {
		whole--
		num += d
	}
	return whole, num
}

// FromMixed returns the numerator of the improper fraction equal to w n/d.
func FromMixed(w, n, d int) int {
	return w*d + n
}

func countFactors(factors []int) map[int]int {
	m := make(map[int]int, len(factors))
	for _, f := range factors {
		m[f]++
	}
	return m
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
