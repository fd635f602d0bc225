// Package complexity is the algorithmic-complexity explainer: the seven
// common Big O classes, their growth functions, a card per class with a Go
// example, and a line chart of operation counts for n in [1, MaxN].
package complexity

import (
	"errors"
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// ErrUnknownClass is returned for a class name outside Classes.
var ErrUnknownClass = errors.New("complexity: unknown class")

// ErrBadN is returned when n is outside [1, MaxN].
var ErrBadN = errors.New("complexity: n out of range")

const (
	// MaxN is the largest input size shown.
	MaxN = 50
	// MaxOps clips chart values; anything larger is drawn at MaxOps.
	MaxOps = 100
	// FactorialCap is returned by Factorial once the product passes 1000.
	FactorialCap = 1001
)

// Class is a Big O label such as "O(n log n)".
type Class string

const (
	Constant     Class = "O(1)"
	Logarithmic  Class = "O(log n)"
	Linear       Class = "O(n)"
	Linearithmic Class = "O(n log n)"
	Quadratic    Class = "O(n^2)"
	Exponential  Class = "O(2^n)"
	Factorial    Class = "O(n!)"
)

// Classes lists every class from slowest-growing to fastest.
func Classes() []Class {
	return []Class{Constant, Logarithmic, Linear, Linearithmic, Quadratic, Exponential, Factorial}
}

// ParseClass accepts a class label exactly as listed by Classes.
func ParseClass(s string) (Class, error) {
	for _, c := range Classes() {
		if string(c) == s {
			return c, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownClass, s)
}

// FactorialOps returns n!, capped: once the running product exceeds 1000
// the result is FactorialCap. Negative n yields -1.
func FactorialOps(n int) float64 {
	if n < 0 {
		return -1
	}
	result := 1.0
	for i := 1; i <= n; i++ {
		if result > 1000 {
			return FactorialCap
		}
		result *= float64(i)
	}

	return result
}

// Ops returns the operation count of c at input size n.
func Ops(c Class, n int) float64 {
	x := float64(n)
	switch c {
	case Constant:
		return 1
	case Logarithmic:
		return math.Log2(x)
	case Linear:
		return x
	case Linearithmic:
		return x * math.Log2(x)
	case Quadratic:
		return x * x
	case Exponential:
		return math.Pow(2, x)
	case Factorial:
		return FactorialOps(n)
	default:
		return math.NaN()
	}
}

// Count is one class evaluated at a chosen n.
type Count struct {
	Class   Class   `json:"class"`
	Ops     float64 `json:"ops"`
	Display string  `json:"display"`
}

// Counts evaluates every class at n. Display is the count with thousands
// separators; the factorial cap is shown as "> 1,000".
func Counts(n int) ([]Count, error) {
	if n < 1 || n > MaxN {
		return nil, fmt.Errorf("%w: %d not in [1,%d]", ErrBadN, n, MaxN)
	}
	out := make([]Count, 0, len(Classes()))
	for _, c := range Classes() {
		ops := Ops(c, n)
		display := humanize.CommafWithDigits(ops, 2)
		if c == Factorial && ops == FactorialCap {
			display = "> " + humanize.Comma(1000)
		}
		out = append(out, Count{Class: c, Ops: ops, Display: display})
	}

	return out, nil
}

// Series returns the chart values of c for n = 1..MaxN, clipped to MaxOps.
func Series(c Class) []float64 {
	out := make([]float64, MaxN)
	for i := range out {
		out[i] = math.Min(Ops(c, i+1), MaxOps)
	}

	return out
}
