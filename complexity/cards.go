package complexity

// Card explains one class.
type Card struct {
	Class       Class  `json:"class"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Example     string `json:"example"`
	Color       string `json:"color"`
}

var cards = map[Class]Card{
	Constant: {
		Name:        "Constant Time",
		Description: "The runtime is constant. It does not change regardless of the input size 'n'.",
		Color:       "#34d399",
		Example: `func first(xs []int) int {
	return xs[0]
}`,
	},
	Logarithmic: {
		Name:        "Logarithmic Time",
		Description: "The runtime grows logarithmically. Common in algorithms that halve the problem at each step, like binary search.",
		Color:       "#60a5fa",
		Example: `func binarySearch(xs []int, target int) int {
	lo, hi := 0, len(xs)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch {
		case xs[mid] == target:
			return mid
		case xs[mid] < target:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return -1
}`,
	},
	Linear: {
		Name:        "Linear Time",
		Description: "The runtime grows in direct proportion to the input size 'n'. If 'n' doubles, the runtime doubles.",
		Color:       "#facc15",
		Example: `func indexOf(xs []int, v int) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	return -1
}`,
	},
	Linearithmic: {
		Name:        "Log-Linear Time",
		Description: "A common complexity for efficient sorting algorithms. It scales better than quadratic time.",
		Color:       "#fb923c",
		Example: `func mergeSort(xs []int) []int {
	if len(xs) <= 1 {
		return xs
	}
	mid := len(xs) / 2
	l, r := mergeSort(xs[:mid]), mergeSort(xs[mid:])
	out := make([]int, 0, len(xs))
	for len(l) > 0 && len(r) > 0 {
		if l[0] < r[0] {
			out, l = append(out, l[0]), l[1:]
		} else {
			out, r = append(out, r[0]), r[1:]
		}
	}
	return append(append(out, l...), r...)
}`,
	},
	Quadratic: {
		Name:        "Quadratic Time",
		Description: "The runtime is proportional to the square of the input size. Common with nested loops over the input.",
		Color:       "#f87171",
		Example: `func hasDuplicates(xs []int) bool {
	for i := range xs {
		for j := range xs {
			if i != j && xs[i] == xs[j] {
				return true
			}
		}
	}
	return false
}`,
	},
	Exponential: {
		Name:        "Exponential Time",
		Description: "The runtime doubles with each addition to the input size, so these algorithms become impractical very quickly. Example: naive recursive Fibonacci.",
		Color:       "#f472b6",
		Example: `func fib(n int) int {
	if n <= 1 {
		return n
	}
	return fib(n-1) + fib(n-2)
}`,
	},
	Factorial: {
		Name:        "Factorial Time",
		Description: "The runtime grows factorially and is extremely slow even for small inputs. Example: brute-force travelling salesman.",
		Color:       "#c084fc",
		Example: `func permutations(xs []int) [][]int {
	if len(xs) == 0 {
		return [][]int{{}}
	}
	var out [][]int
	for _, p := range permutations(xs[1:]) {
		for i := 0; i <= len(p); i++ {
			q := append(append(append([]int{}, p[:i]...), xs[0]), p[i:]...)
			out = append(out, q)
		}
	}
	return out
}`,
	},
}

// CardFor returns the card of c.
func CardFor(c Class) (Card, error) {
	card, ok := cards[c]
	if !ok {
		return Card{}, ErrUnknownClass
	}
	card.Class = c

	return card, nil
}

// Cards returns every card in Classes order.
func Cards() []Card {
	out := make([]Card, 0, len(cards))
	for _, c := range Classes() {
		card, _ := CardFor(c)
		out = append(out, card)
	}

	return out
}
