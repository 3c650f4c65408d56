package view

import (
	"sort"
	"strconv"
)

// AllIterations is the option value that shows every iteration section.
const AllIterations = "all"

// CollapsedClass is the body class set while the sidebar is collapsed.
const CollapsedClass = "sidebar-collapsed"

// Option is one entry of the iteration selector. Num is empty for the
// AllIterations option.
type Option struct {
	Value string
	Num   string
}

// IterationOptions returns the selector options for the given iteration
// numbers: AllIterations first, then each number in ascending order.
func IterationOptions(numbers []int) []Option {
	sorted := append([]int(nil), numbers...)
	sort.Ints(sorted)
	out := make([]Option, 0, len(sorted)+1)
	out = append(out, Option{Value: AllIterations})
	for _, n := range sorted {
		s := strconv.Itoa(n)
		out = append(out, Option{Value: s, Num: s})
	}
	return out
}

// OptionLabel is the text shown for o. A collapsed sidebar uses the short
// form.
func OptionLabel(o Option, collapsed bool) string {
	if o.Value == AllIterations {
		if collapsed {
			return "All"
		}
		return "All Iterations"
	}
	if o.Num == "" {
		return o.Value
	}
	if collapsed {
		return o.Num
	}
	return "Iteration " + o.Num
}

func SectionID(value string) string {
	return "iteration-" + value
}
