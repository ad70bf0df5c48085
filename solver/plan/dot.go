package plan

import (
	"fmt"
	"strings"
)

// DOT renders a plan as a Graphviz digraph: one node per step, with an edge
// from every step that writes a variable to every later step that reads it.
// Purely a debugging/visualization aid; it has no bearing on solving.
func DOT(p Plan) string {
	var b strings.Builder
	b.WriteString("digraph plan {\n")

	writer := make(map[int]int)
	for i, step := range p {
		label := fmt.Sprintf("%s::%s", step.Constraint, step.Method.Name())
		fmt.Fprintf(&b, "  n%d [label=%q];\n", i, label)
		for _, o := range step.Outputs() {
			writer[o] = i
		}
	}

	for i, step := range p {
		for _, in := range step.Inputs() {
			if src, ok := writer[in]; ok && src != i {
				fmt.Fprintf(&b, "  n%d -> n%d [label=\"v%d\"];\n", src, i, in)
			}
		}
	}

	b.WriteString("}\n")
	return b.String()
}
