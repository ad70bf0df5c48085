package plan

import (
	"sort"

	"github.com/hotdrink-go/hotdrink/solver/graph"
)

// variableRefs tracks, for one variable, the indices of the constraints
// that reference it. A variable is "free" once only a single constraint
// references it — that constraint is then the only one left that can
// possibly write to it, so the planner may commit to satisfying it.
type variableRefs struct {
	referencing []int
}

func (v *variableRefs) isFree() bool { return len(v.referencing) == 1 }

func (v *variableRefs) addRef(ci int) {
	v.referencing = append(v.referencing, ci)
}

func (v *variableRefs) removeRef(ci int) {
	out := v.referencing[:0]
	for _, x := range v.referencing {
		if x != ci {
			out = append(out, x)
		}
	}
	v.referencing = out
}

func countVariableRefs(nVariables int, constraints []graph.Constraint) []variableRefs {
	vars := make([]variableRefs, nVariables)
	for ci, c := range constraints {
		for _, vi := range c.Variables() {
			vars[vi].addRef(ci)
		}
	}
	return vars
}

// Simple runs the greedy free-variable-propagation planner: starting from
// variables referenced by exactly one constraint, it repeatedly commits to
// a method that writes only to already-free variables, preferring (among
// candidates) the method with the fewest outputs. It never considers a
// ranking or stay constraints; Hierarchical builds on top of it. The second
// return value is false if some constraint could never be satisfied this
// way (a free variable queue ran dry with constraints still outstanding).
func Simple(nVariables int, constraints []graph.Constraint) (Plan, bool) {
	result := make(Plan, 0, len(constraints))
	remaining := len(constraints)

	variables := countVariableRefs(nVariables, constraints)

	queue := make([]int, 0, nVariables)
	for idx := range variables {
		if variables[idx].isFree() {
			queue = append(queue, idx)
		}
	}

	for remaining != 0 {
		if len(queue) == 0 {
			return nil, false
		}
		idx := queue[0]
		queue = queue[1:]

		if !variables[idx].isFree() {
			continue
		}

		referencing := append([]int(nil), variables[idx].referencing...)
		for _, ci := range referencing {
			constraint := &constraints[ci]

			candidates := make([]graph.Method, 0, len(constraint.Methods()))
			for _, m := range constraint.Methods() {
				if !containsInt(m.Outputs(), idx) {
					continue
				}
				allFree := true
				for _, o := range m.Outputs() {
					if !variables[o].isFree() {
						allFree = false
						break
					}
				}
				if allFree {
					candidates = append(candidates, m)
				}
			}
			if len(candidates) == 0 {
				continue
			}
			sort.SliceStable(candidates, func(i, j int) bool {
				return len(candidates[i].Outputs()) < len(candidates[j].Outputs())
			})
			chosen := candidates[0]

			result = append(result, Step{Constraint: constraint.Name(), Method: chosen})
			remaining--

			for _, vi := range constraint.Variables() {
				variables[vi].removeRef(ci)
				if variables[vi].isFree() {
					queue = append(queue, vi)
				}
			}
		}
	}

	return result, true
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
