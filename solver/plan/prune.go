package plan

// varToConstraints maps each variable to the set of constraint indices
// that reference it, keyed by index into component.constraints.
func varToConstraints(nVariables int, c *workingComponent) []map[int]struct{} {
	out := make([]map[int]struct{}, nVariables)
	for i := range out {
		out[i] = make(map[int]struct{})
	}
	for ci, constraint := range c.constraints {
		for _, vi := range constraint.Variables() {
			out[vi][ci] = struct{}{}
		}
	}
	return out
}

// prune locks in the unique writer of `start` (and, transitively, of every
// variable whose only remaining writer becomes unambiguous as a result),
// removing methods in other constraints that would also write to the same
// variable. canStay[v] is cleared for every variable visited, since a
// variable that is definitely written to by some method can no longer also
// carry a stay constraint in the solution being searched.
func prune(v2c []map[int]struct{}, start int, canStay []bool, c *workingComponent) {
	visited := make([]bool, c.nVariables)
	stack := []int{start}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		visited[current] = true
		canStay[current] = false

		uniqueWriter := -1
		for ci := range v2c[current] {
			methods := c.constraints[ci].Methods()
			if len(methods) == 1 && containsInt(methods[0].Outputs(), current) {
				uniqueWriter = ci
				break
			}
		}

		if uniqueWriter == -1 {
			continue
		}

		for ci := range v2c[current] {
			if ci == uniqueWriter {
				continue
			}
			constraint := &c.constraints[ci]
			toRemove := make([]string, 0)
			for _, m := range constraint.Methods() {
				if containsInt(m.Outputs(), current) {
					toRemove = append(toRemove, m.Name())
				}
			}
			for _, name := range toRemove {
				constraint.RemoveMethod(name)
			}
		}

		for ci := range v2c[current] {
			methods := c.constraints[ci].Methods()
			if len(methods) == 1 {
				for _, o := range methods[0].Outputs() {
					if !visited[o] {
						stack = append(stack, o)
					}
				}
			}
		}

		v2c[current] = map[int]struct{}{uniqueWriter: {}}
	}
}
