package plan

// Toposort orders steps so that every step appears after the steps that
// produce the variables it reads (a dependency-respecting order), or
// reports false if the steps form a cycle. It is a DFS-based topological
// sort that returns the reversed post-order.
func Toposort(steps Plan, nVariables int) (Plan, bool) {
	n := len(steps)

	varToMethods := make([][]int, nVariables)
	for mi, s := range steps {
		for _, vi := range s.Inputs() {
			varToMethods[vi] = append(varToMethods[vi], mi)
		}
	}

	methodToMethods := make([][]int, n)
	for mi, s := range steps {
		for _, out := range s.Outputs() {
			for _, target := range varToMethods[out] {
				if target != mi {
					methodToMethods[mi] = append(methodToMethods[mi], target)
				}
			}
		}
	}

	marked := make([]bool, n)
	visiting := make([]bool, n)
	order := make([]int, 0, n)

	var dfs func(start int) bool
	dfs = func(start int) bool {
		if visiting[start] {
			return false
		}
		if marked[start] {
			return true
		}
		marked[start] = true
		visiting[start] = true
		for _, m := range methodToMethods[start] {
			if !dfs(m) {
				return false
			}
		}
		order = append(order, start)
		visiting[start] = false
		return true
	}

	for start := 0; start < n; start++ {
		if !marked[start] {
			if !dfs(start) {
				return nil, false
			}
		}
	}

	out := make(Plan, n)
	for i, mID := range order {
		out[n-1-i] = steps[mID]
	}
	return out, true
}
