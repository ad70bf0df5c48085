package graph

// ComponentDef is the static description of a component: its variables by
// name, their initial values, and the constraints relating them. It is
// immutable once built and is what `solver/component.New` consumes; the
// config and examples packages both produce one of these.
type ComponentDef struct {
	Name          string
	VariableNames []string
	InitialValues []Value
	Constraints   []Constraint
}

// NameToIndex builds the name -> variable index lookup table implied by
// VariableNames' order.
func (d *ComponentDef) NameToIndex() map[string]int {
	m := make(map[string]int, len(d.VariableNames))
	for i, n := range d.VariableNames {
		m[n] = i
	}
	return m
}

// NVariables returns the number of variables declared.
func (d *ComponentDef) NVariables() int { return len(d.VariableNames) }
