// Package graph defines the static data model of the constraint system:
// variables, methods, constraints, and the ranking of variables used to
// break ties during planning.
package graph

// Vertex is the shape the planner needs from a method: its input and output
// variable indices, and whether it is a stay method (the identity method of
// a stay constraint, never selected as a real source of computation).
type Vertex interface {
	Inputs() []int
	Outputs() []int
	IsStay() bool
}

// NInputs returns len(v.Inputs()). Convenience mirroring the default trait
// method on the Rust side.
func NInputs(v Vertex) int { return len(v.Inputs()) }

// NOutputs returns len(v.Outputs()).
func NOutputs(v Vertex) int { return len(v.Outputs()) }
