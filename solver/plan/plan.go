// Package plan implements the planning pipeline that turns a component's
// constraints into an ordered sequence of method activations: the simple
// planner, the pruner, the topological sorter, the hierarchical planner,
// and the priority adjuster.
package plan

import "github.com/hotdrink-go/hotdrink/solver/graph"

// Step is one entry of a Plan: the constraint it satisfies and the method
// chosen to enforce it.
type Step struct {
	Constraint string
	Method     graph.Method
}

func (s Step) Inputs() []int  { return s.Method.Inputs() }
func (s Step) Outputs() []int { return s.Method.Outputs() }
func (s Step) IsStay() bool   { return s.Method.IsStay() }

// Plan is a sequence of Steps. A valid plan enforces every non-stay
// constraint of a component exactly once, and is ordered so that every
// step's inputs are written by an earlier step (or are not written by the
// plan at all, meaning they keep their current value).
type Plan []Step

// workingComponent is a mutable copy of a component's constraint list used
// internally while planning: the hierarchical planner pushes and pops stay
// constraints as it searches, and the pruner removes dominated methods in
// place. None of this mutation is visible outside the plan package.
type workingComponent struct {
	nVariables  int
	constraints []graph.Constraint
}

func newWorkingComponent(nVariables int, constraints []graph.Constraint) *workingComponent {
	cs := make([]graph.Constraint, len(constraints))
	copy(cs, constraints)
	return &workingComponent{nVariables: nVariables, constraints: cs}
}

func (c *workingComponent) clone() *workingComponent {
	return newWorkingComponent(c.nVariables, c.constraints)
}

func (c *workingComponent) push(con graph.Constraint) {
	c.constraints = append(c.constraints, con)
}

func (c *workingComponent) pop() {
	c.constraints = c.constraints[:len(c.constraints)-1]
}
