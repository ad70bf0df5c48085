package plan

import (
	"testing"

	"github.com/hotdrink-go/hotdrink/solver/graph"
	"github.com/stretchr/testify/assert"
)

func methodNames(c graph.Constraint) []string {
	out := make([]string, 0, len(c.Methods()))
	for _, m := range c.Methods() {
		out = append(out, m.Name())
	}
	return out
}

func TestPrune_OneWayChainDoesNothing(t *testing.T) {
	// a, b, c, d = 0..3
	stayA := graph.NewConstraint("StayA", []graph.Method{graph.NewMethod("id", []int{0}, []int{0}, okApply)})
	a := graph.NewConstraint("A", []graph.Method{graph.NewMethod("a1", []int{0}, []int{1}, okApply)})
	b := graph.NewConstraint("B", []graph.Method{graph.NewMethod("b1", []int{1}, []int{2}, okApply)})
	c := graph.NewConstraint("C", []graph.Method{graph.NewMethod("c1", []int{2}, []int{3}, okApply)})

	wc := newWorkingComponent(4, []graph.Constraint{stayA, a, b, c})
	v2c := varToConstraints(4, wc)
	canStay := []bool{true, true, true, true}

	prune(v2c, 0, canStay, wc)

	assert.Equal(t, []string{"a1"}, methodNames(wc.constraints[1]))
	assert.Equal(t, []string{"b1"}, methodNames(wc.constraints[2]))
	assert.Equal(t, []string{"c1"}, methodNames(wc.constraints[3]))
	assert.Equal(t, []bool{false, false, false, false}, canStay)
}

func TestPrune_TwoWayChain(t *testing.T) {
	stayA := graph.NewConstraint("StayA", []graph.Method{graph.NewMethod("id", []int{0}, []int{0}, okApply)})
	a := graph.NewConstraint("A", []graph.Method{
		graph.NewMethod("a1", []int{0}, []int{1}, okApply),
		graph.NewMethod("a2", []int{1}, []int{0}, okApply),
	})
	b := graph.NewConstraint("B", []graph.Method{
		graph.NewMethod("b1", []int{1}, []int{2}, okApply),
		graph.NewMethod("b2", []int{2}, []int{1}, okApply),
	})
	c := graph.NewConstraint("C", []graph.Method{
		graph.NewMethod("c1", []int{2}, []int{3}, okApply),
		graph.NewMethod("c2", []int{3}, []int{2}, okApply),
	})

	wc := newWorkingComponent(4, []graph.Constraint{stayA, a, b, c})
	v2c := varToConstraints(4, wc)
	canStay := []bool{true, true, true, true}

	prune(v2c, 0, canStay, wc)

	assert.Equal(t, []string{"a1"}, methodNames(wc.constraints[1]))
	assert.Equal(t, []string{"b1"}, methodNames(wc.constraints[2]))
	assert.Equal(t, []string{"c1"}, methodNames(wc.constraints[3]))
}

func TestPrune_KeepsAmbiguous(t *testing.T) {
	// a, b, c = 0..2
	stayA := graph.NewConstraint("StayA", []graph.Method{graph.NewMethod("id", []int{0}, []int{0}, okApply)})
	a := graph.NewConstraint("A", []graph.Method{
		graph.NewMethod("ab_to_c", []int{0, 1}, []int{2}, okApply),
		graph.NewMethod("ac_to_b", []int{0, 2}, []int{1}, okApply),
		graph.NewMethod("bc_to_a", []int{1, 2}, []int{0}, okApply),
	})

	wc := newWorkingComponent(3, []graph.Constraint{stayA, a})
	v2c := varToConstraints(3, wc)
	canStay := []bool{true, true, true}

	prune(v2c, 0, canStay, wc)

	assert.Equal(t, []string{"ab_to_c", "ac_to_b"}, methodNames(wc.constraints[1]))
	assert.Equal(t, []bool{false, true, true}, canStay)
}

func TestPrune_Ladder(t *testing.T) {
	// a, b, c, d = 0..3
	stayA := graph.NewConstraint("StayA", []graph.Method{graph.NewMethod("id", []int{0}, []int{0}, okApply)})
	stayB := graph.NewConstraint("StayB", []graph.Method{graph.NewMethod("id", []int{1}, []int{1}, okApply)})
	upperLeft := graph.NewConstraint("UpperLeft", []graph.Method{
		graph.NewMethod("abc", []int{0, 1}, []int{2}, okApply),
		graph.NewMethod("acb", []int{0, 2}, []int{1}, okApply),
	})
	lowerRight := graph.NewConstraint("LowerRight", []graph.Method{
		graph.NewMethod("bcd", []int{1, 2}, []int{3}, okApply),
		graph.NewMethod("bdc", []int{1, 3}, []int{2}, okApply),
		graph.NewMethod("cdb", []int{2, 3}, []int{1}, okApply),
	})

	wc := newWorkingComponent(4, []graph.Constraint{stayA, stayB, upperLeft, lowerRight})
	v2c := varToConstraints(4, wc)
	canStay := []bool{false, true, true, true}

	prune(v2c, 1, canStay, wc)

	assert.Equal(t, []string{"abc"}, methodNames(wc.constraints[2]))
	assert.Equal(t, []string{"bcd"}, methodNames(wc.constraints[3]))
}
