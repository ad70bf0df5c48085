package plan

import (
	"context"
	"testing"

	"github.com/hotdrink-go/hotdrink/solver/graph"
	"github.com/hotdrink-go/hotdrink/solver/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHierarchical_TwoMethodConstraint(t *testing.T) {
	aToB := graph.NewMethod("a_to_b", []int{0}, []int{1}, okApply)
	bToA := graph.NewMethod("b_to_a", []int{1}, []int{0}, okApply)
	c := graph.NewConstraint("", []graph.Method{aToB, bToA})

	p, err := Hierarchical(context.Background(), 2, []graph.Constraint{c}, []int{0, 1}, telemetry.NewNoopTracer())
	require.NoError(t, err)
	require.Len(t, p, 1)
	assert.Equal(t, "a_to_b", p[0].Method.Name())

	p, err = Hierarchical(context.Background(), 2, []graph.Constraint{c}, []int{1, 0}, telemetry.NewNoopTracer())
	require.NoError(t, err)
	require.Len(t, p, 1)
	assert.Equal(t, "b_to_a", p[0].Method.Name())
}

func TestHierarchical_ThreeMethodCycle(t *testing.T) {
	c := graph.NewConstraint("C", []graph.Method{
		graph.NewMethod("m1", []int{0, 1}, []int{2}, okApply),
		graph.NewMethod("m2", []int{1, 2}, []int{0}, okApply),
		graph.NewMethod("m3", []int{2, 0}, []int{1}, okApply),
	})

	p, err := Hierarchical(context.Background(), 3, []graph.Constraint{c}, []int{0, 1, 2}, telemetry.NewNoopTracer())
	require.NoError(t, err)
	require.Len(t, p, 1)
	assert.Equal(t, "m1", p[0].Method.Name())
}

func TestHierarchical_TwoWayChain(t *testing.T) {
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

	p, err := Hierarchical(context.Background(), 4, []graph.Constraint{a, b, c}, []int{0, 1, 2, 3}, telemetry.NewNoopTracer())
	require.NoError(t, err)
	require.Equal(t, []string{"a1", "b1", "c1"}, stepNames(p))
}

func TestHierarchical_Overconstrained(t *testing.T) {
	// A single constraint with no method can never be satisfied.
	c := graph.NewConstraint("C", nil)
	_, err := Hierarchical(context.Background(), 1, []graph.Constraint{c}, []int{0}, telemetry.NewNoopTracer())
	assert.ErrorIs(t, err, ErrOverconstrained)
}
