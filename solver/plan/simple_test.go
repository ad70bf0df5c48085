package plan

import (
	"testing"

	"github.com/hotdrink-go/hotdrink/solver/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okApply(args []graph.Value) ([]graph.Value, *graph.MethodFailure) { return args, nil }

func TestSimple_EmptyComponentGivesEmptyPlan(t *testing.T) {
	p, ok := Simple(1, nil)
	require.True(t, ok)
	assert.Empty(t, p)
}

func TestSimple_OneMethodGivesSingleMethodPlan(t *testing.T) {
	c := graph.NewConstraint("C", []graph.Method{
		graph.NewMethod("c", []int{0}, []int{0}, okApply),
	})
	p, ok := Simple(1, []graph.Constraint{c})
	require.True(t, ok)
	require.Len(t, p, 1)
	assert.Equal(t, "C", p[0].Constraint)
	assert.Equal(t, "c", p[0].Method.Name())
}

func TestSimple_SumProduct(t *testing.T) {
	// a, b, c, d
	sum := graph.NewConstraint("Sum", []graph.Method{
		graph.NewMethod("s1", []int{0, 1}, []int{2}, okApply),
		graph.NewMethod("s2", []int{1, 2}, []int{0}, okApply),
		graph.NewMethod("s3", []int{2, 0}, []int{1}, okApply),
	})
	product := graph.NewConstraint("Product", []graph.Method{
		graph.NewMethod("p1", []int{0, 1}, []int{3}, okApply),
		graph.NewMethod("p2", []int{1, 3}, []int{0}, okApply),
		graph.NewMethod("p3", []int{3, 0}, []int{1}, okApply),
	})
	p, ok := Simple(4, []graph.Constraint{sum, product})
	require.True(t, ok)
	sorted, ok := Toposort(p, 4)
	require.True(t, ok)
	require.Len(t, sorted, 2)
	assert.Equal(t, "p1", sorted[0].Method.Name())
	assert.Equal(t, "s1", sorted[1].Method.Name())
}

func TestSimple_SmallLinear(t *testing.T) {
	// a,b,c,d,e = 0..4
	aToB := graph.NewConstraint("a_to_b", []graph.Method{graph.NewMethod("a_to_b", []int{0}, []int{1}, okApply)})
	bToC := graph.NewConstraint("b_to_c", []graph.Method{graph.NewMethod("b_to_c", []int{1}, []int{2}, okApply)})
	cToD := graph.NewConstraint("c_to_d", []graph.Method{graph.NewMethod("c_to_d", []int{2}, []int{3}, okApply)})
	dToE := graph.NewConstraint("d_to_e", []graph.Method{graph.NewMethod("d_to_e", []int{3}, []int{4}, okApply)})

	p, ok := Simple(5, []graph.Constraint{aToB, bToC, cToD, dToE})
	require.True(t, ok)
	require.Len(t, p, 4)
	assert.Equal(t, "d_to_e", p[0].Method.Name())
	assert.Equal(t, "c_to_d", p[1].Method.Name())
	assert.Equal(t, "b_to_c", p[2].Method.Name())
	assert.Equal(t, "a_to_b", p[3].Method.Name())

	sorted, ok := Toposort(p, 5)
	require.True(t, ok)
	require.Len(t, sorted, 4)
	assert.Equal(t, []string{"a_to_b", "b_to_c", "c_to_d", "d_to_e"}, stepNames(sorted))
}

func TestSimple_SelectsMethodWhereAllOutputsAreFreeFirst(t *testing.T) {
	// a,b,c,d = 0..3
	a := graph.NewConstraint("A", []graph.Method{graph.NewMethod("a1", []int{1}, []int{0, 2}, okApply)})
	b := graph.NewConstraint("B", []graph.Method{graph.NewMethod("b1", []int{2}, []int{3}, okApply)})

	p, ok := Simple(4, []graph.Constraint{a, b})
	require.True(t, ok)
	require.Len(t, p, 2)
	assert.Equal(t, "b1", p[0].Method.Name())
	assert.Equal(t, "a1", p[1].Method.Name())
}

func TestSimple_SelectedFreeMethodMustWriteToVariable(t *testing.T) {
	a := graph.NewConstraint("A", []graph.Method{graph.NewMethod("a1", []int{0}, nil, okApply)})
	_, ok := Simple(1, []graph.Constraint{a})
	assert.False(t, ok)
}

func stepNames(p Plan) []string {
	out := make([]string, len(p))
	for i, s := range p {
		out[i] = s.Method.Name()
	}
	return out
}
