package plan

import (
	"testing"

	"github.com/hotdrink-go/hotdrink/solver/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dummyStep(name string, inputs, outputs []int) Step {
	return Step{Constraint: name, Method: graph.NewMethod(name, inputs, outputs, okApply)}
}

func TestToposort_Empty(t *testing.T) {
	sorted, ok := Toposort(nil, 0)
	require.True(t, ok)
	assert.Empty(t, sorted)
}

func TestToposort_Singleton(t *testing.T) {
	m0 := dummyStep("m0", []int{0}, []int{1})
	sorted, ok := Toposort(Plan{m0}, 2)
	require.True(t, ok)
	assert.Equal(t, Plan{m0}, sorted)
}

func TestToposort_SelfLoopIsOK(t *testing.T) {
	m0 := dummyStep("m0", []int{0}, []int{0})
	sorted, ok := Toposort(Plan{m0}, 1)
	require.True(t, ok)
	assert.Equal(t, Plan{m0}, sorted)
}

func TestToposort_AToBIsOK(t *testing.T) {
	m0 := dummyStep("m0", []int{0}, []int{1})
	m1 := dummyStep("m1", []int{1}, []int{2})

	sorted, ok := Toposort(Plan{m0, m1}, 3)
	require.True(t, ok)
	assert.Equal(t, []string{"m0", "m1"}, stepNames(sorted))

	sorted2, ok := Toposort(Plan{m1, m0}, 3)
	require.True(t, ok)
	assert.Equal(t, []string{"m0", "m1"}, stepNames(sorted2))
}

func TestToposort_CycleGivesFalse(t *testing.T) {
	m0 := dummyStep("m0", []int{0}, []int{1})
	m1 := dummyStep("m1", []int{1}, []int{0})

	_, ok := Toposort(Plan{m0, m1}, 2)
	assert.False(t, ok)
	_, ok = Toposort(Plan{m1, m0}, 2)
	assert.False(t, ok)
}

func TestToposort_LargerExample(t *testing.T) {
	m0 := dummyStep("m0", []int{0}, []int{1, 2})
	m1 := dummyStep("m1", []int{1}, []int{3})
	m2 := dummyStep("m2", []int{2}, []int{4, 5})
	m3 := dummyStep("m3", []int{5, 6}, []int{7})

	sorted, ok := Toposort(Plan{m0, m1, m2, m3}, 8)
	require.True(t, ok)
	assert.Equal(t, []string{"m0", "m2", "m3", "m1"}, stepNames(sorted))
}
