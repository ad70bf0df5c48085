package components_test

import (
	"context"
	"testing"

	"github.com/hotdrink-go/hotdrink/solver/component"
	"github.com/hotdrink-go/hotdrink/solver/executor/inmem"
	examplecomponents "github.com/hotdrink-go/hotdrink/solver/examples/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum_SettingTwoVariablesDeterminesThird(t *testing.T) {
	exec := inmem.New(2, 8)
	defer exec.Close(context.Background())
	c := component.New(examplecomponents.Sum(), exec, component.Options{})

	require.NoError(t, c.SetVariable("a", 3))
	require.NoError(t, c.SetVariable("b", 4))
	require.NoError(t, c.Update(context.Background()))

	v, err := c.Await(context.Background(), "c")
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestLinearOneway_HasExpectedShape(t *testing.T) {
	def := examplecomponents.LinearOneway(5)
	assert.Len(t, def.VariableNames, 6)
	assert.Len(t, def.Constraints, 5)
	for _, c := range def.Constraints {
		assert.Len(t, c.Methods(), 1)
	}
}

func TestLinearTwoway_HasExpectedShape(t *testing.T) {
	def := examplecomponents.LinearTwoway(5)
	assert.Len(t, def.VariableNames, 6)
	assert.Len(t, def.Constraints, 5)
	for _, c := range def.Constraints {
		assert.Len(t, c.Methods(), 2)
	}
}

func TestLadder_RightNumberOfConstraints(t *testing.T) {
	for nc := 2; nc < 20; nc += 2 {
		def := examplecomponents.Ladder(nc + 2)
		assert.Len(t, def.Constraints, nc)
	}
}

func TestLadder_ConstructsAndSolvesWithoutError(t *testing.T) {
	exec := inmem.New(2, 8)
	defer exec.Close(context.Background())
	for i := 0; i < 10; i++ {
		def := examplecomponents.Ladder(i)
		c := component.New(def, exec, component.Options{})
		if len(def.VariableNames) > 0 {
			require.NoError(t, c.SetVariable(examplecomponents.VariableName(0), 1))
		}
		require.NoError(t, c.Update(context.Background()))
	}
}
