// Package components provides predefined graph.ComponentDef builders used
// across demos and benchmarks, ported from examples/components/*.rs
// (numbers::sum, linear::{LinearOneway,LinearTwoway}, ladder::ladder). Every
// method here operates on int values so they compose without generics; a
// host wanting a different Value representation builds its own
// graph.ComponentDef the same way.
package components

import (
	"fmt"

	"github.com/hotdrink-go/hotdrink/solver/graph"
)

// VariableName formats the variable name used by the linear/ladder builders:
// "var<i>".
func VariableName(i int) string { return fmt.Sprintf("var%d", i) }

// ConstraintName formats the constraint name used by the linear/ladder
// builders: "c<i>".
func ConstraintName(i int) string { return fmt.Sprintf("c%d", i) }

func asInt(v graph.Value) int {
	i, _ := v.(int)
	return i
}

// Sum builds the classic three-way component where any two of {a, b, c}
// determine the third: a + b = c, ported from examples::components::numbers::sum.
func Sum() graph.ComponentDef {
	add := func(args []graph.Value) ([]graph.Value, *graph.MethodFailure) {
		return []graph.Value{asInt(args[0]) + asInt(args[1])}, nil
	}
	sub := func(args []graph.Value) ([]graph.Value, *graph.MethodFailure) {
		return []graph.Value{asInt(args[1]) - asInt(args[0])}, nil
	}
	sum := graph.NewConstraint("Sum", []graph.Method{
		graph.NewMethod("abc", []int{0, 1}, []int{2}, add),
		graph.NewMethod("acb", []int{0, 2}, []int{1}, func(args []graph.Value) ([]graph.Value, *graph.MethodFailure) {
			return []graph.Value{asInt(args[1]) - asInt(args[0])}, nil
		}),
		graph.NewMethod("bca", []int{1, 2}, []int{0}, sub),
	})
	return graph.ComponentDef{
		Name:          "sum",
		VariableNames: []string{"a", "b", "c"},
		InitialValues: []graph.Value{0, 0, 0},
		Constraints:   []graph.Constraint{sum},
	}
}

// identity is the method apply function used by LinearOneway/LinearTwoway:
// the teacher's Rust original shares a single `Arc::new(Ok)` pass-through
// across every method since it only measures planner structure, not values.
func identity(args []graph.Value) ([]graph.Value, *graph.MethodFailure) {
	return []graph.Value{args[0]}, nil
}

// LinearOneway builds a chain of n+1 variables where each constraint can only
// propagate left-to-right, ported from examples::components::linear::LinearOneway.
func LinearOneway(nConstraints int) graph.ComponentDef {
	return linear("linear-oneway", nConstraints, false)
}

// LinearTwoway builds a chain of n+1 variables where each constraint can
// propagate in either direction, ported from
// examples::components::linear::LinearTwoway.
func LinearTwoway(nConstraints int) graph.ComponentDef {
	return linear("linear-twoway", nConstraints, true)
}

func linear(name string, nConstraints int, twoway bool) graph.ComponentDef {
	nVariables := nConstraints + 1
	names := make([]string, nVariables)
	values := make([]graph.Value, nVariables)
	for i := range names {
		names[i] = VariableName(i)
	}
	constraints := make([]graph.Constraint, 0, nConstraints)
	for i := 1; i < nVariables; i++ {
		prev, current := i-1, i
		methods := []graph.Method{
			graph.NewMethod("right", []int{prev}, []int{current}, identity),
		}
		if twoway {
			methods = append(methods, graph.NewMethod("left", []int{current}, []int{prev}, identity))
		}
		constraints = append(constraints, graph.NewConstraint(ConstraintName(i), methods))
	}
	return graph.ComponentDef{
		Name:          name,
		VariableNames: names,
		InitialValues: values,
		Constraints:   constraints,
	}
}

// avg and rev are dummy method bodies matching the teacher's original,
// which only exercises planner behavior over the ladder shape and never
// computes real values.
func avg(args []graph.Value) ([]graph.Value, *graph.MethodFailure) { return []graph.Value{0}, nil }
func rev(args []graph.Value) ([]graph.Value, *graph.MethodFailure) { return []graph.Value{0}, nil }

// Ladder builds the benchmark "ladder" shape: pairs of overlapping
// constraints across a chain of variables, ported from
// examples::components::ladder::ladder.
func Ladder(nVariables int) graph.ComponentDef {
	names := make([]string, nVariables)
	values := make([]graph.Value, nVariables)
	for i := range names {
		names[i] = VariableName(i)
	}

	var constraints []graph.Constraint
	limit := nVariables - 3
	for i := 0; i < limit; i += 2 {
		a0, b0, a1, b1 := i, i+1, i+2, i+3
		lower := graph.NewConstraint(ConstraintName(i), []graph.Method{
			graph.NewMethod("lower1", []int{a0, a1}, []int{b0}, avg),
			graph.NewMethod("lower2", []int{b0, a0}, []int{a1}, rev),
			graph.NewMethod("lower3", []int{b0, a1}, []int{a0}, rev),
		})
		upper := graph.NewConstraint(ConstraintName(i+1), []graph.Method{
			graph.NewMethod("upper1", []int{b0, b1}, []int{a1}, avg),
			graph.NewMethod("upper2", []int{a1, b0}, []int{b1}, rev),
			graph.NewMethod("upper3", []int{a1, b1}, []int{b0}, rev),
		})
		constraints = append(constraints, lower, upper)
	}

	return graph.ComponentDef{
		Name:          "ladder",
		VariableNames: names,
		InitialValues: values,
		Constraints:   constraints,
	}
}
