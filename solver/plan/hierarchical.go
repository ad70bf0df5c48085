package plan

import (
	"context"

	"github.com/hotdrink-go/hotdrink/solver/graph"
	"github.com/hotdrink-go/hotdrink/solver/telemetry"
)

// Hierarchical searches for a plan that satisfies every constraint while
// disturbing as few high-priority variables as possible. ranking lists
// variable indices from highest to lowest priority (Component.Ranking()).
// It repeatedly tries adding a stay constraint for the next variable in
// ranking order, keeping it if the simple planner still succeeds, and
// pruning after every attempt to shrink the search. The result always
// excludes stay methods and is topologically sorted.
func Hierarchical(ctx context.Context, nVariables int, constraints []graph.Constraint, ranking []int, tr telemetry.Tracer) (Plan, error) {
	if tr == nil {
		tr = telemetry.NewNoopTracer()
	}
	_, span := tr.StartSpan(ctx, "hierarchical_planner.plan")
	defer span.End()

	var best Plan
	haveBest := false

	working := newWorkingComponent(nVariables, constraints)
	canStay := make([]bool, nVariables)
	for i := range canStay {
		canStay[i] = true
	}
	v2c := varToConstraints(nVariables, working)

	for _, varID := range ranking {
		if !canStay[varID] {
			continue
		}

		stayConstraint := graph.NewStayConstraint(varID)
		working.push(stayConstraint)
		newIdx := len(working.constraints) - 1

		if haveBest {
			isSource := true
			for _, step := range best {
				if containsInt(step.Outputs(), varID) {
					isSource = false
					break
				}
			}
			if isSource {
				v2c[varID][newIdx] = struct{}{}
				prune(v2c, varID, canStay, working)
				continue
			}
		}

		if newPlan, ok := Simple(nVariables, working.constraints); ok {
			v2c[varID][newIdx] = struct{}{}
			best = newPlan
			haveBest = true
		} else {
			working.pop()
		}

		prune(v2c, varID, canStay, working)
	}

	if !haveBest {
		newPlan, ok := Simple(nVariables, working.constraints)
		if !ok {
			return nil, ErrOverconstrained
		}
		best = newPlan
	}

	withoutStays := make(Plan, 0, len(best))
	for _, step := range best {
		if !step.IsStay() {
			withoutStays = append(withoutStays, step)
		}
	}

	sorted, ok := Toposort(withoutStays, nVariables)
	if !ok {
		return nil, ErrOverconstrained
	}
	return sorted, nil
}
