package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/hotdrink-go/hotdrink/solver/activation"
	"github.com/hotdrink-go/hotdrink/solver/graph"
	"github.com/hotdrink-go/hotdrink/solver/plan"
	"github.com/hotdrink-go/hotdrink/solver/telemetry"
)

// VariableSlot is the scheduler's view of one variable's in-flight state: its
// current activation and the cancellation token of whatever task is
// producing it, if any.
type VariableSlot struct {
	Activation activation.Activation
	Token      activation.Token
}

// Run dispatches every step of p in order against an Executor, mirroring how
// the original solver walks a plan: each step's inputs are read from the
// slots' current activations (which may still be Pending), its outputs are
// superseded with new Pending activations immediately so downstream steps in
// the same plan observe them without blocking the dispatch loop, and the
// actual computation — including awaiting its inputs — runs on the Executor.
//
// Run returns once every step has been submitted; it does not wait for the
// plan to finish solving. Callers await individual variables' activations to
// observe completion.
func Run(
	ctx context.Context,
	componentName string,
	generation int,
	idOf func(variable int) Identifier,
	p plan.Plan,
	slots []VariableSlot,
	exec Executor,
	sink Sink,
	tr telemetry.Tracer,
) error {
	if sink == nil {
		sink = NoopSink{}
	}
	if tr == nil {
		tr = telemetry.NewNoopTracer()
	}
	ctx, span := tr.StartSpan(ctx, "schedule.Run")
	defer span.End()

	var zeroToken activation.Token
	for _, step := range p {
		inputs := make([]activation.Activation, len(step.Inputs()))
		for i, v := range step.Inputs() {
			inputs[i] = slots[v].Activation
		}

		outputs := step.Outputs()
		newActivations := make([]activation.Activation, len(outputs))
		for i, o := range outputs {
			if slots[o].Token != zeroToken {
				slots[o].Token.Cancel()
			}
			newActivations[i] = activation.New()
			slots[o] = VariableSlot{Activation: newActivations[i]}
			_ = sink.Send(NewPendingEvent(idOf(o), generation))
		}

		method := step.Method
		constraintName := step.Constraint

		task := Task{
			Name: fmt.Sprintf("%s.%s", constraintName, method.Name()),
			Run: func(taskCtx context.Context) ([]any, error) {
				args := make([]graph.Value, len(inputs))
				var errs []error
				for i, act := range inputs {
					v, err := act.Await(taskCtx)
					if err != nil {
						errs = append(errs, err)
						continue
					}
					args[i] = v
				}
				if len(errs) > 0 {
					return nil, errors.Join(errs...)
				}
				result, failure := method.Apply(args)
				if failure != nil {
					return nil, &SolveError{
						Component:  componentName,
						Constraint: constraintName,
						Method:     method.Name(),
						Reason:     ReasonMethodFailure,
						Failure:    failure,
					}
				}
				return result, nil
			},
		}

		token, err := dispatch(ctx, exec, task, generation, outputs, newActivations, idOf, sink)
		if err != nil {
			return err
		}
		for _, o := range outputs {
			slots[o].Token = token
		}
	}
	return nil
}

// dispatch submits task and wires its result Activation's completion back
// into newActivations and the Sink. It returns the cancellation Token shared
// by every output of the underlying method, since a single method call
// produces all of them together.
func dispatch(
	ctx context.Context,
	exec Executor,
	task Task,
	generation int,
	outputs []int,
	newActivations []activation.Activation,
	idOf func(int) Identifier,
	sink Sink,
) (activation.Token, error) {
	resultAct, token, err := exec.Submit(ctx, task)
	if err != nil {
		return activation.Token{}, fmt.Errorf("schedule: submit %s: %w", task.Name, err)
	}
	go func() {
		value, awaitErr := resultAct.Await(ctx)
		if awaitErr != nil {
			errs := flattenErrors(awaitErr)
			for i, o := range outputs {
				_ = sink.Send(NewFailedEvent(idOf(o), generation, errs))
				newActivations[i].Reject(errs)
			}
			return
		}
		results, _ := value.([]any)
		for i, o := range outputs {
			if i >= len(results) {
				break
			}
			_ = sink.Send(NewReadyEvent(idOf(o), generation, results[i]))
			newActivations[i].Resolve(results[i])
		}
	}()
	return token, nil
}

// flattenErrors recovers the individual errors wrapped by errors.Join (or
// any error implementing Unwrap() []error) so that a failed activation's
// Reject/FailedEvent carries every input's original error rather than one
// opaque combined value. A plain error flattens to a single-element slice;
// nil flattens to nil.
func flattenErrors(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flattenErrors(e)...)
		}
		return out
	}
	return []error{err}
}
