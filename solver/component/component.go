// Package component implements the stateful unit of a constraint system: a
// named set of variables and constraints that can be edited, solved, and
// observed, grounded on the original Component type (subscribe/set_variable/
// pin/par_update) and on the teacher's workflow-context idiom for exposing
// telemetry and cancellation to long-running operations.
package component

import (
	"context"
	"fmt"
	"sync"

	"github.com/hotdrink-go/hotdrink/solver/activation"
	"github.com/hotdrink-go/hotdrink/solver/graph"
	"github.com/hotdrink-go/hotdrink/solver/history"
	"github.com/hotdrink-go/hotdrink/solver/plan"
	"github.com/hotdrink-go/hotdrink/solver/schedule"
	"github.com/hotdrink-go/hotdrink/solver/telemetry"
)

// ErrNoSuchVariable is returned when a caller names a variable the component
// does not have.
type ErrNoSuchVariable struct{ Name string }

func (e *ErrNoSuchVariable) Error() string { return fmt.Sprintf("no such variable: %s", e.Name) }

// Options configures a Component's ambient stack. The zero value uses no-op
// telemetry, an unlimited undo history, and the caller-supplied Executor.
type Options struct {
	Logger    telemetry.Logger
	Metrics   telemetry.Metrics
	Tracer    telemetry.Tracer
	Sink      schedule.Sink
	Retention history.RetentionPolicy
}

// Component is a named collection of variables and constraints that can be
// edited, solved, observed, and undone. It is the Go analogue of the
// original Component<T>, generalized so that Value (any) is opaque to the
// core: hosts bring their own value representation and method bodies.
type Component struct {
	mu sync.Mutex

	name        string
	nameToIndex map[string]int

	constraints []graph.Constraint
	ranker      graph.VariableRanker
	history     *history.Store
	slots       []schedule.VariableSlot

	updatedSinceLastSolve map[int]struct{}
	subscriptions         map[int][]func(schedule.Event)
	generation            int

	executor schedule.Executor
	sink     schedule.Sink
	logger   telemetry.Logger
	metrics  telemetry.Metrics
	tracer   telemetry.Tracer
}

// New constructs a Component from a definition, wiring the ambient stack
// from opts. Executor is required; every other field defaults to a no-op.
func New(def graph.ComponentDef, executor schedule.Executor, opts Options) *Component {
	n := def.NVariables()
	c := &Component{
		name:                  def.Name,
		nameToIndex:           def.NameToIndex(),
		constraints:           append([]graph.Constraint(nil), def.Constraints...),
		ranker:                graph.NewLinkedListRanker(n),
		history:               history.NewWithRetention(def.InitialValues, opts.Retention),
		slots:                 make([]schedule.VariableSlot, n),
		updatedSinceLastSolve: make(map[int]struct{}),
		subscriptions:         make(map[int][]func(schedule.Event)),
		executor:              executor,
		sink:                  opts.Sink,
		logger:                opts.Logger,
		metrics:               opts.Metrics,
		tracer:                opts.Tracer,
	}
	if c.sink == nil {
		c.sink = schedule.NoopSink{}
	}
	if c.logger == nil {
		c.logger = telemetry.NoopTelemetry{}
	}
	if c.metrics == nil {
		c.metrics = telemetry.NoopTelemetry{}
	}
	if c.tracer == nil {
		c.tracer = telemetry.NewNoopTracer()
	}
	for i, v := range def.InitialValues {
		act := activation.New()
		act.Resolve(v)
		c.slots[i] = schedule.VariableSlot{Activation: act}
	}
	return c
}

// Name returns the component's name.
func (c *Component) Name() string { return c.name }

// VariableNames returns every variable name this component knows about.
func (c *Component) VariableNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.nameToIndex))
	for name := range c.nameToIndex {
		names = append(names, name)
	}
	return names
}

// IsModified reports whether any variable has been set since the last solve.
func (c *Component) IsModified() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.updatedSinceLastSolve) > 0
}

func (c *Component) index(name string) (int, error) {
	idx, ok := c.nameToIndex[name]
	if !ok {
		return 0, &ErrNoSuchVariable{Name: name}
	}
	return idx, nil
}

// SetVariable assigns a new value to a variable, touching the ranker and
// marking the variable as in need of a solve. The new value takes effect
// immediately for GetVariable; Update is required to propagate it to
// dependent variables.
func (c *Component) SetVariable(name string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx, err := c.index(name)
	if err != nil {
		return err
	}
	c.updatedSinceLastSolve[idx] = struct{}{}
	c.ranker.Touch(idx)
	c.history.Set(idx, value)

	act := activation.New()
	act.Resolve(value)
	if c.slots[idx].Token != (activation.Token{}) {
		c.slots[idx].Token.Cancel()
	}
	c.slots[idx] = schedule.VariableSlot{Activation: act}
	c.notify(idx, schedule.NewReadyEvent(c.identifier(idx), c.generation, value))
	return nil
}

// GetVariable returns a variable's current value, which may reflect an
// in-flight solve rather than a settled one; callers that need the settled
// value should Subscribe instead.
func (c *Component) GetVariable(name string) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx, err := c.index(name)
	if err != nil {
		return nil, err
	}
	value, _ := c.slots[idx].Activation.Value()
	return value, nil
}

// Subscribe registers a callback invoked whenever the named variable's
// activation changes state. The callback fires once immediately with the
// current state, matching the original subscribe contract.
func (c *Component) Subscribe(name string, callback func(schedule.Event)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx, err := c.index(name)
	if err != nil {
		return err
	}
	c.subscriptions[idx] = append(c.subscriptions[idx], callback)

	id := c.identifier(idx)
	switch c.slots[idx].Activation.State() {
	case activation.Pending:
		callback(schedule.NewPendingEvent(id, c.generation))
	case activation.Ready:
		value, _ := c.slots[idx].Activation.Value()
		callback(schedule.NewReadyEvent(id, c.generation, value))
	case activation.Errored:
		_, errs := c.slots[idx].Activation.Value()
		callback(schedule.NewFailedEvent(id, c.generation, errs))
	}
	return nil
}

// Await blocks until the named variable's in-flight activation settles,
// returning its value or the error it failed with.
func (c *Component) Await(ctx context.Context, name string) (any, error) {
	c.mu.Lock()
	idx, err := c.index(name)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	act := c.slots[idx].Activation
	c.mu.Unlock()
	return act.Await(ctx)
}

// Unsubscribe removes every callback registered for a variable.
func (c *Component) Unsubscribe(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx, err := c.index(name)
	if err != nil {
		return err
	}
	delete(c.subscriptions, idx)
	return nil
}

func (c *Component) notify(idx int, e schedule.Event) {
	_ = c.sink.Send(e)
	for _, cb := range c.subscriptions[idx] {
		cb(e)
	}
}

func (c *Component) identifier(idx int) schedule.Identifier {
	for name, i := range c.nameToIndex {
		if i == idx {
			return schedule.Identifier{Component: c.name, Variable: name}
		}
	}
	return schedule.Identifier{Component: c.name}
}

// Pin adds a stay constraint for the named variable so the planner avoids
// disturbing it. Remove it with Unpin.
func (c *Component) Pin(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx, err := c.index(name)
	if err != nil {
		return err
	}
	c.constraints = append(c.constraints, pinConstraint(idx))
	return nil
}

// Unpin removes every stay constraint Pin added for the named variable.
func (c *Component) Unpin(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx, err := c.index(name)
	if err != nil {
		return err
	}
	pinName := pinConstraintName(idx)
	kept := c.constraints[:0]
	for _, ct := range c.constraints {
		if ct.Name() != pinName {
			kept = append(kept, ct)
		}
	}
	c.constraints = kept
	return nil
}

func pinConstraintName(idx int) string { return fmt.Sprintf("pin%d", idx) }

// pinConstraint builds the named single-method stay constraint used by Pin,
// distinct per variable so Unpin can find and remove exactly the right one.
func pinConstraint(idx int) graph.Constraint {
	return graph.NewConstraint(pinConstraintName(idx), []graph.Method{graph.NewStayMethod(pinConstraintName(idx), idx)})
}

// Ranking returns the current variable priority order, most recently edited
// first.
func (c *Component) Ranking() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ranker.Ranking()
}

// Update plans and dispatches a solve if the component has been modified
// since the last one. It is a no-op otherwise, matching
// ConstraintSystem::par_update only solving modified components.
func (c *Component) Update(ctx context.Context) error {
	c.mu.Lock()
	if len(c.updatedSinceLastSolve) == 0 {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()
	return c.solve(ctx)
}

// ForceUpdate plans and dispatches a solve unconditionally, matching
// ConstraintSystem::par_update_always.
func (c *Component) ForceUpdate(ctx context.Context) error {
	return c.solve(ctx)
}

func (c *Component) solve(ctx context.Context) error {
	c.mu.Lock()
	ctx, span := c.tracer.StartSpan(ctx, "component.solve")
	defer span.End()

	n := len(c.slots)
	ranking := c.ranker.Ranking()
	p, err := plan.Hierarchical(ctx, n, c.constraints, ranking, c.tracer)
	if err != nil {
		c.mu.Unlock()
		return err
	}

	newRanker := graph.NewLinkedListRanker(n)
	c.ranker = plan.AdjustPriority(p, c.ranker, newRanker)

	clear(c.updatedSinceLastSolve)
	generation := c.generation
	componentName := c.name
	slots := c.slots
	sink := c.sink
	executor := c.executor
	tr := c.tracer
	idOf := c.identifier
	c.mu.Unlock()

	if err := schedule.Run(ctx, componentName, generation, idOf, p, slots, executor, sink, tr); err != nil {
		return err
	}

	c.mu.Lock()
	c.generation++
	c.history.Commit()
	c.mu.Unlock()
	c.wireNotifications(p, slots, generation)
	return nil
}

// wireNotifications subscribes each plan output's new activation so that
// registered component-level callbacks fire once the scheduled work
// actually settles (schedule.Run only notifies through the Sink).
func (c *Component) wireNotifications(p plan.Plan, slots []schedule.VariableSlot, generation int) {
	for _, step := range p {
		for _, o := range step.Outputs() {
			idx := o
			act := slots[idx].Activation
			act.Subscribe(func() {
				c.mu.Lock()
				id := c.identifier(idx)
				cbs := append([]func(schedule.Event){}, c.subscriptions[idx]...)
				c.mu.Unlock()
				value, errs := act.Value()
				var e schedule.Event
				if len(errs) > 0 {
					e = schedule.NewFailedEvent(id, generation, errs)
				} else {
					e = schedule.NewReadyEvent(id, generation, value)
				}
				for _, cb := range cbs {
					cb(e)
				}
			})
		}
	}
}

// Undo reverts every variable to its value before the last commit.
func (c *Component) Undo() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.history.Undo(); err != nil {
		return err
	}
	c.refreshFromHistoryLocked()
	return nil
}

// Redo re-applies the edit undone by the most recent Undo.
func (c *Component) Redo() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.history.Redo(); err != nil {
		return err
	}
	c.refreshFromHistoryLocked()
	return nil
}

func (c *Component) refreshFromHistoryLocked() {
	for idx, value := range c.history.Values() {
		act := activation.New()
		act.Resolve(value)
		c.slots[idx] = schedule.VariableSlot{Activation: act}
		c.updatedSinceLastSolve[idx] = struct{}{}
	}
}
