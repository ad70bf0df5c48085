// Package system implements ConstraintSystem, a named container of
// components that routes edits, solves, and subscriptions by component
// name and variable name, grounded on the original
// data::constraint_system::ConstraintSystem.
package system

import (
	"context"
	"fmt"
	"sync"

	"github.com/hotdrink-go/hotdrink/solver/component"
	"github.com/hotdrink-go/hotdrink/solver/graph"
	"github.com/hotdrink-go/hotdrink/solver/history"
	"github.com/hotdrink-go/hotdrink/solver/schedule"
	"github.com/hotdrink-go/hotdrink/solver/telemetry"
)

// ErrNoSuchComponent is returned when a caller names a component the system
// does not have.
type ErrNoSuchComponent struct{ Name string }

func (e *ErrNoSuchComponent) Error() string { return fmt.Sprintf("no such component: %s", e.Name) }

// Options configures every Component added to the system: its ambient
// telemetry, event sink, and undo retention policy.
type Options struct {
	Logger    telemetry.Logger
	Metrics   telemetry.Metrics
	Tracer    telemetry.Tracer
	Sink      schedule.Sink
	Retention history.RetentionPolicy
}

// System is a container for Components. It routes per-variable operations to
// the right Component by name and can solve every modified component in one
// call.
type System struct {
	mu         sync.RWMutex
	components map[string]*component.Component
	opts       Options
	executor   schedule.Executor
}

// New constructs an empty System. executor is shared by every Component
// added to it.
func New(executor schedule.Executor, opts Options) *System {
	return &System{
		components: make(map[string]*component.Component),
		opts:       opts,
		executor:   executor,
	}
}

// AddComponent builds and registers a Component from def, using the
// System's shared executor and options.
func (s *System) AddComponent(def graph.ComponentDef) *component.Component {
	c := component.New(def, s.executor, component.Options{
		Logger:    s.opts.Logger,
		Metrics:   s.opts.Metrics,
		Tracer:    s.opts.Tracer,
		Sink:      s.opts.Sink,
		Retention: s.opts.Retention,
	})
	s.mu.Lock()
	s.components[def.Name] = c
	s.mu.Unlock()
	return c
}

func (s *System) get(name string) (*component.Component, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.components[name]
	if !ok {
		return nil, &ErrNoSuchComponent{Name: name}
	}
	return c, nil
}

// Component returns the named component, or an error if it isn't registered.
func (s *System) Component(name string) (*component.Component, error) {
	return s.get(name)
}

// ComponentNames lists every registered component.
func (s *System) ComponentNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.components))
	for name := range s.components {
		names = append(names, name)
	}
	return names
}

// SetVariable assigns a new value to component.variable.
func (s *System) SetVariable(component, variable string, value any) error {
	c, err := s.get(component)
	if err != nil {
		return err
	}
	return c.SetVariable(variable, value)
}

// GetVariable returns the current value of component.variable.
func (s *System) GetVariable(component, variable string) (any, error) {
	c, err := s.get(component)
	if err != nil {
		return nil, err
	}
	return c.GetVariable(variable)
}

// Subscribe registers a callback for component.variable.
func (s *System) Subscribe(component, variable string, callback func(schedule.Event)) error {
	c, err := s.get(component)
	if err != nil {
		return err
	}
	return c.Subscribe(variable, callback)
}

// Unsubscribe removes every callback registered for component.variable.
func (s *System) Unsubscribe(component, variable string) error {
	c, err := s.get(component)
	if err != nil {
		return err
	}
	return c.Unsubscribe(variable)
}

// Pin adds a stay constraint to component.variable.
func (s *System) Pin(component, variable string) error {
	c, err := s.get(component)
	if err != nil {
		return err
	}
	return c.Pin(variable)
}

// Unpin removes the stay constraint Pin added to component.variable.
func (s *System) Unpin(component, variable string) error {
	c, err := s.get(component)
	if err != nil {
		return err
	}
	return c.Unpin(variable)
}

// Update solves every modified component, mirroring
// ConstraintSystem::par_update. It stops at (and returns) the first
// component's planning error; components are solved in map iteration order,
// which Go deliberately randomizes, so callers that need a stable ordering
// should solve components individually instead.
func (s *System) Update(ctx context.Context) error {
	s.mu.RLock()
	components := make([]*component.Component, 0, len(s.components))
	for _, c := range s.components {
		components = append(components, c)
	}
	s.mu.RUnlock()

	for _, c := range components {
		if err := c.Update(ctx); err != nil {
			return fmt.Errorf("system: solving %s: %w", c.Name(), err)
		}
	}
	return nil
}

// ForceUpdate solves every component unconditionally, mirroring
// ConstraintSystem::par_update_always.
func (s *System) ForceUpdate(ctx context.Context) error {
	s.mu.RLock()
	components := make([]*component.Component, 0, len(s.components))
	for _, c := range s.components {
		components = append(components, c)
	}
	s.mu.RUnlock()

	for _, c := range components {
		if err := c.ForceUpdate(ctx); err != nil {
			return fmt.Errorf("system: solving %s: %w", c.Name(), err)
		}
	}
	return nil
}

// Undo reverts component's variables to their values before the last commit.
func (s *System) Undo(component string) error {
	c, err := s.get(component)
	if err != nil {
		return err
	}
	return c.Undo()
}

// Redo re-applies the edit undone by the most recent Undo on component.
func (s *System) Redo(component string) error {
	c, err := s.get(component)
	if err != nil {
		return err
	}
	return c.Redo()
}
