package dialog

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when a trigger is not permitted in
	// the current state
	ErrInvalidTransition = errors.New("invalid dialog transition")

	// ErrGuardFailed is returned when every candidate transition's guard
	// rejected the trigger
	ErrGuardFailed = errors.New("transition guard failed")
)

// GuardFunc decides whether a permitted transition may actually fire
type GuardFunc func(ctx context.Context) bool

// Machine tracks the current dialog state and validates transitions
type Machine interface {
	// State returns the current state
	State() State

	// CanFire returns true if the trigger is permitted in the current state
	CanFire(trigger Trigger) bool

	// Fire attempts the trigger, moving to the target state if allowed
	Fire(ctx context.Context, trigger Trigger) error

	// PermittedTriggers returns all triggers permitted in the current state
	PermittedTriggers() []Trigger
}

// Builder assembles a transition table before building machine instances
type Builder interface {
	// Configure returns the configuration for the given state
	Configure(state State) StateConfig

	// Build creates a machine starting in the given state
	Build(initial State) Machine
}

// StateConfig configures the transitions leaving one state
type StateConfig interface {
	// Permit allows a trigger to move to the target state
	Permit(trigger Trigger, to State) StateConfig

	// PermitIf allows the move only when the guard passes
	PermitIf(trigger Trigger, to State, guard GuardFunc) StateConfig
}

type transition struct {
	to    State
	guard GuardFunc
}

type stateConfig struct {
	from        State
	transitions map[Trigger][]transition
}

type builder struct {
	configs map[State]*stateConfig
}

type machine struct {
	current State
	configs map[State]*stateConfig
}

// NewBuilder creates an empty transition-table builder
func NewBuilder() Builder {
	return &builder{configs: make(map[State]*stateConfig)}
}

func (b *builder) Configure(state State) StateConfig {
	if !state.IsValid() {
		panic(fmt.Sprintf("invalid state: %s", state))
	}
	cfg, ok := b.configs[state]
	if !ok {
		cfg = &stateConfig{from: state, transitions: make(map[Trigger][]transition)}
		b.configs[state] = cfg
	}
	return cfg
}

func (b *builder) Build(initial State) Machine {
	if !initial.IsValid() {
		panic(fmt.Sprintf("invalid initial state: %s", initial))
	}

	// Copy the table so instances stay independent of the builder.
	configs := make(map[State]*stateConfig, len(b.configs))
	for state, cfg := range b.configs {
		transitions := make(map[Trigger][]transition, len(cfg.transitions))
		for trigger, ts := range cfg.transitions {
			transitions[trigger] = append([]transition{}, ts...)
		}
		configs[state] = &stateConfig{from: state, transitions: transitions}
	}

	return &machine{current: initial, configs: configs}
}

func (c *stateConfig) Permit(trigger Trigger, to State) StateConfig {
	return c.PermitIf(trigger, to, nil)
}

func (c *stateConfig) PermitIf(trigger Trigger, to State, guard GuardFunc) StateConfig {
	if !to.IsValid() {
		panic(fmt.Sprintf("invalid target state: %s", to))
	}
	c.transitions[trigger] = append(c.transitions[trigger], transition{to: to, guard: guard})
	return c
}

func (m *machine) State() State {
	return m.current
}

func (m *machine) CanFire(trigger Trigger) bool {
	cfg, ok := m.configs[m.current]
	if !ok {
		return false
	}
	return len(cfg.transitions[trigger]) > 0
}

func (m *machine) Fire(ctx context.Context, trigger Trigger) error {
	cfg, ok := m.configs[m.current]
	if !ok {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, trigger, m.current)
	}
	transitions := cfg.transitions[trigger]
	if len(transitions) == 0 {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, trigger, m.current)
	}

	for _, t := range transitions {
		if t.guard == nil || t.guard(ctx) {
			m.current = t.to
			return nil
		}
	}

	return fmt.Errorf("%w: %s from %s", ErrGuardFailed, trigger, m.current)
}

func (m *machine) PermittedTriggers() []Trigger {
	cfg, ok := m.configs[m.current]
	if !ok {
		return nil
	}
	triggers := make([]Trigger, 0, len(cfg.transitions))
	for trigger := range cfg.transitions {
		triggers = append(triggers, trigger)
	}
	return triggers
}
