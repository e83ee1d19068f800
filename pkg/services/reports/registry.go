package reports

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownReport is returned when no generator is registered under a name.
var ErrUnknownReport = errors.New("unknown report")

// Factory creates a Generator.
type Factory func() Generator

// Registry manages report generator factories
type Registry interface {
	// Register adds a new report generator factory
	Register(name string, factory Factory) error
	// Create instantiates the generator registered under name
	Create(name string) (Generator, error)
	// List returns the registered report names, sorted
	List() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a registry holding the given factories.
func NewRegistry(factories map[string]Factory) Registry {
	r := &registry{factories: make(map[string]Factory, len(factories))}
	for name, f := range factories {
		r.factories[name] = f
	}
	return r
}

// DefaultRegistry returns a registry with every report of the toolkit.
func DefaultRegistry() Registry {
	return NewRegistry(map[string]Factory{
		PreactivationReport: func() Generator { return NewPreactivation() },
		RankingReport:       func() Generator { return NewRanking() },
		NFCReport:           func() Generator { return NewNFC() },
	})
}

func (r *registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("report name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("report %q is already registered", name)
	}

	r.factories[name] = factory
	return nil
}

func (r *registry) Create(name string) (Generator, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnknownReport, name)
	}

	return factory(), nil
}

func (r *registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
