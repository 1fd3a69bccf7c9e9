package forms

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrFormExists   = errors.New("forms: form already registered")
	ErrFormNotFound = errors.New("forms: form not found")
)

// Definition is a named data-entry form over one model.
type Definition struct {
	// Name is the URL slug of the form.
	Name  string
	Title string
	Meta  Meta
}

// Registry holds the form definitions served by the application. It is
// filled at startup and read concurrently afterwards.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds def after checking that every named field exists on the model.
func (r *Registry) Register(def Definition) error {
	if def.Name == "" {
		return errors.New("forms: definition name is required")
	}
	descriptors, err := Describe(def.Meta.Model)
	if err != nil {
		return err
	}
	known := make(map[string]struct{}, len(descriptors))
	for _, d := range descriptors {
		known[d.Name] = struct{}{}
	}
	for _, name := range def.Meta.Fields {
		if _, ok := known[name]; !ok {
			return fmt.Errorf("%w %q in form %s", ErrUnknownField, name, def.Name)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.defs[def.Name]; ok {
		return fmt.Errorf("%w: %s", ErrFormExists, def.Name)
	}
	r.defs[def.Name] = def
	return nil
}

func (r *Registry) Get(name string) (Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrFormNotFound, name)
	}
	return def, nil
}

// List returns the definitions sorted by name.
func (r *Registry) List() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Definition, 0, len(r.defs))
	for _, def := range r.defs {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
