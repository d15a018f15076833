package entity

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// Registry holds all known entities, by Go type and by name.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]*PersistentEntity
	byName map[string]*PersistentEntity
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]*PersistentEntity),
		byName: make(map[string]*PersistentEntity),
	}
}

// Register adds an entity built by NewEntity. Names must be unique.
func (r *Registry) Register(e *PersistentEntity) error {
	if e == nil {
		return fmt.Errorf("cannot register nil entity")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.byName[e.Name]; dup {
		return fmt.Errorf("entity %s already registered", e.Name)
	}

	e.registry = r
	r.byName[e.Name] = e

	if e.Type != nil {
		r.byType[e.Type] = e
	}

	return nil
}

// Entity returns the entity for t, building it from the struct definition on
// first use. Pointer types are dereferenced. Types that are not entity
// candidates (basic types, time.Time, ObjectID, ...) report false.
func (r *Registry) Entity(t reflect.Type) (*PersistentEntity, bool) {
	if t == nil {
		return nil, false
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	r.mu.RLock()
	e, ok := r.byType[t]
	r.mu.RUnlock()

	if ok {
		return e, true
	}

	if !isEntityType(t) {
		return nil, false
	}

	built, err := buildEntity(t)
	if err != nil {
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another goroutine may have won the race.
	if e, ok := r.byType[t]; ok {
		return e, true
	}

	built.registry = r
	r.byType[t] = built

	// Reflected entities are reachable by name unless a declared one took it.
	if _, taken := r.byName[built.Name]; !taken {
		r.byName[built.Name] = built
	}

	return built, true
}

// EntityFor returns the entity of v's dynamic type.
func (r *Registry) EntityFor(v any) (*PersistentEntity, bool) {
	if v == nil {
		return nil, false
	}

	return r.Entity(reflect.TypeOf(v))
}

// ByName returns a registered entity by name.
func (r *Registry) ByName(name string) (*PersistentEntity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byName[name]

	return e, ok
}

// Names returns the sorted names of all registered entities.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
