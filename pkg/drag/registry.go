package drag

import (
	"sort"
	"sync"
)

// DropTarget is a collaborator that wants to know what is being dragged.
type DropTarget interface {
	// Register is called at drag start. p may be nil.
	Register(p Payload)
	// Unregister is called at drag end.
	Unregister()
}

// FuncTarget adapts a pair of functions to DropTarget. Nil functions are
// skipped.
type FuncTarget struct {
	OnRegister   func(Payload)
	OnUnregister func()
}

// Register implements DropTarget.
func (f FuncTarget) Register(p Payload) {
	if f.OnRegister != nil {
		f.OnRegister(p)
	}
}

// Unregister implements DropTarget.
func (f FuncTarget) Unregister() {
	if f.OnUnregister != nil {
		f.OnUnregister()
	}
}

// Registry enumerates the currently active drop targets.
type Registry interface {
	// Targets returns a snapshot. Callers may not modify it.
	Targets() []DropTarget
}

// MapRegistry is an in-memory Registry keyed by target id. It is safe for
// concurrent use; Targets returns targets ordered by id.
type MapRegistry struct {
	mu      sync.RWMutex
	targets map[string]DropTarget
}

// NewMapRegistry creates an empty registry.
func NewMapRegistry() *MapRegistry {
	return &MapRegistry{targets: make(map[string]DropTarget)}
}

// Add stores t under id, replacing any previous target.
func (r *MapRegistry) Add(id string, t DropTarget) {
	r.mu.Lock()
	r.targets[id] = t
	r.mu.Unlock()
}

// Delete removes the target with the given id.
func (r *MapRegistry) Delete(id string) {
	r.mu.Lock()
	delete(r.targets, id)
	r.mu.Unlock()
}

// Len returns the number of targets.
func (r *MapRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.targets)
}

// Targets implements Registry.
func (r *MapRegistry) Targets() []DropTarget {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.targets))
	for id := range r.targets {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]DropTarget, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.targets[id])
	}
	return out
}

// RegistryClient broadcasts drag start and end to a registry.
type RegistryClient struct {
	registry Registry
}

// NewRegistryClient creates a client for r. A nil registry behaves as empty.
func NewRegistryClient(r Registry) *RegistryClient {
	return &RegistryClient{registry: r}
}

func (c *RegistryClient) snapshot() []DropTarget {
	if c == nil || c.registry == nil {
		return nil
	}
	return c.registry.Targets()
}

// BroadcastStart registers p with every target and returns how many were
// notified.
func (c *RegistryClient) BroadcastStart(p Payload) int {
	targets := c.snapshot()
	for _, t := range targets {
		t.Register(p)
	}
	return len(targets)
}

// BroadcastEnd unregisters every target and returns how many were notified.
func (c *RegistryClient) BroadcastEnd() int {
	targets := c.snapshot()
	for _, t := range targets {
		t.Unregister()
	}
	return len(targets)
}
