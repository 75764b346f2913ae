package registry

import (
	"fmt"

	"voyagent/internal/config"
)

// Descriptor describes one configured remote MCP tool server. Descriptors
// are built once at startup and never mutated afterwards.
type Descriptor struct {
	ID          string
	Name        string
	URL         string
	Transport   config.Transport
	AccessToken string
	TestOnly    bool
}

// NotFoundError is returned by Describe for ids absent from the registry.
type NotFoundError struct {
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown server %q", e.ID)
}

// Registry is the process-wide table of configured servers. It is immutable
// after construction and therefore safe for concurrent use without locking.
type Registry struct {
	byID  map[string]Descriptor
	order []string
}

// New builds a registry from the configured server list. Construction fails
// if two entries share an id; id uniqueness is what keys every discovery
// result.
func New(servers []config.ServerConfig) (*Registry, error) {
	r := &Registry{
		byID:  make(map[string]Descriptor, len(servers)),
		order: make([]string, 0, len(servers)),
	}
	for _, s := range servers {
		if _, exists := r.byID[s.ID]; exists {
			return nil, fmt.Errorf("duplicate server id %q", s.ID)
		}
		r.byID[s.ID] = Descriptor{
			ID:          s.ID,
			Name:        s.Name,
			URL:         s.URL,
			Transport:   s.Transport,
			AccessToken: s.AccessToken,
			TestOnly:    s.TestOnly,
		}
		r.order = append(r.order, s.ID)
	}
	return r, nil
}

// Describe returns the descriptor for the given id, or a *NotFoundError if
// the id is not configured.
func (r *Registry) Describe(id string) (Descriptor, error) {
	d, ok := r.byID[id]
	if !ok {
		return Descriptor{}, &NotFoundError{ID: id}
	}
	return d, nil
}

// IDs returns all configured server ids in declaration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// DefaultEnabled returns the ids included in the default workflow tool set:
// every configured server not marked test-only. Membership is a policy the
// caller can override by passing its own id list to discovery.
func (r *Registry) DefaultEnabled() []string {
	var ids []string
	for _, id := range r.order {
		if !r.byID[id].TestOnly {
			ids = append(ids, id)
		}
	}
	return ids
}

// Len returns the number of configured servers.
func (r *Registry) Len() int {
	return len(r.order)
}
