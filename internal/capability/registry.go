package capability

import (
	"context"
	"fmt"
)

// ExecFunc is a capability executor. It receives the normalized input (all
// declared types verified, defaults applied) and the per-call execution
// context, and returns the capability-specific payload. Executors must not
// share mutable state beyond what the execution context supplies.
type ExecFunc func(ctx context.Context, input map[string]any, ec Context) (any, error)

// Descriptor is the static declaration of one capability. Descriptors are
// created during registry initialization and are immutable for the lifetime
// of the process.
type Descriptor struct {
	// Slug is the stable machine-readable identifier, namespaced by domain,
	// e.g. "GMAIL_SEND_EMAIL".
	Slug string

	// Name is the human-readable label.
	Name string

	// Description tells the planning component when to invoke the
	// capability.
	Description string

	// Schema describes the accepted input parameters.
	Schema Schema

	// Execute runs the capability.
	Execute ExecFunc

	// Mutating marks capabilities that write to the backing service. The
	// serve command filters these out in read-only mode.
	Mutating bool
}

// Registry owns the set of registered descriptors. Registration happens at
// startup; afterwards the registry is read-only and safe for concurrent use
// without locking.
type Registry struct {
	order []string
	caps  map[string]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{caps: make(map[string]Descriptor)}
}

// Register adds a descriptor. It fails with ErrDuplicateSlug when the slug
// is already present and with ErrInvalidDescriptor when the descriptor is
// malformed; in both cases the registry is left unchanged.
func (r *Registry) Register(d Descriptor) error {
	if d.Slug == "" {
		return fmt.Errorf("%w: empty slug", ErrInvalidDescriptor)
	}
	if d.Name == "" {
		return fmt.Errorf("%w: %s: empty name", ErrInvalidDescriptor, d.Slug)
	}
	if d.Execute == nil {
		return fmt.Errorf("%w: %s: nil executor", ErrInvalidDescriptor, d.Slug)
	}
	if err := d.Schema.check(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDescriptor, d.Slug, err)
	}
	if _, exists := r.caps[d.Slug]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSlug, d.Slug)
	}
	r.caps[d.Slug] = d
	r.order = append(r.order, d.Slug)
	return nil
}

// RegisterAll registers descriptors in order, stopping at the first failure.
func (r *Registry) RegisterAll(descriptors ...Descriptor) error {
	for _, d := range descriptors {
		if err := r.Register(d); err != nil {
			return err
		}
	}
	return nil
}

// All returns every registered descriptor in registration order. The order
// is stable across calls; the capability catalog docs generator depends on
// it.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, r.caps[slug])
	}
	return out
}

// Resolve returns the descriptors for the requested slugs, preserving the
// request order. It fails with an UnknownSlugError naming the first missing
// slug and has no side effect on the registry.
func (r *Registry) Resolve(slugs []string) ([]Descriptor, error) {
	out := make([]Descriptor, 0, len(slugs))
	for _, slug := range slugs {
		d, ok := r.caps[slug]
		if !ok {
			return nil, &UnknownSlugError{Slug: slug}
		}
		out = append(out, d)
	}
	return out, nil
}

// Get returns the descriptor for a single slug.
func (r *Registry) Get(slug string) (Descriptor, bool) {
	d, ok := r.caps[slug]
	return d, ok
}

// Len returns the number of registered capabilities.
func (r *Registry) Len() int {
	return len(r.order)
}

// Slugs returns all registered slugs in registration order.
func (r *Registry) Slugs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
