package marketplace

import (
	"fmt"
	"sort"
)

// Registry is the immutable set of configured marketplaces. It is built
// once at startup and only read afterwards, so concurrent access needs
// no locking.
//
// The registry also owns the explicit bidirectional slug<->display-name
// mapping used to attribute relational rows (which join against the
// display name) back to a marketplace identity.
type Registry struct {
	slugs  []string
	bySlug map[string]*Descriptor
	byName map[string]string
}

// NewRegistry builds a registry from descriptors. Enumeration order is
// the sorted slug order, which fixes the merge order for unified
// queries regardless of configuration map iteration.
func NewRegistry(descriptors []Descriptor) (*Registry, error) {
	r := &Registry{
		bySlug: make(map[string]*Descriptor, len(descriptors)),
		byName: make(map[string]string, len(descriptors)),
	}

	for i := range descriptors {
		d := descriptors[i]
		if d.Slug == "" {
			return nil, fmt.Errorf("marketplace descriptor without slug")
		}
		if _, exists := r.bySlug[d.Slug]; exists {
			return nil, fmt.Errorf("duplicate marketplace slug %q", d.Slug)
		}
		if d.Name != "" {
			if prev, exists := r.byName[d.Name]; exists {
				return nil, fmt.Errorf("marketplaces %q and %q share display name %q", prev, d.Slug, d.Name)
			}
			r.byName[d.Name] = d.Slug
		}
		r.bySlug[d.Slug] = &d
		r.slugs = append(r.slugs, d.Slug)
	}

	sort.Strings(r.slugs)
	return r, nil
}

// Get returns the descriptor for a slug
func (r *Registry) Get(slug string) (*Descriptor, bool) {
	d, ok := r.bySlug[slug]
	return d, ok
}

// ListEnabled returns the enabled marketplaces in enumeration order
func (r *Registry) ListEnabled() []*Descriptor {
	enabled := make([]*Descriptor, 0, len(r.slugs))
	for _, slug := range r.slugs {
		if d := r.bySlug[slug]; d.Enabled {
			enabled = append(enabled, d)
		}
	}
	return enabled
}

// SlugForName maps a display name (e.g. "Mercado Livre") back to its
// slug. Relational rows carry the display name, not the slug.
func (r *Registry) SlugForName(name string) (string, bool) {
	slug, ok := r.byName[name]
	return slug, ok
}

// Len returns the number of configured marketplaces
func (r *Registry) Len() int {
	return len(r.slugs)
}
