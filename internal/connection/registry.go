// Package connection holds the set of configured store instances and picks
// the one an operation targets.
package connection

import (
	"fmt"

	"go.uber.org/multierr"

	apperrors "github.com/SiriusScan/mcp-redis/internal/errors"
	"github.com/SiriusScan/mcp-redis/internal/store"
)

// Entry is one configured instance. Client is shared by every operation that
// targets the entry; valkey-go multiplexes it, so no locking is needed.
type Entry struct {
	Name           string
	DisplayAddress string
	Client         store.Client
}

// Description is the public view of an Entry.
type Description struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Registry is an ordered, immutable collection of entries built once at
// startup.
type Registry struct {
	entries []Entry
}

// NewRegistry builds a registry from entries, rejecting duplicate names.
func NewRegistry(entries []Entry) (*Registry, error) {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("connection name cannot be empty")
		}
		if e.Client == nil {
			return nil, fmt.Errorf("connection %q has no client", e.Name)
		}
		if _, dup := seen[e.Name]; dup {
			return nil, fmt.Errorf("duplicate connection name %q", e.Name)
		}
		seen[e.Name] = struct{}{}
	}

	return &Registry{entries: append([]Entry(nil), entries...)}, nil
}

// Len returns the number of configured entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns a copy of the entries in configuration order.
func (r *Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Describe lists every entry with its redacted address.
func (r *Registry) Describe() []Description {
	out := make([]Description, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, Description{Name: e.Name, URL: e.DisplayAddress})
	}
	return out
}

// Resolve returns the entry an operation should use. An empty name means no
// name was given: that is only accepted when exactly one entry exists. With a
// name, the first exact match wins.
func (r *Registry) Resolve(name string) (*Entry, error) {
	if name != "" {
		for i := range r.entries {
			if r.entries[i].Name == name {
				return &r.entries[i], nil
			}
		}
		return nil, apperrors.ConnectionNotFoundError{Name: name}
	}

	if len(r.entries) == 1 {
		return &r.entries[0], nil
	}
	return nil, apperrors.ErrAmbiguousConnection
}

// Close closes every client and reports all failures together.
func (r *Registry) Close() error {
	var err error
	for _, e := range r.entries {
		err = multierr.Append(err, e.Client.Close())
	}
	return err
}
