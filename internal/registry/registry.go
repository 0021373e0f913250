// Package registry keeps the ordered collection of available checkers.
//
// The registry is pure bookkeeping: it never executes checker logic. It is
// built once before a run, passed around by reference and read-only
// afterwards, so independent runs in one process get independent registries.
package registry

import (
	"errors"
	"fmt"
	"strings"

	"ferrolint/internal/checker"
)

// ErrDuplicateCode is returned when two checkers claim the same code. This is
// a wiring defect, so callers treat it as fatal.
var ErrDuplicateCode = errors.New("duplicate checker code")

// Factory creates a fresh checker instance for one run. Run-scoped state
// (e.g. a lock-acquisition graph) lives on the instance, never on the entry.
type Factory func() checker.Checker

// Entry is one registered checker: metadata, compiled-in default config and
// the factory that instantiates it.
type Entry struct {
	Meta    checker.Metadata
	Default checker.Config
	New     Factory
}

// Registry is an ordered, code-unique collection of entries.
type Registry struct {
	entries []Entry
	byCode  map[string]int
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{byCode: make(map[string]int)}
}

// Register adds an entry. Registration order is preserved, which keeps
// reports deterministic.
func (r *Registry) Register(e Entry) error {
	if _, exists := r.byCode[e.Meta.Code]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCode, e.Meta.Code)
	}
	r.byCode[e.Meta.Code] = len(r.entries)
	r.entries = append(r.entries, e)
	return nil
}

// RegisterAll adds a batch of entries, stopping at the first conflict.
func (r *Registry) RegisterAll(entries []Entry) error {
	for _, e := range entries {
		if err := r.Register(e); err != nil {
			return err
		}
	}
	return nil
}

// All returns every entry in registration order.
func (r *Registry) All() []Entry {
	return r.entries
}

// Len returns the number of registered checkers.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Lookup finds an entry by exact code.
func (r *Registry) Lookup(code string) (Entry, bool) {
	i, ok := r.byCode[code]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// ByPrefix returns every entry whose code starts with the given prefix.
// Matching is plain string prefixing: "e11" matches "e1106" but not "e1201".
func (r *Registry) ByPrefix(prefix string) []Entry {
	var out []Entry
	for _, e := range r.entries {
		if strings.HasPrefix(e.Meta.Code, prefix) {
			out = append(out, e)
		}
	}
	return out
}
