// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Auto is the kind name that opens the highest-priority kind whose
// Accepts reports true for the given Options.
const Auto = "auto"

// Kind describes a target that hosts open by name.
type Kind struct {
	// Name selects the kind on the command line, e.g. "memory" or "png".
	Name string

	// Priority orders kinds for Auto, higher first.
	Priority int

	// Accepts reports whether opts carry what the kind needs.
	// A nil Accepts takes any options.
	Accepts func(Options) bool

	// Open creates the target.
	Open func(Options) (Target, error)
}

func (k Kind) accepts(opts Options) bool {
	return k.Accepts == nil || k.Accepts(opts)
}

// ErrNoTarget is returned by Open(Auto, ...) when no registered kind
// accepts the options.
var ErrNoTarget = errors.New("surface: no target kind accepts the options")

// UnknownTargetError is returned by Open for a name nobody registered.
type UnknownTargetError struct {
	Name  string
	Known []string
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("surface: unknown target %q (known: %s)", e.Name, strings.Join(e.Known, ", "))
}

type registry struct {
	mu    sync.RWMutex
	kinds map[string]Kind
}

func newRegistry() *registry {
	return &registry{kinds: make(map[string]Kind)}
}

var kinds = newRegistry()

// Register adds a target kind, replacing one of the same name.
// It panics on an empty name, the reserved name Auto or a nil Open.
func Register(k Kind) { kinds.register(k) }

// Kinds returns the registered kind names, highest priority first.
func Kinds() []string { return kinds.names() }

// Resolve returns the kind Open would use for name and opts. For Auto it
// is the first kind by priority that accepts opts.
func Resolve(name string, opts Options) (string, error) {
	k, err := kinds.resolve(name, opts)
	return k.Name, err
}

// Open creates a target of the named kind, or of the best accepting kind
// for Auto.
func Open(name string, opts Options) (Target, error) {
	k, err := kinds.resolve(name, opts)
	if err != nil {
		return nil, err
	}
	return k.Open(opts)
}

func (r *registry) register(k Kind) {
	if k.Name == "" || k.Name == Auto || k.Open == nil {
		panic(fmt.Sprintf("surface: invalid target kind %q", k.Name))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[k.Name] = k
}

func (r *registry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.orderedLocked()
}

func (r *registry) orderedLocked() []string {
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(r.kinds[b].Priority, r.kinds[a].Priority); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return names
}

func (r *registry) resolve(name string, opts Options) (Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if name != Auto {
		k, ok := r.kinds[name]
		if !ok {
			return Kind{}, &UnknownTargetError{Name: name, Known: append(r.orderedLocked(), Auto)}
		}
		return k, nil
	}
	for _, n := range r.orderedLocked() {
		if k := r.kinds[n]; k.accepts(opts) {
			return k, nil
		}
	}
	return Kind{}, ErrNoTarget
}

func init() {
	Register(Kind{
		Name:     "memory",
		Priority: 10,
		Open: func(opts Options) (Target, error) {
			t := NewMemoryTarget(opts.Width, opts.PixelRatio)
			t.SetReducedMotion(opts.ReducedMotion)
			t.SetClass(DarkClass, opts.Dark)
			return t, nil
		},
	})
	Register(Kind{
		Name:     "png",
		Priority: 20,
		Accepts:  func(opts Options) bool { return opts.Dir != "" },
		Open: func(opts Options) (Target, error) {
			s, err := NewPNGSequence(opts.Dir, opts.Width, opts.PixelRatio, opts.Stride)
			if err != nil {
				return nil, err
			}
			s.reduced = opts.ReducedMotion
			s.dark = opts.Dark
			return s, nil
		},
	})
}
