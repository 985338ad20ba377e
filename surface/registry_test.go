// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"slices"
	"testing"
)

func openMemory(opts Options) (Target, error) {
	return NewMemoryTarget(opts.Width, opts.PixelRatio), nil
}

func TestKindsByPriority(t *testing.T) {
	r := newRegistry()
	r.register(Kind{Name: "low", Priority: 10, Open: openMemory})
	r.register(Kind{Name: "high", Priority: 100, Open: openMemory})
	r.register(Kind{Name: "mid-b", Priority: 50, Open: openMemory})
	r.register(Kind{Name: "mid-a", Priority: 50, Open: openMemory})

	want := []string{"high", "mid-a", "mid-b", "low"}
	if got := r.names(); !slices.Equal(got, want) {
		t.Errorf("names() = %v, want %v", got, want)
	}
}

func TestRegisterRejectsInvalidKinds(t *testing.T) {
	for _, k := range []Kind{
		{Name: "", Open: openMemory},
		{Name: Auto, Open: openMemory},
		{Name: "nil-open"},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("register(%q) did not panic", k.Name)
				}
			}()
			newRegistry().register(k)
		}()
	}
}

func TestResolveAutoPicksFirstAccepting(t *testing.T) {
	r := newRegistry()
	r.register(Kind{Name: "files", Priority: 20, Open: openMemory,
		Accepts: func(o Options) bool { return o.Dir != "" }})
	r.register(Kind{Name: "memory", Priority: 10, Open: openMemory})

	tests := []struct {
		opts Options
		want string
	}{
		{Options{Width: 100}, "memory"},
		{Options{Width: 100, Dir: "out"}, "files"},
	}
	for _, tt := range tests {
		k, err := r.resolve(Auto, tt.opts)
		if err != nil {
			t.Fatalf("resolve(auto, %+v): %v", tt.opts, err)
		}
		if k.Name != tt.want {
			t.Errorf("resolve(auto, %+v) = %s, want %s", tt.opts, k.Name, tt.want)
		}
	}

	// A named kind is used even when it would not accept the options.
	k, err := r.resolve("files", Options{})
	if err != nil || k.Name != "files" {
		t.Errorf("resolve(files) = %s, %v", k.Name, err)
	}
}

func TestResolveErrors(t *testing.T) {
	r := newRegistry()
	if _, err := r.resolve(Auto, Options{}); !errors.Is(err, ErrNoTarget) {
		t.Errorf("empty registry: err = %v, want ErrNoTarget", err)
	}

	r.register(Kind{Name: "files", Open: openMemory, Accepts: func(Options) bool { return false }})
	if _, err := r.resolve(Auto, Options{}); !errors.Is(err, ErrNoTarget) {
		t.Errorf("nothing accepts: err = %v, want ErrNoTarget", err)
	}

	_, err := r.resolve("webgl", Options{})
	var unknown *UnknownTargetError
	if !errors.As(err, &unknown) || unknown.Name != "webgl" {
		t.Fatalf("err = %v, want UnknownTargetError", err)
	}
	if got := err.Error(); got != `surface: unknown target "webgl" (known: files, auto)` {
		t.Errorf("message = %q", got)
	}
}

func TestBuiltinKinds(t *testing.T) {
	if got := Kinds(); len(got) < 2 || got[0] != "png" || got[1] != "memory" {
		t.Fatalf("Kinds() = %v, want png then memory", got)
	}

	tg, err := Open(Auto, Options{Width: 100, Dark: true})
	if err != nil {
		t.Fatalf("Open(auto): %v", err)
	}
	defer tg.Close()
	m, ok := tg.(*MemoryTarget)
	if !ok {
		t.Fatalf("Open(auto) without dir = %T, want *MemoryTarget", tg)
	}
	if !m.HasClass(DarkClass) {
		t.Error("dark option not applied")
	}

	dir := t.TempDir()
	tg, err = Open(Auto, Options{Width: 100, Dir: dir, ReducedMotion: true})
	if err != nil {
		t.Fatalf("Open(auto) with dir: %v", err)
	}
	defer tg.Close()
	if _, ok := tg.(*PNGSequence); !ok {
		t.Fatalf("Open(auto) with dir = %T, want *PNGSequence", tg)
	}
	mp, ok := tg.(MotionPreference)
	if !ok || !mp.PrefersReducedMotion() {
		t.Error("png target should report reduced motion")
	}

	if _, err := Open("png", Options{Width: 100}); err == nil {
		t.Error("png without a directory should fail")
	}
	if name, _ := Resolve(Auto, Options{Dir: dir}); name != "png" {
		t.Errorf("Resolve(auto) = %q, want png", name)
	}
}
