// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
)

// PNGSequence writes presented frames to numbered PNG files
// (frame-00000.png, frame-00001.png, ...) in a directory.
type PNGSequence struct {
	mu      sync.Mutex
	dir     string
	width   float64
	ratio   float64
	stride  int
	reduced bool
	dark    bool
	seen    int
	written []string
	closed  bool
}

// NewPNGSequence creates the output directory and returns a target that
// writes every stride-th frame into it.
func NewPNGSequence(dir string, width, ratio float64, stride int) (*PNGSequence, error) {
	if dir == "" {
		return nil, errors.New("surface: png sequence needs an output directory")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("surface: create %s: %w", dir, err)
	}
	if ratio <= 0 {
		ratio = 1
	}
	if stride < 1 {
		stride = 1
	}
	return &PNGSequence{dir: dir, width: width, ratio: ratio, stride: stride}, nil
}

// Width implements Target.
func (s *PNGSequence) Width() float64 { return s.width }

// PixelRatio implements Target.
func (s *PNGSequence) PixelRatio() float64 { return s.ratio }

// PrefersReducedMotion implements MotionPreference.
func (s *PNGSequence) PrefersReducedMotion() bool { return s.reduced }

// HasClass implements ThemeSource. Only DarkClass is ever present.
func (s *PNGSequence) HasClass(name string) bool { return s.dark && name == DarkClass }

// Present implements Target.
func (s *PNGSequence) Present(frame *image.RGBA) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	n := s.seen
	s.seen++
	if n%s.stride != 0 {
		return nil
	}

	path := filepath.Join(s.dir, fmt.Sprintf("frame-%05d.png", len(s.written)))
	f, err := os.Create(path) //nolint:gosec // output path is chosen by the caller
	if err != nil {
		return fmt.Errorf("surface: %w", err)
	}
	if err := png.Encode(f, frame); err != nil {
		_ = f.Close()
		return fmt.Errorf("surface: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("surface: %w", err)
	}
	s.written = append(s.written, path)
	return nil
}

// Written returns the paths written so far, in order.
func (s *PNGSequence) Written() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.written...)
}

// Close implements Target.
func (s *PNGSequence) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
