// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"image"
	"image/png"
	"io"
	"sync"
)

// ErrNoFrame is returned by EncodePNG before the first frame arrived.
var ErrNoFrame = errors.New("surface: no frame presented yet")

// MemoryTarget keeps the most recent frame in memory. It is safe for
// concurrent use, so one goroutine may animate while others read frames.
type MemoryTarget struct {
	mu      sync.RWMutex
	width   float64
	ratio   float64
	reduced bool
	classes map[string]bool
	frame   *image.RGBA
	frames  uint64
	closed  bool
}

// NewMemoryTarget creates a target of the given CSS width and pixel ratio.
func NewMemoryTarget(width, ratio float64) *MemoryTarget {
	if ratio <= 0 {
		ratio = 1
	}
	return &MemoryTarget{width: width, ratio: ratio, classes: make(map[string]bool)}
}

// Width implements Target.
func (t *MemoryTarget) Width() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.width
}

// PixelRatio implements Target.
func (t *MemoryTarget) PixelRatio() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ratio
}

// SetWidth changes the reported width. Call Graph.Resize afterwards.
func (t *MemoryTarget) SetWidth(w float64) {
	t.mu.Lock()
	t.width = w
	t.mu.Unlock()
}

// SetReducedMotion sets the reported motion preference.
func (t *MemoryTarget) SetReducedMotion(v bool) {
	t.mu.Lock()
	t.reduced = v
	t.mu.Unlock()
}

// PrefersReducedMotion implements MotionPreference.
func (t *MemoryTarget) PrefersReducedMotion() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.reduced
}

// SetClass adds or removes a class from the reported class list.
func (t *MemoryTarget) SetClass(name string, on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if on {
		t.classes[name] = true
	} else {
		delete(t.classes, name)
	}
}

// HasClass implements ThemeSource.
func (t *MemoryTarget) HasClass(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.classes[name]
}

// Present implements Target.
func (t *MemoryTarget) Present(frame *image.RGBA) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	t.frame = frame
	t.frames++
	return nil
}

// Frame returns the latest frame, or nil. The image must not be modified.
func (t *MemoryTarget) Frame() *image.RGBA {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.frame
}

// Frames returns how many frames were presented.
func (t *MemoryTarget) Frames() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.frames
}

// EncodePNG writes the latest frame as PNG.
func (t *MemoryTarget) EncodePNG(w io.Writer) error {
	frame := t.Frame()
	if frame == nil {
		return ErrNoFrame
	}
	return png.Encode(w, frame)
}

// Close implements Target.
func (t *MemoryTarget) Close() error {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	return nil
}
