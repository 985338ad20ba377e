// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"image"
)

// Target receives the frames of one graph.
//
// Present is called with a frame the target may keep: the graph never
// reuses the image after handing it over.
type Target interface {
	// Width returns the width in CSS pixels the graph should fill.
	Width() float64

	// PixelRatio returns the device pixel ratio. Values below 1 are
	// treated as 1.
	PixelRatio() float64

	// Present delivers a finished frame.
	Present(frame *image.RGBA) error

	// Close releases the target. Close is idempotent.
	Close() error
}

// MotionPreference is implemented by targets that know whether the user
// asked for reduced motion.
type MotionPreference interface {
	PrefersReducedMotion() bool
}

// ThemeSource is implemented by targets that expose the class list of the
// hosting document, used to detect dark mode.
type ThemeSource interface {
	HasClass(name string) bool
}

// Options configures targets created through the registry.
type Options struct {
	// Width is the CSS width of the target.
	Width float64

	// PixelRatio is the device pixel ratio. Zero means 1.
	PixelRatio float64

	// Dir is the output directory of file based targets.
	Dir string

	// Stride writes only every Stride-th frame for file based targets.
	// Zero or one writes every frame.
	Stride int

	// ReducedMotion and Dark seed the host preferences.
	ReducedMotion bool
	Dark          bool
}

// ErrClosed is returned by Present after Close.
var ErrClosed = errors.New("surface: target closed")

// DarkClass is the class name MemoryTarget and PNGSequence report when
// dark mode is on.
const DarkClass = "dark"
