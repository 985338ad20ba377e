// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface provides frame targets for a constellation graph.
//
// A Target is where finished frames go. It also reports the CSS width of
// the area the graph fills and its device pixel ratio, and may expose
// host preferences (reduced motion, dark theme) through the optional
// MotionPreference and ThemeSource interfaces.
//
// # Targets
//
//   - MemoryTarget: keeps the latest frame in memory (HTTP hosts, tests)
//   - PNGSequence: writes every presented frame as a numbered PNG file
//
// # Kinds
//
// Targets are opened by kind name, so hosts can pick one from a flag.
// The name Auto takes the highest-priority kind the options satisfy: png
// when Options.Dir is set, memory otherwise.
//
//	t, err := surface.Open(surface.Auto, surface.Options{
//	    Width: 800,
//	    Dir:   "frames",
//	})
//
// Additional kinds register themselves from init:
//
//	func init() {
//	    surface.Register(surface.Kind{Name: "gif", Priority: 15, Open: openGIF})
//	}
package surface
