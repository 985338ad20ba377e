// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package server serves a running constellation graph over HTTP.
//
// The graph renders into a surface.MemoryTarget; the server exposes the
// latest frame as PNG, forwards pointer, filter and theme changes from the
// embedded page to the graph, and reports metrics in the Prometheus
// format.
package server
