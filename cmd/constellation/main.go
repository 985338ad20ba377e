// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command constellation renders and serves the skills constellation.
//
// Usage:
//
//	constellation render --frames 120 --out graph.png
//	constellation render --target png --out frames/ --stride 4
//	constellation serve --addr :8080
//	constellation inspect --data skills.yaml
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
