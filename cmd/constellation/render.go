// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/constellation"
	"github.com/gogpu/constellation/surface"
)

// frameInterval is the synthetic clock step of offline renders.
const frameInterval = time.Second / 60

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Simulate the graph and write frames as PNG",
		Long: "Runs the simulation for --frames frames on a synthetic 60 fps clock.\n" +
			"The memory target writes the last frame to --out; the png target\n" +
			"writes a numbered sequence into the --out directory. The auto target\n" +
			"picks png unless --out names a .png file.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := prepare(cmd)
			if err != nil {
				return err
			}
			return runRender(cmd, cfg)
		},
	}
	addGraphFlags(cmd.Flags())
	d := defaultConfig().Render
	cmd.Flags().String("target", d.Target, "frame target: "+strings.Join(append(surface.Kinds(), surface.Auto), ", "))
	cmd.Flags().String("out", d.Out, "output file (memory) or directory (png)")
	cmd.Flags().Int("frames", d.Frames, "number of frames to simulate")
	cmd.Flags().Int("stride", d.Stride, "png target: write every n-th frame")
	cmd.Flags().Float64("hover-x", -1, "hold the pointer at this x while rendering")
	cmd.Flags().Float64("hover-y", -1, "hold the pointer at this y while rendering")
	return cmd
}

func runRender(cmd *cobra.Command, cfg config) error {
	out := cmd.OutOrStdout()

	opts := targetOptions(cfg, outputDir(cfg.Render))
	kind, err := surface.Resolve(cfg.Render.Target, opts)
	if err != nil {
		return err
	}
	target, err := surface.Open(kind, opts)
	if err != nil {
		return err
	}
	slog.Debug("render target", "kind", kind, "requested", cfg.Render.Target)

	g, err := newGraph(cmd.Context(), cfg, target,
		constellation.WithScheduler(constellation.NewManualScheduler()))
	if err != nil {
		_ = target.Close()
		return err
	}

	x, _ := cmd.Flags().GetFloat64("hover-x")
	y, _ := cmd.Flags().GetFloat64("hover-y")
	if x >= 0 && y >= 0 {
		g.PointerMove(x, y)
	}

	start := time.Now()
	for i := range cfg.Render.Frames {
		if err := g.Step(start.Add(time.Duration(i) * frameInterval)); err != nil {
			_ = g.Dispose()
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}

	if mem, ok := target.(*surface.MemoryTarget); ok {
		if err := writeFrame(mem, cfg.Render.Out); err != nil {
			_ = g.Dispose()
			return err
		}
		fmt.Fprintf(out, "  %s wrote %s\n", statusIcon(true), cfg.Render.Out)
	}
	if seq, ok := target.(*surface.PNGSequence); ok {
		fmt.Fprintf(out, "  %s wrote %d frames to %s\n", statusIcon(true), len(seq.Written()), cfg.Render.Out)
	}

	stats := g.Stats()
	load := g.Load()
	fmt.Fprintf(out, "  %s %d frames, %d nodes, %d edges, %d particles, source %s\n",
		subtle.Sprint("·"), stats.Frames, stats.Nodes, stats.Edges, stats.Particles, load.Source)
	if load.Reason != nil && cfg.API != "" {
		warn.Fprintf(out, "  API not used: %v\n", load.Reason)
	}
	return g.Dispose()
}

// outputDir returns --out when it names the directory of a file target.
// Under auto, an --out ending in .png means a single frame in memory.
func outputDir(r renderConfig) string {
	switch {
	case r.Target == "memory":
		return ""
	case r.Target == surface.Auto && strings.EqualFold(filepath.Ext(r.Out), ".png"):
		return ""
	}
	return r.Out
}

func writeFrame(mem *surface.MemoryTarget, path string) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return encodeTo(mem, f)
}

func encodeTo(mem *surface.MemoryTarget, w io.Writer) error {
	if err := mem.EncodePNG(w); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	return nil
}
