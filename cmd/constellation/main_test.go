// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRenderMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "graph.png")
	out, err := run(t, "render", "--frames", "5", "--width", "320", "--height", "240", "--ratio", "2", "--seed", "3", "--out", path)
	if err != nil {
		t.Fatalf("render: %v\n%s", err, out)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 480 {
		t.Errorf("image = %v, want 640x480", b)
	}
	if !strings.Contains(out, "5 frames, 7 nodes, 6 edges") {
		t.Errorf("summary missing:\n%s", out)
	}
}

func TestRenderPNGSequence(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "render", "--target", "png", "--out", dir, "--frames", "6", "--stride", "2", "--width", "100", "--height", "80")
	if err != nil {
		t.Fatalf("render: %v\n%s", err, out)
	}
	files, _ := filepath.Glob(filepath.Join(dir, "*.png"))
	if len(files) != 3 {
		t.Errorf("wrote %d files, want 3", len(files))
	}
}

func TestRenderAutoTarget(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "render", "--target", "auto", "--out", dir, "--frames", "2", "--width", "100", "--height", "80")
	if err != nil {
		t.Fatalf("render: %v\n%s", err, out)
	}
	if files, _ := filepath.Glob(filepath.Join(dir, "*.png")); len(files) != 2 {
		t.Errorf("auto with a directory wrote %d files, want 2", len(files))
	}

	file := filepath.Join(t.TempDir(), "one.png")
	out, err = run(t, "render", "--target", "auto", "--out", file, "--frames", "2", "--width", "100", "--height", "80")
	if err != nil {
		t.Fatalf("render: %v\n%s", err, out)
	}
	if _, err := os.Stat(file); err != nil {
		t.Errorf("auto with a .png path: %v", err)
	}
}

func TestReducedMotionHelp(t *testing.T) {
	out, err := run(t, "render", "--help")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "link particles keep flowing") {
		t.Errorf("--reduced-motion help does not say particles keep flowing:\n%s", out)
	}
}

func TestRenderUnknownTarget(t *testing.T) {
	_, err := run(t, "render", "--target", "webgl", "--frames", "1")
	if err == nil || !strings.Contains(err.Error(), "known: ") {
		t.Errorf("err = %v", err)
	}
}

func TestInspect(t *testing.T) {
	out, err := run(t, "inspect")
	if err != nil {
		t.Fatalf("inspect: %v\n%s", err, out)
	}
	for _, want := range []string{"fallback", "Skills:  7", "Links:   6", "Frontend", "Git/GitHub", "0.90"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInspectDataFileAndExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.yaml")
	data := `skills:
  - name: Go
    level: 90
    group: backend
  - name: Go
    level: 10
  - name: Rust
    level: "60%"
relationships:
  - source: Go
    target: Rust
  - source: Go
    target: Zig
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "inspect", "--data", path, "--export", "json")
	if err != nil {
		t.Fatalf("inspect: %v\n%s", err, out)
	}
	for _, want := range []string{"Skills:  2 (1 duplicate", "Links:   1 (1 dangling", `"name": "Rust"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigValidation(t *testing.T) {
	tests := [][]string{
		{"inspect", "--log-level", "loud"},
		{"inspect", "--api", "not a url"},
		{"inspect", "--data", "/does/not/exist.toml"},
		{"render", "--width", "0"},
		{"render", "--frames", "0"},
	}
	for _, args := range tests {
		if _, err := run(t, args...); err == nil {
			t.Errorf("%v succeeded", args)
		}
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("CONSTELLATION_FILTER", "tools")
	t.Setenv("CONSTELLATION_LOG_LEVEL", "error")
	root := newRootCmd()
	cmd, _, err := root.Find([]string{"render"})
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Filter != "tools" || cfg.LogLevel != "error" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "constellation.toml")
	if err := os.WriteFile(path, []byte("width = 640\nframes = 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	root := newRootCmd()
	cmd, _, _ := root.Find([]string{"render"})
	if err := cmd.ParseFlags([]string{"--config", path, "--frames", "9"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 640 {
		t.Errorf("width = %v, want 640 from the file", cfg.Width)
	}
	if cfg.Render.Frames != 9 {
		t.Errorf("frames = %d, want the flag to win", cfg.Render.Frames)
	}
}

func TestGroupTitle(t *testing.T) {
	if got := groupTitle("frontend"); got != "Frontend" {
		t.Errorf("groupTitle = %q", got)
	}
}

func TestTableAlignsRunes(t *testing.T) {
	var buf bytes.Buffer
	table(&buf, []string{"A", "B"}, [][]string{{"Café", "x"}, {"Go", "y"}})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %q", lines)
	}
	if strings.Index(lines[2], "x") != strings.Index(lines[3], "y")+len("é")-1 {
		t.Errorf("columns misaligned:\n%s", buf.String())
	}
}
