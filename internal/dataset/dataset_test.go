// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/constellation"
)

func TestDefault(t *testing.T) {
	d := Default()
	if len(d.Skills) != 7 {
		t.Fatalf("len(Skills) = %d, want 7", len(d.Skills))
	}
	if len(d.Relationships) != 6 {
		t.Fatalf("len(Relationships) = %d, want 6", len(d.Relationships))
	}
	if got := len(d.ResolvedRelationships()); got != 6 {
		t.Errorf("resolved relationships = %d, want 6", got)
	}

	js := d.Skills[2]
	if js.Name != "JavaScript" || js.Level.String() != "85%" || js.Size != 48 || js.Group != "frontend" {
		t.Errorf("Skills[2] = %+v, unexpected", js)
	}
	if got := d.Relationships[0].StrengthOrDefault(); got != 0.9 {
		t.Errorf("Relationships[0] strength = %v, want 0.9", got)
	}

	groups := map[string]int{}
	for _, s := range d.Skills {
		groups[s.GroupKey()]++
	}
	if groups["frontend"] != 4 || groups["backend"] != 2 || groups["tools"] != 1 {
		t.Errorf("groups = %v, want frontend:4 backend:2 tools:1", groups)
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"skills.json", JSON},
		{"skills.TOML", TOML},
		{"a/b/skills.yml", YAML},
		{"skills.yaml", YAML},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		if err != nil || got != tt.want {
			t.Errorf("FormatOf(%q) = %v, %v, want %v", tt.path, got, err, tt.want)
		}
	}
	if _, err := FormatOf("skills.csv"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("FormatOf(csv) err = %v, want ErrUnknownFormat", err)
	}
}

func TestParseMixedLevels(t *testing.T) {
	inputs := map[Format]string{
		JSON: `{"skills":[{"name":"Go","level":85},{"name":"SQL","level":"70%"},{"name":"Bash"}],
			"relationships":[{"source":"Go","target":"SQL"}]}`,
		TOML: `
[[skills]]
name = "Go"
level = 85
[[skills]]
name = "SQL"
level = "70%"
[[skills]]
name = "Bash"
[[relationships]]
source = "Go"
target = "SQL"
`,
		YAML: `
skills:
  - name: Go
    level: 85
  - name: SQL
    level: "70%"
  - name: Bash
relationships:
  - source: Go
    target: SQL
`,
	}
	for format, in := range inputs {
		d, err := Parse([]byte(in), format)
		if err != nil {
			t.Fatalf("Parse(%s) failed: %v", format, err)
		}
		if len(d.Skills) != 3 {
			t.Fatalf("%s: len(Skills) = %d, want 3", format, len(d.Skills))
		}
		if got := d.Skills[0].Level.Normalized(); got != 0.85 {
			t.Errorf("%s: Go level = %v, want 0.85", format, got)
		}
		if got := d.Skills[1].Level.String(); got != "70%" {
			t.Errorf("%s: SQL level = %q, want 70%%", format, got)
		}
		if d.Skills[2].Level.IsSet() {
			t.Errorf("%s: Bash level should be unset", format)
		}
		if got := d.Relationships[0].StrengthOrDefault(); got != constellation.DefaultStrength {
			t.Errorf("%s: strength = %v, want default", format, got)
		}
	}
}

func TestEncodeKeepsLevels(t *testing.T) {
	src := constellation.Dataset{
		Skills: []constellation.Skill{
			{Name: "Go", Level: constellation.LevelPercent(85), Group: "backend"},
			{Name: "CSS", Level: constellation.LevelString("70%")},
		},
		Relationships: []constellation.Relationship{
			{Source: "Go", Target: "CSS", Strength: constellation.Strength(0.4)},
		},
	}
	for _, format := range []Format{JSON, TOML, YAML} {
		data, err := Encode(src, format)
		if err != nil {
			t.Fatalf("Encode(%s) failed: %v", format, err)
		}
		got, err := Parse(data, format)
		if err != nil {
			t.Fatalf("Parse(%s) failed: %v\n%s", format, err, data)
		}
		if got.Skills[0].Level.Normalized() != 0.85 || got.Skills[1].Level.String() != "70%" {
			t.Errorf("%s: levels = %v, %v", format, got.Skills[0].Level, got.Skills[1].Level)
		}
		if got.Relationships[0].StrengthOrDefault() != 0.4 {
			t.Errorf("%s: strength = %v, want 0.4", format, got.Relationships[0].StrengthOrDefault())
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skills.yaml")
	if err := os.WriteFile(path, []byte("skills:\n  - name: Go\n    level: 90%\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(d.Skills) != 1 || d.Skills[0].Level.Normalized() != 0.9 {
		t.Errorf("Load = %+v, unexpected", d)
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Load(missing) should fail")
	}
}
