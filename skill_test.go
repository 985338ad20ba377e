package constellation

import (
	"encoding/json"
	"math"
	"testing"
)

func TestLevelNormalized(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		want  float64
	}{
		{"number", LevelPercent(85), 0.85},
		{"number above range", LevelPercent(140), 1},
		{"negative number", LevelPercent(-5), 0},
		{"nan", LevelPercent(math.NaN()), 0.7},
		{"percent string", LevelString("85%"), 0.85},
		{"plain string", LevelString("85"), 0.85},
		{"padded string", LevelString(" 60 % "), 0.6},
		{"trailing text", LevelString("75 percent"), 0.75},
		{"garbage", LevelString("expert"), 0.7},
		{"empty", LevelString(""), 0.7},
		{"unset", Level{}, 0.7},
		{"unsupported type", LevelOf(true), 0.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.Normalized(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Normalized() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelString("85%"), "85%"},
		{LevelString("expert"), "expert"},
		{LevelPercent(72.4), "72%"},
		{LevelPercent(72.6), "73%"},
		{Level{}, "70%"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLevelJSON(t *testing.T) {
	var s struct {
		A, B, C Level
	}
	if err := json.Unmarshal([]byte(`{"A":85,"B":"90%","C":null}`), &s); err != nil {
		t.Fatal(err)
	}
	if s.A.Normalized() != 0.85 || s.B.String() != "90%" || s.C.IsSet() {
		t.Errorf("decoded = %+v", s)
	}
	out, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"A":85,"B":"90%","C":null}` {
		t.Errorf("Marshal = %s", out)
	}
}

func TestLevelUnmarshalJSONDirect(t *testing.T) {
	var l Level
	data := []byte(`"72%"`)
	if err := l.UnmarshalJSON(data); err != nil {
		t.Fatal(err)
	}
	if l.Normalized() != 0.72 || string(data) != `"72%"` {
		t.Errorf("level = %v from %s", l.Normalized(), data)
	}
	if err := l.UnmarshalJSON([]byte(`{`)); err == nil {
		t.Error("malformed JSON accepted")
	}
}

func TestDefaultSize(t *testing.T) {
	tests := []struct {
		level Level
		want  float64
	}{
		{LevelString("85%"), 34 + 85*0.18},
		{LevelPercent(50), 34 + 50*0.18},
		{LevelString("expert"), 34 + 60*0.18},
		{LevelPercent(0), 34 + 60*0.18},
		{Level{}, 34 + 60*0.18},
	}
	for _, tt := range tests {
		if got := DefaultSize(tt.level); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("DefaultSize(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSkillDefaults(t *testing.T) {
	s := Skill{Name: "Go"}
	if s.GroupKey() != DefaultGroup {
		t.Errorf("GroupKey() = %q, want %q", s.GroupKey(), DefaultGroup)
	}
	if got := s.DescriptionOrDefault(); got != "Professional experience with Go" {
		t.Errorf("DescriptionOrDefault() = %q", got)
	}
	if s.visualSize() != defaultSkillSize {
		t.Errorf("visualSize() = %v, want %v", s.visualSize(), defaultSkillSize)
	}
}

func TestStrengthOrDefault(t *testing.T) {
	tests := []struct {
		strength *float64
		want     float64
	}{
		{nil, DefaultStrength},
		{Strength(0.3), 0.3},
		{Strength(4), 1},
		{Strength(-1), 0},
		{Strength(math.NaN()), DefaultStrength},
	}
	for _, tt := range tests {
		r := Relationship{Source: "a", Target: "b", Strength: tt.strength}
		if got := r.StrengthOrDefault(); got != tt.want {
			t.Errorf("StrengthOrDefault() = %v, want %v", got, tt.want)
		}
	}
}

func TestResolvedRelationshipsDropsDangling(t *testing.T) {
	d := Dataset{
		Skills: []Skill{{Name: "A"}, {Name: "B"}, {Name: "Café"}},
		Relationships: []Relationship{
			{Source: "A", Target: "B"},
			{Source: "A", Target: "Missing"},
			{Source: "Ghost", Target: "B", Strength: Strength(0.9)},
			// Decomposed spelling of "Café".
			{Source: "Cafe\u0301", Target: "A", Strength: Strength(2)},
		},
	}
	got := d.ResolvedRelationships()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(got), got)
	}
	names := map[string]bool{}
	for _, s := range d.Skills {
		names[nameKey(s.Name)] = true
	}
	for _, r := range got {
		if !names[nameKey(r.Source)] || !names[nameKey(r.Target)] {
			t.Errorf("relationship %s -> %s references a missing skill", r.Source, r.Target)
		}
	}
	if *got[0].Strength != DefaultStrength || *got[1].Strength != 1 {
		t.Errorf("strengths = %v, %v, want %v, 1", *got[0].Strength, *got[1].Strength, DefaultStrength)
	}
}

func TestUniqueSkillsKeepsFirst(t *testing.T) {
	d := Dataset{Skills: []Skill{
		{Name: "Go", Group: "backend"},
		{Name: "Go", Group: "tools"},
		{Name: "Rust"},
	}}
	got := d.UniqueSkills()
	if len(got) != 2 || got[0].Group != "backend" {
		t.Errorf("UniqueSkills() = %+v", got)
	}
}
