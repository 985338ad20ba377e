package constellation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Level is a skill proficiency as supplied by the data source: either a
// number of percent (85) or a string such as "85%". The original form is
// kept for display; Normalized maps it to [0, 1].
type Level struct {
	raw  string
	num  float64
	kind levelKind
}

type levelKind uint8

const (
	levelUnset levelKind = iota
	levelNumber
	levelString
)

// LevelPercent returns a numeric level.
func LevelPercent(p float64) Level {
	return Level{num: p, kind: levelNumber}
}

// LevelString returns a string level such as "85%".
func LevelString(s string) Level {
	return Level{raw: s, kind: levelString}
}

// LevelOf converts a decoded value (number or string) into a Level.
// Any other type yields an unset level.
func LevelOf(v any) Level {
	switch x := v.(type) {
	case Level:
		return x
	case string:
		return LevelString(x)
	case float64:
		return LevelPercent(x)
	case float32:
		return LevelPercent(float64(x))
	case int:
		return LevelPercent(float64(x))
	case int64:
		return LevelPercent(float64(x))
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return LevelPercent(f)
		}
		return LevelString(x.String())
	}
	return Level{}
}

// Normalized returns the level in [0, 1]. Strings are read up to the
// first non-digit after an optional sign, ignoring a "%" sign and
// surrounding spaces. Unset or unparsable levels yield 0.7.
func (l Level) Normalized() float64 {
	switch l.kind {
	case levelNumber:
		if math.IsNaN(l.num) {
			return defaultLevel
		}
		return clamp(l.num/100, 0, 1)
	case levelString:
		n, ok := leadingInt(strings.TrimSpace(strings.ReplaceAll(l.raw, "%", "")))
		if !ok {
			return defaultLevel
		}
		return clamp(float64(n)/100, 0, 1)
	}
	return defaultLevel
}

// String returns the level as shown in the details panel: the original
// string when one was given, otherwise the rounded percentage.
func (l Level) String() string {
	if l.kind == levelString {
		return l.raw
	}
	return fmt.Sprintf("%d%%", int(math.Round(l.Normalized()*100)))
}

// Value returns the level in its original form: a float64, a string or
// nil when unset.
func (l Level) Value() any {
	switch l.kind {
	case levelNumber:
		return l.num
	case levelString:
		return l.raw
	}
	return nil
}

// IsSet reports whether the data source supplied a level.
func (l Level) IsSet() bool { return l.kind != levelUnset }

// percent returns the integer percentage used by the size formula, or
// def when the level is missing or unparsable.
func (l Level) percent(def int) int {
	switch l.kind {
	case levelNumber:
		if math.IsNaN(l.num) {
			return def
		}
		return int(l.num)
	case levelString:
		if n, ok := leadingInt(strings.TrimSpace(l.raw)); ok {
			return n
		}
	}
	return def
}

// UnmarshalJSON accepts a JSON number or string.
func (l *Level) UnmarshalJSON(data []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	*l = LevelOf(v)
	return nil
}

// MarshalJSON writes the level in its original form.
func (l Level) MarshalJSON() ([]byte, error) {
	switch l.kind {
	case levelNumber:
		return json.Marshal(l.num)
	case levelString:
		return json.Marshal(l.raw)
	}
	return []byte("null"), nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (l *Level) UnmarshalTOML(v any) error {
	*l = LevelOf(v)
	return nil
}

// UnmarshalYAML implements the yaml.v3 legacy unmarshaler interface.
func (l *Level) UnmarshalYAML(unmarshal func(any) error) error {
	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}
	*l = LevelOf(v)
	return nil
}

// leadingInt parses an optional sign followed by decimal digits, ignoring
// anything after the digits.
func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Skill is one input node.
type Skill struct {
	Name        string  `json:"name" toml:"name" yaml:"name"`
	Level       Level   `json:"level" toml:"level" yaml:"level"`
	Group       string  `json:"group,omitempty" toml:"group" yaml:"group"`
	Description string  `json:"description,omitempty" toml:"description" yaml:"description"`
	Size        float64 `json:"size,omitempty" toml:"size" yaml:"size"`
}

// GroupKey returns the skill's group, or DefaultGroup when empty.
func (s Skill) GroupKey() string {
	if s.Group == "" {
		return DefaultGroup
	}
	return s.Group
}

// DescriptionOrDefault returns the description shown for the skill.
func (s Skill) DescriptionOrDefault() string {
	if s.Description != "" {
		return s.Description
	}
	return "Professional experience with " + s.Name
}

// DefaultSize is the size given to skills that arrive without one:
// 34 + pct*0.18, with pct = 60 when the level is zero or cannot be read.
func DefaultSize(l Level) float64 {
	p := l.percent(60)
	if p == 0 {
		p = 60
	}
	return 34 + float64(p)*0.18
}

func (s Skill) visualSize() float64 {
	if s.Size > 0 {
		return s.Size
	}
	return defaultSkillSize
}

// DefaultStrength is used for relationships without a strength.
const DefaultStrength = 0.6

// Relationship is a weighted, undirected link between two skills.
type Relationship struct {
	Source   string   `json:"source" toml:"source" yaml:"source"`
	Target   string   `json:"target" toml:"target" yaml:"target"`
	Strength *float64 `json:"strength,omitempty" toml:"strength" yaml:"strength"`
}

// StrengthOrDefault returns the strength clamped to [0, 1].
func (r Relationship) StrengthOrDefault() float64 {
	if r.Strength == nil || math.IsNaN(*r.Strength) {
		return DefaultStrength
	}
	return clamp(*r.Strength, 0, 1)
}

// Strength returns a pointer suitable for Relationship.Strength.
func Strength(v float64) *float64 { return &v }

// Dataset is a complete set of skills and relationships.
type Dataset struct {
	Skills        []Skill        `json:"skills" toml:"skills" yaml:"skills"`
	Relationships []Relationship `json:"relationships" toml:"relationships" yaml:"relationships"`
}

// nameKey returns the comparison key of a skill name. Names are compared
// in Unicode NFC so that composed and decomposed spellings match.
func nameKey(name string) string {
	return norm.NFC.String(name)
}

// UniqueSkills returns the skills with duplicate names removed, keeping
// the first occurrence.
func (d Dataset) UniqueSkills() []Skill {
	seen := make(map[string]bool, len(d.Skills))
	out := make([]Skill, 0, len(d.Skills))
	for _, s := range d.Skills {
		k := nameKey(s.Name)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
	}
	return out
}

// ResolvedRelationships returns the relationships whose endpoints both
// name an existing skill, with strengths defaulted and clamped. Dangling
// relationships are dropped without error.
func (d Dataset) ResolvedRelationships() []Relationship {
	names := make(map[string]bool, len(d.Skills))
	for _, s := range d.Skills {
		names[nameKey(s.Name)] = true
	}
	out := make([]Relationship, 0, len(d.Relationships))
	for _, r := range d.Relationships {
		if !names[nameKey(r.Source)] || !names[nameKey(r.Target)] {
			continue
		}
		out = append(out, Relationship{
			Source:   r.Source,
			Target:   r.Target,
			Strength: Strength(r.StrengthOrDefault()),
		})
	}
	return out
}
