// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package dataset reads skill datasets from JSON, TOML or YAML files and
// ships the default dataset used when no source is configured.
package dataset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/constellation"
)

//go:embed default.toml
var defaultTOML []byte

// Format is a dataset file encoding.
type Format string

// Supported formats.
const (
	JSON Format = "json"
	TOML Format = "toml"
	YAML Format = "yaml"
)

// ErrUnknownFormat is returned for file extensions without a decoder.
var ErrUnknownFormat = errors.New("dataset: unknown format")

// Default returns the built-in dataset: seven skills in three groups and
// six relationships. It panics only if the embedded file is malformed.
func Default() constellation.Dataset {
	d, err := Parse(defaultTOML, TOML)
	if err != nil {
		panic(fmt.Sprintf("dataset: embedded default: %v", err))
	}
	return d
}

// FormatOf returns the format implied by a file name.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Load reads a dataset file, choosing the decoder by extension.
func Load(path string) (constellation.Dataset, error) {
	format, err := FormatOf(path)
	if err != nil {
		return constellation.Dataset{}, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return constellation.Dataset{}, fmt.Errorf("dataset: %w", err)
	}
	d, err := Parse(data, format)
	if err != nil {
		return constellation.Dataset{}, fmt.Errorf("dataset: %s: %w", path, err)
	}
	return d, nil
}

// Parse decodes a dataset in the given format.
func Parse(data []byte, format Format) (constellation.Dataset, error) {
	var d constellation.Dataset
	var err error
	switch format {
	case JSON:
		err = json.Unmarshal(data, &d)
	case TOML:
		_, err = toml.NewDecoder(bytes.NewReader(data)).Decode(&d)
	case YAML:
		err = yaml.Unmarshal(data, &d)
	default:
		return d, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return constellation.Dataset{}, err
	}
	return d, nil
}

// Encode writes d in the given format. Levels keep their original form.
func Encode(d constellation.Dataset, format Format) ([]byte, error) {
	switch format {
	case JSON:
		return json.MarshalIndent(d, "", "  ")
	case YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(view(d)); err != nil {
			return nil, err
		}
		return buf.Bytes(), enc.Close()
	case TOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(view(d)); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// fileSkill is the encoder-neutral shape of a skill. The level is stored
// as it was given: a number or a string.
type fileSkill struct {
	Name        string  `toml:"name" yaml:"name"`
	Level       any     `toml:"level,omitempty" yaml:"level,omitempty"`
	Group       string  `toml:"group,omitempty" yaml:"group,omitempty"`
	Description string  `toml:"description,omitempty" yaml:"description,omitempty"`
	Size        float64 `toml:"size,omitempty" yaml:"size,omitempty"`
}

type fileRelationship struct {
	Source   string   `toml:"source" yaml:"source"`
	Target   string   `toml:"target" yaml:"target"`
	Strength *float64 `toml:"strength,omitempty" yaml:"strength,omitempty"`
}

type fileDataset struct {
	Skills        []fileSkill        `toml:"skills" yaml:"skills"`
	Relationships []fileRelationship `toml:"relationships" yaml:"relationships"`
}

func view(d constellation.Dataset) fileDataset {
	out := fileDataset{
		Skills:        make([]fileSkill, len(d.Skills)),
		Relationships: make([]fileRelationship, len(d.Relationships)),
	}
	for i, s := range d.Skills {
		out.Skills[i] = fileSkill{
			Name:        s.Name,
			Level:       s.Level.Value(),
			Group:       s.Group,
			Description: s.Description,
			Size:        s.Size,
		}
	}
	for i, r := range d.Relationships {
		out.Relationships[i] = fileRelationship(r)
	}
	return out
}
