// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gogpu/constellation"
)

// envPrefix prefixes the environment variables read by the CLI, so that
// --log-level can also be set as CONSTELLATION_LOG_LEVEL.
const envPrefix = "CONSTELLATION"

// config is the merged result of flags, environment and config file.
type config struct {
	LogLevel      string  `mapstructure:"log-level" validate:"oneof=debug info warn error"`
	Data          string  `mapstructure:"data" validate:"omitempty,file"`
	API           string  `mapstructure:"api" validate:"omitempty,url"`
	APIFormat     string  `mapstructure:"api-format" validate:"oneof=raw portfolio"`
	Width         float64 `mapstructure:"width" validate:"gt=0,lte=8192"`
	Height        float64 `mapstructure:"height" validate:"gt=0,lte=8192"`
	Ratio         float64 `mapstructure:"ratio" validate:"gte=1,lte=4"`
	Seed          int64   `mapstructure:"seed"`
	Dark          bool    `mapstructure:"dark"`
	ReducedMotion bool    `mapstructure:"reduced-motion"`
	Filter        string  `mapstructure:"filter" validate:"omitempty,max=64"`
	MaxParticles  int     `mapstructure:"max-particles" validate:"gte=0,lte=10000"`

	Render renderConfig `mapstructure:",squash"`
	Serve  serveConfig  `mapstructure:",squash"`
}

type renderConfig struct {
	Target string `mapstructure:"target"`
	Out    string `mapstructure:"out"`
	Frames int    `mapstructure:"frames" validate:"gte=1,lte=100000"`
	Stride int    `mapstructure:"stride" validate:"gte=0"`
}

type serveConfig struct {
	Addr    string   `mapstructure:"addr" validate:"omitempty,hostname_port"`
	FPS     float64  `mapstructure:"fps" validate:"gte=0,lte=240"`
	Origins []string `mapstructure:"origins" validate:"dive,required"`
	Panel   float64  `mapstructure:"panel" validate:"gte=0"`
}

func defaultConfig() config {
	return config{
		LogLevel:  "warn",
		APIFormat: "raw",
		Width:     800,
		Height:    500,
		Ratio:     1,
		Render:    renderConfig{Target: "memory", Out: "constellation.png", Frames: 120, Stride: 1},
		Serve:     serveConfig{Addr: "localhost:8080", FPS: 30},
	}
}

// addGraphFlags registers the flags shared by every command that builds a
// graph.
func addGraphFlags(fs *pflag.FlagSet) {
	d := defaultConfig()
	fs.String("data", d.Data, "dataset file (.json, .toml, .yaml); defaults to the built-in skills")
	fs.String("api", d.API, "URL of a JSON API providing the skills")
	fs.String("api-format", d.APIFormat, "API payload shape: raw or portfolio")
	fs.Float64("width", d.Width, "graph width in CSS pixels")
	fs.Float64("height", d.Height, "graph height in CSS pixels")
	fs.Float64("ratio", d.Ratio, "device pixel ratio (capped at 2)")
	fs.Int64("seed", d.Seed, "random seed; 0 picks one")
	fs.Bool("dark", d.Dark, "render label backgrounds for dark mode")
	fs.Bool("reduced-motion", d.ReducedMotion, "disable drift, pulse, glow and the progress sweep; link particles keep flowing")
	fs.String("filter", d.Filter, "initial category filter")
	fs.Int("max-particles", d.MaxParticles, "cap on live link particles; 0 keeps the default")
}

// loadConfig merges defaults, the optional config file, CONSTELLATION_*
// variables and the flags of cmd, then validates the result.
func loadConfig(cmd *cobra.Command) (config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg := defaultConfig()
	setDefaults(v, cfg)

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return cfg, fmt.Errorf("bind flags: %w", err)
	}
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, c config) {
	for k, val := range map[string]any{
		"log-level":      c.LogLevel,
		"api-format":     c.APIFormat,
		"width":          c.Width,
		"height":         c.Height,
		"ratio":          c.Ratio,
		"target":         c.Render.Target,
		"out":            c.Render.Out,
		"frames":         c.Render.Frames,
		"stride":         c.Render.Stride,
		"addr":           c.Serve.Addr,
		"fps":            c.Serve.FPS,
		"max-particles":  c.MaxParticles,
		"reduced-motion": c.ReducedMotion,
	} {
		v.SetDefault(k, val)
	}
}

var validate = validator.New()

func validateConfig(c config) error {
	err := validate.Struct(c)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (%s)", strings.ToLower(e.Field()), e.Tag(), e.Param()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// setupLogging installs a text handler at level on both the default slog
// logger and the constellation package logger.
func setupLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	constellation.SetLogger(logger)
}
