// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"

	"github.com/gogpu/constellation"
	"github.com/gogpu/constellation/internal/dataset"
	"github.com/gogpu/constellation/surface"
)

// fallbackDataset returns the dataset named by --data, or the built-in
// skills.
func fallbackDataset(cfg config) (constellation.Dataset, error) {
	if cfg.Data == "" {
		return dataset.Default(), nil
	}
	d, err := dataset.Load(cfg.Data)
	if err != nil {
		return constellation.Dataset{}, fmt.Errorf("load %s: %w", cfg.Data, err)
	}
	return d, nil
}

// graphOptions translates cfg into graph options. extra is appended last
// and wins over cfg.
func graphOptions(cfg config, extra ...constellation.Option) ([]constellation.Option, error) {
	fallback, err := fallbackDataset(cfg)
	if err != nil {
		return nil, err
	}
	opts := []constellation.Option{
		constellation.WithFallback(fallback),
		constellation.WithHeight(cfg.Height),
	}
	if cfg.API != "" {
		api := constellation.APIConfig{URL: cfg.API}
		if cfg.APIFormat == "portfolio" {
			api.Transform = constellation.PortfolioTransform
		}
		opts = append(opts, constellation.WithAPI(api))
	}
	if cfg.Seed != 0 {
		opts = append(opts, constellation.WithSeed(cfg.Seed))
	}
	if cfg.MaxParticles > 0 {
		opts = append(opts, constellation.WithMaxParticles(cfg.MaxParticles))
	}
	return append(opts, extra...), nil
}

// newGraph builds a graph on target and applies the initial filter.
func newGraph(ctx context.Context, cfg config, target surface.Target, extra ...constellation.Option) (*constellation.Graph, error) {
	opts, err := graphOptions(cfg, extra...)
	if err != nil {
		return nil, err
	}
	g, err := constellation.New(ctx, target, opts...)
	if err != nil {
		return nil, err
	}
	if cfg.Filter != "" {
		g.SetCategoryFilter(cfg.Filter)
	}
	return g, nil
}

func targetOptions(cfg config, dir string) surface.Options {
	return surface.Options{
		Width:         cfg.Width,
		PixelRatio:    cfg.Ratio,
		Dir:           dir,
		Stride:        cfg.Render.Stride,
		ReducedMotion: cfg.ReducedMotion,
		Dark:          cfg.Dark,
	}
}
