// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/constellation"
	"github.com/gogpu/constellation/internal/dataset"
)

func inspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarise the dataset the graph would use",
		Long: "Resolves the data source the same way the graph does (API first,\n" +
			"then --data or the built-in skills) and prints skills and links.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := prepare(cmd)
			if err != nil {
				return err
			}
			return runInspect(cmd, cfg)
		},
	}
	addGraphFlags(cmd.Flags())
	cmd.Flags().String("export", "", "also print the resolved dataset as json, toml or yaml")
	return cmd
}

func runInspect(cmd *cobra.Command, cfg config) error {
	out := cmd.OutOrStdout()
	fallback, err := fallbackDataset(cfg)
	if err != nil {
		return err
	}
	var api *constellation.APIConfig
	if cfg.API != "" {
		api = &constellation.APIConfig{URL: cfg.API}
		if cfg.APIFormat == "portfolio" {
			api.Transform = constellation.PortfolioTransform
		}
	}
	load := constellation.LoadDataset(cmd.Context(), api, fallback)

	fmt.Fprintf(out, "%s %s\n\n", brand.Sprint("constellation"), subtle.Sprint("dataset summary"))
	fmt.Fprintf(out, "  Source:  %s %s\n", statusIcon(load.Source == constellation.SourceRemote), load.Source)
	if load.Reason != nil {
		fmt.Fprintf(out, "  Reason:  %s\n", warn.Sprint(load.Reason))
	}

	skills := load.Dataset.UniqueSkills()
	dropped := len(load.Dataset.Skills) - len(skills)
	edges := load.Dataset.ResolvedRelationships()
	dangling := len(load.Dataset.Relationships) - len(edges)
	fmt.Fprintf(out, "  Skills:  %d (%d duplicate names dropped)\n", len(skills), dropped)
	fmt.Fprintf(out, "  Links:   %d (%d dangling dropped)\n\n", len(edges), dangling)

	rows := make([][]string, 0, len(skills))
	for _, s := range skills {
		size := s.Size
		if size <= 0 {
			size = constellation.DefaultSize(s.Level)
		}
		rows = append(rows, []string{
			s.Name,
			groupTitle(s.GroupKey()),
			s.Level.String(),
			strconv.FormatFloat(size, 'f', 0, 64),
			truncate(s.DescriptionOrDefault(), 48),
		})
	}
	slices.SortStableFunc(rows, func(a, b []string) int { return cmp.Compare(a[1], b[1]) })
	table(out, []string{"Skill", "Group", "Level", "Size", "Description"}, rows)

	if len(edges) > 0 {
		fmt.Fprintln(out)
		rows = rows[:0]
		for _, e := range edges {
			rows = append(rows, []string{e.Source, "↔", e.Target, strconv.FormatFloat(e.StrengthOrDefault(), 'f', 2, 64)})
		}
		table(out, []string{"Source", "", "Target", "Strength"}, rows)
	}

	if format, _ := cmd.Flags().GetString("export"); format != "" {
		data, err := dataset.Encode(constellation.Dataset{Skills: skills, Relationships: edges}, dataset.Format(format))
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, string(data))
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}
