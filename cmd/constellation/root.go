// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"
)

var version = "0.3.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "constellation",
		Short: "Interactive skills constellation",
		Long: brand.Sprint("constellation") + " renders a force-directed graph of skills\n" +
			subtle.Sprint("Render frames offline, serve the live graph over HTTP, or inspect a dataset"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("constellation {{ .Version }}\n")
	root.PersistentFlags().String("config", "", "config file (toml, yaml or json)")
	root.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn or error")

	root.AddCommand(
		renderCmd(),
		serveCmd(),
		inspectCmd(),
		versionCmd(),
	)
	return root
}

// prepare loads the configuration of cmd and installs logging. It is
// the first step of every command that builds a graph.
func prepare(cmd *cobra.Command) (config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		bad.Fprintf(cmd.ErrOrStderr(), "constellation: %v\n", err)
		return cfg, err
	}
	setupLogging(cfg.LogLevel)
	return cfg, nil
}
