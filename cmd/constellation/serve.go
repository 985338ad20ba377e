// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/constellation"
	"github.com/gogpu/constellation/internal/server"
	"github.com/gogpu/constellation/surface"
)

const shutdownTimeout = 5 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the graph and serve it over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := prepare(cmd)
			if err != nil {
				return err
			}
			return runServe(cmd, cfg)
		},
	}
	addGraphFlags(cmd.Flags())
	d := defaultConfig().Serve
	cmd.Flags().String("addr", d.Addr, "listen address")
	cmd.Flags().Float64("fps", d.FPS, "animation frame rate")
	cmd.Flags().StringSlice("origins", d.Origins, "allowed CORS origins; empty allows any")
	cmd.Flags().Float64("panel", d.Panel, "details panel height in CSS pixels")
	return cmd
}

func runServe(cmd *cobra.Command, cfg config) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	target := surface.NewMemoryTarget(cfg.Width, cfg.Ratio)
	target.SetReducedMotion(cfg.ReducedMotion)
	target.SetClass(surface.DarkClass, cfg.Dark)

	panel := server.NewPanel(cfg.Serve.Panel)
	g, err := newGraph(ctx, cfg, target,
		constellation.WithDetails(panel),
		constellation.WithScheduler(constellation.NewTickerScheduler(cfg.Serve.FPS)))
	if err != nil {
		return err
	}
	defer func() {
		if err := g.Dispose(); err != nil {
			slog.Warn("dispose graph", "err", err)
		}
	}()

	srv, err := server.New(server.Config{
		Graph:          g,
		Target:         target,
		Panel:          panel,
		Logger:         slog.Default(),
		AllowedOrigins: cfg.Serve.Origins,
	})
	if err != nil {
		return err
	}
	httpSrv := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Start()
	fmt.Fprintf(cmd.OutOrStdout(), "  %s serving %s on http://%s\n",
		statusIcon(true), brand.Sprint("constellation"), cfg.Serve.Addr)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		g.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}
