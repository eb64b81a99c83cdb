package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"network-monitor/internal/config"
	"network-monitor/internal/download"
	"network-monitor/internal/httpapi"
	"network-monitor/internal/manifest"
	"network-monitor/internal/monitor"
	"network-monitor/internal/network"
)

const shutdownTimeout = 5 * time.Second

func newRunCmd(c *cli) *cobra.Command {
	var refresh bool
	var requestLog string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load the network, follow the passenger feed and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			log, err := c.logger()
			if err != nil {
				return err
			}
			httpapi.SetRequestLogLevel(requestLog)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, refresh, log)
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh-layout", false, "Download the layout even if the file exists")
	cmd.Flags().StringVar(&requestLog, "request-log-level", "info", "HTTP request logging: off|error|info|debug")
	return cmd
}

func monitorConfig(cfg config.Config, refresh bool, log *zerolog.Logger) monitor.Config {
	return monitor.Config{
		Host:           cfg.ServerURL,
		Port:           cfg.ServerPort,
		Endpoint:       cfg.Endpoint,
		Destination:    cfg.Destination,
		Username:       cfg.Username,
		Password:       cfg.Password,
		CAFile:         cfg.CACertFile,
		LayoutURL:      cfg.LayoutURL,
		LayoutFile:     cfg.LayoutFile,
		RefreshLayout:  refresh,
		ReconnectDelay: cfg.ReconnectDelay(),
		Logger:         log,
	}
}

// serve runs the monitor and the HTTP server until ctx is done or either fails.
func serve(ctx context.Context, cfg config.Config, refresh bool, log zerolog.Logger) error {
	mon := monitor.New(monitorConfig(cfg, refresh, &log))
	if err := mon.Init(ctx); err != nil {
		return fmt.Errorf("init: %w", err)
	}

	httpapi.SetLogger(log)
	httpapi.SetCORSOptions(len(cfg.CORSOrigins) > 0, cfg.CORSOrigins, nil, nil)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(mon),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return mon.Run(gctx) })
	g.Go(func() error {
		log.Info().Str("addr", cfg.Addr).Str("endpoint", mon.Endpoint()).Msg("network-monitor listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			log.Warn().Err(err).Msg("graceful shutdown error")
		}
		return nil
	})
	return g.Wait()
}

func newDownloadCmd(c *cli) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the network layout and check that it builds",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			log, err := c.logger()
			if err != nil {
				return err
			}
			if out == "" {
				out = cfg.LayoutFile
			}
			opts := download.Options{CAFile: cfg.CACertFile, Logger: &log}
			if err := download.File(cmd.Context(), cfg.LayoutURL, out, opts); err != nil {
				return err
			}
			n, err := network.LoadLayout(out)
			if err != nil {
				return err
			}
			stations, lines := n.Size()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d stations, %d lines\n", out, stations, lines)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Destination path (defaults to the layout file)")
	return cmd
}

func newManifestCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Print the build manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := manifest.Default()
			if err := m.Validate(); err != nil {
				return err
			}
			return manifest.Encode(cmd.OutOrStdout(), m, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json|yaml|toml")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := manifest.Default()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", m.Name, m.Version)
			return err
		},
	}
}
