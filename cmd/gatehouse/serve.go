package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/gatehouse"
	"github.com/aretw0/gatehouse/internal/logging"
	"github.com/aretw0/gatehouse/internal/presentation/tui"
	"github.com/aretw0/gatehouse/pkg/adapters/mcp"
	"github.com/aretw0/gatehouse/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP tool gateway",
	Long: `Starts gatehouse as an MCP server.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- http: Streamable HTTP at /mcp plus SSE at /sse. Ideal for remote agents.`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")

		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if cmd.Flags().Changed("addr") {
			cfg.Server.HTTPAddr, _ = cmd.Flags().GetString("addr")
		}

		// Logs go to stderr so the stdio transport keeps stdout for JSON-RPC.
		logger := buildLogger(cfg)

		opts := []gatehouse.Option{gatehouse.WithLogger(logger)}
		var metricsHandler http.Handler
		if cfg.Server.Metrics {
			registry := prometheus.NewRegistry()
			opts = append(opts, gatehouse.WithMetrics(registry))
			metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
		}

		gw, err := gatehouse.New(cfg, opts...)
		if err != nil {
			fmt.Printf("Error initializing gatehouse: %v\n", err)
			os.Exit(1)
		}
		defer gw.Close()

		warnUnconfigured(logger, cfg)

		srvOpts := []mcp.Option{
			mcp.WithLogger(logger),
			mcp.WithVersion(gatehouse.Version),
		}
		if auth := gw.Authenticator(); auth != nil {
			srvOpts = append(srvOpts, mcp.WithAuthenticator(auth))
		}
		if cfg.Auth.Identity.Subject != "" {
			srvOpts = append(srvOpts, mcp.WithDefaultIdentity(domain.Identity{
				Subject: cfg.Auth.Identity.Subject,
				Name:    cfg.Auth.Identity.Name,
				Email:   cfg.Auth.Identity.Email,
			}))
		}
		if metricsHandler != nil {
			srvOpts = append(srvOpts, mcp.WithMetricsHandler(metricsHandler))
		}
		if cfg.Server.BaseURL != "" {
			srvOpts = append(srvOpts, mcp.WithBaseURL(cfg.Server.BaseURL))
		}
		srv := mcp.NewServer(gw, srvOpts...)

		switch transport {
		case "stdio":
			logger.Info("starting gatehouse MCP server (stdio)", "version", gatehouse.Version)
			if err := srv.ServeStdio(); err != nil {
				logger.Error("MCP server execution failed", "err", err)
				os.Exit(1)
			}
		case "http":
			tui.PrintBanner(gatehouse.Version)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ListenAndServe(ctx, cfg.Server.HTTPAddr); err != nil {
				logger.Error("MCP server execution failed", "err", err)
				os.Exit(1)
			}
			logger.Info("gatehouse stopped gracefully")
		default:
			fmt.Printf("Unknown transport: %s. Supported: stdio, http\n", transport)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'http'")
	serveCmd.Flags().String("addr", "", "HTTP listen address (overrides server.http_addr)")
}

func buildLogger(cfg gatehouse.Config) *slog.Logger {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	logger := logging.New(logging.Options{Level: level, JSON: cfg.Logging.Format == "json"})
	if err != nil {
		logger.Warn("invalid log level, using info", "err", err)
	}
	return logger
}

// warnUnconfigured flags catalog entries whose upstream endpoint is unset.
// They stay listed and fail with upstream faults when called.
func warnUnconfigured(logger *slog.Logger, cfg gatehouse.Config) {
	if cfg.Tools.UserAPIURL == "" {
		logger.Warn("tools.user_api_url is not set, userInfo calls will fail")
	}
	if cfg.Tools.ImageAPIURL == "" {
		logger.Warn("tools.image_api_url is not set, generateImage calls will fail")
	}
	if cfg.Tools.PriceAPIURL == "" {
		logger.Warn("tools.price_api_url is not set, get_price calls will fail")
	}
	if len(cfg.Tools.ImageAllowlist) == 0 {
		logger.Info("tools.image_allowlist is empty, generateImage is hidden from every identity")
	}
}
