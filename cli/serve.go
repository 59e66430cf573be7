package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	otelapi "go.opentelemetry.io/otel"

	"github.com/opensvm/osvm-mcp/audit"
	"github.com/opensvm/osvm-mcp/config"
	"github.com/opensvm/osvm-mcp/gateway"
	osvmotel "github.com/opensvm/osvm-mcp/otel"
	"github.com/opensvm/osvm-mcp/server"
	"github.com/opensvm/osvm-mcp/tools"
)

// ServerName identifies this server to MCP clients.
const ServerName = "osvm-mcp"

// Version is set by main from the build-time version.
var Version = "dev"

// NewServeCmd creates the "serve" subcommand: the stdio MCP serving loop.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the MCP protocol over stdio",
		Long: "Serve reads newline-delimited JSON-RPC requests on stdin and writes\n" +
			"responses on stdout. Logs go to stderr. Credentials come from the\n" +
			"OPENSVM_API_KEY and OPENSVM_JWT_TOKEN environment variables.",
		RunE: runServe,
	}

	cmd.Flags().String("config", "", "Path to YAML config file (default: ./osvm-mcp.yaml, then ~/.osvm-mcp/config.yaml)")
	cmd.Flags().String("base-url", "", "Backend API root (overrides config and OPENSVM_BASE_URL)")
	cmd.Flags().Int("timeout", 0, "Backend timeout in seconds (default 30)")
	cmd.Flags().String("audit-db", "", "Path to a SQLite file recording every tool call")
	cmd.Flags().String("otel-endpoint", "", "OTLP/HTTP endpoint for trace export")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	baseURL, _ := cmd.Flags().GetString("base-url")
	timeoutSeconds, _ := cmd.Flags().GetInt("timeout")
	auditDB, _ := cmd.Flags().GetString("audit-db")
	otelEndpoint, _ := cmd.Flags().GetString("otel-endpoint")

	// stdout carries the protocol; all logging goes to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		return exitError(exitConfig, "loading config: %v", err)
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if timeoutSeconds > 0 {
		cfg.TimeoutSeconds = timeoutSeconds
	}

	gw, err := gateway.NewClient(gateway.Config{
		BaseURL:  cfg.BaseURL,
		APIKey:   cfg.APIKey,
		JWTToken: cfg.JWTToken,
		Timeout:  cfg.Timeout(),
	})
	if err != nil {
		return exitError(exitConfig, "creating backend client: %v", err)
	}

	registry := tools.NewRegistry()
	dispatcher := tools.NewDispatcher(registry, gw)

	var auditStore *audit.Store
	if auditDB != "" {
		auditStore, err = audit.Open(auditDB)
		if err != nil {
			return exitError(exitConfig, "opening audit store: %v", err)
		}
		defer func() {
			_ = auditStore.Close()
		}()
	}

	if otelEndpoint != "" {
		shutdown, err := osvmotel.SetupTracing(cmd.Context(), otelEndpoint, ServerName)
		if err != nil {
			return exitError(exitConfig, "initializing trace export: %v", err)
		}
		defer func() {
			_ = shutdown(context.Background())
		}()
	}

	observer, err := osvmotel.NewDispatchObserver(
		otelapi.GetMeterProvider().Meter("osvm-mcp/tools"),
		otelapi.GetTracerProvider().Tracer("osvm-mcp/tools"),
	)
	if err != nil {
		return exitError(exitRuntime, "initializing dispatch observability: %v", err)
	}
	tools.SetObserver(observer)
	defer tools.SetObserver(nil)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Name:       ServerName,
		Version:    Version,
		Registry:   registry,
		Dispatcher: dispatcher,
		In:         os.Stdin,
		Out:        os.Stdout,
		Logger:     logger,
		Audit:      auditStore,
	})

	if err := srv.Run(ctx); err != nil {
		return exitError(exitRuntime, "server error: %v", err)
	}
	return nil
}
