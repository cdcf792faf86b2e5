package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mailgate/internal/capabilities"
	"mailgate/internal/config"
	"mailgate/internal/email"
	"mailgate/internal/registry"
	"mailgate/internal/server"
	"mailgate/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	serveTransport string
	serveHost      string
	servePort      int
	serveDebug     bool
)

// serveCmd starts the MCP server with all capabilities registered.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the mailgate MCP server",
	Long: `Starts the mailgate MCP server and exposes its capabilities to MCP clients.

Transports:
  stdio           - Serve over standard input/output (default; for editor integrations).
  sse             - Serve over HTTP with Server-Sent Events.
  streamable-http - Serve over the streamable HTTP transport.

For the HTTP transports, the send_email tool reads the Resend API key from
the request headers of each invocation: X-Resend-API-Key, X-API-Key, or
Authorization: Bearer <key>. No key is ever configured on the server side.

Configuration:
  mailgate loads configuration from .mailgate/config.yaml in the current
  directory or from ~/.config/mailgate/config.yaml. Command-line flags
  override file settings.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// runServe is the main entry point for the serve command
func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Flags override file configuration when set
	if cmd.Flags().Changed("transport") {
		cfg.Server.Transport = serveTransport
	}
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}

	level := logging.ParseLevel(cfg.Logging.Level)
	if serveDebug {
		level = logging.LevelDebug
	}
	// stdio transport owns stdout, so logs always go to stderr
	logging.Init(level, os.Stderr)

	reg := registry.New()
	client := email.NewClient(email.WithBaseURL(cfg.Email.BaseURL))
	if err := capabilities.Register(reg, client); err != nil {
		return fmt.Errorf("failed to register capabilities: %w", err)
	}

	srv := server.New(cfg.Server, reg, rootCmd.Version)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

// init registers the serve command and its flags with the root command.
func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveTransport, "transport", config.TransportStdio, "Transport to use (stdio, sse, streamable-http)")
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to bind to for HTTP transports")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on for HTTP transports")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
}
