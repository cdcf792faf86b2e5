// Package server exposes the capability registry over the MCP protocol on
// stdio, SSE, or streamable HTTP transports.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"mailgate/internal/config"
	"mailgate/internal/metadata"
	"mailgate/internal/registry"
	"mailgate/pkg/logging"

	"github.com/mark3labs/mcp-go/server"
)

const shutdownTimeout = 5 * time.Second

// Server wraps an MCP server configured from the capability registry.
type Server struct {
	cfg config.ServerConfig
	mcp *server.MCPServer
}

// New builds the MCP server and registers every capability from the
// registry. The registry must be fully populated; it is read-only from here
// on.
func New(cfg config.ServerConfig, reg *registry.Registry, version string) *Server {
	m := server.NewMCPServer(
		"mailgate",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
	)

	registerCapabilities(m, reg)

	return &Server{cfg: cfg, mcp: m}
}

// Run serves until ctx is cancelled or the transport fails.
func (s *Server) Run(ctx context.Context) error {
	switch s.cfg.Transport {
	case config.TransportStdio:
		return s.runStdio(ctx)
	case config.TransportSSE:
		return s.runSSE(ctx)
	case config.TransportStreamableHTTP:
		return s.runStreamableHTTP(ctx)
	default:
		return fmt.Errorf("unknown transport %q", s.cfg.Transport)
	}
}

func (s *Server) runStdio(ctx context.Context) error {
	logging.Info("Server", "Serving MCP over stdio")
	stdio := server.NewStdioServer(s.mcp)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

func (s *Server) runSSE(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	baseURL := fmt.Sprintf("http://%s", addr)

	sse := server.NewSSEServer(
		s.mcp,
		server.WithBaseURL(baseURL),
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
		server.WithKeepAlive(true),
		server.WithSSEContextFunc(withHeaderMetadata),
	)

	logging.Info("Server", "Serving MCP over SSE on %s", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := sse.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logging.Info("Server", "Shutting down SSE server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return sse.Shutdown(shutdownCtx)
	}
}

func (s *Server) runStreamableHTTP(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	httpServer := server.NewStreamableHTTPServer(
		s.mcp,
		server.WithHTTPContextFunc(withHeaderMetadata),
	)

	logging.Info("Server", "Serving MCP over streamable HTTP on %s", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logging.Info("Server", "Shutting down streamable HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

// withHeaderMetadata snapshots the incoming request's headers into the
// invocation context so handlers can read caller-supplied credentials.
// Attached to both HTTP transports; stdio invocations see an empty bag.
func withHeaderMetadata(ctx context.Context, r *http.Request) context.Context {
	return metadata.NewContext(ctx, metadata.FromHTTPHeader(r.Header))
}
