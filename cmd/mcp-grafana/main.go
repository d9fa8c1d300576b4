package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/obsmcp/mcp-grafana/internal/grafana"
	"github.com/obsmcp/mcp-grafana/internal/prompts"
	"github.com/obsmcp/mcp-grafana/internal/resources"
	"github.com/obsmcp/mcp-grafana/internal/tools"
)

const version = "0.1.0"

func newServer(c *grafana.Client, settings grafana.Settings) *server.MCPServer {
	s := server.NewMCPServer(
		"mcp-grafana",
		version,
	)
	tools.RegisterMCPTools(s, c, settings)
	resources.RegisterMCPResources(s, c)
	prompts.RegisterMCPPrompts(s)
	return s
}

func run(transport, addr string) error {
	settings, err := grafana.LoadSettings()
	if err != nil {
		return err
	}

	// Log to stderr: stdout belongs to the stdio transport.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	logger.Info("starting mcp-grafana",
		"version", version,
		"grafana_url", settings.URL,
		"api_key_set", settings.APIKey != "",
	)

	c := grafana.NewClient(settings)
	s := newServer(c, settings)

	switch transport {
	case "stdio":
		srv := server.NewStdioServer(s)
		return srv.Listen(context.Background(), os.Stdin, os.Stdout)
	case "sse":
		srv := server.NewSSEServer(s)
		logger.Info("SSE server listening", "address", addr)
		if err := srv.Start(addr); err != nil {
			return fmt.Errorf("SSE server: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("invalid transport type: %s (must be 'stdio' or 'sse')", transport)
	}
}

func main() {
	var transport string
	flag.StringVar(&transport, "t", "stdio", "Transport type (stdio or sse)")
	flag.StringVar(&transport, "transport", "stdio", "Transport type (stdio or sse)")
	addr := flag.String("sse-address", "localhost:8000", "The host and port to start the sse server on")
	flag.Parse()

	if err := run(transport, *addr); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
