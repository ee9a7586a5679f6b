package main

import (
	"context"

	"github.com/desertthunder/spotify-mcp/internal/mcptools"
	"github.com/desertthunder/spotify-mcp/internal/queue"
	"github.com/desertthunder/spotify-mcp/internal/search"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the MCP server over stdio.
//
// stdout carries the protocol stream; all logging goes to stderr.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	client, err := r.authedClient(ctx)
	if err != nil {
		return err
	}

	engine := search.NewEngine(client, r.config.Search, r.logger)
	orchestrator := queue.NewOrchestrator(client, r.logger)
	dispatcher := mcptools.NewDispatcher(client, engine, orchestrator, r.logger)

	mcpServer := server.NewMCPServer(
		"spotify-mcp",
		cmd.Root().Version,
		server.WithToolCapabilities(true),
	)
	mcptools.Register(mcpServer, dispatcher)

	r.logger.Info("serving MCP tools over stdio")
	return server.ServeStdio(mcpServer)
}
