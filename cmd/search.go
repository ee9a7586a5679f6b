package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotify-mcp/internal/search"
	"github.com/desertthunder/spotify-mcp/internal/shared"
	"github.com/urfave/cli/v3"
)

// SearchCatalog runs the two-tier search and prints the result set as JSON.
func (r *Runner) SearchCatalog(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	client, err := r.authedClient(ctx)
	if err != nil {
		return err
	}

	engine := search.NewEngine(client, r.config.Search, r.logger)

	results, err := engine.Search(ctx, query, cmd.String("type"), cmd.Int("limit"))
	if err != nil {
		return err
	}

	return r.writeJSON(results, cmd.Bool("pretty"))
}
