package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotify-mcp/internal/shared"
	"github.com/desertthunder/spotify-mcp/internal/spotify"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	client *spotify.Client
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Client *spotify.Client
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		client: opts.Client,
		logger: opts.Logger,
		output: opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, serveCommand, playbackCommand, searchCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// authedClient returns a Spotify client authenticated from the cached token.
//
// The refresh callback writes rotated tokens back to the cache file so a later
// invocation picks them up.
func (r *Runner) authedClient(ctx context.Context) (*spotify.Client, error) {
	if r.client != nil {
		return r.client, nil
	}

	client, err := spotify.NewClient(r.config.Credentials.Spotify.Map(), r.logger)
	if err != nil {
		return nil, err
	}

	tokenPath, err := r.config.TokenPath()
	if err != nil {
		return nil, err
	}

	token, err := spotify.LoadToken(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("%w: run 'spotify-mcp auth login' first", shared.ErrNotAuthenticated)
	}

	client.SetTokenRefreshCallback(func(refreshed *oauth2.Token) {
		if err := spotify.SaveToken(tokenPath, refreshed); err != nil {
			r.logger.Warn("failed to persist refreshed token", "error", err)
		}
	})

	if err := client.Authenticate(ctx, token); err != nil {
		return nil, err
	}

	r.client = client
	return client, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
