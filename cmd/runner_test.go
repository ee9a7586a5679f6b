package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/spotify-mcp/internal/shared"
	"github.com/urfave/cli/v3"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) != 5 {
			t.Fatalf("expected 5 top-level commands, got %d", len(commands))
		}

		names := map[string]bool{}
		for _, command := range commands {
			names[command.Name] = true
		}
		for _, want := range []string{"setup", "auth", "serve", "playback", "search"} {
			if !names[want] {
				t.Errorf("expected %s command to be registered", want)
			}
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writeJSON(map[string]string{"name": "Breathe"}, true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), `"name": "Breathe"`) {
			t.Errorf("unexpected output %q", output.String())
		}
		if !strings.HasSuffix(output.String(), "\n") {
			t.Error("expected trailing newline")
		}
	})
}

func TestSetup(t *testing.T) {
	t.Run("Creates Config File", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		app := &cli.Command{Commands: runner.register()}
		if err := app.Run(context.Background(), []string{"spotify-mcp", "setup", "--config", configPath}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Errorf("expected config file to exist: %v", err)
		}
		if !strings.Contains(output.String(), "Config written") {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("Refuses Overwrite", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("# existing"), 0644); err != nil {
			t.Fatal(err)
		}

		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})
		app := &cli.Command{Commands: runner.register()}
		if err := app.Run(context.Background(), []string{"spotify-mcp", "setup", "--config", configPath}); err == nil {
			t.Error("expected error for existing config file")
		}
	})
}

func TestAuthStatus(t *testing.T) {
	t.Run("No Cached Token", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Auth.TokenPath = filepath.Join(t.TempDir(), "token.json")

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Config: config, Output: output})

		app := &cli.Command{Commands: runner.register()}
		if err := app.Run(context.Background(), []string{"spotify-mcp", "auth", "status"}); err != nil {
			t.Fatalf("status must not fail without a token: %v", err)
		}
		if !strings.Contains(output.String(), "No cached token") {
			t.Errorf("unexpected output %q", output.String())
		}
	})
}
