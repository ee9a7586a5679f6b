package main

import "github.com/urfave/cli/v3"

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a config.toml from the bundled template",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles the OAuth login flow and token cache inspection.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Spotify authentication",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authorize with Spotify via the browser and cache the token",
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Check the cached token's validity",
				Action: r.AuthStatus,
			},
		},
	}
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Serve the MCP tools over stdio",
		Action: r.Serve,
	}
}

// playbackCommand groups direct playback control for use outside an MCP host.
func playbackCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "playback",
		Usage: "Control Spotify playback",
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show the currently playing track",
				Action: r.PlaybackStatus,
			},
			{
				Name:  "play",
				Usage: "Start or resume playback",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "uri"},
				},
				Action: r.PlaybackPlay,
			},
			{
				Name:   "pause",
				Usage:  "Pause playback",
				Action: r.PlaybackPause,
			},
			{
				Name:  "next",
				Usage: "Skip forward",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "count",
						Aliases: []string{"n"},
						Usage:   "Number of tracks to skip",
						Value:   1,
					},
				},
				Action: r.PlaybackNext,
			},
			{
				Name:   "previous",
				Usage:  "Skip back to the previous track",
				Action: r.PlaybackPrevious,
			},
			{
				Name:  "volume",
				Usage: "Set the playback volume (0-100)",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "percent"},
				},
				Action: r.PlaybackVolume,
			},
		},
	}
}

func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search tracks, albums, artists or playlists",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Kind of items to search for (track, album, artist, playlist)",
				Value:   "track",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "Maximum number of items to return",
				Value:   10,
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
		},
		Action: r.SearchCatalog,
	}
}
