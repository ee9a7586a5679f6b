package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// PlaybackStatus prints the currently playing track as JSON.
func (r *Runner) PlaybackStatus(ctx context.Context, cmd *cli.Command) error {
	client, err := r.authedClient(ctx)
	if err != nil {
		return err
	}

	current, err := client.CurrentTrack(ctx)
	if err != nil {
		return err
	}
	if current == nil {
		return r.writePlain("No track playing.\n")
	}

	return r.writeJSON(current, true)
}

// PlaybackPlay starts playback of a URI, or resumes when none is given.
func (r *Runner) PlaybackPlay(ctx context.Context, cmd *cli.Command) error {
	client, err := r.authedClient(ctx)
	if err != nil {
		return err
	}

	uri := cmd.StringArg("uri")
	if err := client.StartPlayback(ctx, uri); err != nil {
		return err
	}

	if uri == "" {
		return r.writePlain("▶ Playback resumed\n")
	}
	return r.writePlain("▶ Playing %s\n", uri)
}

// PlaybackPause pauses the current playback session.
func (r *Runner) PlaybackPause(ctx context.Context, cmd *cli.Command) error {
	client, err := r.authedClient(ctx)
	if err != nil {
		return err
	}

	if err := client.PausePlayback(ctx); err != nil {
		return err
	}
	return r.writePlain("⏸ Playback paused\n")
}

// PlaybackNext skips forward the given number of tracks.
func (r *Runner) PlaybackNext(ctx context.Context, cmd *cli.Command) error {
	client, err := r.authedClient(ctx)
	if err != nil {
		return err
	}

	n := cmd.Int("count")
	if err := client.SkipTrack(ctx, n); err != nil {
		return err
	}
	return r.writePlain("⏭ Skipped\n")
}

// PlaybackPrevious skips back to the previous track.
func (r *Runner) PlaybackPrevious(ctx context.Context, cmd *cli.Command) error {
	client, err := r.authedClient(ctx)
	if err != nil {
		return err
	}

	if err := client.PreviousTrack(ctx); err != nil {
		return err
	}
	return r.writePlain("⏮ Previous track\n")
}

// PlaybackVolume sets the playback volume percentage.
func (r *Runner) PlaybackVolume(ctx context.Context, cmd *cli.Command) error {
	client, err := r.authedClient(ctx)
	if err != nil {
		return err
	}

	percent := cmd.IntArg("percent")
	if err := client.SetVolume(ctx, percent); err != nil {
		return err
	}
	return r.writePlain("🔊 Volume set to %d%%\n", percent)
}
