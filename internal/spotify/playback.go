package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/spotify-mcp/internal/shared"
)

// CurrentTrack retrieves the currently playing track, or nil when nothing is
// playing or the current item is not a track (podcast episode, ad).
func (c *Client) CurrentTrack(ctx context.Context) (*TrackSummary, error) {
	var current currentlyPlayingResponse
	if err := c.doRequest(ctx, http.MethodGet, "/me/player/currently-playing", nil, &current); err != nil {
		return nil, err
	}

	if current.Item == nil {
		c.logger.Info("no playback session found")
		return nil, nil
	}
	if current.CurrentlyPlayingType != "track" {
		c.logger.Info("current playback is not a track")
		return nil, nil
	}

	summary := summarizeTrack(*current.Item)
	playing := current.IsPlaying
	summary.IsPlaying = &playing

	return &summary, nil
}

// IsTrackPlaying reports whether a track is actively playing.
func (c *Client) IsTrackPlaying(ctx context.Context) bool {
	current, err := c.CurrentTrack(ctx)
	if err != nil || current == nil || current.IsPlaying == nil {
		return false
	}
	return *current.IsPlaying
}

// StartPlayback starts playback of a resource URI, or resumes the current
// session when rawURI is empty.
//
// Track URIs are sent as a uris list; albums, playlists and artists are sent
// as a context URI.
func (c *Client) StartPlayback(ctx context.Context, rawURI string) error {
	body := map[string]any{}

	if rawURI == "" {
		if c.IsTrackPlaying(ctx) {
			c.logger.Info("no uri provided and playback already active")
			return nil
		}
		current, err := c.CurrentTrack(ctx)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("%w: nothing to resume", shared.ErrNoPlayback)
		}
	} else {
		uri, err := ParseURI(rawURI)
		if err != nil {
			return err
		}
		if uri.Kind == KindTrack {
			body["uris"] = []string{uri.String()}
		} else {
			body["context_uri"] = uri.String()
		}
	}

	c.logger.Info("starting playback", "uri", rawURI)
	return c.doRequest(ctx, http.MethodPut, "/me/player/play", body, nil)
}

// PausePlayback pauses the current playback session if one is active.
func (c *Client) PausePlayback(ctx context.Context) error {
	if !c.IsTrackPlaying(ctx) {
		return nil
	}
	return c.doRequest(ctx, http.MethodPut, "/me/player/pause", nil, nil)
}

// SkipTrack skips forward n tracks, one round-trip per skip.
func (c *Client) SkipTrack(ctx context.Context, n int) error {
	if n <= 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		if err := c.doRequest(ctx, http.MethodPost, "/me/player/next", nil, nil); err != nil {
			return err
		}
	}
	return nil
}

// PreviousTrack skips back to the previous track.
func (c *Client) PreviousTrack(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodPost, "/me/player/previous", nil, nil)
}

// SetVolume sets the playback volume percentage (0-100).
func (c *Client) SetVolume(ctx context.Context, percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: volume must be between 0 and 100", shared.ErrInvalidArgument)
	}
	endpoint := fmt.Sprintf("/me/player/volume?volume_percent=%d", percent)
	return c.doRequest(ctx, http.MethodPut, endpoint, nil, nil)
}

// GetQueue retrieves the playback queue with the currently playing track.
func (c *Client) GetQueue(ctx context.Context) (*QueueState, error) {
	var response queueResponse
	if err := c.doRequest(ctx, http.MethodGet, "/me/player/queue", nil, &response); err != nil {
		return nil, fmt.Errorf("could not retrieve queue: %w", err)
	}

	state := &QueueState{Queue: make([]TrackSummary, 0, len(response.Queue))}
	for _, track := range response.Queue {
		state.Queue = append(state.Queue, summarizeTrack(track))
	}

	if response.CurrentlyPlaying != nil {
		current := summarizeTrack(*response.CurrentlyPlaying)
		state.CurrentlyPlaying = &current
	}

	return state, nil
}

// queueAdd posts a single URI to the playback queue, optionally targeting a device.
func (c *Client) queueAdd(ctx context.Context, rawURI, deviceID string) error {
	params := url.Values{}
	params.Set("uri", rawURI)
	if deviceID != "" {
		params.Set("device_id", deviceID)
	}
	return c.doRequest(ctx, http.MethodPost, "/me/player/queue?"+params.Encode(), nil, nil)
}

// UserPlaylists retrieves all of the current user's playlists, following the
// continuation cursor until exhausted.
func (c *Client) UserPlaylists(ctx context.Context) ([]PlaylistSummary, error) {
	username := c.Username(ctx)

	var playlists []PlaylistSummary
	next := c.baseURL + "/me/playlists"

	for next != "" {
		var page playlistsPage
		if err := c.doRequestURL(ctx, http.MethodGet, next, nil, &page); err != nil {
			return nil, err
		}

		for _, playlist := range page.Items {
			playlists = append(playlists, summarizePlaylist(playlist, username))
		}

		if page.Next == nil {
			break
		}
		next = *page.Next
	}

	return playlists, nil
}

// AddTracksToPlaylist appends tracks to a playlist.
func (c *Client) AddTracksToPlaylist(ctx context.Context, playlistID string, trackIDs []string) error {
	if playlistID == "" {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}
	if len(trackIDs) == 0 {
		return fmt.Errorf("%w: track ids", shared.ErrMissingArgument)
	}

	body := map[string]any{"uris": trackURIs(trackIDs)}
	return c.doRequest(ctx, http.MethodPost, "/playlists/"+playlistID+"/tracks", body, nil)
}

// RemoveTracksFromPlaylist removes all occurrences of the given tracks from a playlist.
func (c *Client) RemoveTracksFromPlaylist(ctx context.Context, playlistID string, trackIDs []string) error {
	if playlistID == "" {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}
	if len(trackIDs) == 0 {
		return fmt.Errorf("%w: track ids", shared.ErrMissingArgument)
	}

	tracks := make([]map[string]string, 0, len(trackIDs))
	for _, uri := range trackURIs(trackIDs) {
		tracks = append(tracks, map[string]string{"uri": uri})
	}

	body := map[string]any{"tracks": tracks}
	return c.doRequest(ctx, http.MethodDelete, "/playlists/"+playlistID+"/tracks", body, nil)
}

// ChangePlaylistDetails updates a playlist's name and/or description.
func (c *Client) ChangePlaylistDetails(ctx context.Context, playlistID, name, description string) error {
	if playlistID == "" {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}
	if name == "" && description == "" {
		return fmt.Errorf("%w: at least one of name or description", shared.ErrMissingArgument)
	}

	body := map[string]any{}
	if name != "" {
		body["name"] = name
	}
	if description != "" {
		body["description"] = description
	}

	return c.doRequest(ctx, http.MethodPut, "/playlists/"+playlistID, body, nil)
}

// trackURIs canonicalizes a list of track ids or URIs into spotify:track: URIs.
func trackURIs(ids []string) []string {
	uris := make([]string, 0, len(ids))
	for _, id := range ids {
		parsed, err := ParseURI(id)
		if err != nil {
			continue
		}
		if parsed.Kind == KindUnknown {
			parsed.Kind = KindTrack
		}
		uris = append(uris, parsed.String())
	}
	return uris
}
