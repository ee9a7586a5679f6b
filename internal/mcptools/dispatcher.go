package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotify-mcp/internal/queue"
	"github.com/desertthunder/spotify-mcp/internal/shared"
	"github.com/desertthunder/spotify-mcp/internal/spotify"
	"github.com/mark3labs/mcp-go/mcp"
)

// Service is the slice of the Spotify client the dispatcher consumes.
type Service interface {
	CurrentTrack(ctx context.Context) (*spotify.TrackSummary, error)
	StartPlayback(ctx context.Context, uri string) error
	PausePlayback(ctx context.Context) error
	SkipTrack(ctx context.Context, n int) error
	ValidateTrack(ctx context.Context, uri string) bool
	GetInfo(ctx context.Context, uri string) (any, error)
	GetQueue(ctx context.Context) (*spotify.QueueState, error)
	UserPlaylists(ctx context.Context) ([]spotify.PlaylistSummary, error)
	PlaylistTracks(ctx context.Context, uri string) ([]spotify.TrackSummary, error)
	AddTracksToPlaylist(ctx context.Context, playlistID string, trackIDs []string) error
	RemoveTracksFromPlaylist(ctx context.Context, playlistID string, trackIDs []string) error
	ChangePlaylistDetails(ctx context.Context, playlistID, name, description string) error
}

// Searcher is the two-tier search capability.
type Searcher interface {
	Search(ctx context.Context, query, qtype string, limit int) (spotify.ResultSet, error)
}

// Enqueuer expands and adds resources to the playback queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, uri string) (*queue.Addition, error)
}

// Dispatcher routes tool calls to the Spotify collaborators.
//
// Every failure a collaborator surfaces is converted here into the structured
// error payload; no error escapes to the transport as a protocol failure.
type Dispatcher struct {
	service Service
	search  Searcher
	queue   Enqueuer
	logger  *log.Logger
}

// NewDispatcher wires a dispatcher over its collaborators.
func NewDispatcher(service Service, search Searcher, enqueuer Enqueuer, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Dispatcher{service: service, search: search, queue: enqueuer, logger: logger}
}

// errorResult builds the structured error payload every failure is reduced
// to: a single text block carrying {"error": true, "message": ...}.
func errorResult(message string) *mcp.CallToolResult {
	payload, err := json.MarshalIndent(map[string]any{
		"error":   true,
		"message": message,
	}, "", "  ")
	if err != nil {
		return mcp.NewToolResultText(`{"error": true, "message": "internal error"}`)
	}
	return mcp.NewToolResultText(string(payload))
}

// jsonResult serializes a value as an indented JSON text block.
func jsonResult(v any) *mcp.CallToolResult {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("failed to serialize response: %v", err))
	}
	return mcp.NewToolResultText(string(payload))
}

// HandlePlayback routes the get/start/pause/skip playback actions.
func (d *Dispatcher) HandlePlayback(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action := request.GetString("action", "")
	d.logger.Info("playback tool called", "action", action)

	switch action {
	case "get":
		current, err := d.service.CurrentTrack(ctx)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if current == nil {
			return mcp.NewToolResultText("No track playing."), nil
		}
		return jsonResult(current), nil

	case "start":
		uri := request.GetString("spotify_uri", "")
		if uri != "" {
			parsed, err := spotify.ParseURI(uri)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			if parsed.Kind == spotify.KindTrack && !d.service.ValidateTrack(ctx, uri) {
				return errorResult("Invalid or non-existent track URI. Please try another track."), nil
			}
		}

		if err := d.service.StartPlayback(ctx, uri); err != nil {
			return errorResult(err.Error()), nil
		}

		if uri == "" {
			return mcp.NewToolResultText("Playback resumed."), nil
		}
		return mcp.NewToolResultText(d.formatPlaybackStarted(ctx, uri)), nil

	case "pause":
		if err := d.service.PausePlayback(ctx); err != nil {
			return errorResult(err.Error()), nil
		}
		return mcp.NewToolResultText("Playback paused."), nil

	case "skip":
		n := request.GetInt("num_skips", 1)
		if err := d.service.SkipTrack(ctx, n); err != nil {
			return errorResult(err.Error()), nil
		}
		return mcp.NewToolResultText("Skipped to next track."), nil

	default:
		return errorResult(fmt.Sprintf("Unknown playback action: %s. Supported actions are: get, start, pause and skip.", action)), nil
	}
}

// HandleSearch runs the two-tier search and formats results per kind.
func (d *Dispatcher) HandleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return errorResult("query is required for search."), nil
	}
	qtype := request.GetString("qtype", "track")
	limit := request.GetInt("limit", 10)

	d.logger.Info("search tool called", "query", query, "type", qtype, "limit", limit)

	results, err := d.search.Search(ctx, query, qtype, limit)
	if err != nil {
		return errorResult(fmt.Sprintf("An error occurred during search: %v", err)), nil
	}

	text, ok := formatSearchResults(results, qtype)
	if !ok {
		return errorResult(fmt.Sprintf("No %ss found for your query.", qtype)), nil
	}
	return mcp.NewToolResultText(text), nil
}

// HandleQueue routes the add/get queue actions.
func (d *Dispatcher) HandleQueue(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action := request.GetString("action", "")
	d.logger.Info("queue tool called", "action", action)

	switch action {
	case "add":
		uri := request.GetString("spotify_uri", "")
		if uri == "" {
			return errorResult("spotify_uri is required for the 'add' action."), nil
		}

		addition, err := d.queue.Enqueue(ctx, uri)
		if err != nil {
			switch {
			case errors.Is(err, queue.ErrInvalidTrack),
				errors.Is(err, queue.ErrInvalidPlaylist),
				errors.Is(err, queue.ErrInvalidAlbum),
				errors.Is(err, queue.ErrInvalidArtist):
				return errorResult(err.Error()), nil
			case errors.Is(err, shared.ErrUnsupportedURI):
				return errorResult("Unsupported URI type. Please provide a track, playlist, album, or artist URI."), nil
			default:
				return errorResult(fmt.Sprintf("Error adding to queue: %v", err)), nil
			}
		}
		return jsonResult(addition), nil

	case "get":
		state, err := d.service.GetQueue(ctx)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(state), nil

	default:
		return errorResult(fmt.Sprintf("Unknown queue action: %s. Supported actions are: add and get.", action)), nil
	}
}

// HandleGetInfo resolves a resource URI into its kind-specific details.
func (d *Dispatcher) HandleGetInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uri, err := request.RequireString("item_uri")
	if err != nil {
		return errorResult("item_uri is required."), nil
	}

	d.logger.Info("get info tool called", "uri", uri)

	info, err := d.service.GetInfo(ctx, uri)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return jsonResult(info), nil
}

// HandlePlaylist routes the playlist management actions.
func (d *Dispatcher) HandlePlaylist(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action := request.GetString("action", "")
	d.logger.Info("playlist tool called", "action", action)

	args := request.GetArguments()

	switch action {
	case "get":
		playlists, err := d.service.UserPlaylists(ctx)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(playlists), nil

	case "get_tracks":
		playlistID := request.GetString("playlist_id", "")
		if playlistID == "" {
			return errorResult("playlist_id is required for get_tracks action."), nil
		}
		tracks, err := d.service.PlaylistTracks(ctx, playlistID)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(tracks), nil

	case "add_tracks":
		trackIDs, err := trackIDList(args["track_ids"])
		if err != nil {
			return errorResult("track_ids must be a list or a valid JSON array."), nil
		}
		if err := d.service.AddTracksToPlaylist(ctx, request.GetString("playlist_id", ""), trackIDs); err != nil {
			return errorResult(err.Error()), nil
		}
		return mcp.NewToolResultText("Tracks added to playlist."), nil

	case "remove_tracks":
		trackIDs, err := trackIDList(args["track_ids"])
		if err != nil {
			return errorResult("track_ids must be a list or a valid JSON array."), nil
		}
		if err := d.service.RemoveTracksFromPlaylist(ctx, request.GetString("playlist_id", ""), trackIDs); err != nil {
			return errorResult(err.Error()), nil
		}
		return mcp.NewToolResultText("Tracks removed from playlist."), nil

	case "change_details":
		playlistID := request.GetString("playlist_id", "")
		if playlistID == "" {
			return errorResult("playlist_id is required for change_details action."), nil
		}
		name := request.GetString("name", "")
		description := request.GetString("description", "")
		if name == "" && description == "" {
			return errorResult("At least one of name, description, public, or collaborative is required."), nil
		}
		if err := d.service.ChangePlaylistDetails(ctx, playlistID, name, description); err != nil {
			return errorResult(err.Error()), nil
		}
		return mcp.NewToolResultText("Playlist details changed."), nil

	default:
		return errorResult(fmt.Sprintf("Unknown playlist action: %s. Supported actions are: get, get_tracks, add_tracks, remove_tracks, change_details.", action)), nil
	}
}

// trackIDList accepts a track id list supplied either as an argument array or
// as a JSON-encoded string of one.
func trackIDList(raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case []any:
		ids := make([]string, 0, len(v))
		for _, item := range v {
			id, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: track ids must be strings", shared.ErrInvalidArgument)
			}
			ids = append(ids, id)
		}
		return ids, nil
	case string:
		var ids []string
		if err := json.Unmarshal([]byte(v), &ids); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
		}
		return ids, nil
	default:
		return nil, fmt.Errorf("%w: unsupported track_ids type %T", shared.ErrInvalidArgument, raw)
	}
}
