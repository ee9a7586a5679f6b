// Package search implements the two-tier track and playlist search: an
// optional local index is probed first, falling back to the Spotify API.
// Both tiers normalize into the same result shape, so callers cannot tell
// which tier served them.
package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotify-mcp/internal/shared"
	"github.com/desertthunder/spotify-mcp/internal/spotify"
)

// probeTimeout bounds the local index probe. Spotify API calls inherit their
// timeout from the underlying OAuth transport instead.
const probeTimeout = 5 * time.Second

// RemoteSearcher is the Spotify API search capability the engine falls back to.
type RemoteSearcher interface {
	Search(ctx context.Context, query, qtype string, limit int, market string) (spotify.ResultSet, error)
}

// Engine queries the local index first and the Spotify API second.
//
// The local index is an optional accelerator: every failure mode (absent
// endpoint, timeout, connection refused, non-2xx, malformed payload) is
// swallowed and the query falls through to the remote tier.
type Engine struct {
	remote     RemoteSearcher
	localURL   string
	market     string
	timeout    time.Duration
	httpClient *http.Client
	logger     *log.Logger
}

// NewEngine builds a search engine from the configured tiers.
func NewEngine(remote RemoteSearcher, config shared.SearchConfig, logger *log.Logger) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Engine{
		remote:     remote,
		localURL:   config.LocalURL,
		market:     config.Market,
		timeout:    probeTimeout,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Search runs a query against the local index, then the Spotify API.
//
// qtype is one or more comma-joined kind tokens (default "track"); limit
// defaults to 10. A non-empty local result set short-circuits the remote tier.
func (e *Engine) Search(ctx context.Context, query, qtype string, limit int) (spotify.ResultSet, error) {
	if qtype == "" {
		qtype = "track"
	}
	if limit <= 0 {
		limit = 10
	}

	if results := e.searchLocal(ctx, query, qtype, limit); len(results) > 0 {
		return results, nil
	}

	e.logger.Info("falling back to online search", "query", query, "type", qtype)
	return e.remote.Search(ctx, query, qtype, limit, e.market)
}

// localResponse is the payload shape of the local index endpoint. Documents
// carry objects in the Spotify API shape for the queried kind.
type localResponse struct {
	Documents []json.RawMessage `json:"documents"`
}

// searchLocal probes the local index. Returns nil on any failure or when the
// index has nothing; the caller treats nil as "consult the remote tier."
func (e *Engine) searchLocal(ctx context.Context, query, qtype string, limit int) spotify.ResultSet {
	if e.localURL == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", qtype)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.localURL+"?"+params.Encode(), nil)
	if err != nil {
		e.logger.Info("local search failed", "error", err)
		return nil
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		e.logger.Info("local search failed", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e.logger.Info("local search failed", "status", resp.StatusCode)
		return nil
	}

	var payload localResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		e.logger.Info("local search returned malformed payload", "error", err)
		return nil
	}
	if len(payload.Documents) == 0 {
		return nil
	}

	return normalizeDocuments(payload.Documents, qtype, limit)
}

// normalizeDocuments converts local index documents into the shared result
// shape. Only track and playlist documents are indexed locally; other kinds
// fall through to the remote tier. Individual documents that fail to decode
// are skipped.
func normalizeDocuments(documents []json.RawMessage, qtype string, limit int) spotify.ResultSet {
	switch localKind(qtype) {
	case spotify.KindTrack:
		items := make([]any, 0, limit)
		for _, doc := range documents {
			if len(items) == limit {
				break
			}
			var track spotify.Track
			if err := json.Unmarshal(doc, &track); err != nil || track.ID == "" {
				continue
			}
			items = append(items, spotify.TrackSummary{
				ID:         track.ID,
				URI:        track.URI,
				Name:       track.Name,
				Artists:    artistNames(track.Artists),
				DurationMS: track.DurationMS,
				Album:      track.Album.Name,
			})
		}
		if len(items) == 0 {
			return nil
		}
		return spotify.ResultSet{"tracks": {Items: items, Total: len(items)}}
	case spotify.KindPlaylist:
		items := make([]any, 0, limit)
		for _, doc := range documents {
			if len(items) == limit {
				break
			}
			var playlist spotify.Playlist
			if err := json.Unmarshal(doc, &playlist); err != nil || playlist.ID == "" {
				continue
			}
			items = append(items, spotify.PlaylistSummary{
				ID:          playlist.ID,
				URI:         playlist.URI,
				Name:        playlist.Name,
				Owner:       playlist.Owner.DisplayName,
				TotalTracks: playlist.Tracks.Total,
			})
		}
		if len(items) == 0 {
			return nil
		}
		return spotify.ResultSet{"playlists": {Items: items, Total: len(items)}}
	default:
		return nil
	}
}

// localKind picks the first comma-joined kind token the local index serves.
func localKind(qtype string) spotify.Kind {
	for _, token := range strings.Split(qtype, ",") {
		switch kind := spotify.KindFromToken(strings.TrimSpace(token)); kind {
		case spotify.KindTrack, spotify.KindPlaylist:
			return kind
		}
	}
	return spotify.KindUnknown
}

func artistNames(artists []spotify.Artist) []string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return names
}
