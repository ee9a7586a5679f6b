// Package queue expands a resource URI into its constituent tracks and adds
// them to the playback queue one by one, tracking partial success.
package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotify-mcp/internal/shared"
	"github.com/desertthunder/spotify-mcp/internal/spotify"
)

// Catalog is the slice of the Spotify client the orchestrator consumes.
type Catalog interface {
	ValidateTrack(ctx context.Context, uri string) bool
	ValidateAlbum(ctx context.Context, uri string) bool
	ValidatePlaylist(ctx context.Context, uri string) bool
	ValidateArtist(ctx context.Context, uri string) bool
	GetInfo(ctx context.Context, uri string) (any, error)
	PlaylistTracks(ctx context.Context, uri string) ([]spotify.TrackSummary, error)
	AlbumTracks(ctx context.Context, uri string) ([]spotify.TrackSummary, error)
	ArtistTopTracks(ctx context.Context, uri string) ([]spotify.TrackSummary, error)
	AddToQueue(ctx context.Context, uri string) error
}

// Validation failure messages surfaced to the caller verbatim.
var (
	ErrInvalidTrack    = errors.New("Invalid or non-existent track URI. Please try another track.")
	ErrInvalidPlaylist = errors.New("Invalid or non-existent playlist URI.")
	ErrInvalidAlbum    = errors.New("Invalid or non-existent album URI.")
	ErrInvalidArtist   = errors.New("Invalid or non-existent artist URI.")
)

// Addition reports the outcome of an enqueue operation. Exactly one of the
// detail fields is populated, matching the kind of the source resource.
type Addition struct {
	Status          string `json:"status"`
	TrackDetails    any    `json:"track_details,omitempty"`
	PlaylistDetails any    `json:"playlist_details,omitempty"`
	AlbumDetails    any    `json:"album_details,omitempty"`
	ArtistDetails   any    `json:"artist_details,omitempty"`
	TracksAdded     int    `json:"tracks_added,omitempty"`
}

// PartialError reports a multi-track enqueue that failed after some tracks
// were already added. Added counts only confirmed additions; tracks after the
// failing one are never attempted and are not reported individually.
type PartialError struct {
	Added int
	Total int
	Err   error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("added %d of %d tracks before a failure: %v", e.Added, e.Total, e.Err)
}

func (e *PartialError) Unwrap() error { return e.Err }

// Orchestrator expands and enqueues resources against the playback queue.
type Orchestrator struct {
	catalog Catalog
	logger  *log.Logger
}

// NewOrchestrator builds a queue orchestrator over the given catalog.
func NewOrchestrator(catalog Catalog, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Orchestrator{catalog: catalog, logger: logger}
}

// Enqueue adds the resource named by rawURI to the playback queue.
//
// A track URI is validated and added directly. Album, playlist and artist
// URIs are validated, expanded to their track lists (top tracks for an
// artist), and each track is added sequentially. Expansion or validation
// failures abort before any enqueue attempt; a failure partway through the
// track list stops the loop and surfaces a [PartialError] carrying the count
// already added.
func (o *Orchestrator) Enqueue(ctx context.Context, rawURI string) (*Addition, error) {
	if rawURI == "" {
		return nil, fmt.Errorf("%w: spotify_uri is required for the 'add' action", shared.ErrMissingArgument)
	}

	uri, err := spotify.ParseURI(rawURI)
	if err != nil {
		return nil, err
	}

	switch uri.Kind {
	case spotify.KindTrack:
		return o.enqueueTrack(ctx, rawURI)
	case spotify.KindPlaylist:
		return o.enqueueCollection(ctx, rawURI, uri.Kind)
	case spotify.KindAlbum:
		return o.enqueueCollection(ctx, rawURI, uri.Kind)
	case spotify.KindArtist:
		return o.enqueueCollection(ctx, rawURI, uri.Kind)
	default:
		return nil, fmt.Errorf("%w: please provide a track, playlist, album, or artist URI", shared.ErrUnsupportedURI)
	}
}

func (o *Orchestrator) enqueueTrack(ctx context.Context, rawURI string) (*Addition, error) {
	if !o.catalog.ValidateTrack(ctx, rawURI) {
		return nil, ErrInvalidTrack
	}

	if err := o.catalog.AddToQueue(ctx, rawURI); err != nil {
		return nil, err
	}

	info, err := o.catalog.GetInfo(ctx, rawURI)
	if err != nil {
		return nil, err
	}

	return &Addition{
		Status:       "Track added to queue successfully",
		TrackDetails: info,
		TracksAdded:  1,
	}, nil
}

func (o *Orchestrator) enqueueCollection(ctx context.Context, rawURI string, kind spotify.Kind) (*Addition, error) {
	var tracks []spotify.TrackSummary
	var err error

	switch kind {
	case spotify.KindPlaylist:
		if !o.catalog.ValidatePlaylist(ctx, rawURI) {
			return nil, ErrInvalidPlaylist
		}
		tracks, err = o.catalog.PlaylistTracks(ctx, rawURI)
	case spotify.KindAlbum:
		if !o.catalog.ValidateAlbum(ctx, rawURI) {
			return nil, ErrInvalidAlbum
		}
		tracks, err = o.catalog.AlbumTracks(ctx, rawURI)
	case spotify.KindArtist:
		if !o.catalog.ValidateArtist(ctx, rawURI) {
			return nil, ErrInvalidArtist
		}
		tracks, err = o.catalog.ArtistTopTracks(ctx, rawURI)
	}
	if err != nil {
		return nil, err
	}

	added := 0
	for _, track := range tracks {
		if err := o.catalog.AddToQueue(ctx, track.URI); err != nil {
			o.logger.Error("enqueue stopped partway", "added", added, "total", len(tracks), "error", err)
			return nil, &PartialError{Added: added, Total: len(tracks), Err: err}
		}
		added++
	}

	info, err := o.catalog.GetInfo(ctx, rawURI)
	if err != nil {
		return nil, err
	}

	addition := &Addition{TracksAdded: added}
	switch kind {
	case spotify.KindPlaylist:
		addition.Status = fmt.Sprintf("All %d tracks from playlist added to queue successfully", added)
		addition.PlaylistDetails = info
	case spotify.KindAlbum:
		addition.Status = fmt.Sprintf("All %d tracks from album added to queue successfully", added)
		addition.AlbumDetails = info
	case spotify.KindArtist:
		addition.Status = fmt.Sprintf("Top %d tracks from artist added to queue successfully", added)
		addition.ArtistDetails = info
	}

	return addition, nil
}
