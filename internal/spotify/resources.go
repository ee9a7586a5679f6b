package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/spotify-mcp/internal/shared"
)

// Typed lookups. Each returns the fetch error unchanged so callers can
// distinguish "not found" from "backend unreachable"; the Validate* methods
// collapse that to a boolean at the validation boundary.

// TrackByID retrieves a single track.
func (c *Client) TrackByID(ctx context.Context, id string) (*Track, error) {
	var track Track
	if err := c.doRequest(ctx, http.MethodGet, "/tracks/"+id, nil, &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// AlbumByID retrieves a single album.
func (c *Client) AlbumByID(ctx context.Context, id string) (*Album, error) {
	var album Album
	if err := c.doRequest(ctx, http.MethodGet, "/albums/"+id, nil, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// PlaylistByID retrieves a single playlist.
func (c *Client) PlaylistByID(ctx context.Context, id string) (*Playlist, error) {
	var playlist Playlist
	if err := c.doRequest(ctx, http.MethodGet, "/playlists/"+id, nil, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// ArtistByID retrieves a single artist.
func (c *Client) ArtistByID(ctx context.Context, id string) (*Artist, error) {
	var artist Artist
	if err := c.doRequest(ctx, http.MethodGet, "/artists/"+id, nil, &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// ValidateTrack reports whether the URI names a track the API can resolve.
// Any fetch failure counts as invalid.
func (c *Client) ValidateTrack(ctx context.Context, rawURI string) bool {
	uri, err := ParseURI(rawURI)
	if err != nil {
		return false
	}
	_, err = c.TrackByID(ctx, uri.ID)
	return err == nil
}

// ValidateAlbum reports whether the URI names an album the API can resolve.
func (c *Client) ValidateAlbum(ctx context.Context, rawURI string) bool {
	uri, err := ParseURI(rawURI)
	if err != nil {
		return false
	}
	_, err = c.AlbumByID(ctx, uri.ID)
	return err == nil
}

// ValidatePlaylist reports whether the URI names a playlist the API can resolve.
func (c *Client) ValidatePlaylist(ctx context.Context, rawURI string) bool {
	uri, err := ParseURI(rawURI)
	if err != nil {
		return false
	}
	_, err = c.PlaylistByID(ctx, uri.ID)
	return err == nil
}

// ValidateArtist reports whether the URI names an artist the API can resolve.
func (c *Client) ValidateArtist(ctx context.Context, rawURI string) bool {
	uri, err := ParseURI(rawURI)
	if err != nil {
		return false
	}
	_, err = c.ArtistByID(ctx, uri.ID)
	return err == nil
}

// GetInfo retrieves kind-specific details for a resource URI.
func (c *Client) GetInfo(ctx context.Context, rawURI string) (any, error) {
	uri, err := ParseURI(rawURI)
	if err != nil {
		return nil, err
	}

	switch uri.Kind {
	case KindTrack:
		track, err := c.TrackByID(ctx, uri.ID)
		if err != nil {
			return nil, err
		}
		return &TrackInfo{
			Type:        "track",
			Name:        track.Name,
			Artists:     artistNames(track.Artists),
			Album:       track.Album.Name,
			DurationMS:  track.DurationMS,
			Popularity:  track.Popularity,
			URI:         track.URI,
			ExternalURL: track.ExternalURLs.Spotify,
		}, nil
	case KindPlaylist:
		playlist, err := c.PlaylistByID(ctx, uri.ID)
		if err != nil {
			return nil, err
		}
		username := c.Username(ctx)
		return &PlaylistInfo{
			Type:        "playlist",
			Name:        playlist.Name,
			Owner:       playlist.Owner.DisplayName,
			Description: playlist.Description,
			TracksTotal: playlist.Tracks.Total,
			Followers:   playlist.Followers.Total,
			UserIsOwner: username != "" && playlist.Owner.DisplayName == username,
			URI:         playlist.URI,
			ExternalURL: playlist.ExternalURLs.Spotify,
		}, nil
	case KindAlbum:
		album, err := c.AlbumByID(ctx, uri.ID)
		if err != nil {
			return nil, err
		}
		return &AlbumInfo{
			Type:        "album",
			Name:        album.Name,
			Artists:     artistNames(album.Artists),
			ReleaseDate: album.ReleaseDate,
			TotalTracks: album.TotalTracks,
			Popularity:  album.Popularity,
			URI:         album.URI,
			ExternalURL: album.ExternalURLs.Spotify,
		}, nil
	case KindArtist:
		artist, err := c.ArtistByID(ctx, uri.ID)
		if err != nil {
			return nil, err
		}
		return &ArtistInfo{
			Type:        "artist",
			Name:        artist.Name,
			Genres:      artist.Genres,
			Followers:   artist.Followers.Total,
			Popularity:  artist.Popularity,
			URI:         artist.URI,
			ExternalURL: artist.ExternalURLs.Spotify,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", shared.ErrUnsupportedURI, rawURI)
	}
}

// PlaylistTracks retrieves all tracks from a playlist, following the server
// continuation cursor until exhausted. Null or missing track entries inside a
// page are skipped rather than failing the whole page.
func (c *Client) PlaylistTracks(ctx context.Context, rawURI string) ([]TrackSummary, error) {
	uri, err := ParseURI(rawURI)
	if err != nil {
		return nil, err
	}

	var tracks []TrackSummary
	next := c.baseURL + "/playlists/" + uri.ID + "/tracks"

	for next != "" {
		var page playlistItemsPage
		if err := c.doRequestURL(ctx, http.MethodGet, next, nil, &page); err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			if item.Track == nil {
				continue
			}
			tracks = append(tracks, summarizeTrack(*item.Track))
		}

		if page.Next == nil {
			break
		}
		next = *page.Next
	}

	return tracks, nil
}

// AlbumTracks retrieves all tracks from an album, following the server
// continuation cursor until exhausted.
func (c *Client) AlbumTracks(ctx context.Context, rawURI string) ([]TrackSummary, error) {
	uri, err := ParseURI(rawURI)
	if err != nil {
		return nil, err
	}

	var tracks []TrackSummary
	next := c.baseURL + "/albums/" + uri.ID + "/tracks"

	for next != "" {
		var page albumTracksPage
		if err := c.doRequestURL(ctx, http.MethodGet, next, nil, &page); err != nil {
			return nil, err
		}

		for _, track := range page.Items {
			summary := summarizeTrack(track)
			summary.TrackNumber = track.TrackNumber
			tracks = append(tracks, summary)
		}

		if page.Next == nil {
			break
		}
		next = *page.Next
	}

	return tracks, nil
}

// ArtistTopTracks retrieves an artist's top tracks for the user's market.
func (c *Client) ArtistTopTracks(ctx context.Context, rawURI string) ([]TrackSummary, error) {
	uri, err := ParseURI(rawURI)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("/artists/%s/top-tracks?market=%s", uri.ID, url.QueryEscape(c.market(ctx)))

	var response topTracksResponse
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}

	tracks := make([]TrackSummary, 0, len(response.Tracks))
	for _, track := range response.Tracks {
		summary := summarizeTrack(track)
		summary.Popularity = track.Popularity
		tracks = append(tracks, summary)
	}

	return tracks, nil
}

// Search queries the Spotify search API and normalizes the response.
//
// qtype is one or more of track, album, artist, playlist; multiple kinds are
// passed as a comma-separated list. market is optional.
func (c *Client) Search(ctx context.Context, query, qtype string, limit int, market string) (ResultSet, error) {
	if qtype == "" {
		qtype = "track"
	}
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", qtype)
	params.Set("limit", fmt.Sprintf("%d", limit))
	if market != "" {
		params.Set("market", market)
	}

	var response searchResponse
	if err := c.doRequest(ctx, http.MethodGet, "/search?"+params.Encode(), nil, &response); err != nil {
		return nil, err
	}

	username := ""
	if strings.Contains(qtype, "playlist") {
		username = c.Username(ctx)
	}

	results := ResultSet{}
	if response.Tracks != nil {
		page := ResultPage{Total: response.Tracks.Total}
		for _, track := range response.Tracks.Items {
			page.Items = append(page.Items, summarizeTrack(track))
		}
		results["tracks"] = page
	}
	if response.Albums != nil {
		page := ResultPage{Total: response.Albums.Total}
		for _, album := range response.Albums.Items {
			page.Items = append(page.Items, AlbumSummary{
				ID:      album.ID,
				URI:     album.URI,
				Name:    album.Name,
				Artists: artistNames(album.Artists),
			})
		}
		results["albums"] = page
	}
	if response.Artists != nil {
		page := ResultPage{Total: response.Artists.Total}
		for _, artist := range response.Artists.Items {
			page.Items = append(page.Items, ArtistSummary{ID: artist.ID, URI: artist.URI, Name: artist.Name})
		}
		results["artists"] = page
	}
	if response.Playlists != nil {
		page := ResultPage{Total: response.Playlists.Total}
		for _, playlist := range response.Playlists.Items {
			page.Items = append(page.Items, summarizePlaylist(playlist, username))
		}
		results["playlists"] = page
	}

	return results, nil
}
