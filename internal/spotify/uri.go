package spotify

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/desertthunder/spotify-mcp/internal/shared"
)

// Kind classifies a Spotify resource URI.
type Kind int

const (
	KindUnknown Kind = iota
	KindTrack
	KindAlbum
	KindPlaylist
	KindArtist
)

// String returns the lowercase kind token used in Spotify URIs.
func (k Kind) String() string {
	switch k {
	case KindTrack:
		return "track"
	case KindAlbum:
		return "album"
	case KindPlaylist:
		return "playlist"
	case KindArtist:
		return "artist"
	default:
		return "unknown"
	}
}

// KindFromToken maps a URI kind token to a [Kind]. Unrecognized tokens map to [KindUnknown].
func KindFromToken(token string) Kind {
	switch strings.ToLower(token) {
	case "track":
		return KindTrack
	case "album":
		return KindAlbum
	case "playlist":
		return KindPlaylist
	case "artist":
		return KindArtist
	default:
		return KindUnknown
	}
}

// ResourceURI is a parsed Spotify resource locator.
type ResourceURI struct {
	Kind Kind
	ID   string
}

// String returns the canonical spotify:<kind>:<id> form, or the bare id when the kind is unknown.
func (u ResourceURI) String() string {
	if u.Kind == KindUnknown {
		return u.ID
	}
	return fmt.Sprintf("spotify:%s:%s", u.Kind, u.ID)
}

// ParseURI resolves a resource locator string into a [ResourceURI].
//
// Three forms are recognized, tried in order:
//
//	spotify:<kind>:<id>
//	https://open.spotify.com/<kind>/<id>
//	<bare id>  (kind unknown)
//
// Parsing never touches the network and fails only on empty input.
func ParseURI(raw string) (ResourceURI, error) {
	if raw == "" {
		return ResourceURI{}, fmt.Errorf("%w: empty URI", shared.ErrInvalidInput)
	}

	if strings.HasPrefix(raw, "spotify:") {
		parts := strings.Split(raw, ":")
		uri := ResourceURI{ID: parts[len(parts)-1]}
		if len(parts) >= 3 {
			uri.Kind = KindFromToken(parts[1])
		}
		return uri, nil
	}

	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		parsed, err := url.Parse(raw)
		if err == nil {
			segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
			uri := ResourceURI{ID: segments[len(segments)-1]}
			if len(segments) >= 2 {
				uri.Kind = KindFromToken(segments[len(segments)-2])
			}
			return uri, nil
		}
	}

	return ResourceURI{Kind: KindUnknown, ID: raw}, nil
}
