package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/spotify-mcp/internal/spotify"
)

// formatPlaybackStarted builds the per-kind confirmation text shown after a
// successful playback start. Lookup failures degrade to the generic template.
func (d *Dispatcher) formatPlaybackStarted(ctx context.Context, rawURI string) string {
	uri, err := spotify.ParseURI(rawURI)
	if err != nil {
		return fmt.Sprintf("▶️ Playback started for URI: %s", rawURI)
	}

	info, err := d.service.GetInfo(ctx, rawURI)
	if err != nil {
		return fmt.Sprintf("▶️ Playback started for URI: %s (type: %s)", rawURI, uri.Kind)
	}

	switch detail := info.(type) {
	case *spotify.TrackInfo:
		return fmt.Sprintf("▶️ Now playing: %q by %s\nURI: %s", detail.Name, strings.Join(detail.Artists, ", "), rawURI)
	case *spotify.AlbumInfo:
		return fmt.Sprintf("💿 Playing album: %q by %s\nTracks: %d\nURI: %s",
			detail.Name, strings.Join(detail.Artists, ", "), detail.TotalTracks, rawURI)
	case *spotify.PlaylistInfo:
		return fmt.Sprintf("📜 Playing playlist: %q\nOwner: %s | Tracks: %d\n%s\nURI: %s",
			detail.Name, detail.Owner, detail.TracksTotal, ownershipText(detail.UserIsOwner), rawURI)
	case *spotify.ArtistInfo:
		return fmt.Sprintf("🎤 Playing songs from artist: %s\nURI: %s", detail.Name, rawURI)
	default:
		return fmt.Sprintf("▶️ Playback started for URI: %s (type: %s)", rawURI, uri.Kind)
	}
}

// searchPageOrder fixes the rendering order for multi-kind queries.
var searchPageOrder = []string{"tracks", "albums", "artists", "playlists"}

// formatSearchResults renders a result set as numbered per-kind lines. The
// second return value is false when every page is empty.
func formatSearchResults(results spotify.ResultSet, qtype string) (string, bool) {
	lines := []string{fmt.Sprintf("🔍 Search Results for %ss:", qtype)}
	found := false

	for _, key := range searchPageOrder {
		page, ok := results[key]
		if !ok {
			continue
		}
		for idx, item := range page.Items {
			found = true
			lines = append(lines, formatSearchItem(idx+1, item))
		}
	}

	if !found {
		return "", false
	}
	return strings.Join(lines, "\n"), true
}

func formatSearchItem(idx int, item any) string {
	switch v := item.(type) {
	case spotify.TrackSummary:
		return fmt.Sprintf("%d. %q by %s\n   URI: spotify:track:%s", idx, v.Name, strings.Join(v.Artists, ", "), v.ID)
	case spotify.ArtistSummary:
		return fmt.Sprintf("%d. 👤 %s\n   URI: spotify:artist:%s", idx, v.Name, v.ID)
	case spotify.AlbumSummary:
		return fmt.Sprintf("%d. 💿 %q by %s\n   URI: spotify:album:%s", idx, v.Name, strings.Join(v.Artists, ", "), v.ID)
	case spotify.PlaylistSummary:
		return fmt.Sprintf("%d. 📜 %q\n   Owner: %s | Tracks: %d\n   %s\n   URI: spotify:playlist:%s",
			idx, v.Name, v.Owner, v.TotalTracks, ownershipText(v.UserIsOwner), v.ID)
	default:
		return fmt.Sprintf("%d. Unsupported item type", idx)
	}
}

func ownershipText(isOwner bool) string {
	if isOwner {
		return "✅ You own this playlist"
	}
	return "👤 Owned by someone else"
}
