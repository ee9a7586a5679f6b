// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package spotify

type externalURLs struct {
	Spotify string `json:"spotify"`
}

type followers struct {
	Total int `json:"total"`
}

// User represents a Spotify user profile.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Country     string    `json:"country"`
	Product     string    `json:"product"` // premium, free, etc.
	Followers   followers `json:"followers"`
}

// Artist represents a Spotify artist object.
type Artist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Genres       []string     `json:"genres"`
	Followers    followers    `json:"followers"`
	Popularity   int          `json:"popularity"`
	URI          string       `json:"uri"`
	ExternalURLs externalURLs `json:"external_urls"`
}

// Album represents a Spotify album object.
type Album struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Artists      []Artist     `json:"artists"`
	ReleaseDate  string       `json:"release_date"`
	TotalTracks  int          `json:"total_tracks"`
	Popularity   int          `json:"popularity"`
	URI          string       `json:"uri"`
	ExternalURLs externalURLs `json:"external_urls"`
}

// Track represents a Spotify track object.
type Track struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Artists      []Artist     `json:"artists"`
	Album        Album        `json:"album"`
	DurationMS   int          `json:"duration_ms"`
	TrackNumber  int          `json:"track_number"`
	Popularity   int          `json:"popularity"`
	URI          string       `json:"uri"`
	ExternalURLs externalURLs `json:"external_urls"`
}

type owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type playlistTracksRef struct {
	Total int `json:"total"`
}

// Playlist represents a Spotify playlist object.
type Playlist struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Owner        owner             `json:"owner"`
	Public       bool              `json:"public"`
	Followers    followers         `json:"followers"`
	Tracks       playlistTracksRef `json:"tracks"`
	URI          string            `json:"uri"`
	ExternalURLs externalURLs      `json:"external_urls"`
}

// Device represents a Spotify Connect playback device.
type Device struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	IsActive      bool   `json:"is_active"`
	VolumePercent int    `json:"volume_percent"`
}

// Paginated listing responses. Next carries the server continuation cursor,
// nil when no further page exists.

type playlistItemsPage struct {
	Items []struct {
		Track *Track `json:"track"`
	} `json:"items"`
	Next  *string `json:"next"`
	Total int     `json:"total"`
}

type albumTracksPage struct {
	Items []Track `json:"items"`
	Next  *string `json:"next"`
	Total int     `json:"total"`
}

type playlistsPage struct {
	Items []Playlist `json:"items"`
	Next  *string    `json:"next"`
	Total int        `json:"total"`
}

type devicesResponse struct {
	Devices []Device `json:"devices"`
}

type topTracksResponse struct {
	Tracks []Track `json:"tracks"`
}

type currentlyPlayingResponse struct {
	Item                 *Track `json:"item"`
	IsPlaying            bool   `json:"is_playing"`
	CurrentlyPlayingType string `json:"currently_playing_type"`
}

type queueResponse struct {
	CurrentlyPlaying *Track  `json:"currently_playing"`
	Queue            []Track `json:"queue"`
}

type searchResponse struct {
	Tracks    *searchTracksPage    `json:"tracks"`
	Albums    *searchAlbumsPage    `json:"albums"`
	Artists   *searchArtistsPage   `json:"artists"`
	Playlists *searchPlaylistsPage `json:"playlists"`
}

type searchTracksPage struct {
	Items []Track `json:"items"`
	Total int     `json:"total"`
}

type searchAlbumsPage struct {
	Items []Album `json:"items"`
	Total int     `json:"total"`
}

type searchArtistsPage struct {
	Items []Artist `json:"items"`
	Total int     `json:"total"`
}

type searchPlaylistsPage struct {
	Items []Playlist `json:"items"`
	Total int        `json:"total"`
}

// Normalized shapes returned to callers. These are snapshots at fetch time
// and are never cached across calls.

// TrackSummary is the normalized track shape shared by pagination, queue and search results.
type TrackSummary struct {
	ID          string   `json:"id"`
	URI         string   `json:"uri"`
	Name        string   `json:"name"`
	Artists     []string `json:"artists"`
	DurationMS  int      `json:"duration_ms"`
	Album       string   `json:"album,omitempty"`
	TrackNumber int      `json:"track_number,omitempty"`
	Popularity  int      `json:"popularity,omitempty"`
	IsPlaying   *bool    `json:"is_playing,omitempty"`
}

// AlbumSummary is the normalized album shape for search results.
type AlbumSummary struct {
	ID      string   `json:"id"`
	URI     string   `json:"uri"`
	Name    string   `json:"name"`
	Artists []string `json:"artists"`
}

// ArtistSummary is the normalized artist shape for search results.
type ArtistSummary struct {
	ID   string `json:"id"`
	URI  string `json:"uri"`
	Name string `json:"name"`
}

// PlaylistSummary is the normalized playlist shape for search results and playlist listings.
type PlaylistSummary struct {
	ID          string `json:"id"`
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Owner       string `json:"owner"`
	UserIsOwner bool   `json:"user_is_owner"`
	TotalTracks int    `json:"total_tracks"`
}

// ResultPage holds normalized search items of one kind.
type ResultPage struct {
	Items []any `json:"items"`
	Total int   `json:"total"`
}

// ResultSet maps a plural kind key ("tracks", "playlists", ...) to its result page.
//
// Both the local index and the Spotify API normalize into this shape, so
// callers cannot tell which tier produced a result.
type ResultSet map[string]ResultPage

// QueueState is the normalized playback queue snapshot.
type QueueState struct {
	CurrentlyPlaying *TrackSummary  `json:"currently_playing"`
	Queue            []TrackSummary `json:"queue"`
}

// Kind-specific detail shapes returned by [Client.GetInfo].

// TrackInfo describes a single track.
type TrackInfo struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Artists     []string `json:"artists"`
	Album       string   `json:"album"`
	DurationMS  int      `json:"duration_ms"`
	Popularity  int      `json:"popularity"`
	URI         string   `json:"uri"`
	ExternalURL string   `json:"external_url,omitempty"`
}

// PlaylistInfo describes a playlist.
type PlaylistInfo struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Owner       string `json:"owner"`
	Description string `json:"description"`
	TracksTotal int    `json:"tracks_total"`
	Followers   int    `json:"followers"`
	UserIsOwner bool   `json:"user_is_owner"`
	URI         string `json:"uri"`
	ExternalURL string `json:"external_url,omitempty"`
}

// AlbumInfo describes an album.
type AlbumInfo struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Artists     []string `json:"artists"`
	ReleaseDate string   `json:"release_date"`
	TotalTracks int      `json:"total_tracks"`
	Popularity  int      `json:"popularity"`
	URI         string   `json:"uri"`
	ExternalURL string   `json:"external_url,omitempty"`
}

// ArtistInfo describes an artist.
type ArtistInfo struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Genres      []string `json:"genres"`
	Followers   int      `json:"followers"`
	Popularity  int      `json:"popularity"`
	URI         string   `json:"uri"`
	ExternalURL string   `json:"external_url,omitempty"`
}

func artistNames(artists []Artist) []string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return names
}

func summarizeTrack(t Track) TrackSummary {
	return TrackSummary{
		ID:         t.ID,
		URI:        t.URI,
		Name:       t.Name,
		Artists:    artistNames(t.Artists),
		DurationMS: t.DurationMS,
		Album:      t.Album.Name,
	}
}

func summarizePlaylist(p Playlist, username string) PlaylistSummary {
	return PlaylistSummary{
		ID:          p.ID,
		URI:         p.URI,
		Name:        p.Name,
		Owner:       p.Owner.DisplayName,
		UserIsOwner: username != "" && p.Owner.DisplayName == username,
		TotalTracks: p.Tracks.Total,
	}
}
