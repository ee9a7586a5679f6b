// Package mcptools exposes the Spotify capabilities as MCP tools: tool
// definitions, argument routing, and conversion of every downstream failure
// into a single structured error payload.
package mcptools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Register adds the five Spotify tools to the MCP server, bound to the
// dispatcher's handlers.
func Register(s *server.MCPServer, d *Dispatcher) {
	s.AddTool(
		mcp.NewTool("SpotifyPlayback",
			mcp.WithDescription("Manages the current playback with the following actions:\n"+
				"- get: Get information about user's current track.\n"+
				"- start: Starts playing new item or resumes current playback if called with no uri.\n"+
				"- pause: Pauses current playback.\n"+
				"- skip: Skips current track."),
			mcp.WithString("action",
				mcp.Required(),
				mcp.Description("Action to perform: 'get', 'start', 'pause' or 'skip'."),
			),
			mcp.WithString("spotify_uri",
				mcp.Description("Spotify uri of item to play for 'start' action. If omitted, resumes current playback."),
			),
			mcp.WithNumber("num_skips",
				mcp.Description("Number of tracks to skip for 'skip' action."),
			),
		),
		d.HandlePlayback,
	)

	s.AddTool(
		mcp.NewTool("SpotifySearch",
			mcp.WithDescription("Search for tracks, albums, artists, or playlists on Spotify."),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("query term"),
			),
			mcp.WithString("qtype",
				mcp.Description("Type of items to search for (track, album, artist, playlist, or comma-separated combination)"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of items to return"),
			),
		),
		d.HandleSearch,
	)

	s.AddTool(
		mcp.NewTool("SpotifyQueue",
			mcp.WithDescription("Manage the playback queue - get the queue or add playlists/tracks/artists/album to queue."),
			mcp.WithString("action",
				mcp.Required(),
				mcp.Description("Action to perform: 'add' or 'get'."),
			),
			mcp.WithString("spotify_uri",
				mcp.Description("Spotify resource uri to add to queue (required for add action)"),
			),
		),
		d.HandleQueue,
	)

	s.AddTool(
		mcp.NewTool("SpotifyGetInfo",
			mcp.WithDescription("Get detailed information about a Spotify item (track, album, artist, or playlist)."),
			mcp.WithString("item_uri",
				mcp.Required(),
				mcp.Description("URI of the item to get information about. If 'playlist' or 'album', returns its tracks. If 'artist', returns albums and top tracks."),
			),
		),
		d.HandleGetInfo,
	)

	s.AddTool(
		mcp.NewTool("SpotifyPlaylist",
			mcp.WithDescription("Manage Spotify playlists.\n"+
				"- get: Get a list of user's playlists.\n"+
				"- get_tracks: Get tracks in a specific playlist.\n"+
				"- add_tracks: Add tracks to a specific playlist.\n"+
				"- remove_tracks: Remove tracks from a specific playlist.\n"+
				"- change_details: Change details of a specific playlist."),
			mcp.WithString("action",
				mcp.Required(),
				mcp.Description("Action to perform: 'get', 'get_tracks', 'add_tracks', 'remove_tracks', 'change_details'."),
			),
			mcp.WithString("playlist_id",
				mcp.Description("ID of the playlist to manage."),
			),
			mcp.WithArray("track_ids",
				mcp.Description("List of track IDs to add/remove."),
			),
			mcp.WithString("name",
				mcp.Description("New name for the playlist."),
			),
			mcp.WithString("description",
				mcp.Description("New description for the playlist."),
			),
		),
		d.HandlePlaylist,
	)
}
