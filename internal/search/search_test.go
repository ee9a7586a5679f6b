package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/desertthunder/spotify-mcp/internal/shared"
	"github.com/desertthunder/spotify-mcp/internal/spotify"
)

type remoteStub struct {
	calls     int
	gotQuery  string
	gotType   string
	gotLimit  int
	gotMarket string
	results   spotify.ResultSet
	err       error
}

func (r *remoteStub) Search(ctx context.Context, query, qtype string, limit int, market string) (spotify.ResultSet, error) {
	r.calls++
	r.gotQuery = query
	r.gotType = qtype
	r.gotLimit = limit
	r.gotMarket = market
	return r.results, r.err
}

func remoteTracks(names ...string) spotify.ResultSet {
	items := make([]any, 0, len(names))
	for i, name := range names {
		items = append(items, spotify.TrackSummary{ID: name, URI: "spotify:track:" + name, Name: name, DurationMS: (i + 1) * 1000})
	}
	return spotify.ResultSet{"tracks": {Items: items, Total: len(items)}}
}

func newEngine(remote RemoteSearcher, localURL string) *Engine {
	return NewEngine(remote, shared.SearchConfig{LocalURL: localURL, Market: "US"}, shared.NewLogger(nil))
}

func TestSearchFallback(t *testing.T) {
	t.Run("No Local Endpoint Configured", func(t *testing.T) {
		remote := &remoteStub{results: remoteTracks("t1")}
		engine := newEngine(remote, "")

		results, err := engine.Search(context.Background(), "breathe", "track", 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if remote.calls != 1 {
			t.Errorf("expected one remote call, got %d", remote.calls)
		}
		if len(results["tracks"].Items) != 1 {
			t.Error("expected remote results to pass through")
		}
		if remote.gotMarket != "US" {
			t.Errorf("expected configured market, got %q", remote.gotMarket)
		}
	})

	t.Run("Local Connection Refused", func(t *testing.T) {
		dead := httptest.NewServer(http.NotFoundHandler())
		dead.Close()

		remote := &remoteStub{results: remoteTracks("t1")}
		engine := newEngine(remote, dead.URL)

		results, err := engine.Search(context.Background(), "breathe", "track", 5)
		if err != nil {
			t.Fatalf("local failure must not surface: %v", err)
		}
		if remote.calls != 1 {
			t.Errorf("expected remote fallback, got %d calls", remote.calls)
		}
		if results["tracks"].Total != 1 {
			t.Error("expected remote results")
		}
	})

	t.Run("Local Timeout", func(t *testing.T) {
		slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(`{"documents": [{"id": "local1"}]}`))
		}))
		defer slow.Close()

		remote := &remoteStub{results: remoteTracks("remote1")}
		engine := newEngine(remote, slow.URL)
		engine.timeout = 20 * time.Millisecond

		results, err := engine.Search(context.Background(), "breathe", "track", 5)
		if err != nil {
			t.Fatalf("timeout must not surface: %v", err)
		}
		if remote.calls != 1 {
			t.Errorf("expected remote fallback after timeout, got %d calls", remote.calls)
		}
		track := results["tracks"].Items[0].(spotify.TrackSummary)
		if track.ID != "remote1" {
			t.Errorf("expected remote-sourced result, got %s", track.ID)
		}
	})

	t.Run("Local Non 2xx", func(t *testing.T) {
		broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer broken.Close()

		remote := &remoteStub{results: remoteTracks("t1")}
		engine := newEngine(remote, broken.URL)

		if _, err := engine.Search(context.Background(), "breathe", "track", 5); err != nil {
			t.Fatalf("local error status must not surface: %v", err)
		}
		if remote.calls != 1 {
			t.Errorf("expected remote fallback, got %d calls", remote.calls)
		}
	})

	t.Run("Local Empty Documents", func(t *testing.T) {
		empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"documents": []}`))
		}))
		defer empty.Close()

		remote := &remoteStub{results: remoteTracks("t1")}
		engine := newEngine(remote, empty.URL)

		if _, err := engine.Search(context.Background(), "breathe", "track", 5); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if remote.calls != 1 {
			t.Errorf("expected remote fallback for empty index, got %d calls", remote.calls)
		}
	})

	t.Run("Remote Error Propagates", func(t *testing.T) {
		remote := &remoteStub{err: errors.New("rate limited")}
		engine := newEngine(remote, "")

		if _, err := engine.Search(context.Background(), "breathe", "track", 5); err == nil {
			t.Error("expected remote error to surface")
		}
	})
}

func TestSearchShortCircuit(t *testing.T) {
	t.Run("Local Tracks Win", func(t *testing.T) {
		var gotQuery, gotType string
		local := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("q")
			gotType = r.URL.Query().Get("type")
			w.Write([]byte(`{"documents": [
				{"id": "l1", "name": "Breathe", "uri": "spotify:track:l1", "artists": [{"name": "Pink Floyd"}], "duration_ms": 169534, "album": {"name": "The Dark Side of the Moon"}},
				{"id": "l2", "name": "Breathe (Reprise)", "uri": "spotify:track:l2", "duration_ms": 63000}
			]}`))
		}))
		defer local.Close()

		remote := &remoteStub{results: remoteTracks("remote1")}
		engine := newEngine(remote, local.URL)

		results, err := engine.Search(context.Background(), "breathe", "track", 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if remote.calls != 0 {
			t.Errorf("remote must not be consulted when local results exist, got %d calls", remote.calls)
		}
		if gotQuery != "breathe" || gotType != "track" {
			t.Errorf("unexpected probe params q=%q type=%q", gotQuery, gotType)
		}

		page := results["tracks"]
		if len(page.Items) != 2 || page.Total != 2 {
			t.Fatalf("unexpected page items=%d total=%d", len(page.Items), page.Total)
		}
		first := page.Items[0].(spotify.TrackSummary)
		if first.Name != "Breathe" || first.Album != "The Dark Side of the Moon" {
			t.Errorf("unexpected normalized track %+v", first)
		}
	})

	t.Run("Truncates To Limit", func(t *testing.T) {
		local := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"documents": [
				{"id": "l1", "uri": "spotify:track:l1"},
				{"id": "l2", "uri": "spotify:track:l2"},
				{"id": "l3", "uri": "spotify:track:l3"}
			]}`))
		}))
		defer local.Close()

		engine := newEngine(&remoteStub{}, local.URL)

		results, err := engine.Search(context.Background(), "breathe", "track", 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		page := results["tracks"]
		if len(page.Items) != 2 {
			t.Errorf("expected truncation to limit, got %d items", len(page.Items))
		}
		if page.Total != 2 {
			t.Errorf("total must reflect the truncated count, got %d", page.Total)
		}
	})

	t.Run("Local Playlists", func(t *testing.T) {
		local := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"documents": [
				{"id": "p1", "name": "Night Drive", "uri": "spotify:playlist:p1", "owner": {"display_name": "alice"}, "tracks": {"total": 12}}
			]}`))
		}))
		defer local.Close()

		remote := &remoteStub{}
		engine := newEngine(remote, local.URL)

		results, err := engine.Search(context.Background(), "drive", "playlist", 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if remote.calls != 0 {
			t.Error("remote must not be consulted")
		}

		playlist := results["playlists"].Items[0].(spotify.PlaylistSummary)
		if playlist.Owner != "alice" || playlist.TotalTracks != 12 {
			t.Errorf("unexpected normalized playlist %+v", playlist)
		}
	})

	t.Run("Unindexed Kind Falls Through", func(t *testing.T) {
		local := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"documents": [{"id": "a1", "name": "Pink Floyd"}]}`))
		}))
		defer local.Close()

		remote := &remoteStub{results: spotify.ResultSet{"artists": {Total: 1}}}
		engine := newEngine(remote, local.URL)

		if _, err := engine.Search(context.Background(), "pink floyd", "artist", 5); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if remote.calls != 1 {
			t.Errorf("artist queries must fall through to remote, got %d calls", remote.calls)
		}
	})

	t.Run("Undecodable Documents Fall Through", func(t *testing.T) {
		local := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"documents": ["not an object", 42]}`))
		}))
		defer local.Close()

		remote := &remoteStub{results: remoteTracks("t1")}
		engine := newEngine(remote, local.URL)

		if _, err := engine.Search(context.Background(), "breathe", "track", 5); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if remote.calls != 1 {
			t.Errorf("expected remote fallback, got %d calls", remote.calls)
		}
	})
}

func TestSearchDefaults(t *testing.T) {
	remote := &remoteStub{results: remoteTracks("t1")}
	engine := newEngine(remote, "")

	if _, err := engine.Search(context.Background(), "anything", "", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if remote.gotType != "track" {
		t.Errorf("expected default type track, got %q", remote.gotType)
	}
	if remote.gotLimit != 10 {
		t.Errorf("expected default limit 10, got %d", remote.gotLimit)
	}
}
