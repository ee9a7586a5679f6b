// Client for the Spotify Web API.
//
// Wraps [oauth2] for authentication and exposes typed lookup, playback,
// queue, device and playlist operations.
package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotify-mcp/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// Market used when the user's profile country cannot be read.
	defaultMarket = "US"

	// Client-side request budget. Bounds the sequential pagination and
	// multi-track enqueue loops well under Spotify's rate limits.
	requestsPerSecond = 10
)

var scopes = []string{
	"user-library-read",
	"user-read-playback-state",
	"user-modify-playback-state",
	"user-read-currently-playing",
	"playlist-read-private",
	"playlist-read-collaborative",
	"playlist-modify-private",
	"playlist-modify-public",
}

// Client performs authenticated requests against the Spotify Web API.
type Client struct {
	config         *oauth2.Config
	token          *oauth2.Token
	httpClient     *http.Client
	baseURL        string
	limiter        *rate.Limiter
	logger         *log.Logger
	onTokenRefresh func(*oauth2.Token)

	// Current-user profile, fetched once per process lifetime and never
	// invalidated. Session-scoped auth makes that acceptable.
	mu      sync.Mutex
	profile *User
}

// NewClient creates a Spotify client with the given OAuth2 credentials.
func NewClient(credentials map[string]string, logger *log.Logger) (*Client, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:3000/callback"
	}

	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &Client{
		config:     config,
		httpClient: http.DefaultClient,
		baseURL:    spotifyBaseURL,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:     logger,
	}, nil
}

// GetAuthURL returns the OAuth2 authorization URL for user login.
func (c *Client) GetAuthURL(state string) string {
	return c.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// OAuthConfig exposes the underlying OAuth2 config for the callback server.
func (c *Client) OAuthConfig() *oauth2.Config {
	return c.config
}

// SetTokenRefreshCallback registers a function invoked whenever the token
// source produces a new token, so refreshed tokens can be persisted.
func (c *Client) SetTokenRefreshCallback(fn func(*oauth2.Token)) {
	c.onTokenRefresh = fn
}

// Authenticate installs the token and builds an auto-refreshing HTTP client.
func (c *Client) Authenticate(ctx context.Context, token *oauth2.Token) error {
	if token == nil || token.AccessToken == "" && token.RefreshToken == "" {
		return fmt.Errorf("%w: no token provided", shared.ErrNotAuthenticated)
	}

	c.token = token
	source := &refreshableTokenSource{
		source: c.config.TokenSource(ctx, token),
		callback: func(t *oauth2.Token) {
			c.token = t
			if c.onTokenRefresh != nil {
				c.onTokenRefresh(t)
			}
		},
	}
	c.httpClient = oauth2.NewClient(ctx, source)

	return nil
}

// AuthOK reports whether a usable, unexpired token is present.
func (c *Client) AuthOK() bool {
	return c.token != nil && c.token.Valid()
}

// RefreshAuth forces a token refresh through the configured token source.
func (c *Client) RefreshAuth(ctx context.Context) error {
	if c.token == nil {
		return shared.ErrNotAuthenticated
	}
	if c.token.RefreshToken == "" {
		return shared.ErrNoRefreshToken
	}

	token, err := c.config.TokenSource(ctx, c.token).Token()
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	c.token = token
	if c.onTokenRefresh != nil {
		c.onTokenRefresh(token)
	}
	return nil
}

// apiError is the Spotify error envelope.
type apiError struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// doRequest performs an authenticated HTTP request against a v1 endpoint.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	return c.doRequestURL(ctx, method, c.baseURL+endpoint, body, result)
}

// doRequestURL performs an authenticated HTTP request against a full URL.
// Pagination follows server-provided absolute continuation URLs, so this
// variant is the one the pagination loops use.
func (c *Client) doRequestURL(ctx context.Context, method, fullURL string, body any, result any) error {
	if c.token == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token.AccessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiErrorFrom(resp)
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		if len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// apiErrorFrom converts a non-2xx response into a sentinel-wrapped error
// carrying the API's own message.
func (c *Client) apiErrorFrom(resp *http.Response) error {
	message := resp.Status
	var envelope apiError
	if data, err := io.ReadAll(resp.Body); err == nil && len(data) > 0 {
		if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error.Message != "" {
			message = envelope.Error.Message
		}
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", shared.ErrTokenExpired, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", shared.ErrNotFound, message)
	default:
		return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, message)
	}
}

// CurrentUser retrieves the authenticated user's profile, memoized for the
// process lifetime.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.profile != nil {
		return c.profile, nil
	}

	var user User
	if err := c.doRequest(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}

	c.profile = &user
	return c.profile, nil
}

// Username returns the current user's display name, best effort. Used for
// playlist ownership checks where an empty name simply means "not owned".
func (c *Client) Username(ctx context.Context) string {
	user, err := c.CurrentUser(ctx)
	if err != nil {
		c.logger.Debug("could not resolve current user", "error", err)
		return ""
	}
	return user.DisplayName
}

// market resolves the market/region code from the user's profile, falling
// back to the default on any failure.
func (c *Client) market(ctx context.Context) string {
	user, err := c.CurrentUser(ctx)
	if err != nil || user.Country == "" {
		return defaultMarket
	}
	return user.Country
}
