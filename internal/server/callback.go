package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotify-mcp/internal/shared"
	"golang.org/x/oauth2"
)

// authTimeout bounds how long the login flow waits for the user to approve
// access in the browser.
const authTimeout = 2 * time.Minute

// CallbackServer runs the loopback HTTP server for one authorization flow.
//
// The server serves a single /callback route, delivers exactly one
// [OAuthResult], and is shut down by [CallbackServer.Wait] regardless of
// outcome.
type CallbackServer struct {
	handler    *OAuthHandler
	httpServer *http.Server
	errChan    chan error
	logger     *log.Logger
}

// NewCallbackServer builds a callback server listening on addr ("host:port").
func NewCallbackServer(config *oauth2.Config, state, addr string, logger *log.Logger) *CallbackServer {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	handler := NewOAuthHandler(config, state)
	mux := http.NewServeMux()
	mux.Handle("/callback", handler)

	return &CallbackServer{
		handler:    handler,
		httpServer: &http.Server{Addr: addr, Handler: mux},
		errChan:    make(chan error, 1),
		logger:     logger,
	}
}

// Start begins listening in the background.
func (s *CallbackServer) Start() {
	go func() {
		s.logger.Info("starting OAuth callback server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.errChan <- err
		}
	}()
}

// Wait blocks until the callback delivers a token, the server fails, or the
// authorization times out. The server is shut down before returning.
func (s *CallbackServer) Wait(ctx context.Context) (*oauth2.Token, error) {
	timeout := time.NewTimer(authTimeout)
	defer timeout.Stop()

	var result OAuthResult

	select {
	case result = <-s.handler.Result():
	case err := <-s.errChan:
		s.shutdown()
		return nil, fmt.Errorf("callback server error: %w", err)
	case <-timeout.C:
		s.shutdown()
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	case <-ctx.Done():
		s.shutdown()
		return nil, ctx.Err()
	}

	s.shutdown()

	if result.Error() != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, result.Error())
	}
	if result.Token == nil {
		return nil, fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
	}

	return result.Token, nil
}

func (s *CallbackServer) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Warn("error shutting down callback server", "error", err)
	}
}
