package spotify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/spotify-mcp/internal/shared"
)

// Devices lists the user's available Spotify Connect devices. The listing is
// never cached; playback and queue operations re-resolve devices per call.
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	var response devicesResponse
	if err := c.doRequest(ctx, http.MethodGet, "/me/player/devices", nil, &response); err != nil {
		return nil, err
	}
	return response.Devices, nil
}

// HasActiveDevice reports whether any listed device is flagged active.
func (c *Client) HasActiveDevice(ctx context.Context) bool {
	devices, err := c.Devices(ctx)
	if err != nil {
		return false
	}
	for _, device := range devices {
		if device.IsActive {
			return true
		}
	}
	return false
}

// CandidateDevice returns the active device, or the first listed device when
// none is active. Fails when no device is available at all.
func (c *Client) CandidateDevice(ctx context.Context) (*Device, error) {
	devices, err := c.Devices(ctx)
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, fmt.Errorf("%w: is Spotify open?", shared.ErrNoDevice)
	}

	for _, device := range devices {
		if device.IsActive {
			return &device, nil
		}
	}

	c.logger.Info("no active device, assigning first listed", "device", devices[0].Name)
	return &devices[0], nil
}

// AddToQueue adds a track URI to the playback queue.
//
// The first attempt names no device. On failure the device list is consulted
// and the call is retried exactly once against the first listed device; with
// no devices available the operation fails.
func (c *Client) AddToQueue(ctx context.Context, rawURI string) error {
	if err := c.queueAdd(ctx, rawURI, ""); err == nil {
		return nil
	}

	devices, err := c.Devices(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNoDevice, err)
	}
	if len(devices) == 0 {
		return fmt.Errorf("%w: please open Spotify on a device first", shared.ErrNoDevice)
	}

	return c.queueAdd(ctx, rawURI, devices[0].ID)
}
