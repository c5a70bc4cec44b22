// Package feed mirrors a remote simulator into a local medium over a
// websocket. The remote side pushes full radio snapshots and activity
// updates; the viewer never writes back.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"areaviewer/internal/medium"
)

// Redial backoff bounds.
const (
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

// Message types pushed by the remote side.
const (
	typeSnapshot = "snapshot"
	typeActivity = "activity"
)

type message struct {
	Type          string            `json:"type"`
	Radios        []medium.Radio    `json:"radios"`
	Transmissions []medium.Activity `json:"transmissions"`
	Interferences []medium.Activity `json:"interferences"`
	Transfers     []medium.Activity `json:"transfers"`
}

// Client keeps a medium synchronized with a remote feed. It redials
// with exponential backoff and treats malformed frames as noise.
type Client struct {
	url    string
	dst    *medium.Memory
	logger *slog.Logger
	dialer *websocket.Dialer
}

// NewClient builds a client mirroring the feed at url into dst.
func NewClient(url string, dst *medium.Memory, logger *slog.Logger) *Client {
	return &Client{
		url:    url,
		dst:    dst,
		logger: logger,
		dialer: websocket.DefaultDialer,
	}
}

// Run connects and mirrors the feed until the context is cancelled.
// Connection loss is not an error; the client redials indefinitely.
func (c *Client) Run(ctx context.Context) error {
	backoff := initialBackoff
	for {
		conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Warn("feed dial failed", "url", c.url, "err", err, "retry_in", backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}

		c.logger.Info("feed connected", "url", c.url)
		backoff = initialBackoff
		err = c.read(ctx, conn)
		conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("feed disconnected", "url", c.url, "err", err)
	}
}

func (c *Client) read(ctx context.Context, conn *websocket.Conn) error {
	// Unblock ReadMessage on cancellation.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if err := c.apply(data); err != nil {
			c.logger.Warn("skipping bad feed frame", "err", err)
		}
	}
}

// apply decodes one frame and applies it to the medium.
func (c *Client) apply(data []byte) error {
	var msg message
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("decode frame: %w", err)
	}
	switch msg.Type {
	case typeSnapshot:
		c.dst.SetRadios(msg.Radios)
	case typeActivity:
		c.dst.SetActivity(msg.Transmissions, msg.Interferences, msg.Transfers)
	default:
		return fmt.Errorf("unknown frame type %q", msg.Type)
	}
	return nil
}
