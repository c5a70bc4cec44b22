package feed

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"areaviewer/internal/medium"
	"areaviewer/pkg/geometry"
)

func testClient(dst *medium.Memory) *Client {
	return NewClient("", dst, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestApplySnapshotReplacesRadios(t *testing.T) {
	dst := medium.NewMemory(medium.Field{})
	dst.AddRadio("stale", geometry.Point{X: 1, Y: 1})

	c := testClient(dst)
	frame := `{"type":"snapshot","radios":[
		{"id":"n1","position":{"x":10,"y":20}},
		{"id":"n2","position":{"x":-3,"y":0}}]}`
	if err := c.apply([]byte(frame)); err != nil {
		t.Fatalf("apply: %v", err)
	}

	radios := dst.Radios()
	if len(radios) != 2 || radios[0].ID != "n1" || radios[1].ID != "n2" {
		t.Fatalf("radios = %+v", radios)
	}
	if radios[0].Position != (geometry.Point{X: 10, Y: 20}) {
		t.Fatalf("position = %+v", radios[0].Position)
	}
}

func TestApplyActivityFrame(t *testing.T) {
	dst := medium.NewMemory(medium.Field{})
	c := testClient(dst)

	frame := `{"type":"activity",
		"transmissions":[{"source":{"x":1,"y":2}}],
		"interferences":[{"source":{"x":1,"y":2},"destination":{"x":3,"y":4}}]}`
	if err := c.apply([]byte(frame)); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if len(dst.Transmissions()) != 1 || len(dst.Interferences()) != 1 || len(dst.Transfers()) != 0 {
		t.Fatalf("activity = %d/%d/%d", len(dst.Transmissions()), len(dst.Interferences()), len(dst.Transfers()))
	}
}

func TestApplyRejectsBadFrames(t *testing.T) {
	dst := medium.NewMemory(medium.Field{})
	c := testClient(dst)

	if err := c.apply([]byte(`not json`)); err == nil {
		t.Error("malformed JSON accepted")
	}
	if err := c.apply([]byte(`{"type":"telemetry"}`)); err == nil {
		t.Error("unknown frame type accepted")
	}
	if len(dst.Radios()) != 0 {
		t.Error("bad frames mutated the medium")
	}
}

func TestRunMirrorsLiveFeed(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		frame := `{"type":"snapshot","radios":[{"id":"live","position":{"x":5,"y":5}}]}`
		if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
			return
		}
		// Hold the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	dst := medium.NewMemory(medium.Field{})
	applied := make(chan struct{}, 1)
	dst.OnRadiosChanged(func() {
		select {
		case applied <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	c := NewClient(url, dst, slog.New(slog.NewTextHandler(io.Discard, nil)))
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	select {
	case <-applied:
	case <-time.After(5 * time.Second):
		t.Fatal("snapshot never applied")
	}
	if radios := dst.Radios(); len(radios) != 1 || radios[0].ID != "live" {
		t.Fatalf("radios = %+v", radios)
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop on cancellation")
	}
}
