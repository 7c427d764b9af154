package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func startFeedServer(t *testing.T, frames []string) string {
	t.Helper()

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer func(conn *websocket.Conn) {
			_ = conn.Close()
		}(conn)

		for _, frame := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		}
		// Keep the connection open until the client goes away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestFeedSource_ReceivesObservations(t *testing.T) {
	endpoint := startFeedServer(t, []string{
		`{"value": 1.5, "ts": "2025-06-01T00:00:00Z"}`,
		`not json`,
		`{"value": -2.5}`,
	})

	source := NewSource(zap.NewNop(), endpoint, "test", 16)
	if err := source.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer source.Close()

	first, err := source.GetNext()
	if err != nil {
		t.Fatalf("GetNext failed: %v", err)
	}
	if first.Value != 1.5 || first.Stream != "test" || first.Source != feedComponentName {
		t.Errorf("Unexpected observation: %+v", first)
	}
	if !first.TimeStamp.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("TimeStamp = %v, want 2025-06-01T00:00:00Z", first.TimeStamp)
	}

	// The undecodable frame is skipped
	second, err := source.GetNext()
	if err != nil {
		t.Fatalf("GetNext failed: %v", err)
	}
	if second.Value != -2.5 {
		t.Errorf("Value = %v, want -2.5", second.Value)
	}
	if second.TimeStamp.IsZero() {
		t.Error("Expected a timestamp to be stamped on frames without one")
	}
}

func TestFeedSource_ClosedReturnsError(t *testing.T) {
	endpoint := startFeedServer(t, nil)

	source := NewSource(zap.NewNop(), endpoint, "test", 16)
	if err := source.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	source.Close()

	deadline := time.After(time.Second)
	for {
		_, err := source.GetNext()
		if errors.Is(err, ErrClosed) {
			return
		}
		if err != nil {
			t.Fatalf("Expected ErrClosed, got %v", err)
		}
		select {
		case <-deadline:
			t.Fatal("GetNext did not report closure")
		default:
		}
	}
}

func TestFeedSource_GetNextBeforeConnect(t *testing.T) {
	source := NewSource(zap.NewNop(), "ws://127.0.0.1:1/feed", "test", 16)

	if _, err := source.GetNext(); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed before Connect, got %v", err)
	}
}

func TestFeedSource_ConnectFailure(t *testing.T) {
	source := NewSource(zap.NewNop(), "ws://127.0.0.1:1/feed", "test", 16)
	if err := source.Connect(context.Background()); err == nil {
		t.Error("Expected connect error for unreachable endpoint")
		source.Close()
	}
}
