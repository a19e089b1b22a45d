package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamEvent is sent over /stream when a note is due.
type StreamEvent struct {
	Index int   `json:"index"`
	At    int64 `json:"at_ms"`
	NoteInfo
}

// handleStream sends every note of the requested melody at its scheduled
// time, then closes the connection normally.
func (h *handler) handleStream(w http.ResponseWriter, r *http.Request) {
	_, ex, key, err := h.melody(r)
	if err != nil {
		Err(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("api: websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	notes := ex.Notes(key)
	d := h.Options.Timing.NoteDuration()
	ticker := time.NewTicker(max(d, time.Millisecond))
	defer ticker.Stop()

	slog.Debug("api: stream started", "example", ex.Name, "notes", len(notes))
	for i, n := range notes {
		ev := StreamEvent{
			Index:    i,
			At:       (time.Duration(i) * d).Milliseconds(),
			NoteInfo: noteInfo(n),
		}
		if err := conn.WriteJSON(ev); err != nil {
			slog.Debug("api: stream write failed", "error", err)
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "end of sequence")
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil {
		slog.Debug("api: stream close failed", "error", err)
	}
}
