// Package sse implements Server-Sent Events; the admin dashboard uses it to
// stream summary updates without polling.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Stream is one live SSE connection.
type Stream struct {
	w       http.ResponseWriter
	r       *http.Request
	flusher http.Flusher
	closed  bool
}

// New prepares w for event streaming. Returns nil when the writer cannot
// flush, after reporting the error to the client.
func New(w http.ResponseWriter, r *http.Request) *Stream {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return nil
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	// Proxies must not buffer the stream.
	w.Header().Set("X-Accel-Buffering", "no")

	return &Stream{w: w, r: r, flusher: flusher}
}

// Send writes a named event with a JSON payload and flushes it out.
func (s *Stream) Send(event string, data any) error {
	if s == nil || s.closed {
		return nil
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("sse: marshal: %w", err)
	}

	fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload)
	s.flusher.Flush()
	s.checkDisconnect()
	return nil
}

// Comment writes an SSE comment line; senders use it as a heartbeat.
func (s *Stream) Comment(msg string) {
	if s == nil || s.closed {
		return
	}
	fmt.Fprintf(s.w, ": %s\n\n", msg)
	s.flusher.Flush()
}

// IsClosed reports whether the client has gone away.
func (s *Stream) IsClosed() bool {
	if s == nil {
		return true
	}
	s.checkDisconnect()
	return s.closed
}

func (s *Stream) checkDisconnect() {
	select {
	case <-s.r.Context().Done():
		s.closed = true
	default:
	}
}
