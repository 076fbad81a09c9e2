package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// EventStream writes server-sent events. Every payload is sent as a single
// JSON encoded data line.
type EventStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewEventStream writes the event-stream headers and a 200 status.
func NewEventStream(w http.ResponseWriter) *EventStream {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	s := &EventStream{w: w}
	if f, ok := w.(http.Flusher); ok {
		s.flusher = f
	}
	s.flush()
	return s
}

// Send writes v as one event.
func (s *EventStream) Send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return err
	}
	s.flush()
	return nil
}

// SendError writes an {"error": msg} event.
func (s *EventStream) SendError(err error) {
	s.Send(map[string]string{"error": err.Error()})
}

// Done writes the terminating [DONE] marker.
func (s *EventStream) Done() {
	fmt.Fprint(s.w, "data: [DONE]\n\n")
	s.flush()
}

func (s *EventStream) flush() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}
