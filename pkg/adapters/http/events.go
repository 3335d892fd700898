package http

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SubscribeEvents handles the GET /events request (SSE).
// Every notification lifecycle event of the board is sent as one SSE event
// named after its kind (show, dismiss, remove).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	if s.Board == nil {
		s.writeError(w, http.StatusNotImplemented, "notification board is not configured")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, cancel := s.Board.Subscribe()
	defer cancel()

	s.logger.Info("SSE: Subscribing to notifications")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected")
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			payload, err := json.Marshal(ev.Notification)
			if err != nil {
				s.logger.Error("SSE: event encode failed", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Kind, payload)
			flusher.Flush()
		}
	}
}
