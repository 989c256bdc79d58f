package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"juntaai-backend/internal/logger"
	"juntaai-backend/internal/realtime"

	"github.com/gorilla/mux"
)

type StreamHandler struct {
	hub *realtime.Hub
}

func NewStreamHandler(hub *realtime.Hub) *StreamHandler {
	return &StreamHandler{hub: hub}
}

// StreamGroup serves a group view over SSE. The client gets an initial
// summary, then one event per settled burst of changes. Closing the
// connection tears the subscription down.
//
// Each stream holds its own projection, so every event carries the view
// shape clients also use for locally staged decisions.
func (h *StreamHandler) StreamGroup(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming unsupported", Code: "internal"})
		return
	}
	groupID := mux.Vars(r)["id"]

	sub := h.hub.Subscribe(groupID)
	defer sub.Close()
	proj := realtime.NewProjection()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case summary, ok := <-sub.C:
			if !ok {
				return
			}
			data, err := json.Marshal(proj.ApplyAuthoritative(summary))
			if err != nil {
				logger.Error("failed to marshal summary event", "group_id", groupID, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: summary\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}
