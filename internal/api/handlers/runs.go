package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"
	"vrp-visualizer-service/internal/api/dto"
	"vrp-visualizer-service/internal/domain"
	"vrp-visualizer-service/internal/ports"

	"github.com/gorilla/websocket"
)

const (
	maxRunsLimit = 1000
	pingInterval = 20 * time.Second
	pongWait     = 60 * time.Second
	writeWait    = 5 * time.Second
)

type RunSubscriber interface {
	Subscribe() chan domain.RunSummary
	Unsubscribe(ch chan domain.RunSummary)
}

// RunHandler serves the run history and its live stream.
type RunHandler struct {
	Runs         ports.RunRepository
	Subscriber   RunSubscriber
	DefaultLimit int
	// Nil accepts every origin.
	CheckOrigin func(r *http.Request) bool
}

func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	limit := h.DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxRunsLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and "+strconv.Itoa(maxRunsLimit))
			return
		}
		limit = n
	}

	runs, err := h.Runs.List(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, "list runs", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListRunsResponse{Runs: runs})
}

func (h *RunHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	run, err := h.Runs.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, domain.ErrRunNotFound) {
		writeError(w, r, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		writeServiceError(w, r, "get run", err)
		return
	}

	writeJSON(w, r, http.StatusOK, run)
}

// Stream pushes every completed run to a websocket client as a JSON text
// message. Client messages are read and discarded.
func (h *RunHandler) Stream(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: h.CheckOrigin}
	if upgrader.CheckOrigin == nil {
		upgrader.CheckOrigin = func(*http.Request) bool { return true }
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		return
	}
	defer func() { _ = conn.Close() }()

	ch := h.Subscriber.Subscribe()
	defer h.Subscriber.Unsubscribe(ch)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(4096)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case run, ok := <-ch:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(run); err != nil {
				slog.Debug("stream write failed", "run_id", run.ID, "err", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
