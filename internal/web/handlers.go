package web

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jaminalder/codex-connect-three/internal/app"
	"github.com/jaminalder/codex-connect-three/internal/domain"
)

type handlers struct {
	svc       *app.Service
	tpl       *templates
	heartbeat time.Duration
	log       *slog.Logger
}

func (h *handlers) renderBoard(gs app.GameState, errMsg string) []byte {
	return renderTemplate(h.tpl.board, "", newBoardData(gs, errMsg))
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	h.writeIndex(w, http.StatusOK, indexData{})
}

func (h *handlers) writeIndex(w http.ResponseWriter, status int, data indexData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(renderTemplate(h.tpl.index, "base", data))
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	p1, p2 := r.Form.Get("p1"), r.Form.Get("p2")
	gs, err := h.svc.CreateGame(p1, p2)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			// setup is retried until both names are valid
			h.writeIndex(w, http.StatusUnprocessableEntity, indexData{P1: p1, P2: p2, Error: errorMessage(err)})
			return
		}
		http.Error(w, "failed to create", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	gs, ok := h.svc.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	data := newBoardData(*gs, "")
	data.Title = "Connect Three Game - " + data.Status

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	// Render page with embedded board container
	_, _ = w.Write(renderTemplate(h.tpl.game, "base", data))
}

func (h *handlers) drop(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_ = r.ParseForm()
	col, err := strconv.Atoi(r.Form.Get("col"))
	if err != nil {
		col = -1
	}
	gs, err := h.svc.Drop(id, col)
	h.writeBoard(w, r, gs, err)
}

func (h *handlers) undo(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.Undo(chi.URLParam(r, "id"))
	h.writeBoard(w, r, gs, err)
}

func (h *handlers) switchPlayer(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.Switch(chi.URLParam(r, "id"))
	h.writeBoard(w, r, gs, err)
}

func (h *handlers) reset(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	gs, err := h.svc.Reset(chi.URLParam(r, "id"), r.Form.Get("p1"), r.Form.Get("p2"))
	h.writeBoard(w, r, gs, err)
}

// writeBoard answers an action with the board fragment. Engine errors are
// shown inside the fragment; only an unknown game is an HTTP error.
func (h *handlers) writeBoard(w http.ResponseWriter, r *http.Request, gs *app.GameState, err error) {
	if errors.Is(err, app.ErrNotFound) || gs == nil {
		http.NotFound(w, r)
		return
	}
	var errMsg string
	if err != nil {
		errMsg = errorMessage(err)
		h.log.Debug("action rejected", "game_id", gs.ID, "path", r.URL.Path, "error", err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.renderBoard(*gs, errMsg))
}

func errorMessage(err error) string {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, domain.ErrColumnFull):
		return "Column is full! Choose another column."
	case errors.Is(err, domain.ErrNothingToUndo):
		return "There's nothing to undo."
	case errors.Is(err, domain.ErrOutOfBounds):
		return "No such column"
	case errors.Is(err, domain.ErrGameOver):
		return "Game is over, start a new one"
	default:
		return "Invalid action"
	}
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Get(id); !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// In tests or non-EventSource requests, just acknowledge headers and return
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx := r.Context()
	ch, unsub, err := h.svc.Subscribe(ctx, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer unsub()
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case b, ok := <-ch:
			if !ok {
				return
			}
			_, _ = fmt.Fprintf(w, "event: board\n")
			_, _ = fmt.Fprintf(w, "data: %s\n\n", sseData(b))
			flusher.Flush()
		}
	}
}
