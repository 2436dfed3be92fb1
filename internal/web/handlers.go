package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"poketimes/internal/render"
	"poketimes/internal/store"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Loaded bool   `json:"loaded"`
	Posts  int    `json:"posts"`
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	state := s.store.State()

	buf := new(bytes.Buffer)
	if err := render.Page(buf, s.title, s.renderer.View(state)); err != nil {
		s.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	state := s.store.State()

	respondJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Loaded: state.Loaded,
		Posts:  len(state.Posts),
	})
}

// action returns a handler that dispatches the event built from the {id}
// path parameter and redirects back to the page.
func (s *Server) action(build func(id int) store.Event) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			s.clientError(w, http.StatusBadRequest)
			return
		}

		event := build(id)
		s.store.Dispatch(event)
		s.logger.Debug("action dispatched", "event", event.String())

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
