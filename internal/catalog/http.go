package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Storefront/pkg/kit"
)

type Server struct {
	Store  *Store
	Loader *Loader
	Log    *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.list)
	r.Get("/{uuid}", s.get)
	r.Post("/refresh", s.refresh)

	return r
}

func (s *Server) list(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Store.GetAll())
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	p, ok := s.Store.Get(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"uuid": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	if err := s.Loader.Load(r.Context()); err != nil {
		kit.WriteError(w, r, http.StatusBadGateway, "catalog source unavailable", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.Store.GetAll())
}
