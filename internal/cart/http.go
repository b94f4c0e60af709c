package cart

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Storefront/internal/catalog"
	"Storefront/pkg/kit"
)

type Server struct {
	Cart    *Store
	Catalog *catalog.Store
	Log     *zap.Logger
}

type addReq struct {
	UUID     string `json:"uuid"`
	Quantity int    `json:"quantity"`
}

type quantityReq struct {
	Quantity int `json:"quantity"`
}

type cartView struct {
	Items           []LineItem `json:"items"`
	TotalItems      int        `json:"total_items"`
	TotalPriceCents int64      `json:"total_price_cents"`
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.view)
	r.Delete("/", s.clear)

	r.Post("/items", s.add)
	r.Patch("/items/{uuid}", s.updateQuantity)
	r.Delete("/items/{uuid}", s.remove)
	r.Post("/items/{uuid}/increase", s.increase)
	r.Post("/items/{uuid}/decrease", s.decrease)

	return r
}

func (s *Server) view(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) snapshot() cartView {
	return cartView{
		Items:           s.Cart.Items(),
		TotalItems:      s.Cart.TotalItems(),
		TotalPriceCents: s.Cart.TotalPriceCents(),
	}
}

// add is the listing collaborator's entry point: it reserves the stock
// atomically and hands the pre-reservation product to the cart, because
// the cart store's Add deliberately does neither.
func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	var req addReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	p, err := s.Catalog.Reserve(req.UUID, req.Quantity)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "unknown product", map[string]any{"uuid": req.UUID})
		return
	case errors.Is(err, catalog.ErrQuantityOutOfRange):
		kit.WriteError(w, r, http.StatusUnprocessableEntity, "quantity out of range", map[string]any{"uuid": req.UUID})
		return
	case err != nil:
		if s.Log != nil {
			s.Log.Error("reserve failed", zap.Error(err), zap.String("uuid", req.UUID))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	s.Cart.Add(p, req.Quantity)

	kit.WriteJSON(w, http.StatusCreated, s.snapshot())
}

func (s *Server) updateQuantity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	var req quantityReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	if err := s.Cart.UpdateQuantity(id, req.Quantity); err != nil {
		s.writeCartError(w, r, err, id)
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) increase(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")
	if err := s.Cart.Increase(id); err != nil {
		s.writeCartError(w, r, err, id)
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) decrease(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")
	if err := s.Cart.Decrease(id); err != nil {
		s.writeCartError(w, r, err, id)
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	s.Cart.Remove(chi.URLParam(r, "uuid"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) clear(w http.ResponseWriter, _ *http.Request) {
	s.Cart.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeCartError(w http.ResponseWriter, r *http.Request, err error, id string) {
	switch {
	case errors.Is(err, ErrNotInCart), errors.Is(err, ErrUnknownProduct):
		kit.WriteError(w, r, http.StatusNotFound, err.Error(), map[string]any{"uuid": id})
	case errors.Is(err, ErrQuantityOutOfRange):
		kit.WriteError(w, r, http.StatusUnprocessableEntity, err.Error(), map[string]any{"uuid": id})
	case errors.Is(err, ErrAtStockLimit), errors.Is(err, ErrAtMinimum):
		kit.WriteError(w, r, http.StatusConflict, err.Error(), map[string]any{"uuid": id})
	default:
		if s.Log != nil {
			s.Log.Error("cart operation failed", zap.Error(err), zap.String("uuid", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}
