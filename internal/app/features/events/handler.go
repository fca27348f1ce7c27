// internal/app/features/events/handler.go
package events

import (
	"errors"
	"net/http"

	contentstore "github.com/dalemusser/clubhub/internal/app/store/content"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the campus-wide event calendar, independent of any
// club's own event list.
type Handler struct {
	Content *contentstore.Store
	Log     *zap.Logger
}

func NewHandler(content *contentstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Content: content, Log: logger}
}

// ServeList handles GET /events, newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, h.Content.Events())
}

// ServeGet handles GET /events/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ev, ok := h.Content.EventByID(chi.URLParam(r, "id"))
	if !ok {
		httpjson.Error(w, http.StatusNotFound, "event not found")
		return
	}
	httpjson.Write(w, http.StatusOK, ev)
}

type eventRequest struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Desc  string `json:"desc"`
}

// ServeCreate handles POST /events.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	ev, err := h.Content.AddEvent(contentstore.EventInput{
		Title: req.Title,
		Date:  req.Date,
		Desc:  req.Desc,
	})
	if err != nil {
		if errors.Is(err, contentstore.ErrMissingTitle) {
			httpjson.Error(w, http.StatusUnprocessableEntity, "title is required")
			return
		}
		h.Log.Error("event create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "event create failed")
		return
	}

	h.Log.Info("event created", zap.String("event_id", ev.ID), zap.String("title", ev.Title))
	httpjson.Write(w, http.StatusCreated, ev)
}

type eventUpdateRequest struct {
	Title *string `json:"title"`
	Date  *string `json:"date"`
	Desc  *string `json:"desc"`
}

// ServeUpdate handles PATCH /events/{id}: shallow merge of the set
// fields.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req eventUpdateRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	h.Content.UpdateEvent(id, contentstore.EventUpdate{
		Title: req.Title,
		Date:  req.Date,
		Desc:  req.Desc,
	})

	ev, ok := h.Content.EventByID(id)
	if !ok {
		httpjson.Error(w, http.StatusNotFound, "event not found")
		return
	}
	httpjson.Write(w, http.StatusOK, ev)
}

// ServeDelete handles DELETE /events/{id}.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.Content.DeleteEvent(id)
	h.Log.Info("event deleted", zap.String("event_id", id))
	w.WriteHeader(http.StatusNoContent)
}
