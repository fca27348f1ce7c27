// internal/app/features/clubs/handler.go
package clubs

import (
	"errors"
	"net/http"

	contentstore "github.com/dalemusser/clubhub/internal/app/store/content"
	"github.com/dalemusser/clubhub/internal/app/system/httpjson"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Content *contentstore.Store
	Log     *zap.Logger
}

func NewHandler(content *contentstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Content: content, Log: logger}
}

// ServeList handles GET /clubs, newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, h.Content.Clubs())
}

// ServeGet handles GET /clubs/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	club, ok := h.Content.ClubByID(chi.URLParam(r, "id"))
	if !ok {
		httpjson.Error(w, http.StatusNotFound, "club not found")
		return
	}
	httpjson.Write(w, http.StatusOK, club)
}

type clubRequest struct {
	Name string `json:"name"`
	Desc string `json:"desc"`
}

// ServeCreate handles POST /clubs.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	var req clubRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	club, err := h.Content.AddClub(contentstore.ClubInput{Name: req.Name, Desc: req.Desc})
	if err != nil {
		if errors.Is(err, contentstore.ErrMissingTitle) {
			httpjson.Error(w, http.StatusUnprocessableEntity, "name is required")
			return
		}
		h.Log.Error("club create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "club create failed")
		return
	}

	h.Log.Info("club created", zap.String("club_id", club.ID), zap.String("name", club.Name))
	httpjson.Write(w, http.StatusCreated, club)
}

type clubUpdateRequest struct {
	Name *string `json:"name"`
	Desc *string `json:"desc"`
}

// ServeUpdate handles PATCH /clubs/{id}: shallow merge of the set
// fields. The nested event list is managed through its own endpoints.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req clubUpdateRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	h.Content.UpdateClub(id, contentstore.ClubUpdate{Name: req.Name, Desc: req.Desc})

	club, ok := h.Content.ClubByID(id)
	if !ok {
		httpjson.Error(w, http.StatusNotFound, "club not found")
		return
	}
	httpjson.Write(w, http.StatusOK, club)
}

// ServeDelete handles DELETE /clubs/{id}. Member clubId references are
// left as they are; the club list and the member list are independent.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.Content.DeleteClub(id)
	h.Log.Info("club deleted", zap.String("club_id", id))
	w.WriteHeader(http.StatusNoContent)
}

type clubEventRequest struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// ServeAddEvent handles POST /clubs/{id}/events.
func (h *Handler) ServeAddEvent(w http.ResponseWriter, r *http.Request) {
	clubID := chi.URLParam(r, "id")
	if _, ok := h.Content.ClubByID(clubID); !ok {
		httpjson.Error(w, http.StatusNotFound, "club not found")
		return
	}

	var req clubEventRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	ev, err := h.Content.AddEventToClub(clubID, contentstore.ClubEventInput{
		Title:       req.Title,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, "title is required")
		return
	}

	h.Log.Info("club event added", zap.String("club_id", clubID), zap.String("event_id", ev.ID))
	httpjson.Write(w, http.StatusCreated, ev)
}

// ServeDeleteEvent handles DELETE /clubs/{id}/events/{eventID}.
func (h *Handler) ServeDeleteEvent(w http.ResponseWriter, r *http.Request) {
	clubID := chi.URLParam(r, "id")
	eventID := chi.URLParam(r, "eventID")
	h.Content.DeleteEventFromClub(clubID, eventID)
	w.WriteHeader(http.StatusNoContent)
}
