package rosterhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bizops/internal/domain/auth"
	"bizops/internal/domain/roster"
	"bizops/internal/domain/timesheet"
	"bizops/internal/transport/http/api"
	"bizops/internal/transport/http/middleware"
	"bizops/internal/transport/http/shared"
)

type Handler struct {
	Store      *roster.Store
	Timesheets *timesheet.Store
}

func NewHandler(store *roster.Store, timesheets *timesheet.Store) *Handler {
	return &Handler{Store: store, Timesheets: timesheets}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/rosters", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermRosterRead)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermRosterWrite)).Post("/", h.handleCreate)
		r.Route("/{rosterID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermRosterRead)).Get("/", h.handleGet)
			r.With(middleware.RequirePermission(auth.PermRosterWrite)).Put("/", h.handleUpdate)
			r.With(middleware.RequirePermission(auth.PermRosterWrite)).Delete("/", h.handleDelete)
			r.With(middleware.RequirePermission(auth.PermRosterWrite)).Post("/confirm", h.handleConfirm)
			r.With(middleware.RequirePermission(auth.PermRosterWrite)).Post("/cancel", h.handleCancel)
			r.With(middleware.RequirePermission(auth.PermRosterWrite)).Post("/lock", h.handleLock)
			r.With(middleware.RequirePermission(auth.PermRosterWrite)).Post("/unlock", h.handleUnlock)
		})
	})
}

type entryPayload struct {
	roster.Entry
	Date string `json:"date"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	profileID := r.URL.Query().Get("profileId")
	if user.Role == auth.RoleEmployee {
		profileID = user.ProfileID
	}

	v := shared.NewValidator()
	var from, to time.Time
	if raw := r.URL.Query().Get("from"); raw != "" {
		if parsed, ok := v.Date("from", raw); ok {
			from = parsed
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if parsed, ok := v.Date("to", raw); ok {
			to = parsed
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	page := shared.ParsePagination(r, 100, 500)
	entries, err := h.Store.ListEntries(r.Context(), profileID, from, to, page.Limit, page.Offset)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	entry, err := h.Store.GetEntry(r.Context(), chi.URLParam(r, "rosterID"))
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entry, middleware.GetRequestID(r.Context()))
}

func (h *Handler) parseEntry(w http.ResponseWriter, r *http.Request) (roster.Entry, bool) {
	var payload entryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return roster.Entry{}, false
	}

	v := shared.NewValidator()
	v.Required("profileId", payload.ProfileID, "profile is required")
	v.Required("date", payload.Date, "date is required")
	if payload.Date != "" {
		if date, ok := v.Date("date", payload.Date); ok {
			payload.Entry.Date = date
		}
	}
	start, startOK := v.Clock("startTime", payload.StartTime)
	end, endOK := v.Clock("endTime", payload.EndTime)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return roster.Entry{}, false
	}

	if startOK && endOK {
		payload.TotalHours = roster.ShiftHours(start, end)
	}
	return payload.Entry, true
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.parseEntry(w, r)
	if !ok {
		return
	}
	entry.Status = roster.StatusPending

	id, err := h.Store.CreateEntry(r.Context(), entry)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

// guardEditable rejects writes to a roster that is locked or already has
// approved working hours referencing it.
func (h *Handler) guardEditable(w http.ResponseWriter, r *http.Request, entry roster.Entry) bool {
	hours, err := h.Timesheets.ListWorkingHours(r.Context(), timesheet.Filter{RosterID: entry.ID}, 0, 0)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return false
	}

	if err := roster.CheckEditable(entry, hours); err != nil {
		var locked *roster.LockedError
		if errors.As(err, &locked) {
			api.FailWithDetails(w, http.StatusConflict, "roster_locked", err.Error(),
				map[string]any{"approvedCount": locked.ApprovedCount}, middleware.GetRequestID(r.Context()))
			return false
		}
		api.Fail(w, http.StatusConflict, "roster_locked", err.Error(), middleware.GetRequestID(r.Context()))
		return false
	}
	return true
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	rosterID := chi.URLParam(r, "rosterID")
	existing, err := h.Store.GetEntry(r.Context(), rosterID)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if !h.guardEditable(w, r, *existing) {
		return
	}

	entry, ok := h.parseEntry(w, r)
	if !ok {
		return
	}

	found, err := h.Store.UpdateEntry(r.Context(), rosterID, entry)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "roster not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": rosterID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	rosterID := chi.URLParam(r, "rosterID")
	existing, err := h.Store.GetEntry(r.Context(), rosterID)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if !h.guardEditable(w, r, *existing) {
		return
	}

	found, err := h.Store.DeleteEntry(r.Context(), rosterID)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "roster not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": rosterID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, roster.StatusConfirmed)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, roster.StatusCancelled)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, to string) {
	rosterID := chi.URLParam(r, "rosterID")
	existing, err := h.Store.GetEntry(r.Context(), rosterID)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	if !roster.CanTransition(existing.Status, to) {
		api.Fail(w, http.StatusConflict, "invalid_transition", "cannot move roster from "+existing.Status+" to "+to, middleware.GetRequestID(r.Context()))
		return
	}

	if _, err := h.Store.SetStatus(r.Context(), rosterID, to); err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": rosterID, "status": to}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleLock(w http.ResponseWriter, r *http.Request) {
	h.setLocked(w, r, true)
}

func (h *Handler) handleUnlock(w http.ResponseWriter, r *http.Request) {
	h.setLocked(w, r, false)
}

func (h *Handler) setLocked(w http.ResponseWriter, r *http.Request, locked bool) {
	rosterID := chi.URLParam(r, "rosterID")
	found, err := h.Store.SetLocked(r.Context(), rosterID, locked)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "roster not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"id": rosterID, "isLocked": locked}, middleware.GetRequestID(r.Context()))
}
