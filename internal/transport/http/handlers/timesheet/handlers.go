package timesheethandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bizops/internal/domain/auth"
	"bizops/internal/domain/roster"
	"bizops/internal/domain/timesheet"
	"bizops/internal/transport/http/api"
	"bizops/internal/transport/http/middleware"
	"bizops/internal/transport/http/shared"
)

type Handler struct {
	Store *timesheet.Store
}

func NewHandler(store *timesheet.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/working-hours", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermWorkingHoursRead)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermWorkingHoursWrite)).Post("/", h.handleCreate)
		r.Route("/{workingHourID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermWorkingHoursWrite)).Put("/", h.handleUpdate)
			r.With(middleware.RequirePermission(auth.PermWorkingHoursWrite)).Delete("/", h.handleDelete)
			r.With(middleware.RequirePermission(auth.PermWorkingHoursApprove)).Post("/approve", h.handleApprove)
			r.With(middleware.RequirePermission(auth.PermWorkingHoursApprove)).Post("/reject", h.handleReject)
		})
	})
}

type workingHourPayload struct {
	timesheet.WorkingHour
	Date string `json:"date"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	filter := timesheet.Filter{
		ProfileID: r.URL.Query().Get("profileId"),
		Status:    r.URL.Query().Get("status"),
		RosterID:  r.URL.Query().Get("rosterId"),
	}
	if user.Role == auth.RoleEmployee {
		filter.ProfileID = user.ProfileID
	}

	v := shared.NewValidator()
	if raw := r.URL.Query().Get("from"); raw != "" {
		if from, ok := v.Date("from", raw); ok {
			filter.From = from
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if to, ok := v.Date("to", raw); ok {
			filter.To = to
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	page := shared.ParsePagination(r, 100, 500)
	hours, err := h.Store.ListWorkingHours(r.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, hours, middleware.GetRequestID(r.Context()))
}

func (h *Handler) parseWorkingHour(w http.ResponseWriter, r *http.Request) (timesheet.WorkingHour, bool) {
	var payload workingHourPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return timesheet.WorkingHour{}, false
	}

	v := shared.NewValidator()
	v.Required("profileId", payload.ProfileID, "profile is required")
	v.Required("date", payload.Date, "date is required")
	if payload.Date != "" {
		if date, ok := v.Date("date", payload.Date); ok {
			payload.WorkingHour.Date = date
		}
	}
	start, startOK := v.Clock("startTime", payload.StartTime)
	end, endOK := v.Clock("endTime", payload.EndTime)
	if payload.ActualHours != nil {
		v.NonNegative("actualHours", *payload.ActualHours, "actual hours must not be negative")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return timesheet.WorkingHour{}, false
	}

	if startOK && endOK {
		payload.TotalHours = roster.ShiftHours(start, end)
	}
	payload.Status = timesheet.StatusPending
	return payload.WorkingHour, true
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	wh, ok := h.parseWorkingHour(w, r)
	if !ok {
		return
	}

	id, err := h.Store.CreateWorkingHour(r.Context(), wh)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	wh, ok := h.parseWorkingHour(w, r)
	if !ok {
		return
	}

	workingHourID := chi.URLParam(r, "workingHourID")
	found, err := h.Store.UpdateWorkingHour(r.Context(), workingHourID, wh)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "working hour not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": workingHourID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, timesheet.StatusApproved)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, timesheet.StatusRejected)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, status string) {
	workingHourID := chi.URLParam(r, "workingHourID")
	found, err := h.Store.SetStatus(r.Context(), workingHourID, status)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "working hour not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": workingHourID, "status": status}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	workingHourID := chi.URLParam(r, "workingHourID")
	found, err := h.Store.DeleteWorkingHour(r.Context(), workingHourID)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "working hour not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": workingHourID}, middleware.GetRequestID(r.Context()))
}
