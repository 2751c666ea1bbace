package corehandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bizops/internal/domain/auth"
	"bizops/internal/domain/core"
	"bizops/internal/transport/http/api"
	"bizops/internal/transport/http/middleware"
	"bizops/internal/transport/http/shared"
)

type Handler struct {
	Store *core.Store
}

func NewHandler(store *core.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/profiles", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermProfilesRead)).Get("/", h.handleListProfiles)
		r.With(middleware.RequirePermission(auth.PermProfilesWrite)).Post("/", h.handleCreateProfile)
		r.Route("/{profileID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermProfilesRead)).Get("/", h.handleGetProfile)
			r.With(middleware.RequirePermission(auth.PermProfilesWrite)).Put("/", h.handleUpdateProfile)
			r.With(middleware.RequirePermission(auth.PermProfilesWrite)).Delete("/", h.handleDeactivateProfile)
		})
	})
	r.Route("/clients", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermClientsRead)).Get("/", h.handleListClients)
		r.With(middleware.RequirePermission(auth.PermClientsWrite)).Post("/", h.handleCreateClient)
		r.Route("/{clientID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermClientsWrite)).Put("/", h.handleUpdateClient)
			r.With(middleware.RequirePermission(auth.PermClientsWrite)).Delete("/", h.handleDeleteClient)
		})
	})
	r.Route("/projects", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermProjectsRead)).Get("/", h.handleListProjects)
		r.With(middleware.RequirePermission(auth.PermProjectsWrite)).Post("/", h.handleCreateProject)
		r.Route("/{projectID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermProjectsWrite)).Put("/", h.handleUpdateProject)
			r.With(middleware.RequirePermission(auth.PermProjectsWrite)).Delete("/", h.handleDeleteProject)
		})
	})
}

type profilePayload struct {
	core.Profile
	Password  string `json:"password"`
	StartDate string `json:"startDate"`
}

func (h *Handler) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	profiles, err := h.Store.ListProfiles(r.Context(), activeOnly)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, profiles, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Store.GetProfile(r.Context(), chi.URLParam(r, "profileID"))
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, profile, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var payload profilePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("fullName", payload.FullName, "full name is required")
	v.Required("email", payload.Email, "email is required")
	v.Required("password", payload.Password, "password is required")
	v.Enum("role", payload.Role, core.Roles, "unknown role")
	if payload.EmploymentType != "" {
		v.Enum("employmentType", payload.EmploymentType, core.EmploymentTypes, "unknown employment type")
	}
	if payload.HourlyRate != nil {
		v.NonNegative("hourlyRate", *payload.HourlyRate, "hourly rate must not be negative")
	}
	if payload.StartDate != "" {
		if start, ok := v.Date("startDate", payload.StartDate); ok {
			payload.Profile.StartDate = &start
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "profile_create_failed", "failed to create profile", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Store.CreateProfile(r.Context(), payload.Profile, hash)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var payload profilePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("fullName", payload.FullName, "full name is required")
	v.Enum("role", payload.Role, core.Roles, "unknown role")
	if payload.HourlyRate != nil {
		v.NonNegative("hourlyRate", *payload.HourlyRate, "hourly rate must not be negative")
	}
	if payload.StartDate != "" {
		if start, ok := v.Date("startDate", payload.StartDate); ok {
			payload.Profile.StartDate = &start
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	profileID := chi.URLParam(r, "profileID")
	found, err := h.Store.UpdateProfile(r.Context(), profileID, payload.Profile)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "profile not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": profileID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeactivateProfile(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profileID")
	found, err := h.Store.DeactivateProfile(r.Context(), profileID)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "profile not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": profileID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Store.ListClients(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, clients, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var payload core.Client
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("email", payload.Email, "email is required")
	if payload.Status == "" {
		payload.Status = core.ClientStatusActive
	}
	v.Enum("status", payload.Status, []string{core.ClientStatusActive, core.ClientStatusInactive}, "unknown status")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Store.CreateClient(r.Context(), payload)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	var payload core.Client
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Enum("status", payload.Status, []string{core.ClientStatusActive, core.ClientStatusInactive}, "unknown status")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	clientID := chi.URLParam(r, "clientID")
	found, err := h.Store.UpdateClient(r.Context(), clientID, payload)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "client not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": clientID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")
	found, err := h.Store.DeleteClient(r.Context(), clientID)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "client not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": clientID}, middleware.GetRequestID(r.Context()))
}

type projectPayload struct {
	core.Project
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Store.ListProjects(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, projects, middleware.GetRequestID(r.Context()))
}

func (h *Handler) parseProject(w http.ResponseWriter, r *http.Request) (core.Project, bool) {
	var payload projectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return core.Project{}, false
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("clientId", payload.ClientID, "client is required")
	if payload.Status == "" {
		payload.Status = core.ProjectStatusActive
	}
	v.Enum("status", payload.Status, []string{core.ProjectStatusActive, core.ProjectStatusCompleted, core.ProjectStatusOnHold}, "unknown status")
	v.NonNegative("budget", payload.Budget, "budget must not be negative")
	v.Required("startDate", payload.StartDate, "start date is required")
	if payload.StartDate != "" {
		if start, ok := v.Date("startDate", payload.StartDate); ok {
			payload.Project.StartDate = start
		}
	}
	if payload.EndDate != "" {
		if end, ok := v.Date("endDate", payload.EndDate); ok {
			payload.Project.EndDate = &end
			v.DateOrder("startDate", payload.Project.StartDate, "endDate", end)
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return core.Project{}, false
	}
	return payload.Project, true
}

func (h *Handler) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	project, ok := h.parseProject(w, r)
	if !ok {
		return
	}

	id, err := h.Store.CreateProject(r.Context(), project)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	project, ok := h.parseProject(w, r)
	if !ok {
		return
	}

	projectID := chi.URLParam(r, "projectID")
	found, err := h.Store.UpdateProject(r.Context(), projectID, project)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "project not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": projectID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	found, err := h.Store.DeleteProject(r.Context(), projectID)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "project not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": projectID}, middleware.GetRequestID(r.Context()))
}
