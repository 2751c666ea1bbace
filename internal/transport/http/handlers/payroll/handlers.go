package payrollhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bizops/internal/domain/auth"
	"bizops/internal/domain/core"
	"bizops/internal/domain/payroll"
	"bizops/internal/domain/timesheet"
	"bizops/internal/transport/http/api"
	"bizops/internal/transport/http/middleware"
	"bizops/internal/transport/http/shared"
)

type Handler struct {
	Store      *payroll.Store
	Profiles   *core.Store
	Timesheets *timesheet.Store
	Payslips   *payroll.PayslipService
	Policy     payroll.DeductionPolicy
}

func NewHandler(store *payroll.Store, profiles *core.Store, timesheets *timesheet.Store, payslips *payroll.PayslipService, policy payroll.DeductionPolicy) *Handler {
	return &Handler{Store: store, Profiles: profiles, Timesheets: timesheets, Payslips: payslips, Policy: policy}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPayrollRead)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermPayrollWrite)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermPayrollWrite)).Post("/bulk", h.handleCreateBulk)
		r.Route("/{payrollID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermPayrollRead)).Get("/", h.handleGet)
			r.With(middleware.RequirePermission(auth.PermPayrollWrite)).Put("/", h.handleUpdateAmounts)
			r.With(middleware.RequirePermission(auth.PermPayrollApprove)).Post("/status", h.handleAdvanceStatus)
			r.With(middleware.RequirePermission(auth.PermPayrollWrite)).Delete("/", h.handleDelete)
			r.With(middleware.RequirePermission(auth.PermPayrollRead)).Get("/payslip", h.handlePayslip)
		})
	})
}

type createRequest struct {
	ProfileID      string   `json:"profileId"`
	PayPeriodStart string   `json:"payPeriodStart"`
	PayPeriodEnd   string   `json:"payPeriodEnd"`
	ClientID       string   `json:"clientId"`
	ProjectID      string   `json:"projectId"`
	BankAccountID  string   `json:"bankAccountId"`
	Deductions     *float64 `json:"deductions"`
}

type bulkCreateRequest struct {
	ProfileIDs     []string `json:"profileIds"`
	PayPeriodStart string   `json:"payPeriodStart"`
	PayPeriodEnd   string   `json:"payPeriodEnd"`
	ClientID       string   `json:"clientId"`
	ProjectID      string   `json:"projectId"`
}

type statusRequest struct {
	Status string `json:"status"`
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

	page := shared.ParsePagination(r, 100, 500)
	payrolls, err := h.Store.ListPayrolls(r.Context(), profileID, r.URL.Query().Get("status"), page.Limit, page.Offset)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, payrolls, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	record, err := h.Store.GetPayroll(r.Context(), chi.URLParam(r, "payrollID"))
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

// handleCreate prices a single payroll run. Hours are re-read at request
// time so stale client state can never be written back.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("profileId", payload.ProfileID, "profile is required")
	v.Required("payPeriodStart", payload.PayPeriodStart, "pay period start is required")
	v.Required("payPeriodEnd", payload.PayPeriodEnd, "pay period end is required")
	start, _ := v.Date("payPeriodStart", payload.PayPeriodStart)
	end, _ := v.Date("payPeriodEnd", payload.PayPeriodEnd)
	if payload.Deductions != nil {
		v.NonNegative("deductions", *payload.Deductions, "deductions must not be negative")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	profile, err := h.Profiles.GetProfile(r.Context(), payload.ProfileID)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	hours, err := h.Timesheets.ListWorkingHours(r.Context(), timesheet.Filter{
		ProfileID: payload.ProfileID,
		Status:    timesheet.StatusApproved,
		From:      start,
		To:        end,
	}, 0, 0)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	filter := payroll.Filter{ClientID: payload.ClientID, ProjectID: payload.ProjectID}
	result, err := payroll.ComputeForProfile(*profile, hours, start, end, filter, 0)
	if err != nil {
		h.failCompute(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Deductions != nil {
		result.Deductions = *payload.Deductions
	} else {
		result.Deductions = h.Policy.Resolve(result.GrossPay)
	}
	result.NetPay = result.GrossPay - result.Deductions

	id, err := h.Store.CreatePayroll(r.Context(), payroll.Payroll{
		ProfileID:      result.ProfileID,
		PayPeriodStart: start,
		PayPeriodEnd:   end,
		TotalHours:     result.TotalHours,
		HourlyRate:     result.HourlyRate,
		GrossPay:       result.GrossPay,
		Deductions:     result.Deductions,
		NetPay:         result.NetPay,
		Status:         payroll.StatusPending,
		BankAccountID:  payload.BankAccountID,
	})
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]any{"id": id, "result": result}, middleware.GetRequestID(r.Context()))
}

// handleCreateBulk prices every requested profile concurrently and stores
// one pending payroll per result. An empty profileIds list means every
// active profile.
func (h *Handler) handleCreateBulk(w http.ResponseWriter, r *http.Request) {
	var payload bulkCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("payPeriodStart", payload.PayPeriodStart, "pay period start is required")
	v.Required("payPeriodEnd", payload.PayPeriodEnd, "pay period end is required")
	start, _ := v.Date("payPeriodStart", payload.PayPeriodStart)
	end, _ := v.Date("payPeriodEnd", payload.PayPeriodEnd)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	all, err := h.Profiles.ListProfiles(r.Context(), true)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	profiles, skipped := payroll.SelectProfiles(all, payload.ProfileIDs)

	hours, err := h.Timesheets.ListWorkingHours(r.Context(), timesheet.Filter{
		Status: timesheet.StatusApproved,
		From:   start,
		To:     end,
	}, 0, 0)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	filter := payroll.Filter{ClientID: payload.ClientID, ProjectID: payload.ProjectID}
	results, err := payroll.ComputeBulk(r.Context(), profiles, hours, start, end, filter, h.Policy)
	if err != nil {
		h.failCompute(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	ids := make([]string, 0, len(results))
	for _, result := range results {
		id, err := h.Store.CreatePayroll(r.Context(), payroll.Payroll{
			ProfileID:      result.ProfileID,
			PayPeriodStart: start,
			PayPeriodEnd:   end,
			TotalHours:     result.TotalHours,
			HourlyRate:     result.HourlyRate,
			GrossPay:       result.GrossPay,
			Deductions:     result.Deductions,
			NetPay:         result.NetPay,
			Status:         payroll.StatusPending,
		})
		if err != nil {
			api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
			return
		}
		ids = append(ids, id)
	}

	api.Created(w, map[string]any{"ids": ids, "results": results, "skippedProfileIds": skipped}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failCompute(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, payroll.ErrInvalidPeriod):
		api.Fail(w, http.StatusBadRequest, "invalid_period", "pay period start must not be after end", requestID)
	case errors.Is(err, payroll.ErrUnknownProfile):
		api.Fail(w, http.StatusBadRequest, "unknown_profile", "profile has no hourly rate", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "payroll_compute_failed", "failed to compute payroll", requestID)
	}
}

type amountsRequest struct {
	TotalHours float64 `json:"totalHours"`
	HourlyRate float64 `json:"hourlyRate"`
	Deductions float64 `json:"deductions"`
}

// handleUpdateAmounts corrects a pending payroll's figures. Once a record
// is approved or paid the amounts are immutable.
func (h *Handler) handleUpdateAmounts(w http.ResponseWriter, r *http.Request) {
	var payload amountsRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.NonNegative("totalHours", payload.TotalHours, "total hours must not be negative")
	v.NonNegative("hourlyRate", payload.HourlyRate, "hourly rate must not be negative")
	v.NonNegative("deductions", payload.Deductions, "deductions must not be negative")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	payrollID := chi.URLParam(r, "payrollID")
	current, err := h.Store.Status(r.Context(), payrollID)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if current != payroll.StatusPending {
		api.Fail(w, http.StatusConflict, "invalid_transition", "only pending payroll can be corrected", middleware.GetRequestID(r.Context()))
		return
	}

	gross, net := payroll.RecomputeAmounts(payload.TotalHours, payload.HourlyRate, payload.Deductions)
	found, err := h.Store.UpdateAmounts(r.Context(), payrollID, payload.TotalHours, payload.HourlyRate, gross, payload.Deductions, net)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "payroll not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"id": payrollID, "grossPay": gross, "netPay": net}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAdvanceStatus(w http.ResponseWriter, r *http.Request) {
	var payload statusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Enum("status", payload.Status, []string{payroll.StatusApproved, payroll.StatusPaid}, "unknown status")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	payrollID := chi.URLParam(r, "payrollID")
	current, err := h.Store.Status(r.Context(), payrollID)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	if !payroll.CanAdvance(current, payload.Status) {
		api.Fail(w, http.StatusConflict, "invalid_transition", "cannot move payroll from "+current+" to "+payload.Status, middleware.GetRequestID(r.Context()))
		return
	}

	if _, err := h.Store.SetStatus(r.Context(), payrollID, payload.Status); err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": payrollID, "status": payload.Status}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	payrollID := chi.URLParam(r, "payrollID")
	current, err := h.Store.Status(r.Context(), payrollID)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if current == payroll.StatusPaid {
		api.Fail(w, http.StatusConflict, "invalid_transition", "paid payroll cannot be deleted", middleware.GetRequestID(r.Context()))
		return
	}

	found, err := h.Store.DeletePayroll(r.Context(), payrollID)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "payroll not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": payrollID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	payrollID := chi.URLParam(r, "payrollID")
	path, err := h.Payslips.GeneratePDF(r.Context(), payrollID)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	data, err := h.Payslips.ReadPDF(path)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to read payslip", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="payslip-`+payrollID+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		return
	}
}
