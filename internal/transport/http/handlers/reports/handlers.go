package reportshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bizops/internal/domain/auth"
	"bizops/internal/domain/bank"
	"bizops/internal/domain/reports"
	"bizops/internal/transport/http/api"
	"bizops/internal/transport/http/middleware"
)

type Handler struct {
	Store *reports.Store
	Bank  *bank.Store
}

func NewHandler(store *reports.Store, bankStore *bank.Store) *Handler {
	return &Handler{Store: store, Bank: bankStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequirePermission(auth.PermReportsRead))
		r.Get("/finance", h.handleFinance)
		r.Get("/payroll", h.handlePayroll)
		r.Get("/operations", h.handleOperations)
	})
}

func (h *Handler) handleFinance(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Bank.ListAccounts(r.Context())
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	transactions, err := h.Bank.ListTransactions(r.Context(), bank.Filter{}, 0, 0)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	income, expense := bank.TotalsByType(transactions)
	total := bank.ComputeTotalBalance(accounts, transactions)
	api.Success(w, reports.FinanceDashboard(total, income, expense, len(accounts)), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayroll(w http.ResponseWriter, r *http.Request) {
	hours, gross, deductions, net, count, err := h.Store.PayrollTotals(r.Context())
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, reports.PayrollDashboard(hours, gross, deductions, net, count), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleOperations(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.Store.ActiveProfileCount(r.Context())
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	projects, err := h.Store.ActiveProjectCount(r.Context())
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	pendingHours, err := h.Store.PendingWorkingHourCount(r.Context())
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	pendingRosters, err := h.Store.PendingRosterCount(r.Context())
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, reports.OperationsDashboard(profiles, projects, pendingHours, pendingRosters), middleware.GetRequestID(r.Context()))
}
