package bankhandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bizops/internal/domain/auth"
	"bizops/internal/domain/bank"
	"bizops/internal/transport/http/api"
	"bizops/internal/transport/http/middleware"
	"bizops/internal/transport/http/shared"
)

type Handler struct {
	Store *bank.Store
}

func NewHandler(store *bank.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/bank", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermBankRead)).Get("/balance", h.handleTotalBalance)
		r.Route("/accounts", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermBankRead)).Get("/", h.handleListAccounts)
			r.With(middleware.RequirePermission(auth.PermBankWrite)).Post("/", h.handleCreateAccount)
			r.Route("/{accountID}", func(r chi.Router) {
				r.With(middleware.RequirePermission(auth.PermBankRead)).Get("/", h.handleGetAccount)
				r.With(middleware.RequirePermission(auth.PermBankRead)).Get("/balance", h.handleAccountBalance)
				r.With(middleware.RequirePermission(auth.PermBankWrite)).Put("/", h.handleUpdateAccount)
				r.With(middleware.RequirePermission(auth.PermBankWrite)).Delete("/", h.handleDeleteAccount)
			})
		})
		r.Route("/transactions", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermBankRead)).Get("/", h.handleListTransactions)
			r.With(middleware.RequirePermission(auth.PermBankWrite)).Post("/", h.handleCreateTransaction)
			r.Route("/{transactionID}", func(r chi.Router) {
				r.With(middleware.RequirePermission(auth.PermBankWrite)).Put("/", h.handleUpdateTransaction)
				r.With(middleware.RequirePermission(auth.PermBankWrite)).Delete("/", h.handleDeleteTransaction)
			})
		})
	})
}

func (h *Handler) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Store.ListAccounts(r.Context())
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, accounts, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.Store.GetAccount(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, account, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var payload bank.Account
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("bankName", payload.BankName, "bank name is required")
	v.Required("accountNumber", payload.AccountNumber, "account number is required")
	v.Required("accountHolderName", payload.AccountHolderName, "account holder name is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Store.CreateAccount(r.Context(), payload)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var payload bank.Account
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("bankName", payload.BankName, "bank name is required")
	v.Required("accountNumber", payload.AccountNumber, "account number is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	accountID := chi.URLParam(r, "accountID")
	found, err := h.Store.UpdateAccount(r.Context(), accountID, payload)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "bank account not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": accountID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")
	found, err := h.Store.DeleteAccount(r.Context(), accountID)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "bank account not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": accountID}, middleware.GetRequestID(r.Context()))
}

// handleAccountBalance folds every transaction of the account onto its
// opening balance. The balance is always derived, never stored.
func (h *Handler) handleAccountBalance(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")
	account, err := h.Store.GetAccount(r.Context(), accountID)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	transactions, err := h.Store.ListTransactions(r.Context(), bank.Filter{BankAccountID: accountID}, 0, 0)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"accountId":        account.ID,
		"openingBalance":   account.OpeningBalance,
		"balance":          bank.ComputeAccountBalance(*account, transactions),
		"transactionCount": len(transactions),
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTotalBalance(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Store.ListAccounts(r.Context())
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	transactions, err := h.Store.ListTransactions(r.Context(), bank.Filter{}, 0, 0)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"totalBalance": bank.ComputeTotalBalance(accounts, transactions),
		"accountCount": len(accounts),
	}, middleware.GetRequestID(r.Context()))
}

type transactionPayload struct {
	bank.Transaction
	Date string `json:"date"`
}

func (h *Handler) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	filter := bank.Filter{
		BankAccountID: r.URL.Query().Get("bankAccountId"),
		Type:          r.URL.Query().Get("type"),
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
	transactions, err := h.Store.ListTransactions(r.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	income, expense := bank.TotalsByType(transactions)
	api.Success(w, map[string]any{
		"transactions": transactions,
		"totalIncome":  income,
		"totalExpense": expense,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) parseTransaction(w http.ResponseWriter, r *http.Request) (bank.Transaction, bool) {
	var payload transactionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return bank.Transaction{}, false
	}

	v := shared.NewValidator()
	v.Required("bankAccountId", payload.BankAccountID, "bank account is required")
	v.Required("description", payload.Description, "description is required")
	v.Positive("amount", payload.Amount, "amount must be positive")
	v.Enum("type", payload.Type, []string{bank.TypeDeposit, bank.TypeWithdrawal}, "unknown transaction type")
	v.Required("date", payload.Date, "date is required")
	if payload.Date != "" {
		if date, ok := v.Date("date", payload.Date); ok {
			payload.Transaction.Date = date
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return bank.Transaction{}, false
	}
	return payload.Transaction, true
}

func (h *Handler) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	tx, ok := h.parseTransaction(w, r)
	if !ok {
		return
	}

	id, err := h.Store.CreateTransaction(r.Context(), tx)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	tx, ok := h.parseTransaction(w, r)
	if !ok {
		return
	}

	transactionID := chi.URLParam(r, "transactionID")
	found, err := h.Store.UpdateTransaction(r.Context(), transactionID, tx)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "transaction not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": transactionID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionID")
	found, err := h.Store.DeleteTransaction(r.Context(), transactionID)
	if err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if !found {
		api.Fail(w, http.StatusNotFound, "not_found", "transaction not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": transactionID}, middleware.GetRequestID(r.Context()))
}
