package authhandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"bizops/internal/domain/auth"
	cryptoutil "bizops/internal/platform/crypto"
	"bizops/internal/transport/http/api"
	"bizops/internal/transport/http/middleware"
)

const tokenTTL = 8 * time.Hour

type Handler struct {
	DB     *pgxpool.Pool
	Secret string
	Crypto *cryptoutil.Service
}

func NewHandler(db *pgxpool.Pool, secret string, crypto *cryptoutil.Service) *Handler {
	return &Handler{DB: db, Secret: secret, Crypto: crypto}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	MFACode  string `json:"mfaCode"`
}

type mfaCodeRequest struct {
	Code string `json:"code"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
	r.Post("/auth/mfa/setup", h.HandleMFASetup)
	r.Post("/auth/mfa/enable", h.HandleMFAEnable)
	r.Get("/auth/me", h.HandleMe)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	var id, role, hash string
	var mfaEnabled bool
	var mfaSecretEnc []byte
	err := h.DB.QueryRow(r.Context(), `
    SELECT id, role, password_hash, mfa_enabled, mfa_secret_enc
    FROM profiles
    WHERE email = $1 AND is_active = TRUE
  `, payload.Email).Scan(&id, &role, &hash, &mfaEnabled, &mfaSecretEnc)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	if err := auth.CheckPassword(hash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
		return
	}

	if mfaEnabled {
		if payload.MFACode == "" {
			api.Fail(w, http.StatusUnauthorized, "mfa_required", "mfa code required", middleware.GetRequestID(r.Context()))
			return
		}
		secret, err := h.decryptSecret(mfaSecretEnc)
		if err != nil || secret == "" || !totp.Validate(payload.MFACode, secret) {
			api.Fail(w, http.StatusUnauthorized, "mfa_invalid", "invalid mfa code", middleware.GetRequestID(r.Context()))
			return
		}
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{ProfileID: id, Role: role}, tokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"user":  map[string]string{"id": id, "role": role},
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleMFASetup(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var email string
	if err := h.DB.QueryRow(r.Context(), "SELECT email FROM profiles WHERE id = $1", user.ProfileID).Scan(&email); err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "bizops",
		AccountName: email,
		Digits:      otp.DigitsSix,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_error", "failed to generate mfa secret", middleware.GetRequestID(r.Context()))
		return
	}

	secretEnc, err := h.encryptSecret(key.Secret())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_error", "failed to store mfa secret", middleware.GetRequestID(r.Context()))
		return
	}
	if _, err := h.DB.Exec(r.Context(), "UPDATE profiles SET mfa_secret_enc = $2, updated_at = now() WHERE id = $1", user.ProfileID, secretEnc); err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]string{"secret": key.Secret(), "url": key.URL()}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleMFAEnable(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload mfaCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	var secretEnc []byte
	if err := h.DB.QueryRow(r.Context(), "SELECT mfa_secret_enc FROM profiles WHERE id = $1", user.ProfileID).Scan(&secretEnc); err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	secret, err := h.decryptSecret(secretEnc)
	if err != nil || secret == "" || !totp.Validate(payload.Code, secret) {
		api.Fail(w, http.StatusBadRequest, "mfa_invalid", "invalid mfa code", middleware.GetRequestID(r.Context()))
		return
	}

	if _, err := h.DB.Exec(r.Context(), "UPDATE profiles SET mfa_enabled = TRUE, updated_at = now() WHERE id = $1", user.ProfileID); err != nil {
		api.StoreFail(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]bool{"mfaEnabled": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": user.ProfileID, "role": user.Role}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) encryptSecret(secret string) ([]byte, error) {
	if h.Crypto != nil && h.Crypto.Configured() {
		return h.Crypto.Encrypt([]byte(secret))
	}
	return []byte(secret), nil
}

func (h *Handler) decryptSecret(enc []byte) (string, error) {
	if h.Crypto != nil && h.Crypto.Configured() {
		plain, err := h.Crypto.Decrypt(enc)
		if err != nil {
			return "", err
		}
		return string(plain), nil
	}
	return string(enc), nil
}
