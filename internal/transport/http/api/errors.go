package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// StoreFail maps persistence errors onto envelope codes: foreign key and
// other integrity violations are surfaced as non-retryable conflicts,
// connectivity problems as retryable 503s.
func StoreFail(w http.ResponseWriter, err error, requestID string) {
	if errors.Is(err, pgx.ErrNoRows) {
		Fail(w, http.StatusNotFound, "not_found", "record not found", requestID)
		return
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		Fail(w, http.StatusConflict, "constraint_violation", "operation violates a data constraint", requestID)
		return
	}

	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		Fail(w, http.StatusServiceUnavailable, "connectivity_error", "data store unavailable, retry later", requestID)
		return
	}

	Fail(w, http.StatusInternalServerError, "store_error", "data store operation failed", requestID)
}
