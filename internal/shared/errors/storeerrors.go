package errors

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// sqlstateToHTTPStatus maps PostgreSQL SQLSTATE classes to the nearest
// HTTP-equivalent status, so a constraint violation is reported as a
// client fault and a connection failure as a server fault.
var sqlstateToHTTPStatus = map[string]int{
	// Class 23 - integrity constraint violation
	"23505": http.StatusConflict,   // unique violation
	"23503": http.StatusBadRequest, // foreign key violation
	"23502": http.StatusBadRequest, // not null violation
	"23514": http.StatusBadRequest, // check constraint violation
	"23P01": http.StatusBadRequest, // exclusion violation

	// Class 22 - data exception
	"22001": http.StatusBadRequest, // string data, right truncation
	"22007": http.StatusBadRequest, // invalid datetime format
	"22P02": http.StatusBadRequest, // invalid text representation

	// Class 08 - connection exception
	"08001": http.StatusServiceUnavailable,
	"08003": http.StatusServiceUnavailable,
	"08006": http.StatusServiceUnavailable,
	"08004": http.StatusForbidden, // server rejected the connection

	// Class 42 - access rule violation
	"42501": http.StatusForbidden, // insufficient privilege
}

// FromStoreError classifies an error returned by the durable store into the
// application taxonomy. Record-not-found is deliberately not handled here;
// repositories decide whether absence is an error or an idempotent no-op.
func FromStoreError(err error) *AppError {
	if err == nil {
		return nil
	}

	if appErr := GetAppError(err); appErr != nil {
		return appErr
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewStoreUnavailableError("store operation timed out", err.Error())
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return NewStoreUnavailableError("store connection failed", err.Error())
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return NewConflictError("duplicate record", pgErr.Detail)
		}
		if status, ok := sqlstateToHTTPStatus[pgErr.Code]; ok {
			if status == http.StatusServiceUnavailable {
				return NewStoreUnavailableError("store unavailable", pgErr.Message)
			}
			return NewStoreIntegrityError(status, pgErr.Message, pgErr.Code)
		}
		return NewStoreIntegrityError(http.StatusInternalServerError, pgErr.Message, pgErr.Code)
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return NewConflictError("duplicate record")
	}
	if errors.Is(err, gorm.ErrInvalidTransaction) {
		return NewStoreUnavailableError("store transaction failed", err.Error())
	}

	return NewInternalError("store operation failed", err.Error())
}
