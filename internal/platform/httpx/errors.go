package httpx

import (
	"errors"
	"net/http"

	"github.com/taskhive/taskhive/internal/shared"
)

// RespondError maps domain errors to HTTP responses using RFC7807.
//
// The mapping is deliberately lossy for credential failures: an unknown
// username and a wrong password both arrive here as ErrInvalidCredentials
// and leave as an identical 401.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrConflict):
		Problem(w, http.StatusBadRequest, "Conflict", err.Error())
	case errors.Is(err, shared.ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, shared.ErrInvalidCredentials):
		w.Header().Set("WWW-Authenticate", "Bearer")
		Problem(w, http.StatusUnauthorized, "Unauthorized", shared.ErrInvalidCredentials.Error())
	case errors.Is(err, shared.ErrUnauthenticated):
		Problem(w, http.StatusForbidden, "Forbidden", shared.ErrUnauthenticated.Error())
	case errors.Is(err, shared.ErrUserState):
		Problem(w, http.StatusBadRequest, "Inactive Account", err.Error())
	case errors.Is(err, shared.ErrStorage):
		Problem(w, http.StatusServiceUnavailable, "Service Unavailable", "")
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
