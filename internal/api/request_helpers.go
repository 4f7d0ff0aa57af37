package api

import (
	"net/http"

	"github.com/cfarrell/taskman-api/internal/api/shared"
	"github.com/cfarrell/taskman-api/internal/service"
)

// respondValidationError writes a 400 response carrying the full field-keyed
// violation map, serialized in recording order, so the caller can fix every
// problem in one round trip.
func respondValidationError(w http.ResponseWriter, r *http.Request, verr *service.ValidationError) {
	fieldErrors := shared.NewFieldErrorMap(verr.FieldNames(), verr.Fields())
	shared.RespondWithFieldErrors(w, r, http.StatusBadRequest, "Validation failed", fieldErrors)
}

// respondMappedError writes the sanitized message and status code for a
// non-validation error.
func respondMappedError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
}

// authenticatedUserID extracts the user ID set by the auth middleware.
// Writes a 401 response and returns false when the request is not
// authenticated, which only happens if a route is misregistered outside the
// auth middleware.
func authenticatedUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return 0, false
	}
	return userID, true
}
