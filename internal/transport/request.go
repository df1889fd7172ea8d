package transport

import (
	"net/http"
	"strconv"

	"gomarket/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// decodeRequest decodes and validates a JSON request body, writing the error
// envelope itself when the body is malformed or fails validation.
func decodeRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := middleware.DecodeAndValidate(r, v); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return false
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// urlID parses an integer id out of a chi URL parameter
func urlID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
