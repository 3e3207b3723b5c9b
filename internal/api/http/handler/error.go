package handler

import (
	"errors"
	"net/http"

	"github.com/Divyansh8843/TaskMaster/internal/apperrors"
	"github.com/Divyansh8843/TaskMaster/internal/model"
)

// handleError maps service errors onto their HTTP responses. Anything
// without an explicit mapping becomes an opaque 500.
func handleError(w http.ResponseWriter, err error) {
	var apiErr *apperrors.APIError
	if errors.As(err, &apiErr) {
		errorJSON(w, apiErr.HTTPStatus, apiErr.Message)
		return
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		errorJSON(w, http.StatusNotFound, "not found")
	default:
		errorJSON(w, http.StatusInternalServerError, "internal server error")
	}
}
