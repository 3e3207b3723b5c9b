package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/Divyansh8843/TaskMaster/internal/apperrors"
)

func writeAPIError(w http.ResponseWriter, err *apperrors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": err.Message})
}
