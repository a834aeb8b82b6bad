package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"max.ks1230/expense-service/internal/logger"
	"max.ks1230/expense-service/internal/model/customerr"
)

type messageResponse struct {
	Message string `json:"message"`
}

type errorsResponse struct {
	Errors []fieldError `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("cannot write response", zap.Error(err))
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

func writeFieldErrors(w http.ResponseWriter, errs []fieldError) {
	writeJSON(w, http.StatusBadRequest, errorsResponse{Errors: errs})
}

// writeError maps model errors to the boundary taxonomy: not-found stays a
// plain 404 whatever its underlying cause, anything else is an opaque
// internal failure.
func writeError(w http.ResponseWriter, err error) {
	if customerr.IsNotFound(err) {
		writeMessage(w, http.StatusNotFound, "expense not found")
		return
	}
	logger.Error("internal failure", zap.Error(err))
	writeMessage(w, http.StatusInternalServerError, "internal error")
}
