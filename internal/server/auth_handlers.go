package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"max.ks1230/expense-service/internal/model/auth"

	"github.com/pkg/errors"
)

const minPasswordLength = 8

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func parseCredentials(r *http.Request) (credentialsPayload, []fieldError) {
	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return credentialsPayload{}, []fieldError{{"body", "must be valid json"}}
	}

	var errs []fieldError
	payload.Username = strings.TrimSpace(payload.Username)
	if payload.Username == "" {
		errs = append(errs, fieldError{"username", "username is required"})
	}
	if len(payload.Password) < minPasswordLength {
		errs = append(errs, fieldError{"password", "password must be at least 8 characters"})
	}
	return payload, errs
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	creds, errs := parseCredentials(r)
	if len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	acc, err := s.auth.Register(r.Context(), creds.Username, creds.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, acc)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	creds, errs := parseCredentials(r)
	if len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	token, err := s.auth.Login(r.Context(), creds.Username, creds.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeMessage(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}
