package server

import (
	"net/http"
	"strconv"
)

func parseID(r *http.Request) (int64, []fieldError) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, []fieldError{{"id", "must be an integer"}}
	}
	return id, nil
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	filter, errs := parseListFilter(r.URL.Query())
	if len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	records, err := s.expenses.List(r.Context(), ownerFromContext(r.Context()), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	summary, err := s.expenses.Stats(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, errs := parseID(r)
	if len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	rec, err := s.expenses.Get(r.Context(), ownerFromContext(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	in, errs := parseNewExpense(r.Body)
	if len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	rec, err := s.expenses.Create(r.Context(), ownerFromContext(r.Context()), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, errs := parseID(r)
	if len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}
	patch, errs := parsePatch(r.Body)
	if len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	rec, err := s.expenses.Update(r.Context(), ownerFromContext(r.Context()), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, errs := parseID(r)
	if len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	if err := s.expenses.Delete(r.Context(), ownerFromContext(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "expense deleted successfully")
}
