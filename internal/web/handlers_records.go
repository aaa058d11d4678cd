package web

// handlers_records.go exposes the persistence pass-throughs used by the
// manual edit forms. Single-record writes go through the same validation
// contract as uploads: a record is re-validated wholesale, never patched.

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/statops/permitdesk/internal/inventory"
	"github.com/statops/permitdesk/internal/store"
)

// recordFilterFromQuery builds a store filter from list query parameters.
func recordFilterFromQuery(r *http.Request) store.RecordFilter {
	q := r.URL.Query()
	return store.RecordFilter{
		Department:  q.Get("department"),
		Division:    q.Get("division"),
		LicenseType: q.Get("licenseType"),
		Search:      q.Get("search"),
		Status:      inventory.Status(q.Get("status")),
	}
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.records.QueryFiltered(r.Context(), recordFilterFromQuery(r))
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.records.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.decodeValidatedRecord(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	persisted, err := s.records.CreateMany(r.Context(), []*inventory.Record{rec})
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, persisted[0])
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.decodeValidatedRecord(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	rec.ID = chi.URLParam(r, "id")

	updated, err := s.records.Update(r.Context(), rec)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	archive := r.URL.Query().Get("archive") == "true"
	if err := s.records.DeleteOrArchive(r.Context(), chi.URLParam(r, "id"), archive); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	roster, err := s.departments.List(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, roster)
}

// decodeValidatedRecord reads a record body, re-runs the full validation
// contract, and re-resolves the department linkage.
func (s *Server) decodeValidatedRecord(r *http.Request) (*inventory.Record, error) {
	var rec inventory.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode record body: %w", err)
	}

	validated, rowErr := inventory.Revalidate(&rec, time.Now())
	if rowErr != nil {
		return nil, rowErr
	}

	roster, err := s.departments.List(r.Context())
	if err != nil {
		return nil, err
	}
	inventory.NewResolver(roster).Resolve(validated)
	return validated, nil
}
