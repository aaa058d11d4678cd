package web

// handlers_upload.go receives multipart file uploads and runs them through
// the ingestion pipeline. The response carries the full per-upload report:
// accepted records, rejected rows with reasons, and the summary line.

import (
	"fmt"
	"io"
	"net/http"

	"github.com/statops/permitdesk/internal/inventory"
	"github.com/statops/permitdesk/internal/logging"
	"github.com/statops/permitdesk/internal/tabular"
)

// UploadResponse is the JSON body returned for an upload.
type UploadResponse struct {
	Summary    string               `json:"summary"`
	TotalRows  int                  `json:"totalRows"`
	Accepted   int                  `json:"accepted"`
	Rejected   []inventory.RowError `json:"rejected"`
	Unresolved int                  `json:"unresolved"`
	Records    []*inventory.Record  `json:"records"`
}

// handleUpload ingests one uploaded file. The format comes from the file
// extension. Decode failures abort the upload; row failures are reported but
// do not block the remaining rows from being persisted.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)
	if err := r.ParseMultipartForm(s.cfg.Upload.MaxFileSize); err != nil {
		s.respondError(w, r, fmt.Errorf("parse upload: %w", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, fmt.Errorf("missing file field: %w", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	format, err := tabular.FormatForFile(header.Filename)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("read upload: %w", err), http.StatusBadRequest)
		return
	}

	roster, err := s.departments.List(ctx)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	result, err := inventory.NewIngestor(roster).Ingest(data, format)
	if err != nil {
		// Decode failure: nothing is persisted.
		s.respondError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	persisted, err := s.records.CreateMany(ctx, result.Accepted)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	logging.FromContext(ctx).Info("upload ingested",
		"file", header.Filename,
		"format", string(format),
		"total_rows", result.TotalRows,
		"accepted", len(persisted),
		"rejected", len(result.Rejected),
		"unresolved", result.Unresolved,
	)

	respondJSON(w, http.StatusOK, UploadResponse{
		Summary:    result.Summary(),
		TotalRows:  result.TotalRows,
		Accepted:   len(persisted),
		Rejected:   result.Rejected,
		Unresolved: result.Unresolved,
		Records:    persisted,
	})
}
