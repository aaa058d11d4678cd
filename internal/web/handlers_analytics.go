package web

// handlers_analytics.go serves the aggregation views. Every view is
// recomputed per request from the current record set; nothing is cached.

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/statops/permitdesk/internal/analytics"
	"github.com/statops/permitdesk/internal/inventory"
	"github.com/statops/permitdesk/internal/store"
	"github.com/statops/permitdesk/internal/summary"
)

// defaultFiscalYear is used when no year query parameter is supplied.
var defaultFiscalYear = inventory.FiscalYears[len(inventory.FiscalYears)-1]

// analyticsQuery is the common (records, year, filter) input every view needs.
func (s *Server) analyticsQuery(r *http.Request) ([]*inventory.Record, int, analytics.Filter, error) {
	q := r.URL.Query()

	year := defaultFiscalYear
	if raw := q.Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			return nil, 0, analytics.Filter{}, fmt.Errorf("invalid year %q", raw)
		}
		year = y
	}

	filter := analytics.Filter{
		Department:  q.Get("department"),
		Division:    q.Get("division"),
		LicenseType: q.Get("licenseType"),
		Search:      q.Get("search"),
	}

	records, err := s.records.QueryFiltered(r.Context(), store.RecordFilter{})
	if err != nil {
		return nil, 0, analytics.Filter{}, err
	}
	return records, year, filter, nil
}

func (s *Server) handleTypeCounts(w http.ResponseWriter, r *http.Request) {
	records, _, filter, err := s.analyticsQuery(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusOK, analytics.TypeCountsByDepartment(records, filter))
}

func (s *Server) handleChannels(w http.ResponseWriter, r *http.Request) {
	records, year, filter, err := s.analyticsQuery(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusOK, analytics.ChannelDistribution(records, year, filter))
}

func (s *Server) handleProcessingTime(w http.ResponseWriter, r *http.Request) {
	records, year, filter, err := s.analyticsQuery(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	order := analytics.SortByAverage
	if r.URL.Query().Get("sort") == "volume" {
		order = analytics.SortByVolume
	}
	respondJSON(w, http.StatusOK, analytics.ProcessingTimeByDepartment(records, year, filter, order))
}

func (s *Server) handleApplications(w http.ResponseWriter, r *http.Request) {
	records, year, filter, err := s.analyticsQuery(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusOK, analytics.ApplicationsByDepartment(records, year, filter))
}

func (s *Server) handleRevenue(w http.ResponseWriter, r *http.Request) {
	records, year, filter, err := s.analyticsQuery(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusOK, analytics.RevenueByDepartment(records, year, filter))
}

// handleSummary assembles the full aggregation snapshot and hands it to the
// configured summarizer.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	records, year, filter, err := s.analyticsQuery(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	payload := &summary.Payload{
		FiscalYear:     year,
		TypeCounts:     analytics.TypeCountsByDepartment(records, filter),
		Channels:       analytics.ChannelDistribution(records, year, filter),
		ProcessingTime: analytics.ProcessingTimeByDepartment(records, year, filter, analytics.SortByAverage),
		Applications:   analytics.ApplicationsByDepartment(records, year, filter),
		Revenue:        analytics.RevenueByDepartment(records, year, filter),
	}

	text, err := s.summarizer.Summarize(r.Context(), payload)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadGateway)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"fiscalYear": year,
		"summary":    text,
		"data":       payload,
	})
}
