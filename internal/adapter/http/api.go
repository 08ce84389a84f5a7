package http

import (
	"errors"
	"net/http"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/agri-dashboard-service/internal/charts"
	"github.com/couchcryptid/agri-dashboard-service/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleDatasets(w http.ResponseWriter, _ *http.Request) {
	out, err := s.svc.Datasets()
	s.respond(w, out, err)
}

func (s *Server) handleFilters(w http.ResponseWriter, _ *http.Request) {
	out, err := s.svc.Filters()
	s.respond(w, out, err)
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	sel, ok := s.selection(w, r)
	if !ok {
		return
	}
	out, err := s.svc.Records(sel)
	s.respond(w, out, err)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sel, ok := s.selection(w, r)
	if !ok {
		return
	}
	out, err := s.svc.Stats(sel)
	s.respond(w, out, err)
}

func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	sel, ok := s.selection(w, r)
	if !ok {
		return
	}
	out, err := s.svc.KPIs(sel)
	s.respond(w, out, err)
}

func (s *Server) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	sel, ok := s.selection(w, r)
	if !ok {
		return
	}
	out, err := s.svc.Correlation(sel)
	s.respond(w, out, err)
}

func (s *Server) handleChartKinds(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, map[string][]charts.Kind{"kinds": charts.Kinds})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	kind, err := charts.ParseKind(r.PathValue("kind"))
	if err != nil {
		s.respond(w, nil, err)
		return
	}
	sel, ok := s.selection(w, r)
	if !ok {
		return
	}
	out, err := s.svc.Chart(kind, sel)
	s.respond(w, out, err)
}

// selection parses the dataset, year, and country query parameters. It writes
// a 400 response and returns false when they are invalid.
func (s *Server) selection(w http.ResponseWriter, r *http.Request) (domain.Selection, bool) {
	q := r.URL.Query()
	sel, err := domain.ParseSelection(q.Get("dataset"), q.Get("year"), q.Get("country"))
	if err != nil {
		s.respond(w, nil, err)
		return domain.Selection{}, false
	}
	return sel, true
}

func (s *Server) respond(w http.ResponseWriter, v any, err error) {
	if err == nil {
		sharedobs.WriteJSON(w, http.StatusOK, v)
		return
	}
	status := statusFor(err)
	if status == http.StatusServiceUnavailable {
		s.logger.Warn("query rejected, catalog unavailable", "error", err)
	}
	sharedobs.WriteJSON(w, status, errorResponse{Error: err.Error()})
}

// statusFor maps query errors to HTTP status codes. Anything that is not a
// bad request comes from the catalog, which means there is nothing to serve.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidSelection):
		return http.StatusBadRequest
	case errors.Is(err, charts.ErrUnknownChart):
		return http.StatusNotFound
	default:
		return http.StatusServiceUnavailable
	}
}
