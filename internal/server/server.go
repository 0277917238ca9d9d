// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	stderrors "property-search/internal/common/errors"
	"property-search/internal/common/logger"
	"property-search/internal/models"
	"property-search/internal/pipeline/search"
	"property-search/internal/scansan"
	"property-search/pkg/areas"
)

// ResponseCache caches serialized /search responses. Satisfied by
// *cache.Client; nil disables caching. The pipeline itself never caches —
// this lives strictly in the presentation layer.
type ResponseCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// AreaDataClient exposes the supplementary Scansan lookups served
// alongside search.
type AreaDataClient interface {
	Summary(ctx context.Context, areaCode string) (*scansan.AreaSummary, error)
	SaleHistory(ctx context.Context, postcode string) ([]scansan.SaleRecord, error)
	HistoricalValuations(ctx context.Context, postcode string) ([]scansan.ValuationHistory, error)
}

// SearchRecorder receives one measurement per search request. Satisfied
// by *observability.Observability; nil disables recording.
type SearchRecorder interface {
	RecordSearch(ctx context.Context, status, provenance string)
	RecordDuration(ctx context.Context, d time.Duration)
}

// Server is the thin HTTP surface over the search pipeline.
type Server struct {
	orchestrator *search.Orchestrator
	areaData     AreaDataClient
	registry     *areas.Registry
	cache        ResponseCache
	recorder     SearchRecorder
	logger       logger.Logger
}

func New(orchestrator *search.Orchestrator, areaData AreaDataClient, registry *areas.Registry,
	cache ResponseCache, recorder SearchRecorder, log logger.Logger) *Server {
	return &Server{
		orchestrator: orchestrator,
		areaData:     areaData,
		registry:     registry,
		cache:        cache,
		recorder:     recorder,
		logger:       log.WithFields(map[string]interface{}{"component": "server"}),
	}
}

// Router wires up the HTTP routes.
func (s *Server) Router() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /search", s.handleSearch)
	mux.HandleFunc("GET /areas", s.handleAreas)
	mux.HandleFunc("GET /areas/{code}/summary", s.handleSummary)
	mux.HandleFunc("GET /postcodes/{code}/history", s.handleSaleHistory)
	mux.HandleFunc("GET /postcodes/{code}/valuations", s.handleValuations)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var query models.Query
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.writeError(w, stderrors.NewValidationError("request body is not a valid search query"))
		return
	}

	key := searchCacheKey(query)
	if s.cache != nil {
		if payload, ok, err := s.cache.Get(r.Context(), key); err != nil {
			// Cache trouble must never fail a search.
			s.logger.WithError(err).Warn("cache read failed", nil)
		} else if ok {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "hit")
			fmt.Fprint(w, payload)
			s.record(r.Context(), "cached", "cache", start)
			return
		}
	}

	result, err := s.orchestrator.Search(r.Context(), query)
	if err != nil {
		s.writeError(w, err)
		s.record(r.Context(), "failed", "", start)
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if s.cache != nil {
		if err := s.cache.Set(r.Context(), key, string(body)); err != nil {
			s.logger.WithError(err).Warn("cache write failed", nil)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
	s.record(r.Context(), "completed", string(result.Provenance), start)
}

func (s *Server) record(ctx context.Context, status, provenance string, start time.Time) {
	if s.recorder == nil {
		return
	}
	s.recorder.RecordSearch(ctx, status, provenance)
	s.recorder.RecordDuration(ctx, time.Since(start))
}

func (s *Server) handleAreas(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{"areas": s.registry.Names()})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.areaData.Summary(r.Context(), r.PathValue("code"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, summary)
}

func (s *Server) handleSaleHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.areaData.SaleHistory(r.Context(), r.PathValue("code"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, map[string]interface{}{"sales": history})
}

func (s *Server) handleValuations(w http.ResponseWriter, r *http.Request) {
	valuations, err := s.areaData.HistoricalValuations(r.Context(), r.PathValue("code"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, map[string]interface{}{"valuations": valuations})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("failed to encode response", nil)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if stderrors.IsValidation(err) {
		status = http.StatusBadRequest
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if stdErr, ok := err.(*stderrors.StandardError); ok {
		json.NewEncoder(w).Encode(stdErr)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// searchCacheKey flattens the query fields that shape the response.
func searchCacheKey(query models.Query) string {
	return strings.Join([]string{
		"search",
		query.Area,
		query.SearchText,
		query.PostcodeDistrict,
		query.Street,
		string(query.SortKey),
	}, ":")
}
