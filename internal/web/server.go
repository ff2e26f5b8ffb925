// Package web exposes the diagnostic pipeline over HTTP: upload a logcat
// capture, get the JSON verdict back, plus Prometheus metrics and a health
// probe.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ftcdoctor/logdoctor/internal/config"
	"github.com/ftcdoctor/logdoctor/internal/diagnosis"
	"github.com/ftcdoctor/logdoctor/internal/metrics"
	"github.com/ftcdoctor/logdoctor/internal/parser"
	"github.com/ftcdoctor/logdoctor/internal/report"
	"github.com/ftcdoctor/logdoctor/internal/utils/fileutil"
	"github.com/ftcdoctor/logdoctor/internal/version"
	pkgerrors "github.com/ftcdoctor/logdoctor/pkg/errors"
)

const shutdownTimeout = 5 * time.Second

// Server is the diagnosis HTTP service.
type Server struct {
	cfg    *config.GlobalConfig
	engine *diagnosis.Engine
	logger *zap.SugaredLogger
	srv    *http.Server
}

// NewServer wires a server from config: the engine is compiled once, custom
// advice rules included, so a bad rule fails here and not per request.
func NewServer(cfg *config.GlobalConfig, logger *zap.SugaredLogger) (*Server, error) {
	engine, err := diagnosis.NewEngine(cfg.Analysis, cfg.Rules)
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, engine: engine, logger: logger}, nil
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/v1/analyze", s.withAuth(http.HandlerFunc(s.handleAnalyze)))
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Start runs the listener until Stop is called.
func (s *Server) Start() error {
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Web.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Infof("🌐 Diagnosis & metrics server starting on :%d", s.cfg.Web.Port)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the listener down gracefully.
func (s *Server) Stop() error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

// withAuth enforces the optional bearer token. An empty configured token
// leaves the endpoint open (trusted-network deployments at the field).
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Web.Token == "" {
			next.ServeHTTP(w, r)
			return
		}
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") &&
			strings.TrimPrefix(authHeader, "Bearer ") == s.cfg.Web.Token {
			next.ServeHTTP(w, r)
			return
		}
		s.writeError(w, http.StatusUnauthorized, pkgerrors.ErrUnauthorized)
	})
}

// handleAnalyze accepts a raw or gzip-compressed logcat body and returns the
// diagnostic verdict as JSON.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	data, err := fileutil.DecodeLog(r.Body, s.cfg.Limits.MaxLogSizeMB*1024*1024)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrFileTooLarge) {
			metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
			s.writeError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	content := string(data)
	if err := parser.Validate(content); err != nil {
		metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	records, err := parser.Parse(content)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeNoRecord).Inc()
		metrics.EmptyExtractionsTotal.Inc()
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	result := s.engine.Diagnose(records)
	metrics.ObserveAnalysis(len(records), result.HealthScore, len(result.HighCurrentEvents))
	s.logger.Infow("analysis complete",
		"name", r.URL.Query().Get("name"),
		"records", len(records),
		"health_score", result.HealthScore,
	)

	s.writeJSON(w, http.StatusOK, report.NewAnalysis(r.URL.Query().Get("name"), records, result))
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Errorf("❌ write response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
