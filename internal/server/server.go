// Package server exposes the converter over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"retodfa/internal/dto"
	"retodfa/internal/logging"
	"retodfa/internal/metrics"
	"retodfa/internal/regexlib"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Converter is the part of service.Converter the API needs.
type Converter interface {
	Convert(ctx context.Context, alphabet, expression string) (*dto.Document, error)
	Match(ctx context.Context, alphabet, expression string, inputs []string) ([]dto.MatchResult, error)
}

type ConvertRequest struct {
	Alphabet   string `json:"alphabet"`
	Expression string `json:"expression"`
}

type MatchRequest struct {
	Alphabet   string   `json:"alphabet"`
	Expression string   `json:"expression"`
	Inputs     []string `json:"inputs"`
}

type MatchResponse struct {
	Results []dto.MatchResult `json:"results"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type Server struct {
	conv         Converter
	logger       *slog.Logger
	metrics      *metrics.Metrics
	metricsPath  string
	maxBodyBytes int64
}

// DefaultMaxBodyBytes is the request body cap used unless WithMaxBodyBytes
// overrides it.
const DefaultMaxBodyBytes = 1 << 20

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMetrics mounts the registry's handler at path.
func WithMetrics(m *metrics.Metrics, path string) Option {
	return func(s *Server) {
		s.metrics = m
		s.metricsPath = path
	}
}

// WithMaxBodyBytes caps request bodies at n bytes. n <= 0 removes the cap.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) { s.maxBodyBytes = n }
}

// NewHandler creates the HTTP handler for conv.
func NewHandler(conv Converter, opts ...Option) http.Handler {
	s := &Server{conv: conv, logger: logging.NewNop(), maxBodyBytes: DefaultMaxBodyBytes}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.Health)
	r.Post("/convert", s.Convert)
	r.Post("/match", s.Match)
	if s.metrics != nil && s.metricsPath != "" {
		r.Method(http.MethodGet, s.metricsPath, s.metrics.Handler())
	}
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Convert handles POST /convert.
func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	var body ConvertRequest
	if !s.decode(w, r, &body) {
		return
	}
	doc, err := s.conv.Convert(r.Context(), body.Alphabet, body.Expression)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// Match handles POST /match.
func (s *Server) Match(w http.ResponseWriter, r *http.Request) {
	var body MatchRequest
	if !s.decode(w, r, &body) {
		return
	}
	results, err := s.conv.Match(r.Context(), body.Alphabet, body.Expression, body.Inputs)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MatchResponse{Results: results})
}

// decode reads a JSON body into v. On failure it writes the response and
// returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := r.Body
	if s.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	}
	err := json.NewDecoder(body).Decode(v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large", Kind: "too-large"})
		return false
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Kind: "bad-request"})
	return false
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case regexlib.IsInputError(err):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	default:
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Kind: regexlib.Kind(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
