package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/flowserve/pkg/domain"
	"github.com/aretw0/flowserve/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultMaxBodyBytes caps request bodies when no explicit limit is configured.
const DefaultMaxBodyBytes int64 = 1 << 20

// Server routes every request to the workflow runner.
type Server struct {
	Runner  ports.WorkflowRunner
	logger  *slog.Logger
	maxBody int64
	cors    bool
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxBodyBytes limits request bodies to n bytes. n <= 0 disables the limit.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.maxBody = n
	}
}

// WithCORS adds permissive CORS headers and answers browser preflight requests.
func WithCORS(enabled bool) Option {
	return func(s *Server) {
		s.cors = enabled
	}
}

// NewHandler creates a new HTTP handler for the runner.
// Every method and path belongs to the workflow; nothing is reserved.
func NewHandler(runner ports.WorkflowRunner, opts ...Option) http.Handler {
	s := &Server{
		Runner:  runner,
		logger:  slog.New(slog.DiscardHandler),
		maxBody: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	if s.cors {
		r.Use(enableCORS)
	}
	r.HandleFunc("/*", s.Handle)
	return r
}

// Handle runs the workflow for one request.
func (s *Server) Handle(w http.ResponseWriter, r *http.Request) {
	input, err := s.buildInput(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		s.logger.Warn("Invalid request body", "error", err)
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	result := s.Runner.Run(r.Context(), input)

	status := http.StatusOK
	var payload any = result
	switch {
	case !result.IsSuccess():
		status = http.StatusInternalServerError
		s.logger.Warn("Workflow failed",
			"run_id", result.RunID,
			"path", input.Path,
			"error", result.Error,
		)
	case result.Responded:
		payload = result.Response
	}

	writeJSON(w, status, payload, s.logger)
}

func (s *Server) buildInput(w http.ResponseWriter, r *http.Request) (domain.Input, error) {
	input := domain.Input{
		Method:  r.Method,
		Path:    r.URL.Path,
		Query:   make(map[string]string),
		Params:  map[string]string{"path": chi.URLParam(r, "*")},
		Headers: make(map[string]string, len(r.Header)),
	}
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			input.Query[key] = values[len(values)-1]
		}
	}
	for key, values := range r.Header {
		input.Headers[strings.ToLower(key)] = strings.Join(values, ", ")
	}

	body, err := s.readBody(w, r)
	if err != nil {
		return input, err
	}
	input.Body = parseBody(body)
	return input, nil
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	var reader io.Reader = r.Body
	if s.maxBody > 0 {
		reader = http.MaxBytesReader(w, r.Body, s.maxBody)
	}
	return io.ReadAll(reader)
}

// parseBody decodes a JSON body. Empty or malformed bodies yield nil.
func parseBody(raw []byte) any {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}
	return body
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Response encode failed", "error", err)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
