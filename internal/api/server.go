// Package api exposes the projection engine over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rgehrsitz/pensionproj/internal/calculation"
	"github.com/rgehrsitz/pensionproj/internal/compare"
	"github.com/rgehrsitz/pensionproj/internal/domain"
	"github.com/rgehrsitz/pensionproj/internal/storage"
	"github.com/valyala/fasthttp"
)

const (
	healthPath      = "/health"
	projectionsPath = "/v1/projections"
	comparisonsPath = "/v1/comparisons"
	usersPrefix     = "/v1/users/"
	userProjections = "/projections"

	requestIDHeader = "X-Request-ID"
	maxBodySize     = 1 << 20
	requestTimeout  = 10 * time.Second
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// HealthResponse is the liveness acknowledgement.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// UserProjectionRequest is the optional body of a stored-user projection.
type UserProjectionRequest struct {
	Events      []domain.LifeEvent          `json:"events,omitempty"`
	Assumptions *domain.AssumptionOverrides `json:"assumptions,omitempty"`
}

// ComparisonRequest asks for a scenario to be projected alongside what-if alternatives.
type ComparisonRequest struct {
	Scenario   *domain.ProjectionRequest `json:"scenario"`
	Templates  []string                  `json:"templates,omitempty"`
	Transforms []string                  `json:"transforms,omitempty"`
}

// Server handles projection requests. Each request is an independent computation.
type Server struct {
	engine *calculation.Engine
	source storage.SnapshotSource
	logger calculation.Logger
	newID  func() string
}

// NewServer creates a server. source may be nil, in which case user projections
// answer 503.
func NewServer(engine *calculation.Engine, source storage.SnapshotSource, logger calculation.Logger) *Server {
	if engine == nil {
		engine = calculation.NewEngine()
	}
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &Server{
		engine: engine,
		source: source,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// Handler returns the request router.
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.handle
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &fasthttp.Server{
		Handler:            s.handle,
		Name:               "pensionproj",
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       10 * time.Second,
		MaxRequestBodySize: maxBodySize,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		if err := srv.Shutdown(); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.logger.Infof("listening on %s", ln.Addr())
	return s.Serve(ctx, ln)
}

func (s *Server) handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	requestID := string(ctx.Request.Header.Peek(requestIDHeader))
	if requestID == "" {
		requestID = s.newID()
	}
	ctx.Response.Header.Set(requestIDHeader, requestID)

	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf("[%s] panic: %v", requestID, r)
			writeError(ctx, fasthttp.StatusInternalServerError, fmt.Sprintf("internal error: %v", r))
		}
		s.logger.Infof("[%s] %s %s %d %s", requestID, ctx.Method(), ctx.Path(),
			ctx.Response.StatusCode(), time.Since(start).Round(time.Microsecond))
	}()

	path := string(ctx.Path())
	switch {
	case path == healthPath:
		if !ctx.IsGet() && !ctx.IsHead() {
			writeMethodNotAllowed(ctx, "GET")
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, HealthResponse{Status: "ok", Message: "service is up"})

	case path == projectionsPath:
		if !ctx.IsPost() {
			writeMethodNotAllowed(ctx, "POST")
			return
		}
		s.handleProjection(ctx)

	case path == comparisonsPath:
		if !ctx.IsPost() {
			writeMethodNotAllowed(ctx, "POST")
			return
		}
		s.handleComparison(ctx)

	case strings.HasPrefix(path, usersPrefix):
		userID, ok := userProjectionID(path)
		if !ok {
			writeError(ctx, fasthttp.StatusNotFound, "not found")
			return
		}
		if !ctx.IsPost() {
			writeMethodNotAllowed(ctx, "POST")
			return
		}
		s.handleUserProjection(ctx, userID)

	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

// userProjectionID extracts <id> from /v1/users/<id>/projections. fasthttp has
// already collapsed empty and dot segments, so /v1/users//projections arrives as
// /v1/users/projections and must not match.
func userProjectionID(path string) (string, bool) {
	segments := strings.Split(strings.TrimPrefix(path, usersPrefix), "/")
	if len(segments) != 2 || segments[0] == "" || segments[1] != strings.TrimPrefix(userProjections, "/") {
		return "", false
	}
	return segments[0], true
}

func (s *Server) handleProjection(ctx *fasthttp.RequestCtx) {
	body := ctx.PostBody()
	if len(body) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "request body is required")
		return
	}

	var req domain.ProjectionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Data == nil {
		writeError(ctx, fasthttp.StatusBadRequest, "data is required")
		return
	}

	s.project(ctx, *req.Data, req.Events, req.Assumptions)
}

func (s *Server) handleComparison(ctx *fasthttp.RequestCtx) {
	body := ctx.PostBody()
	if len(body) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "request body is required")
		return
	}

	var req ComparisonRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Scenario == nil || req.Scenario.Data == nil {
		writeError(ctx, fasthttp.StatusBadRequest, "scenario data is required")
		return
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	set, err := compare.NewCompareEngine(s.engine).Compare(reqCtx, req.Scenario, compare.CompareOptions{
		Templates:  req.Templates,
		Transforms: req.Transforms,
	})
	if err != nil {
		if compare.IsClientError(err) {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
		s.logger.Errorf("comparison failed: %v", err)
		writeError(ctx, fasthttp.StatusInternalServerError, "comparison failed: "+err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, set)
}

func (s *Server) handleUserProjection(ctx *fasthttp.RequestCtx, userID string) {
	if s.source == nil {
		writeError(ctx, fasthttp.StatusServiceUnavailable, "user lookup is not configured")
		return
	}

	var req UserProjectionRequest
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	records, err := s.source.LookupUser(reqCtx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
		s.logger.Errorf("lookup user %s: %v", userID, err)
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to load user data: "+err.Error())
		return
	}

	overrides := domain.ProfileOverrides(records).Merge(req.Assumptions)
	s.project(ctx, domain.BuildSnapshot(records), req.Events, &overrides)
}

func (s *Server) project(ctx *fasthttp.RequestCtx, snapshot domain.FinancialSnapshot, events []domain.LifeEvent, overrides *domain.AssumptionOverrides) {
	reqCtx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	result, err := s.engine.Project(reqCtx, snapshot, events, overrides)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
		s.logger.Errorf("projection failed: %v", err)
		writeError(ctx, fasthttp.StatusInternalServerError, "projection failed: "+err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to encode response: "+err.Error())
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	data, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}

func writeMethodNotAllowed(ctx *fasthttp.RequestCtx, allow string) {
	ctx.Response.Header.Set("Allow", allow)
	writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
}
