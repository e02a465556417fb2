// Package server exposes the detect, humanize and process operations over HTTP
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ppiankov/humanizer/internal/cache"
	"github.com/ppiankov/humanizer/internal/logging"
	"github.com/ppiankov/humanizer/internal/model"
	"github.com/ppiankov/humanizer/internal/store"
)

// Service is the set of operations served over HTTP
type Service interface {
	Detect(text string) (*model.DetectResult, error)
	Transform(ctx context.Context, text string, intensity model.Intensity) (*model.TransformResult, error)
	Process(ctx context.Context, text string, intensity model.Intensity, force bool) (*model.ProcessResult, error)
}

// Recorder persists completed runs
type Recorder interface {
	Record(ctx context.Context, r *store.Run) error
}

// Options configures a Server
type Options struct {
	MaxBodyBytes int64
	DetectTTL    time.Duration // 0 disables the detection memo
	Logger       *slog.Logger
	History      Recorder // Optional
}

// Server serves the HTTP API
type Server struct {
	svc     Service
	logger  *slog.Logger
	memo    *cache.MemoryCache
	memoTTL time.Duration
	history Recorder
	maxBody int64
}

// New creates a server backed by svc
func New(svc Service, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	s := &Server{
		svc:     svc,
		logger:  logger,
		memoTTL: opts.DetectTTL,
		history: opts.History,
		maxBody: maxBody,
	}
	if opts.DetectTTL > 0 {
		s.memo = cache.NewMemoryCache(opts.DetectTTL, 2*opts.DetectTTL)
	}
	return s
}

// Handler returns the routed HTTP handler
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/detect-ai", s.handleDetect)
		r.Post("/humanize", s.handleHumanize)
		r.Post("/process", s.handleProcess)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	res, err := s.detect(req.Text)
	if err != nil {
		s.fail(w, r, err, "Failed to detect AI content")
		return
	}
	s.record(r.Context(), store.DetectRun(res))
	writeJSON(w, http.StatusOK, toDetection(res.Detection))
}

// detect consults the memo before scoring; detection is deterministic per text
func (s *Server) detect(text string) (*model.DetectResult, error) {
	if s.memo == nil {
		return s.svc.Detect(text)
	}
	// Only the score is memoized; every response carries its own timestamp.
	key := cache.Key("detect", text)
	var cached model.ScoredText
	if cache.GetJSON(s.memo, key, &cached) {
		return &model.DetectResult{Detection: cached, CheckedAt: time.Now().UTC()}, nil
	}
	res, err := s.svc.Detect(text)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(s.memo, key, res.Detection, s.memoTTL); err != nil {
		s.logger.Debug("detect memo write failed", "error", err)
	}
	return res, nil
}

func (s *Server) handleHumanize(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	intensity, ok := parseIntensity(w, req.Intensity)
	if !ok {
		return
	}

	res, err := s.svc.Transform(r.Context(), req.Text, intensity)
	if err != nil {
		s.fail(w, r, err, "Failed to humanize text")
		return
	}
	s.record(r.Context(), store.TransformRun(res))
	writeJSON(w, http.StatusOK, humanizeResponse{
		Original:    res.Original,
		Humanized:   res.Transformed,
		Changes:     toChanges(res.Changes),
		OriginalAI:  toDetection(res.OriginalScore),
		HumanizedAI: toDetection(res.TransformedScore),
		Escalated:   res.Escalated,
		Source:      res.Source,
	})
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	intensity, ok := parseIntensity(w, req.Intensity)
	if !ok {
		return
	}

	res, err := s.svc.Process(r.Context(), req.Text, intensity, req.ForceHumanize)
	if err != nil {
		s.fail(w, r, err, "Failed to process text")
		return
	}
	s.record(r.Context(), store.ProcessRun(res, intensity))

	resp := processResponse{
		Original:     res.Original,
		Humanized:    res.Original,
		detectionDTO: toDetection(res.Detection),
		Triggered:    res.Triggered,
	}
	if res.Transformed != nil {
		resp.Humanized = *res.Transformed
	}
	if res.Changes != nil {
		changes := toChanges(*res.Changes)
		resp.Changes = &changes
	}
	if res.TransformedScore != nil {
		det := toDetection(*res.TransformedScore)
		resp.HumanizedAI = &det
	}
	writeJSON(w, http.StatusOK, resp)
}

// decode reads a JSON body; a missing or blank text is rejected with 400
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (textRequest, bool) {
	var req textRequest
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return req, false
		}
		writeError(w, http.StatusBadRequest, "Text is required")
		return req, false
	}
	return req, true
}

func parseIntensity(w http.ResponseWriter, raw string) (model.Intensity, bool) {
	intensity, err := model.ParseIntensity(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return intensity, true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if errors.Is(err, model.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}
	logging.FromContext(r.Context(), s.logger).Error(msg, "error", err)
	writeError(w, http.StatusInternalServerError, msg)
}

func (s *Server) record(ctx context.Context, run *store.Run) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(ctx, run); err != nil {
		logging.FromContext(ctx, s.logger).Warn("failed to record run", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
