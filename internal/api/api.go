// Package api serves the score table and record inspection over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/vovakirdan/tui-balls/internal/engine"
	"github.com/vovakirdan/tui-balls/internal/game"
	"github.com/vovakirdan/tui-balls/internal/storage"
)

// maxRecordSize bounds uploaded records.
const maxRecordSize = 1 << 20

// maxLimit bounds the limit query parameter.
const maxLimit = 100

// ScoreStore is the read side of the score table.
type ScoreStore interface {
	Ping() error
	TopScores(difficulty string, limit int) ([]storage.ScoreEntry, error)
	DifficultyStats(difficulty string) (*storage.Stats, error)
	AllStats() (map[string]*storage.Stats, error)
}

// HandlerDeps are the dependencies of a Handler.
type HandlerDeps struct {
	Scores ScoreStore
	Logger *log.Logger
}

// Handler implements the HTTP endpoints.
type Handler struct {
	scores ScoreStore
	log    *log.Logger
}

// NewHandler creates a Handler.
func NewHandler(deps HandlerDeps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Handler{scores: deps.Scores, log: logger}
}

// Router builds the chi router with CORS enabled for read-only use.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))
	r.Use(h.logRequests)

	r.Get("/healthz", h.Health)
	r.Get("/difficulties", h.Difficulties)
	r.Route("/scores", func(rr chi.Router) {
		rr.Get("/{difficulty}", h.TopScores)
	})
	r.Route("/stats", func(rr chi.Router) {
		rr.Get("/", h.AllStats)
		rr.Get("/{difficulty}", h.Stats)
	})
	r.Post("/records/inspect", h.InspectRecord)

	return r
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.log.Debug("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

// Health reports whether the score database is reachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.scores.Ping(); err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Difficulties lists the known difficulty names.
func (h *Handler) Difficulties(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(engine.Difficulties))
	for _, d := range engine.Difficulties {
		names = append(names, d.String())
	}
	writeJSON(w, http.StatusOK, names)
}

// TopScores returns the best rounds for one difficulty.
func (h *Handler) TopScores(w http.ResponseWriter, r *http.Request) {
	d, ok := difficultyParam(w, r)
	if !ok {
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLimit {
			writeError(w, http.StatusBadRequest, fmt.Errorf("limit must be 1..%d", maxLimit))
			return
		}
		limit = n
	}

	entries, err := h.scores.TopScores(d.String(), limit)
	if err != nil {
		h.log.Error("top scores", "difficulty", d, "err", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if entries == nil {
		entries = []storage.ScoreEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// Stats returns aggregated statistics for one difficulty.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	d, ok := difficultyParam(w, r)
	if !ok {
		return
	}
	st, err := h.scores.DifficultyStats(d.String())
	if err != nil {
		h.log.Error("stats", "difficulty", d, "err", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// AllStats returns statistics for every played difficulty.
func (h *Handler) AllStats(w http.ResponseWriter, r *http.Request) {
	all, err := h.scores.AllStats()
	if err != nil {
		h.log.Error("all stats", "err", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

// InspectRecord decodes a save record posted as the request body.
func (h *Handler) InspectRecord(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxRecordSize+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(data) > maxRecordSize {
		writeError(w, http.StatusRequestEntityTooLarge, errors.New("record too large"))
		return
	}

	sum, err := game.Summarize(data)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, engine.ErrInvalidData) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func difficultyParam(w http.ResponseWriter, r *http.Request) (engine.Difficulty, bool) {
	d, err := engine.ParseDifficulty(chi.URLParam(r, "difficulty"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return 0, false
	}
	return d, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client went away
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// Serve runs the HTTP server on addr until ctx is cancelled, then shuts it
// down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP API", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api: serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("stopping HTTP API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api: shutdown: %w", err)
	}
	return nil
}
