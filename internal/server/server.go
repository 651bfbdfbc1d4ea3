// Package server exposes the aggregation pipeline to the website as a small
// JSON API. The news endpoint embodies the resilience contract: aggregation
// failures surface as fewer (or zero) articles, never as an error response.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/briefing"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/logger"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/news"
)

// NewsSource serves articles; in production it is the cache-wrapped hybrid
// aggregator.
type NewsSource interface {
	Fetch(ctx context.Context, limit int) []news.Article
}

// Handler holds the API dependencies.
type Handler struct {
	source       NewsSource
	summarizer   briefing.Summarizer
	topic        string
	defaultLimit int
}

func NewHandler(source NewsSource, summarizer briefing.Summarizer, topic string, defaultLimit int) *Handler {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &Handler{
		source:       source,
		summarizer:   summarizer,
		topic:        topic,
		defaultLimit: defaultLimit,
	}
}

// Router builds the chi mux for the API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(accessLog)

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/api/news", func(r chi.Router) {
		r.Get("/", h.handleNews)
		r.Get("/brief", h.handleBrief)
	})
	return r
}

// handleNews is the fetchNews surface: never more than limit articles, never
// an error status for aggregation failures.
func (h *Handler) handleNews(w http.ResponseWriter, r *http.Request) {
	limit := h.defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	articles := h.source.Fetch(r.Context(), limit)
	writeJSON(w, http.StatusOK, articles)
}

func (h *Handler) handleBrief(w http.ResponseWriter, r *http.Request) {
	articles := h.source.Fetch(r.Context(), h.defaultLimit)
	b := briefing.Generate(r.Context(), h.topic, articles, h.summarizer)
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// New builds the http.Server for the API with sane timeouts.
func New(addr string, h *Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
