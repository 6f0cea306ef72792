// Package api exposes the recommendation service over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nidhogg/assessrec/internal/catalog"
	"github.com/nidhogg/assessrec/internal/embedding"
	"github.com/nidhogg/assessrec/internal/fetch"
	"github.com/nidhogg/assessrec/internal/recommend"
)

// Handler holds dependencies for HTTP handlers. The catalog and its
// vectors are read-only; the provider and extractor are safe for
// concurrent use, so requests share everything without locking.
type Handler struct {
	provider  embedding.Provider
	catalog   *catalog.Catalog
	extractor *fetch.Extractor
	logger    *zap.Logger
}

// NewHandler creates a new API handler.
func NewHandler(provider embedding.Provider, cat *catalog.Catalog, extractor *fetch.Extractor, logger *zap.Logger) *Handler {
	return &Handler{
		provider:  provider,
		catalog:   cat,
		extractor: extractor,
		logger:    logger,
	}
}

// Router builds the chi router with all routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/", h.root)
	r.Get("/healthz", h.healthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(120, time.Minute))
		r.Post("/recommend", h.recommend)
	})
	r.Get("/recommend", h.recommendWrongMethod)

	return r
}

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Assessment Recommender API is live!"})
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"catalog_size": h.catalog.Len(),
	})
}

// recommendRequest carries either free text or a URL to resolve.
// Exactly one is expected to have content; query wins only when no
// usable url is present.
type recommendRequest struct {
	Query string `json:"query"`
	URL   string `json:"url"`
}

// recommendResult is one ranked catalog item, shaped with the field
// names the presentation layer consumes.
type recommendResult struct {
	Name            string   `json:"name"`
	URL             string   `json:"url"`
	RemoteTesting   string   `json:"remote_testing"`
	AdaptiveSupport string   `json:"adaptive_irt"`
	Duration        string   `json:"duration"`
	TestType        []string `json:"test_type"`
	SimilarityScore float32  `json:"similarity_score"`
}

func (h *Handler) recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() { recommendDuration.Observe(time.Since(start).Seconds()) }()

	qid := uuid.NewString()
	log := h.logger.With(zap.String("query_id", qid))

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		recommendTotal.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return
	}

	queryText, ok := h.resolveQueryText(w, r, log, req)
	if !ok {
		return
	}

	vectors, err := h.provider.Embed(r.Context(), []string{queryText})
	if err != nil || len(vectors) == 0 {
		recommendTotal.WithLabelValues("embed_failed").Inc()
		log.Error("query embedding failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to embed query"})
		return
	}

	matches := recommend.Rank(vectors[0], h.catalog.Vectors)

	results := make([]recommendResult, 0, len(matches))
	for _, m := range matches {
		item := h.catalog.Items[m.Index]
		results = append(results, recommendResult{
			Name:            item.Name,
			URL:             item.URL,
			RemoteTesting:   item.RemoteTesting,
			AdaptiveSupport: item.AdaptiveSupport,
			Duration:        stripMinutes(item.Duration),
			TestType:        []string{item.TestType},
			SimilarityScore: m.Score,
		})
	}

	recommendTotal.WithLabelValues("ok").Inc()
	log.Info("recommendation served",
		zap.Int("results", len(results)),
		zap.Duration("elapsed", time.Since(start)),
	)
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// resolveQueryText normalizes the request into query text. It writes
// the rejection response itself and returns ok=false when the request
// never reaches the ranker.
func (h *Handler) resolveQueryText(w http.ResponseWriter, r *http.Request, log *zap.Logger, req recommendRequest) (string, bool) {
	var queryText string

	switch {
	case req.URL != "":
		if !fetch.IsValidURL(req.URL) {
			recommendTotal.WithLabelValues("bad_url").Inc()
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": ErrInvalidURL.Error()})
			return "", false
		}
		text, err := h.extractor.Text(r.Context(), req.URL)
		if err != nil {
			recommendTotal.WithLabelValues("fetch_failed").Inc()
			log.Warn("url fetch failed", zap.String("url", req.URL), zap.Error(err))
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to fetch or parse URL: " + err.Error()})
			return "", false
		}
		queryText = text
	case req.Query != "":
		queryText = req.Query
	default:
		recommendTotal.WithLabelValues("no_input").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": ErrNoInput.Error()})
		return "", false
	}

	if strings.TrimSpace(queryText) == "" {
		recommendTotal.WithLabelValues("empty_text").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": ErrEmptyText.Error()})
		return "", false
	}
	return queryText, true
}

// stripMinutes drops the literal " minutes" unit from a duration
// string; anything else passes through unchanged.
func stripMinutes(d string) string {
	return strings.ReplaceAll(d, " minutes", "")
}

// recommendWrongMethod answers GET /recommend with guidance instead of
// a 404.
func (h *Handler) recommendWrongMethod(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "use POST method with a query or URL"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
