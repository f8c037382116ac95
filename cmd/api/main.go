package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Latifa2025-star/311calls/internal/dataset"
	"github.com/Latifa2025-star/311calls/internal/explorer"
	"github.com/Latifa2025-star/311calls/internal/logger"
	"github.com/Latifa2025-star/311calls/internal/normalize"
	"github.com/Latifa2025-star/311calls/internal/types"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.Info("starting api service")

	dataPath := envOr("DATASET_PATH", "nyc311_12months.csv.gz")
	log.WithField("dataset_path", dataPath).Info("loading dataset")

	cache := dataset.NewCache(func(source string) ([]types.Record, error) {
		batch, err := dataset.Load(source)
		if err != nil {
			return nil, err
		}
		return normalize.Batch(batch)
	})
	records, err := cache.Get(dataPath)
	if err != nil {
		var schemaErr *normalize.SchemaError
		if errors.As(err, &schemaErr) {
			log.WithError(err).Fatal("dataset is structurally unusable")
		}
		log.WithError(err).Fatal("failed to load dataset")
	}
	log.WithField("rows", len(records)).Info("dataset loaded")

	exp := explorer.New(records, dataPath)

	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})

	// dataset metadata for building filter controls
	mux.HandleFunc("/meta", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).WithField("handler", "meta").Info("meta request")
		writeJSON(w, exp.Meta())
	})

	// recompute all aggregates for the requested filter
	mux.HandleFunc("/explore", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "explore")
		reqLog.Info("explore request received")

		spec := filterFromQuery(r)
		start := time.Now()
		res := exp.Explore(spec)
		reqLog.WithField("filter", spec.Key()).
			WithField("rows", res.Total).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			Info("explore finished")
		writeJSON(w, res)
	})

	addr := fmt.Sprintf(":%s", envOr("PORT", "8080"))
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

// filterFromQuery reads day, hour_min, hour_max, boroughs (comma
// separated) and top_n; anything absent or malformed falls back to the
// unrestricted default.
func filterFromQuery(r *http.Request) types.FilterSpec {
	spec := types.DefaultFilter()
	q := r.URL.Query()

	if day := strings.TrimSpace(q.Get("day")); day != "" {
		spec.Day = day
	}
	if v, err := strconv.Atoi(q.Get("hour_min")); err == nil {
		spec.HourMin = v
	}
	if v, err := strconv.Atoi(q.Get("hour_max")); err == nil {
		spec.HourMax = v
	}
	if raw := strings.TrimSpace(q.Get("boroughs")); raw != "" {
		spec.Boroughs = strings.Split(raw, ",")
	}
	if v, err := strconv.Atoi(q.Get("top_n")); err == nil && v > 0 {
		spec.TopN = v
	}
	return spec.Normalized()
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.New().WithError(err).Error("failed to write response")
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
