package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/kumul-digital/capdash/backend/internal/api/handlers"
	"github.com/kumul-digital/capdash/backend/pkg/logger"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(
	importHandler *handlers.ImportHandler,
	recordsHandler *handlers.RecordsHandler,
	reportsHandler *handlers.ReportsHandler,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Import endpoints
	api.HandleFunc("/import/paste", importHandler.Paste).Methods("POST")
	api.HandleFunc("/import/spreadsheet", importHandler.Spreadsheet).Methods("POST")
	api.HandleFunc("/import/document", importHandler.Document).Methods("POST")

	// Record endpoints
	api.HandleFunc("/officers", recordsHandler.ListOfficers).Methods("GET")
	api.HandleFunc("/establishment", recordsHandler.ListEstablishment).Methods("GET")

	// Report endpoints
	api.HandleFunc("/reports/summary", reportsHandler.Summary).Methods("GET")
	api.HandleFunc("/reports/gaps", reportsHandler.Gaps).Methods("GET")
	api.HandleFunc("/reports/misalignment", reportsHandler.Misalignment).Methods("GET")
	api.HandleFunc("/reports/training", reportsHandler.Training).Methods("GET")
	api.HandleFunc("/reports/coverage", reportsHandler.Coverage).Methods("GET")
	api.HandleFunc("/reports/narrative", reportsHandler.Narrative).Methods("POST")

	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "capdash-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
