package httpapi

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"notes-client/internal/api/http/middleware"
	"notes-client/internal/config"
)

// NotesPrefix путь коллекции заметок
const NotesPrefix = "/api/notes"

// NewRouter собирает маршруты и middleware сервера.
// Каждый маршрут доступен как со слешем на конце, так и без него.
func NewRouter(h *NoteHandler, cfg *config.ConfigGateway, reg *prometheus.Registry, logger *slog.Logger) http.Handler {
	if cfg == nil {
		cfg = &config.ConfigGateway{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	r := mux.NewRouter()
	r.Use(middleware.NewMetrics(reg).Middleware)

	both := func(path string, fn http.HandlerFunc, method string) {
		r.HandleFunc(NotesPrefix+path, fn).Methods(method)
		r.HandleFunc(NotesPrefix+path+"/", fn).Methods(method)
	}
	both("", h.List, http.MethodGet)
	both("", h.Create, http.MethodPost)
	both("/delete/{id}", h.Delete, http.MethodDelete)
	both("/{id}", h.Get, http.MethodGet)
	both("/{id}", h.Update, http.MethodPut)
	both("/{id}", h.Delete, http.MethodDelete)
	both("/{id}/summarize", h.Summarize, http.MethodPost)

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Порядок выполнения: CORS, логирование, rate limit, маршрутизация
	var handler http.Handler = r
	handler = middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = setupCORS(cfg).Handler(handler)
	return handler
}

// setupCORS настраивает CORS middleware используя конфигурацию
func setupCORS(cfg *config.ConfigGateway) *cors.Cors {
	var origins []string
	for _, o := range strings.Split(cfg.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	maxAge := cfg.CORSMaxAge
	if maxAge == 0 {
		maxAge = 86400
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Requested-With"},
		MaxAge:         maxAge,
	})
}
