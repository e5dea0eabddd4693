package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mms8452/baby/internal/catalog"
	"github.com/mms8452/baby/internal/handlers"
	"github.com/mms8452/baby/internal/logging"
	"github.com/mms8452/baby/internal/scanner"
	"github.com/mms8452/baby/internal/service"
	"github.com/mms8452/baby/internal/startup"
	"github.com/mms8452/baby/internal/thumbs"
)

func main() {
	startTime := time.Now()

	config, err := startup.LoadConfig()
	if err != nil {
		logging.Fatal("Configuration error: %v", err)
	}

	ctx := context.Background()

	store, err := catalog.New(ctx, config.DatabasePath)
	if err != nil {
		logging.Fatal("Failed to initialize catalog store: %v", err)
	}
	defer store.Close()

	sc := scanner.New(store, scanner.DefaultConfig())
	gen := thumbs.New(config.ThumbnailDir, store)
	svc := service.New(store, sc, gen)

	h := handlers.New(svc)
	router := setupRouter(h, config.MetricsEnabled)

	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go handleShutdown(srv)

	logging.Info("Listening on :%s (started in %v)", config.Port, time.Since(startTime))
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logging.Fatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers, metricsEnabled bool) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/scan", handlers.Instrument("/api/scan", h.ScanFolder)).Methods("POST")
	api.HandleFunc("/files", handlers.Instrument("/api/files", h.GetAllFiles)).Methods("GET")
	api.HandleFunc("/file", handlers.Instrument("/api/file", h.GetFileInfo)).Methods("GET")
	api.HandleFunc("/media", handlers.Instrument("/api/media", h.ServeMedia)).Methods("GET")
	api.HandleFunc("/thumbnail", handlers.Instrument("/api/thumbnail", h.GenerateThumbnail)).Methods("POST")
	api.HandleFunc("/settings", handlers.Instrument("/api/settings", h.GetSettings)).Methods("GET")
	api.HandleFunc("/settings", handlers.Instrument("/api/settings", h.SaveSettings)).Methods("POST")
	api.HandleFunc("/note", handlers.Instrument("/api/note", h.GetNote)).Methods("GET")
	api.HandleFunc("/note", handlers.Instrument("/api/note", h.SaveNote)).Methods("POST")
	api.HandleFunc("/age-group", handlers.Instrument("/api/age-group", h.UpdateAgeGroup)).Methods("POST")

	return r
}

func handleShutdown(srv *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	logging.Info("Received %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	}
}
