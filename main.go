package main

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/username/tradevault/backend/src/config"
	"github.com/username/tradevault/backend/src/database"
	"github.com/username/tradevault/backend/src/handlers"
	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/security"
	"github.com/username/tradevault/backend/src/services"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == config.Cfg.AllowedOrigin {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Requested-With, If-None-Match")
			w.Header().Set("Access-Control-Expose-Headers", "ETag")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Tradevault import backend starting...")

	if config.Cfg.JWTSecret == "" || len(config.Cfg.JWTSecret) < 32 {
		logger.L.Error("JWT_SECRET configuration invalid. Must be at least 32 bytes.")
		os.Exit(1)
	}

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	logger.L.Info("Database initialized successfully.")

	resultCache := cache.New(config.Cfg.CacheExpiry, config.Cfg.CacheCleanupInterval)

	authService := security.NewAuthService(config.Cfg.JWTSecret)

	// The suggestion, OCR, and order-extraction collaborators are external
	// services; a nil collaborator means the pipeline runs without that
	// capability (no suggestions, no PDF imports).
	importService := services.NewImportService(nil, nil, nil, resultCache)

	importHandler := handlers.NewImportHandler(importService)
	tradesHandler := handlers.NewTradesHandler(importService)

	r := chi.NewRouter()
	r.Use(rateLimitMiddleware)
	r.Use(enableCORS)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Tradevault backend is running"})
	})
	r.Get("/api/platforms", importHandler.HandleListPlatforms)

	r.Group(func(r chi.Router) {
		r.Use(handlers.AuthMiddleware(authService))
		r.Post("/api/import/{platform}", importHandler.HandleImport)
		r.Get("/api/import/latest", importHandler.HandleGetLatestResult)
		r.Post("/api/import/commission-rates", importHandler.HandleApplyCommissionRates)
		r.Get("/api/trades", tradesHandler.HandleGetTrades)
	})

	addr := ":" + config.Cfg.Port
	logger.L.Info("Server listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.L.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
