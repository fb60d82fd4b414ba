package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"aura-backend/internal/chat"
	"aura-backend/internal/config"
	"aura-backend/internal/genai"
	"aura-backend/internal/insight"
	"aura-backend/internal/resources"
	"aura-backend/internal/screening"
	"aura-backend/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	// 1. Store: Postgres when configured, otherwise the injected
	// in-memory store.
	var st store.Store
	if cfg.DatabaseURL != "" {
		db := openDatabase(cfg.DatabaseURL, logger)
		if db != nil {
			runMigrations(cfg.DatabaseURL, logger)
			st = store.NewPostgresStore(db)
		}
	}
	if st == nil {
		logger.Info("no database configured, using in-memory store")
		st = store.NewMemoryStore()
	}

	// 2. Text-generation back end (optional).
	var gen genai.Generator
	if cfg.GenAIBaseURL != "" {
		gen = genai.NewClient(cfg.GenAIBaseURL, cfg.GenAIAPIKey, cfg.GenAIModel, genai.DefaultParams())
		logger.Info("generation back end configured", "model", cfg.GenAIModel)
	} else {
		logger.Info("no generation back end configured, using fallback responder")
	}

	// 3. Services.
	screeningSvc := screening.NewService(st, logger)
	chatSvc := chat.NewService(st, gen, resources.Lookup, logger)
	tipSvc := resources.NewTipService(gen, logger)

	// 4. Background analyzer.
	analyzer := insight.NewAnalyzer(st, logger)
	scheduler, err := insight.StartScheduler(analyzer, cfg.AnalyzerInterval, cfg.AnalyzerStartupDelay)
	if err != nil {
		logger.Error("could not start insight scheduler", "error", err)
	} else {
		defer scheduler.Shutdown()
	}

	// 5. Router.
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Route("/api", func(r chi.Router) {
		chat.RegisterRoutes(r, chat.NewHandler(chatSvc))
		screening.RegisterRoutes(r, screening.NewHandler(screeningSvc))
		resources.RegisterRoutes(r, resources.NewHandler(tipSvc))
	})

	logger.Info("server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func openDatabase(connStr string, logger *slog.Logger) *sql.DB {
	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", connStr)
		if err == nil {
			err = db.Ping()
		}
		if err == nil {
			logger.Info("connected to database")
			return db
		}
		logger.Info("waiting for database", "attempt", i+1)
		time.Sleep(2 * time.Second)
	}
	logger.Error("could not connect to database, continuing without it", "error", err)
	return nil
}

func runMigrations(connStr string, logger *slog.Logger) {
	m, err := migrate.New("file://migrations", connStr)
	if err != nil {
		logger.Error("migration init failed", "error", err)
		return
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Error("migration up failed", "error", err)
		return
	}
	logger.Info("migrations applied")
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if r.Method == "OPTIONS" {
			return
		}
		next.ServeHTTP(w, r)
	})
}
