package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bizops/internal/domain/bank"
	"bizops/internal/domain/core"
	"bizops/internal/domain/payroll"
	"bizops/internal/domain/reports"
	"bizops/internal/domain/roster"
	"bizops/internal/domain/timesheet"
	"bizops/internal/platform/config"
	cryptoutil "bizops/internal/platform/crypto"
	"bizops/internal/platform/db"
	"bizops/internal/platform/metrics"
	authhandler "bizops/internal/transport/http/handlers/auth"
	bankhandler "bizops/internal/transport/http/handlers/bank"
	corehandler "bizops/internal/transport/http/handlers/core"
	payrollhandler "bizops/internal/transport/http/handlers/payroll"
	reportshandler "bizops/internal/transport/http/handlers/reports"
	rosterhandler "bizops/internal/transport/http/handlers/roster"
	timesheethandler "bizops/internal/transport/http/handlers/timesheet"
	"bizops/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	cryptoService, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		log.Fatalf("encryption key invalid: %v", err)
	}

	coreStore := core.NewStore(pool)
	bankStore := bank.NewStore(pool)
	timesheetStore := timesheet.NewStore(pool)
	rosterStore := roster.NewStore(pool)
	payrollStore := payroll.NewStore(pool)
	reportsStore := reports.NewStore(pool)
	payslips := payroll.NewPayslipService(payrollStore, cryptoService, cfg.PayslipDir)
	policy := payroll.DeductionPolicy{Kind: payroll.DeductionPercent, Value: cfg.DeductionPercent}

	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(collector))
	}
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(collector.Snapshot())
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(pool, cfg.JWTSecret, cryptoService)
		authHandler.RegisterRoutes(r)

		coreHandler := corehandler.NewHandler(coreStore)
		coreHandler.RegisterRoutes(r)

		bankHandler := bankhandler.NewHandler(bankStore)
		bankHandler.RegisterRoutes(r)

		timesheetHandler := timesheethandler.NewHandler(timesheetStore)
		timesheetHandler.RegisterRoutes(r)

		rosterHandler := rosterhandler.NewHandler(rosterStore, timesheetStore)
		rosterHandler.RegisterRoutes(r)

		payrollHandler := payrollhandler.NewHandler(payrollStore, coreStore, timesheetStore, payslips, policy)
		payrollHandler.RegisterRoutes(r)

		reportsHandler := reportshandler.NewHandler(reportsStore, bankStore)
		reportsHandler.RegisterRoutes(r)
	})

	log.Printf("bizops server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
