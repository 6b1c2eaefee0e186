package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	httpapi "toolrental-backend/internal/api/http"
	"toolrental-backend/internal/cache"
	"toolrental-backend/internal/config"
	"toolrental-backend/internal/jobs"
	"toolrental-backend/internal/logger"
	"toolrental-backend/internal/repository/postgres"
	"toolrental-backend/internal/scheduler"
	"toolrental-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting tool rental backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database. Store construction failure is fatal: the durable
	// source is the only tier that can answer authoritatively.
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db, cfg.QueryTimeout())

	// Initialize the distributed cache tier. Cache unavailability is
	// non-fatal: resolvers degrade to the durable source.
	var distributed cache.Cache
	redisCache, err := cache.NewRedisCache(cfg.Redis, cfg.CacheCallTimeout())
	if err != nil {
		logger.Warn("Distributed cache unavailable, continuing without it", "addr", cfg.Redis.Addr, "error", err)
		distributed = cache.Disabled{}
	} else {
		defer redisCache.Close()
		distributed = redisCache
		logger.Info("Distributed cache connection established", "addr", cfg.Redis.Addr)
	}

	toolCache := cache.NewToolCache(distributed, cfg.RedisTTL())
	priceCache := cache.NewRentalPriceCache(distributed, cfg.RedisTTL())
	holidayCache := cache.NewHolidayCache(distributed, cfg.RedisTTL())

	// Initialize Services
	resolver := service.NewRentalResolver(store, toolCache, priceCache, cfg.LocalTTL())
	holidays := service.NewHolidayService(cfg.HolidayAPI, holidayCache, cfg.LocalTTL())
	classifier := service.NewDayClassifier(holidays)
	builder := service.NewAgreementBuilder(resolver, classifier)
	checkout := service.NewCheckoutService(store, resolver, builder)

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(holidays, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	// Initialize HTTP API
	router := mux.NewRouter()
	handler := httpapi.NewRentalHandler(checkout, resolver)
	handler.RegisterRoutes(router)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		log.Fatalf("HTTP server stopped: %v", err)
	}
}
