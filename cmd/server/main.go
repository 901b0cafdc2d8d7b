package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/AnshRaj112/calsum-backend/internal/config"
	"github.com/AnshRaj112/calsum-backend/internal/database"
	"github.com/AnshRaj112/calsum-backend/internal/handlers"
	"github.com/AnshRaj112/calsum-backend/internal/middleware"
	"github.com/AnshRaj112/calsum-backend/internal/routes"
	"github.com/AnshRaj112/calsum-backend/internal/services"
	"github.com/redis/go-redis/v9"
)

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.IsProduction() {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	zerolog.DefaultContextLogger = &log.Logger
}

func main() {
	// Load env
	envErr := godotenv.Load()
	// Load configuration
	cfg := config.Load()
	setupLogger(cfg)
	if envErr != nil {
		log.Debug().Msg("No .env file found")
	}

	if cfg.UsesDefaultSecret() {
		log.Warn().Msg("⚠️  JWT_SECRET not set. Tokens are signed with the built-in default secret; set JWT_SECRET in production.")
	}
	if cfg.AdminEmail == "" {
		log.Warn().Str("admin_username", cfg.AdminUsername).Msg("⚠️  ADMIN_EMAIL not set. Whoever registers the admin username first gets the admin role.")
	}

	// Connect to the relational store
	log.Info().Str("driver", cfg.DatabaseDriver).Msg("Connecting to database...")
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Redis is optional: without it daily summaries are computed on every request
	var redisClient *redis.Client
	if cfg.RedisURI != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURI)
		if err != nil {
			log.Warn().Err(err).Msg("⚠️  Redis unavailable, summary cache disabled")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}
	cache := services.NewCacheService(redisClient, cfg.SummaryCacheTTL)

	// MongoDB is optional: without it admin actions are not audited
	var audit services.AuditLog = services.NopAuditLog{}
	if cfg.MongoURI != "" {
		client, mongoDB, err := database.ConnectMongo(cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			log.Warn().Err(err).Msg("⚠️  MongoDB unavailable, audit log disabled")
		} else {
			defer database.DisconnectMongo(client)
			mongoAudit := services.NewMongoAuditLog(mongoDB)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := mongoAudit.EnsureIndexes(ctx); err != nil {
				log.Warn().Err(err).Msg("⚠️  failed to ensure audit indexes")
			}
			cancel()
			audit = mongoAudit
		}
	}

	tokens := services.NewTokenService(cfg.JWTSecret)
	users := services.NewUserService(db, tokens, cache, services.AdminAccount{Username: cfg.AdminUsername, Email: cfg.AdminEmail})
	foods := services.NewFoodService(db, cache)
	exercises := services.NewExerciseService(db, cache)
	summary := services.NewSummaryService(foods, exercises, cache)
	h := handlers.New(users, foods, exercises, summary, audit)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log.Logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.IsProduction() {
		r.Use(middleware.SecurityHeaders)
		log.Info().Msg("✅ Production security headers enabled")
	}

	routes.SetupRoutes(r, h, tokens, users, cfg.StaticDir)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("🚀 CalSum backend running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
