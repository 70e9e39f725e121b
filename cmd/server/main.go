package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Akhil21232123/hirematrix/internal/config"
	"github.com/Akhil21232123/hirematrix/internal/events"
	execpkg "github.com/Akhil21232123/hirematrix/internal/exec"
	"github.com/Akhil21232123/hirematrix/internal/handlers"
	"github.com/Akhil21232123/hirematrix/internal/jobs"
	"github.com/Akhil21232123/hirematrix/internal/llm"
	_ "github.com/Akhil21232123/hirematrix/internal/llm/gemini"
	_ "github.com/Akhil21232123/hirematrix/internal/llm/groq"
	"github.com/Akhil21232123/hirematrix/internal/metrics"
	"github.com/Akhil21232123/hirematrix/internal/models"
	"github.com/Akhil21232123/hirematrix/internal/oracle"
	"github.com/Akhil21232123/hirematrix/internal/prompts"
	"github.com/Akhil21232123/hirematrix/internal/repositories"
	"github.com/Akhil21232123/hirematrix/internal/routers"
	"github.com/Akhil21232123/hirematrix/internal/services"
	"github.com/Akhil21232123/hirematrix/internal/session"
	"github.com/Akhil21232123/hirematrix/internal/utils"
	"github.com/Akhil21232123/hirematrix/internal/video"
)

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// initDatabase initializes the PostgreSQL database connection
func initDatabase() (*gorm.DB, error) {
	host := getEnv("POSTGRES_HOST", "localhost")
	user := getEnv("POSTGRES_USER", "postgres")
	password := getEnv("POSTGRES_PASSWORD", "postgres")
	dbname := getEnv("POSTGRES_DB", "hirematrix")
	port := getEnv("POSTGRES_PORT", "5432")
	sslmode := getEnv("POSTGRES_SSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Candidate{}, &models.Round{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func registerRoutes(router *chi.Mux, cfg *config.Config, interviewHandler *handlers.InterviewHandler, runHandler *handlers.RunHandler, adminHandler *handlers.AdminHandler, healthHandler *handlers.HealthHandler) {
	routers.HealthRoutes(router, healthHandler)
	routers.InterviewRoutes(router, cfg.JWTSecret, interviewHandler, runHandler)
	routers.AdminRoutes(router, cfg.AdminSecret, adminHandler)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())
}

func main() {
	utils.InitLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.Bool("strict_interrogation", cfg.StrictInterrogation))

	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	provider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize oracle provider", zap.Error(err))
	}

	db, err := initDatabase()
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Warn("Redis unreachable at startup, admin live feed degraded", zap.Error(err))
	}

	candidateRepo := &repositories.CandidateRepository{DB: db}
	roundRepo := &repositories.RoundRepository{DB: db}

	gradingOracle := oracle.NewOracle(provider, promptManager, logger)
	publisher := events.NewPublisher(rdb, logger)
	subscriber := events.NewSubscriber(rdb, logger)

	manager := session.NewManager()
	reportService := services.NewReportService(candidateRepo, roundRepo, gradingOracle, publisher, logger)
	executor := session.NewExecutor(manager, candidateRepo, roundRepo, reportService, publisher, logger)

	rooms := video.NewClient(cfg.DailyAPIKey, cfg.DailyBaseURL)

	interviewHandler := handlers.NewInterviewHandler(cfg, gradingOracle, manager, executor, candidateRepo, rooms, publisher, logger)
	runHandler := handlers.NewRunHandler(execpkg.NewRunner(), logger)
	adminHandler := handlers.NewAdminHandler(candidateRepo, subscriber, logger)
	healthHandler := handlers.NewHealthHandler(provider, promptManager, cfg, db, rdb)

	reaper := jobs.NewDeadlineReaperJob(manager, executor, getEnv("REAPER_SCHEDULE", "@every 5s"), logger)
	if err := reaper.Start(); err != nil {
		logger.Fatal("Failed to start deadline reaper", zap.Error(err))
	}

	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{getEnv("FRONTEND_ORIGIN", "http://localhost:3000")},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Logger, chimiddleware.Recoverer, chimiddleware.Timeout(60*time.Second))
	router.Use(metrics.Middleware())

	registerRoutes(router, cfg, interviewHandler, runHandler, adminHandler, healthHandler)

	serverAddr := ":" + cfg.Port

	// http server with timeouts
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Interview service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Interview service shutting down...")

	reaper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	if err := rdb.Close(); err != nil {
		logger.Warn("Failed to close redis client", zap.Error(err))
	}

	logger.Info("Interview service exited")
}
