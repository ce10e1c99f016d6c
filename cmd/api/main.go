package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"learning-advisor/internal/catalog"
	"learning-advisor/internal/config"
	"learning-advisor/internal/db"
	apihttp "learning-advisor/internal/http"
	"learning-advisor/internal/repository"
	"learning-advisor/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var (
		profileRepo repository.ProfileRepository = repository.NoopProfileRepository{}
		messageRepo repository.MessageRepository = repository.NoopMessageRepository{}
		sessionRepo repository.SessionRepository = repository.NoopSessionRepository{}
	)
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		if err := db.EnsureSchema(ctx, pool); err != nil {
			logger.Fatal("db schema", zap.Error(err))
		}
		profileRepo = repository.NewPgProfileRepository(pool)
		messageRepo = repository.NewPgMessageRepository(pool)
		sessionRepo = repository.NewPgSessionRepository(pool)
	} else {
		logger.Warn("database url not configured, profiles and transcripts are not persisted")
	}

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			logger.Fatal("catalog load", zap.Error(err), zap.String("path", cfg.CatalogPath))
		}
	}

	var (
		convStore   = service.NewMemoryConversationStore(cfg.SessionTTL())
		limiter     = service.NewMessageRateLimiter(cfg.RateWindow(), cfg.MessageRateLimit)
		redisClient *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory state", zap.Error(err))
		} else {
			convStore = service.NewRedisConversationStore(redisClient, cfg.SessionTTL())
			limiter = service.NewRedisMessageRateLimiter(redisClient, cfg.RateWindow(), cfg.MessageRateLimit)
		}
		cancel()
		defer redisClient.Close()
	}

	tokens := service.NewSessionTokenService(cfg.SessionTokenSecret, cfg.SessionTTL())
	if !tokens.Enabled() {
		logger.Warn("session token secret not configured, chat routes are open")
	}

	advisorSvc := service.NewAdvisorService(cat, cfg.DefaultTimeCommitment)
	messageSvc := service.NewMessageService(messageRepo)
	conversationSvc := service.NewConversationService(logger, convStore, advisorSvc, messageSvc, profileRepo)
	sessionSvc := service.NewSessionService(conversationSvc, tokens, sessionRepo, cfg.SessionTTL())

	chatHandler := apihttp.NewChatHandler(logger, sessionSvc, conversationSvc, messageSvc, limiter)
	advisorHandler := apihttp.NewAdvisorHandler(logger, advisorSvc)
	router := apihttp.NewRouter(logger, chatHandler, advisorHandler, tokens)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.Strings("domains", cat.Domains()),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
