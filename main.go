package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"swap-service/internal/cache"
	"swap-service/internal/config"
	"swap-service/internal/db"
	"swap-service/internal/handlers"
	"swap-service/internal/logger"
	"swap-service/internal/matching"
	"swap-service/internal/middleware"
	"swap-service/internal/notify"
	"swap-service/internal/observability"
	"swap-service/internal/rabbitmq"
	"swap-service/internal/repositories"
	"swap-service/internal/telemetry"
	"swap-service/internal/tracing"
	"swap-service/internal/ws"
)

const serviceName = "swap-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := logger.Initialize(cfg.Log.Level); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Log.Sync()

	database, err := db.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Log.Fatal("database connect failed", zap.Error(err))
	}
	defer database.Close()

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
	}

	publisher := rabbitmq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	defer publisher.Close()
	emitter := telemetry.NewAuditEmitter(publisher, "audit.logs", serviceName, cfg.Environment)

	if cfg.AMQP.URL != "" {
		eventPublisher, err := observability.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			logger.Log.Warn("event publisher unavailable", zap.Error(err))
		} else {
			observability.SetPublisher(eventPublisher)
			defer eventPublisher.Close()
		}
	}

	shutdownTracing, err := tracing.Init(context.Background(), cfg.Tracing.OTLPEndpoint, serviceName, cfg.Environment)
	if err != nil {
		logger.Log.Fatal("tracing init failed", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Log.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	notifier := notify.NewWebhookNotifier(cfg.Notify.MatchWebhookURL)
	ratingCache := cache.NewRatingCache(rdb, 5*time.Minute)

	chatRepo := repositories.NewChatRepo(database)
	messageRepo := repositories.NewMessageRepo(database)
	itemRepo := repositories.NewItemRepo(database)
	likeRepo := repositories.NewLikeRepo(database)
	ratingRepo := repositories.NewRatingRepo(database)
	userRepo := repositories.NewUserRepo(database)
	engine := matching.NewEngine(database)
	hub := ws.NewHub()

	itemHandler := handlers.NewItemHandler(itemRepo)
	likeHandler := handlers.NewLikeHandler(engine, likeRepo, notifier, emitter)
	matchHandler := handlers.NewMatchHandler(engine)
	chatHandler := handlers.NewChatHandler(chatRepo, messageRepo, engine, hub, emitter)
	ratingHandler := handlers.NewRatingHandler(ratingRepo, userRepo, ratingCache)
	profileHandler := handlers.NewProfileHandler(userRepo, itemRepo, ratingRepo, ratingCache)
	chatWS := ws.NewChatWebSocketHandler(hub, chatRepo, cfg.JWT.Secret)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(observability.HTTPMetricsMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		if err := database.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ws/chats/:chat_id", chatWS.Handle)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	limited := middleware.RateLimit(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window)

	auth.GET("/items", itemHandler.ListItems)
	auth.POST("/items", limited, itemHandler.CreateItem)
	auth.GET("/items/:item_id", itemHandler.GetItem)
	auth.PUT("/items/:item_id", limited, itemHandler.UpdateItem)
	auth.DELETE("/items/:item_id", limited, itemHandler.DeleteItem)
	auth.POST("/items/:item_id/images", limited, itemHandler.AddImage)
	auth.DELETE("/images/:image_id", limited, itemHandler.DeleteImage)
	auth.GET("/categories", itemHandler.ListCategories)

	auth.POST("/items/:item_id/like", limited, likeHandler.LikeItem)
	auth.GET("/likes", likeHandler.ListLikes)
	auth.GET("/matches", matchHandler.ListMatches)

	auth.GET("/chats", chatHandler.ListChats)
	auth.GET("/chats/:chat_id/messages", chatHandler.GetMessages)
	auth.POST("/chats/:chat_id/messages", limited, chatHandler.PostMessage)
	auth.DELETE("/chats/:chat_id", limited, chatHandler.DeleteChat)

	auth.POST("/users/:user_id/rating", limited, ratingHandler.RateUser)
	auth.GET("/users/:user_id", profileHandler.GetProfile)

	if cfg.DebugRoutes {
		handlers.RegisterDebugRoutes(auth.Group("/debug"), emitter)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Log.Info("server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("forced shutdown", zap.Error(err))
	}
}
