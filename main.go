package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joanie-store/storefront/cache"
	"github.com/joanie-store/storefront/controllers"
	"github.com/joanie-store/storefront/database"
	"github.com/joanie-store/storefront/logger"
	"github.com/joanie-store/storefront/middleware"
	awspkg "github.com/joanie-store/storefront/pkg/aws"
	"github.com/joanie-store/storefront/repository"
	"github.com/joanie-store/storefront/routes"
	"github.com/joanie-store/storefront/services"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const serviceName = "storefront-api"

func main() {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	cfg, err := LoadConfig(ctx)
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}

	// --- AWS setup (only when something uses it) ---
	var awsCfg sdkaws.Config
	awsReady := false
	if cfg.SNSTopicARN != "" || cfg.CloudWatchEnabled {
		if awsCfg, err = awspkg.LoadAWSConfig(ctx, cfg.AWS); err != nil {
			log.Printf("AWS config unavailable, events and CloudWatch disabled: %v", err)
		} else {
			awsReady = true
		}
	}

	// --- Logger ---
	var ship *awspkg.CloudWatchLogsWriter
	if awsReady && cfg.CloudWatchEnabled {
		if ship, err = awspkg.NewCloudWatchLogsWriter(ctx, awsCfg, cfg.CloudWatchLogGroup, serviceName); err != nil {
			log.Printf("CloudWatch Logs init failed (non-fatal): %v", err)
			ship = nil
		}
	}
	var zapLogger *zap.Logger
	if ship != nil {
		zapLogger, err = logger.New(cfg.Env, ship)
	} else {
		zapLogger, err = logger.New(cfg.Env, nil)
	}
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// --- Database ---
	if err := database.Connect(cfg.Postgres); err != nil {
		zapLogger.Fatal("DB connection failed", zap.Error(err))
	}
	if err := database.Migrate(database.DB); err != nil {
		zapLogger.Fatal("Migration failed", zap.Error(err))
	}

	// --- Redis (optional, product cache) ---
	var redisClient *redis.Client
	var productCache services.ProductCache
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			zapLogger.Warn("Redis unavailable, product cache disabled", zap.Error(err))
		} else {
			productCache = cache.NewProductCache(redisClient, cfg.ProductCacheTTL)
		}
	}

	// --- Events and metrics ---
	var metricsClient *awspkg.MetricsClient
	var recorder services.MetricsRecorder
	var publisher awspkg.SNSPublisher
	if awsReady {
		metricsClient = awspkg.NewMetricsClient(awsCfg, cfg.MetricsNamespace, cfg.CloudWatchEnabled)
		recorder = metricsClient
		if cfg.SNSTopicARN != "" {
			publisher = awspkg.NewSNSClient(awsCfg)
		}
	}
	events := services.NewEventPublisher(publisher, cfg.SNSTopicARN, recorder, zapLogger)

	// --- Dependency injection ---
	tokens, err := services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		zapLogger.Fatal("Token service init failed", zap.Error(err))
	}

	productRepo := repository.NewGormProductRepository(database.DB)
	cartRepo := repository.NewGormCartRepository(database.DB)
	wishlistRepo := repository.NewGormWishlistRepository(database.DB)
	userRepo := repository.NewGormUserRepository(database.DB)

	handlers := routes.Handlers{
		Products: controllers.NewProductController(services.NewProductService(productRepo, productCache, zapLogger)),
		Cart:     controllers.NewCartController(services.NewCartService(cartRepo, productRepo, events, zapLogger)),
		Wishlist: controllers.NewWishlistController(services.NewWishlistService(wishlistRepo, productRepo, events, zapLogger)),
		Auth: controllers.NewAuthController(
			services.NewAuthService(userRepo, tokens, zapLogger), tokens, cfg.SecureCookie),
	}

	// --- HTTP router ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(zapLogger))
	r.Use(middleware.SecurityHeaders())
	if metricsClient != nil {
		r.Use(middleware.Metrics(metricsClient, serviceName))
	}
	r.Use(middleware.Timeout(30 * time.Second))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": serviceName})
	})

	authLimiter := middleware.NewRateLimiter(rate.Limit(cfg.AuthRateLimit), cfg.AuthRateBurst, 10*time.Minute)
	go authLimiter.Cleanup(ctx)
	routes.Register(r, handlers, tokens, authLimiter.Middleware())

	// --- HTTP server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zapLogger.Info("Storefront API started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Initiating graceful shutdown...")
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server shutdown error", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			zapLogger.Error("Redis close error", zap.Error(err))
		}
	}
	if err := database.Close(); err != nil {
		zapLogger.Error("Database close error", zap.Error(err))
	}

	zapLogger.Info("Storefront API stopped gracefully")
}
