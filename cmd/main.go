package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	_ "github.com/sbilibin2017/gw-bookstore/docs"
	"github.com/sbilibin2017/gw-bookstore/internal/credentials"
	"github.com/sbilibin2017/gw-bookstore/internal/facades"
	"github.com/sbilibin2017/gw-bookstore/internal/handlers"
	"github.com/sbilibin2017/gw-bookstore/internal/jwt"
	"github.com/sbilibin2017/gw-bookstore/internal/logger"
	"github.com/sbilibin2017/gw-bookstore/internal/middlewares"
	"github.com/sbilibin2017/gw-bookstore/internal/repositories"
	"github.com/sbilibin2017/gw-bookstore/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/crypto/bcrypt"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds everything read from the environment.
type config struct {
	appHost    string
	appPort    string
	appBaseURL string
	logLevel   string

	pgHost         string
	pgPort         int
	pgUser         string
	pgPassword     string
	pgDB           string
	pgMaxOpenConns int
	pgMaxIdleConns int

	redisHost         string
	redisPort         int
	redisDB           int
	redisPassword     string
	redisPoolSize     int
	redisMinIdleConns int
	redisExpSecond    int

	kafkaBrokers           []string
	kafkaConfirmationTopic string

	tokenSecretKey       string
	tokenExpSecond       int
	authRequireConfirmed bool
	bcryptCost           int
}

// @title gw-bookstore API
// @version 1.0.0
// @description Bookstore service with account registration and confirmation
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.basic BasicAuth
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Build version: %s\nBuild date: %s\nBuild commit: %s\n", buildVersion, buildDate, buildCommit)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// application, database, Redis, Kafka, logging and token configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	// Application config
	cfg.appHost = getEnv("APP_HOST", "localhost")
	cfg.appPort = getEnv("APP_PORT", "8080")
	cfg.appBaseURL = strings.TrimRight(getEnv("APP_BASE_URL", "http://"+cfg.appHost+":"+cfg.appPort), "/")
	cfg.logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.pgHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.pgUser = getEnv("POSTGRES_USER", "user")
	cfg.pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.pgDB = getEnv("POSTGRES_DB", "database")
	if cfg.pgPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.pgMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.pgMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	cfg.redisHost = getEnv("REDIS_HOST", "localhost")
	cfg.redisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.redisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.redisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	if cfg.redisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.redisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}
	if cfg.redisExpSecond, err = getInt("REDIS_EXP_SECOND", "60"); err != nil {
		return
	}

	// Kafka config
	for _, b := range strings.Split(getEnv("KAFKA_BROKERS", ""), ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.kafkaBrokers = append(cfg.kafkaBrokers, b)
		}
	}
	cfg.kafkaConfirmationTopic = getEnv("KAFKA_CONFIRMATION_TOPIC", "account-confirmations")

	// Token and credential config
	cfg.tokenSecretKey = getEnv("TOKEN_SECRET_KEY", "my_super_secret_key")
	if cfg.tokenExpSecond, err = getInt("TOKEN_EXP_SECOND", "3600"); err != nil {
		return
	}
	if cfg.authRequireConfirmed, err = strconv.ParseBool(getEnv("AUTH_REQUIRE_CONFIRMED", "false")); err != nil {
		err = fmt.Errorf("AUTH_REQUIRE_CONFIRMED: %w", err)
		return
	}
	if cfg.bcryptCost, err = getInt("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)); err != nil {
		return
	}

	return
}

// run initializes the logger, database, Redis, Kafka and the HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	if err := logger.Initialize(cfg.logLevel, "gw-bookstore"); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.logLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.pgUser, cfg.pgPassword, cfg.pgHost, cfg.pgPort, cfg.pgDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d/%s", cfg.pgHost, cfg.pgPort, cfg.pgDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.pgMaxOpenConns)
	db.SetMaxIdleConns(cfg.pgMaxIdleConns)

	if err := repositories.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.redisHost, cfg.redisPort),
		Password:     cfg.redisPassword,
		DB:           cfg.redisDB,
		PoolSize:     cfg.redisPoolSize,
		MinIdleConns: cfg.redisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	// Kafka publisher for confirmation mails
	var publisher services.ConfirmationPublisher = facades.NopConfirmationFacade{}
	if len(cfg.kafkaBrokers) > 0 {
		kafkaFacade := facades.NewConfirmationKafkaFacade(&kafka.Writer{
			Addr:                   kafka.TCP(cfg.kafkaBrokers...),
			Topic:                  cfg.kafkaConfirmationTopic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		})
		defer kafkaFacade.Close()
		publisher = kafkaFacade
		logger.Log.Infow("publishing confirmations to kafka", "brokers", cfg.kafkaBrokers, "topic", cfg.kafkaConfirmationTopic)
	}

	tokens := jwt.New(
		jwt.WithSecretKey(cfg.tokenSecretKey),
		jwt.WithExpiration(time.Duration(cfg.tokenExpSecond)*time.Second),
	)
	hasher := credentials.New(cfg.bcryptCost)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db, middlewares.GetTxFromContext)
	userWriteRepo := repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
	bookReadRepo := repositories.NewBookReadRepository(db, middlewares.GetTxFromContext)
	bookWriteRepo := repositories.NewBookWriteRepository(db, middlewares.GetTxFromContext)
	userCacheRepo := repositories.NewUserCacheRepository(rdb, time.Duration(cfg.redisExpSecond)*time.Second)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, hasher, tokens,
		services.WithUserCache(userCacheRepo),
		services.WithConfirmationPublisher(publisher),
		services.WithBaseURL(cfg.appBaseURL),
		services.WithRequireConfirmed(cfg.authRequireConfirmed),
	)
	userService := services.NewUserService(userReadRepo, userWriteRepo, authService, userCacheRepo)
	bookService := services.NewBookService(bookReadRepo, bookWriteRepo)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	r.Route("/api", func(r chi.Router) {
		// Public routes
		handlers.RegisterRegisterHandler(r, handlers.NewRegisterHandler(authService))
		handlers.RegisterConfirmHandlers(r,
			handlers.NewConfirmHandler(authService),
			handlers.NewResendConfirmationHandler(authService),
		)
		handlers.RegisterUserReadHandlers(r,
			handlers.NewListUsersHandler(userService),
			handlers.NewGetUserHandler(userService),
		)
		handlers.RegisterBookReadHandlers(r,
			handlers.NewListBooksHandler(bookService),
			handlers.NewGetBookHandler(bookService),
		)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(authService, tokens))
			handlers.RegisterTokenHandler(r, handlers.NewTokenHandler(authService))

			r.Group(func(r chi.Router) {
				r.Use(middlewares.TxMiddleware(db))
				handlers.RegisterUserWriteHandlers(r,
					handlers.NewUpdateUserHandler(userService),
					handlers.NewDeleteUserHandler(userService),
				)
				handlers.RegisterBookWriteHandlers(r,
					handlers.NewCreateBookHandler(bookService),
					handlers.NewUpdateBookHandler(bookService),
					handlers.NewDeleteBookHandler(bookService),
				)
			})
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(cfg.appBaseURL+"/swagger/doc.json"),
	))

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.appHost, cfg.appPort),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
