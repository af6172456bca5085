package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/segmentio/kafka-go"
	"github.com/sendgrid/sendgrid-go"

	"github.com/sbilibin2017/gw-bookstore/internal/logger"
	"github.com/sbilibin2017/gw-bookstore/internal/mailer"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

var errNoBrokers = errors.New("KAFKA_BROKERS is empty")

// config holds everything read from the environment.
type config struct {
	logLevel       string
	kafkaBrokers   []string
	kafkaTopic     string
	kafkaGroupID   string
	sendgridAPIKey string
	mailFromName   string
	mailFromAddr   string
}

func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("mailer stopped with error: %v", err)
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

// parseConfig loads environment variables from a file and returns the
// Kafka, SendGrid and logging configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	cfg.logLevel = getEnv("APP_LOG_LEVEL", "info")

	for _, b := range strings.Split(getEnv("KAFKA_BROKERS", ""), ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.kafkaBrokers = append(cfg.kafkaBrokers, b)
		}
	}
	if len(cfg.kafkaBrokers) == 0 {
		return cfg, errNoBrokers
	}
	cfg.kafkaTopic = getEnv("KAFKA_CONFIRMATION_TOPIC", "account-confirmations")
	cfg.kafkaGroupID = getEnv("KAFKA_GROUP_ID", "gw-bookstore-mailer")

	cfg.sendgridAPIKey = getEnv("SENDGRID_API_KEY", "")
	cfg.mailFromName = getEnv("MAIL_FROM_NAME", "Bookstore")
	cfg.mailFromAddr = getEnv("MAIL_FROM_ADDRESS", "noreply@bookstore.local")

	return cfg, nil
}

// run consumes confirmation events until a shutdown signal arrives.
func run(ctx context.Context, cfg config) error {
	if err := logger.Initialize(cfg.logLevel, "gw-bookstore-mailer"); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.kafkaBrokers,
		GroupID:  cfg.kafkaGroupID,
		Topic:    cfg.kafkaTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer func() {
		if err := reader.Close(); err != nil {
			logger.Log.Errorw("failed to close kafka reader", "error", err)
		}
	}()

	sender := mailer.NewSendGridSender(sendgrid.NewSendClient(cfg.sendgridAPIKey), cfg.mailFromName, cfg.mailFromAddr)
	consumer := mailer.NewConsumer(reader, sender)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	logger.Log.Infow("mailer started", "brokers", cfg.kafkaBrokers, "topic", cfg.kafkaTopic, "group_id", cfg.kafkaGroupID)
	if err := consumer.Run(ctx); err != nil {
		return err
	}

	logger.Log.Info("mailer stopped gracefully")
	return nil
}
