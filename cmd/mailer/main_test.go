package main

import (
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"mailer", "-c", "mailer.env"}
	assert.Equal(t, "mailer.env", parseFlags())
}

func TestParseConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{"KAFKA_CONFIRMATION_TOPIC", "KAFKA_GROUP_ID", "MAIL_FROM_NAME", "MAIL_FROM_ADDRESS", "APP_LOG_LEVEL"} {
			t.Setenv(key, "")
		}
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

		cfg, err := parseConfig("nonexistent.env")
		require.NoError(t, err)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.kafkaBrokers)
		assert.Equal(t, "account-confirmations", cfg.kafkaTopic)
		assert.Equal(t, "gw-bookstore-mailer", cfg.kafkaGroupID)
		assert.Equal(t, "Bookstore", cfg.mailFromName)
		assert.Equal(t, "noreply@bookstore.local", cfg.mailFromAddr)
		assert.Equal(t, "info", cfg.logLevel)
	})

	t.Run("custom", func(t *testing.T) {
		t.Setenv("KAFKA_BROKERS", "localhost:9092")
		t.Setenv("KAFKA_CONFIRMATION_TOPIC", "confirmations")
		t.Setenv("KAFKA_GROUP_ID", "mailer-2")
		t.Setenv("SENDGRID_API_KEY", "SG.key")
		t.Setenv("MAIL_FROM_NAME", "Shop")
		t.Setenv("MAIL_FROM_ADDRESS", "shop@example.com")
		t.Setenv("APP_LOG_LEVEL", "debug")

		cfg, err := parseConfig("nonexistent.env")
		require.NoError(t, err)
		assert.Equal(t, config{
			logLevel:       "debug",
			kafkaBrokers:   []string{"localhost:9092"},
			kafkaTopic:     "confirmations",
			kafkaGroupID:   "mailer-2",
			sendgridAPIKey: "SG.key",
			mailFromName:   "Shop",
			mailFromAddr:   "shop@example.com",
		}, cfg)
	})

	t.Run("no brokers", func(t *testing.T) {
		t.Setenv("KAFKA_BROKERS", "")

		_, err := parseConfig("nonexistent.env")
		assert.ErrorIs(t, err, errNoBrokers)
	})
}
