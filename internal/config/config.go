package config

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}
	return fromEnv(os.LookupEnv)
}

func fromEnv(lookup func(string) (string, bool)) Config {
	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}
	getEnvOr := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBName:        getEnvOr("DB_NAME", "padel.db"),
		MigrationsDir: getEnvOr("MIGRATIONS_DIR", "./migrations"),
		Port:          getEnvOr("PORT", "8080"),
		Slack: SlackConfig{
			Token:         getEnvOr("SLACK_BOT_TOKEN", ""),
			ChannelID:     getEnvOr("SLACK_CHANNEL_ID", ""),
			SigningSecret: getEnvOr("SLACK_SIGNING_SECRET", ""),
		},
		Turso: TursoConfig{
			PrimaryURL: getEnvOr("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvOr("TURSO_AUTH_TOKEN", ""),
		},
		Broker: BrokerConfig{
			Kind:     BrokerKind(strings.ToLower(getEnvOr("BROKER", string(BrokerNone)))),
			Exchange: getEnvOr("AMQP_EXCHANGE", "padel"),
		},
		Playtomic: PlaytomicConfig{
			BaseURL:  getEnvOr("PLAYTOMIC_BASE_URL", "https://api.playtomic.io"),
			TenantID: getEnvOr("TENANT_ID", ""),
		},
		AllowedOrigins: splitList(getEnvOr("ALLOWED_ORIGINS", "*")),
	}

	switch cfg.Broker.Kind {
	case BrokerGCP:
		cfg.Broker.ProjectID = getEnv("GCP_PROJECT")
	case BrokerAMQP:
		cfg.Broker.AMQPURL = getEnv("AMQP_URL")
	case BrokerNone:
	default:
		log.Fatalf("Error: Unknown BROKER %q, expected gcp, amqp or none.", cfg.Broker.Kind)
	}
	if cfg.Turso.PrimaryURL != "" && cfg.Turso.AuthToken == "" {
		cfg.Turso.AuthToken = getEnv("TURSO_AUTH_TOKEN")
	}
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
