package config

// Config holds all configuration for the application.
type Config struct {
	DBName         string
	MigrationsDir  string
	Port           string
	Slack          SlackConfig
	Turso          TursoConfig
	Broker         BrokerConfig
	Playtomic      PlaytomicConfig
	AllowedOrigins []string
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

// Enabled reports whether notifications can be posted.
func (s SlackConfig) Enabled() bool {
	return s.Token != "" && s.ChannelID != ""
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// BrokerKind selects where match events are published.
type BrokerKind string

const (
	BrokerNone BrokerKind = "none"
	BrokerGCP  BrokerKind = "gcp"
	BrokerAMQP BrokerKind = "amqp"
)

type BrokerConfig struct {
	Kind      BrokerKind
	ProjectID string
	AMQPURL   string
	Exchange  string
}

// PlaytomicConfig points line-up imports at a club.
type PlaytomicConfig struct {
	BaseURL  string
	TenantID string
}
