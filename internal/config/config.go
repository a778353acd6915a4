package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Event transports
const (
	TransportInProcess = "inprocess"
	TransportKafka     = "kafka"
)

// Price update modes
const (
	PriceModeLastWriteWins = "last_write_wins"
	PriceModeOrdered       = "ordered"
)

// Config is resolved once at startup. Each value comes from an explicit
// Option if given, otherwise from the first non-empty environment key, otherwise
// from the default.
type Config struct {
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	APIBaseURL string
	Payment    PaymentCfg
	Store      StoreCfg
	Events     EventsCfg
	PriceMode  string
}

type PaymentCfg struct {
	SecretKey      string
	PublishableKey string
	Currency       string
	CurrencyLocale string
	SuccessURL     string
	CancelURL      string
}

type StoreCfg struct {
	Backend  string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type EventsCfg struct {
	Transport string
	Brokers   []string
	Topic     string
	GroupID   string
}

// DSN builds the postgres connection string
func (s StoreCfg) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		s.User, s.Password, s.Host, s.Port, s.DBName, s.SSLMode,
	)
}

// Option overrides a value after environment lookup
type Option func(*Config)

func WithPort(port string) Option { return func(c *Config) { c.Port = port } }

func WithAPIBaseURL(url string) Option { return func(c *Config) { c.APIBaseURL = url } }

func WithStoreBackend(backend string) Option { return func(c *Config) { c.Store.Backend = backend } }

func WithPriceMode(mode string) Option { return func(c *Config) { c.PriceMode = mode } }

func WithPayment(p PaymentCfg) Option { return func(c *Config) { c.Payment = p } }

// lookup returns the first non-empty value among keys, or def
func lookup(def string, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return def
}

// Load reads .env (if present), the process environment and the given options.
func Load(opts ...Option) (*Config, error) {
	_ = godotenv.Load()

	shutdown, err := time.ParseDuration(lookup("10s", "SHUTDOWN_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("config: invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:            lookup("8080", "PORT"),
		LogLevel:        lookup("info", "LOG_LEVEL"),
		ShutdownTimeout: shutdown,
		APIBaseURL:      lookup("http://localhost:8080", "API_BASE_URL", "VITE_API_BASE_URL", "REACT_APP_API_BASE_URL"),
		Payment: PaymentCfg{
			SecretKey:      lookup("", "STRIPE_SECRET_KEY"),
			PublishableKey: lookup("pk_test_placeholder", "STRIPE_PUBLISHABLE_KEY", "VITE_STRIPE_PUBLISHABLE_KEY", "REACT_APP_STRIPE_PUBLISHABLE_KEY"),
			Currency:       strings.ToLower(lookup("usd", "CURRENCY", "VITE_CURRENCY", "REACT_APP_CURRENCY")),
			CurrencyLocale: lookup("en-US", "CURRENCY_LOCALE", "VITE_CURRENCY_LOCALE", "REACT_APP_CURRENCY_LOCALE"),
			SuccessURL:     lookup("http://localhost:3000/success", "CHECKOUT_SUCCESS_URL"),
			CancelURL:      lookup("http://localhost:3000/cancel", "CHECKOUT_CANCEL_URL"),
		},
		Store: StoreCfg{
			Backend:  lookup(StoreMemory, "STORE_BACKEND"),
			Host:     lookup("localhost", "DB_HOST"),
			Port:     lookup("5432", "DB_PORT"),
			User:     lookup("postgres", "DB_USER"),
			Password: lookup("postgres", "DB_PASSWORD"),
			DBName:   lookup("marketplace", "DB_NAME"),
			SSLMode:  lookup("disable", "DB_SSLMODE"),
		},
		Events: EventsCfg{
			Transport: lookup(TransportInProcess, "EVENT_TRANSPORT"),
			Brokers:   splitList(lookup("localhost:9092", "KAFKA_BROKERS")),
			Topic:     lookup("bids.created", "KAFKA_TOPIC"),
			GroupID:   lookup("auction-price-updater", "KAFKA_GROUP_ID"),
		},
		PriceMode: lookup(PriceModeLastWriteWins, "PRICE_UPDATE_MODE"),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case StoreMemory, StorePostgres:
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}
	switch c.Events.Transport {
	case TransportInProcess, TransportKafka:
	default:
		return fmt.Errorf("config: unknown event transport %q", c.Events.Transport)
	}
	switch c.PriceMode {
	case PriceModeLastWriteWins, PriceModeOrdered:
	default:
		return fmt.Errorf("config: unknown price update mode %q", c.PriceMode)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("config: invalid port %q: %w", c.Port, err)
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
