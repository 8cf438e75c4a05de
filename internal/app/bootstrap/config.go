package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceID string

	HTTPPort int

	APIKey     string
	APISecret  string
	APIVersion string

	DatabaseURL  string
	RedisURL     string
	KafkaBrokers []string

	MaxDBConns              int32
	KafkaTopicReviewCreated string

	TokenCacheTTL        time.Duration
	AdminCallTimeout     time.Duration
	VerifyProxySignature bool
}

type configFile struct {
	Service struct {
		ID                      string `yaml:"id"`
		HTTPPort                int    `yaml:"http_port"`
		TokenCacheSeconds       int    `yaml:"token_cache_seconds"`
		AdminCallTimeoutSeconds int    `yaml:"admin_call_timeout_seconds"`
		VerifyProxySignature    *bool  `yaml:"verify_proxy_signature"`
	} `yaml:"service"`
	Platform struct {
		APIKey     string `yaml:"api_key"`
		APISecret  string `yaml:"api_secret"`
		APIVersion string `yaml:"api_version"`
	} `yaml:"platform"`
	Dependencies struct {
		PostgresURL             string   `yaml:"postgres_url"`
		RedisURL                string   `yaml:"redis_url"`
		KafkaBrokers            []string `yaml:"kafka_brokers"`
		KafkaTopicReviewCreated string   `yaml:"kafka_topic_review_created"`
	} `yaml:"dependencies"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:               "app-reviews",
		HTTPPort:                8080,
		APIVersion:              "2024-07",
		MaxDBConns:              20,
		KafkaTopicReviewCreated: "review.created",
		TokenCacheTTL:           5 * time.Minute,
		AdminCallTimeout:        10 * time.Second,
		VerifyProxySignature:    true,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.TokenCacheSeconds > 0 {
			cfg.TokenCacheTTL = time.Duration(f.Service.TokenCacheSeconds) * time.Second
		}
		if f.Service.AdminCallTimeoutSeconds > 0 {
			cfg.AdminCallTimeout = time.Duration(f.Service.AdminCallTimeoutSeconds) * time.Second
		}
		if f.Service.VerifyProxySignature != nil {
			cfg.VerifyProxySignature = *f.Service.VerifyProxySignature
		}
		if f.Platform.APIKey != "" {
			cfg.APIKey = f.Platform.APIKey
		}
		if f.Platform.APISecret != "" {
			cfg.APISecret = f.Platform.APISecret
		}
		if f.Platform.APIVersion != "" {
			cfg.APIVersion = f.Platform.APIVersion
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if len(f.Dependencies.KafkaBrokers) > 0 {
			cfg.KafkaBrokers = trimNonEmpty(f.Dependencies.KafkaBrokers)
		}
		if f.Dependencies.KafkaTopicReviewCreated != "" {
			cfg.KafkaTopicReviewCreated = f.Dependencies.KafkaTopicReviewCreated
		}
	}

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.APIKey = envOrDefault("SHOPIFY_API_KEY", cfg.APIKey)
	cfg.APISecret = envOrDefault("SHOPIFY_API_SECRET", cfg.APISecret)
	cfg.APIVersion = envOrDefault("SHOPIFY_API_VERSION", cfg.APIVersion)
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.KafkaTopicReviewCreated = envOrDefault("KAFKA_TOPIC_REVIEW_CREATED", cfg.KafkaTopicReviewCreated)
	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))
	cfg.TokenCacheTTL = time.Duration(envInt("TOKEN_CACHE_SECONDS", int(cfg.TokenCacheTTL.Seconds()))) * time.Second
	cfg.AdminCallTimeout = time.Duration(envInt("ADMIN_CALL_TIMEOUT_SECONDS", int(cfg.AdminCallTimeout.Seconds()))) * time.Second
	cfg.VerifyProxySignature = envBool("VERIFY_PROXY_SIGNATURE", cfg.VerifyProxySignature)

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("missing REDIS_URL")
	}
	if cfg.APISecret == "" {
		return Config{}, fmt.Errorf("missing SHOPIFY_API_SECRET")
	}
	return cfg, nil
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return fallback
	}
}

func envCSV(name string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	return trimNonEmpty(strings.Split(raw, ","))
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
