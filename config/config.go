package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendNaiveBayes = "naivebayes"
	BackendVader      = "vader"
	BackendOpenAI     = "openai"
	BackendRemote     = "remote"
)

type Config struct {
	Env      string
	HTTPAddr string
	LogLevel slog.Level

	ModelPath         string
	ClassifierBackend string
	TextColumn        string
	MaxUploadBytes    int64
	WordCloudMaxWords int

	ValkeyAddress  string
	ValkeyPassword string
	ValkeyTLS      bool
	CacheTTL       time.Duration

	AWSRegion        string
	AWSEndpoint      string
	HistoryTableName string

	KafkaBroker        string
	KafkaTopicAnalysis string

	OpenAIAPIKey string
	OpenAIModel  string

	RemoteClassifierURL     string
	RemoteClassifierTimeout time.Duration
}

func (c Config) CacheEnabled() bool   { return c.ValkeyAddress != "" }
func (c Config) HistoryEnabled() bool { return c.HistoryTableName != "" }
func (c Config) EventsEnabled() bool  { return c.KafkaBroker != "" }

// Load reads the process environment into a Config. Call LoadEnv first
// so the env file has been applied.
func Load() (Config, error) {
	cfg := Config{
		Env:                AppEnv(),
		HTTPAddr:           getEnv("HTTP_ADDR", ":5000"),
		ModelPath:          getEnv("MODEL_PATH", "models/sentiment_model.json"),
		ClassifierBackend:  strings.ToLower(getEnv("CLASSIFIER_BACKEND", BackendNaiveBayes)),
		TextColumn:         getEnv("TEXT_COLUMN", "content"),
		ValkeyAddress:      os.Getenv("VALKEY_INIT_ADDRESS"),
		ValkeyPassword:     os.Getenv("VALKEY_PASSWORD"),
		ValkeyTLS:          os.Getenv("VALKEY_TLS") == "true",
		AWSRegion:          getEnv("AWS_REGION", "us-west-2"),
		AWSEndpoint:        os.Getenv("AWS_ENDPOINT"),
		HistoryTableName:   os.Getenv("HISTORY_TABLE_NAME"),
		KafkaBroker:        os.Getenv("KAFKA_BROKER"),
		KafkaTopicAnalysis: getEnv("KAFKA_TOPIC_ANALYSIS", "sentiment.analysis"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		RemoteClassifierURL: os.Getenv("REMOTE_CLASSIFIER_URL"),
	}

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return cfg, err
	}
	cfg.LogLevel = level

	maxMB, err := getInt("MAX_UPLOAD_MB", 32)
	if err != nil {
		return cfg, err
	}
	if maxMB <= 0 {
		return cfg, fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", maxMB)
	}
	cfg.MaxUploadBytes = int64(maxMB) << 20

	if cfg.WordCloudMaxWords, err = getInt("WORDCLOUD_MAX_WORDS", 200); err != nil {
		return cfg, err
	}

	ttl, err := time.ParseDuration(getEnv("CACHE_TTL", "1h"))
	if err != nil {
		return cfg, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	remoteTimeout, err := time.ParseDuration(getEnv("REMOTE_CLASSIFIER_TIMEOUT", "60s"))
	if err != nil {
		return cfg, fmt.Errorf("invalid REMOTE_CLASSIFIER_TIMEOUT: %w", err)
	}
	cfg.RemoteClassifierTimeout = remoteTimeout

	switch cfg.ClassifierBackend {
	case BackendNaiveBayes, BackendVader:
	case BackendOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return cfg, fmt.Errorf("CLASSIFIER_BACKEND=openai requires OPENAI_API_KEY")
		}
	case BackendRemote:
		if cfg.RemoteClassifierURL == "" {
			return cfg, fmt.Errorf("CLASSIFIER_BACKEND=remote requires REMOTE_CLASSIFIER_URL")
		}
	default:
		return cfg, fmt.Errorf("unknown CLASSIFIER_BACKEND %q", cfg.ClassifierBackend)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return level, nil
}
