package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Settings SettingsConfig
	Console  ConsoleConfig
	Ledger   LedgerConfig
	Kafka    KafkaConfig
	QR       QRConfig
	Server   ServerConfig
}

type SettingsConfig struct {
	UserSettingsPath string
	SettingsPath     string
}

type ConsoleConfig struct {
	BaseURL    string
	TokenURL   string
	Timeout    time.Duration
	UploadKind string // "access" or "discount"
}

type LedgerConfig struct {
	Backend   string // "sqlite", "file" or "redis"
	Path      string // file backend state file
	DSN       string // sqlite backend database
	RedisAddr string
	Policy    string // "boolean" or "fingerprint"
}

type KafkaConfig struct {
	Enabled  bool
	MockMode bool
	Brokers  []string
	Topic    string
}

type QRConfig struct {
	OutputDir string // empty disables rendering
	Size      int
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

func Load() *Config {
	return &Config{
		Settings: SettingsConfig{
			UserSettingsPath: getEnv("USERSETTINGS_PATH", "usersettings.json"),
			SettingsPath:     getEnv("SETTINGS_PATH", "settings.json"),
		},
		Console: ConsoleConfig{
			BaseURL:    getEnv("CONSOLE_BASE_URL", "https://console.humanitix.com"),
			TokenURL:   getEnv("TOKEN_URL", "https://securetoken.googleapis.com/v1/token"),
			Timeout:    time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
			UploadKind: getEnv("UPLOAD_KIND", "access"),
		},
		Ledger: LedgerConfig{
			Backend:   getEnv("LEDGER_BACKEND", "sqlite"),
			Path:      getEnv("LEDGER_PATH", "state.json"),
			DSN:       getEnv("LEDGER_DSN", "file:ledger.db"),
			RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
			Policy:    getEnv("LEDGER_POLICY", "fingerprint"),
		},
		Kafka: KafkaConfig{
			Enabled:  getEnvBool("KAFKA_ENABLED", false),
			MockMode: getEnvBool("KAFKA_MOCK_MODE", false),
			Brokers:  strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:    getEnv("KAFKA_TOPIC", "rollout-events"),
		},
		QR: QRConfig{
			OutputDir: getEnv("QR_OUTPUT_DIR", ""),
			Size:      getEnvInt("QR_SIZE", 256),
		},
		Server: ServerConfig{
			Port:         getEnv("PORT", ":8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
