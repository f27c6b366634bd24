package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// セッションストアの種類
const (
	SessionStoreMemory    = "memory"
	SessionStoreFirestore = "firestore"
	SessionStorePostgres  = "postgres"
)

// Config はアプリケーション全体の設定
type Config struct {
	Port string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	GeminiRPS     float64
	GeminiBurst   int
	GeminiTimeout time.Duration // 0の場合はタイムアウトなし

	SessionStore          string
	FirestoreProjectID    string
	GoogleCredentialsFile string
	DatabaseURL           string
	SessionTTLHours       int
	SessionIdleTimeout    time.Duration

	DefaultLocation string
	MockLatency     bool
}

// Load は.envファイル（あれば）と環境変数から設定を読み込む
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("⚠️ .envファイルが見つかりません。システムの環境変数を使用します")
	}
	return FromEnv()
}

// FromEnv は環境変数だけから設定を組み立てる
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:                  getEnv("PORT", "8080"),
		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		GeminiModel:           getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL:         getEnv("GEMINI_BASE_URL", ""),
		SessionStore:          strings.ToLower(getEnv("SESSION_STORE", SessionStoreMemory)),
		FirestoreProjectID:    getEnv("FIRESTORE_PROJECT_ID", ""),
		GoogleCredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		DefaultLocation:       getEnv("DEFAULT_LOCATION", "New York"),
	}

	var err error
	if cfg.GeminiRPS, err = getFloat("GEMINI_RPS", 1); err != nil {
		return nil, err
	}
	if cfg.GeminiBurst, err = getInt("GEMINI_BURST", 2); err != nil {
		return nil, err
	}
	if cfg.GeminiTimeout, err = getDuration("GEMINI_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.SessionTTLHours, err = getInt("SESSION_TTL_HOURS", 24); err != nil {
		return nil, err
	}
	if cfg.SessionIdleTimeout, err = getDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.MockLatency, err = getBool("MOCK_LATENCY", true); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は設定の組み合わせを検証する
func (c *Config) Validate() error {
	switch c.SessionStore {
	case SessionStoreMemory:
	case SessionStoreFirestore:
		if c.FirestoreProjectID == "" {
			return fmt.Errorf("SESSION_STORE=firestore にはFIRESTORE_PROJECT_IDが必要です")
		}
	case SessionStorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("SESSION_STORE=postgres にはDATABASE_URLが必要です")
		}
	default:
		return fmt.Errorf("SESSION_STOREが不正です: %q (memory / firestore / postgres)", c.SessionStore)
	}
	if c.SessionTTLHours <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURSは正の整数で指定してください: %d", c.SessionTTLHours)
	}
	if c.GeminiTimeout < 0 {
		return fmt.Errorf("GEMINI_TIMEOUTは0以上で指定してください: %s", c.GeminiTimeout)
	}
	return nil
}

// SessionTTL はスナップショットの保持期間
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%sは整数で指定してください: %w", key, err)
	}
	return v, nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%sは数値で指定してください: %w", key, err)
	}
	return v, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%sはtrue/falseで指定してください: %w", key, err)
	}
	return v, nil
}

// getDuration は "90s" のような形式のほか、単位なしの数値を秒として扱う
func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%sは期間（例: 60s）で指定してください: %w", key, err)
	}
	return v, nil
}
