package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL", "GEMINI_RPS", "GEMINI_BURST", "GEMINI_TIMEOUT",
	"SESSION_STORE", "FIRESTORE_PROJECT_ID", "GOOGLE_APPLICATION_CREDENTIALS", "DATABASE_URL",
	"SESSION_TTL_HOURS", "SESSION_IDLE_TIMEOUT", "DEFAULT_LOCATION", "MOCK_LATENCY",
}

// clearEnv はテスト中だけ設定関連の環境変数を空にする
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, SessionStoreMemory, cfg.SessionStore)
	assert.Equal(t, "New York", cfg.DefaultLocation)
	assert.Equal(t, 60*time.Second, cfg.GeminiTimeout)
	assert.Equal(t, 24, cfg.SessionTTLHours)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL())
	assert.True(t, cfg.MockLatency)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_TIMEOUT", "0")
	t.Setenv("GEMINI_RPS", "0.5")
	t.Setenv("SESSION_STORE", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/weather?sslmode=disable")
	t.Setenv("MOCK_LATENCY", "false")
	t.Setenv("SESSION_IDLE_TIMEOUT", "5m")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, time.Duration(0), cfg.GeminiTimeout, "0はタイムアウトなし")
	assert.Equal(t, 0.5, cfg.GeminiRPS)
	assert.Equal(t, SessionStorePostgres, cfg.SessionStore)
	assert.False(t, cfg.MockLatency)
	assert.Equal(t, 5*time.Minute, cfg.SessionIdleTimeout)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{name: "不明なストア", env: map[string]string{"SESSION_STORE": "redis"}},
		{name: "firestoreにプロジェクトIDなし", env: map[string]string{"SESSION_STORE": "firestore"}},
		{name: "postgresにURLなし", env: map[string]string{"SESSION_STORE": "postgres"}},
		{name: "数値でないバースト", env: map[string]string{"GEMINI_BURST": "many"}},
		{name: "TTLが0", env: map[string]string{"SESSION_TTL_HOURS": "0"}},
		{name: "不正な期間", env: map[string]string{"GEMINI_TIMEOUT": "soon"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	// godotenvは既に設定済みの変数を上書きしないため、対象のキーは未設定にしておく
	require.NoError(t, os.Unsetenv("DEFAULT_LOCATION"))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DEFAULT_LOCATION=Tokyo\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Tokyo", cfg.DefaultLocation)
}
