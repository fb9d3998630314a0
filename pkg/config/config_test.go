package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const validConfig = `
environment: test
server:
  port: 8080
  read_timeout: 10s
  write_timeout: 10s
  shutdown_timeout: 5s
logging:
  level: info
  format: json
  output: stdout
risk:
  model_path: ./models/fraud.json
forecast:
  seasonal_service_url: http://localhost:5000
  timeout: 3s
  cache_ttl: 5m
cache:
  backend: memory
`

func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "./models/fraud.json", cfg.Risk.ModelPath)
	assert.Equal(t, "http://localhost:5000", cfg.Forecast.SeasonalServiceURL)
	assert.Equal(t, 5*time.Minute, cfg.Forecast.CacheTTL)
	assert.Equal(t, "memory", cfg.Cache.Backend)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateMissingEnvironment(t *testing.T) {
	_, err := Load(writeConfig(t, "server:\n  port: 8080\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "environment is required")
}

func TestValidateBadCacheBackend(t *testing.T) {
	_, err := Load(writeConfig(t, "environment: test\ncache:\n  backend: memcached\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.backend")
}

func TestValidateRedisNeedsAddr(t *testing.T) {
	_, err := Load(writeConfig(t, "environment: test\ncache:\n  backend: redis\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.redis.addr")
}

func TestValidateKafkaNeedsBrokers(t *testing.T) {
	_, err := Load(writeConfig(t, "environment: test\nkafka:\n  enabled: true\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka.brokers")
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("SEASONAL_SERVICE_URL", "http://seasonal:9000")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("RISK_MODEL_PATH", "/opt/models/fraud.json")

	cfg, err := LoadWithEnv(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "http://seasonal:9000", cfg.Forecast.SeasonalServiceURL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "/opt/models/fraud.json", cfg.Risk.ModelPath)
}
