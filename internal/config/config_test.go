package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
[server]
http_port = 9090

[database]
host = "db"
user = "salon"
password = "secret"
dbname = "salon"

[cache]
driver = "redis"
ttl = 60

[events]
driver = "webhook"
webhook_url = "http://finance.local/hooks"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileDefaultsAndEnv(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,https://app.salon.com.br")

	cfg, err := Load(writeConfig(t, sampleTOML))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, CacheDriverRedis, cfg.Cache.Driver)
	assert.Equal(t, 60, int(cfg.Cache.TTLDuration().Seconds()))
	assert.Equal(t, EventsDriverWebhook, cfg.Events.Driver)
	assert.Equal(t, "America/Sao_Paulo", cfg.App.Timezone)
	assert.Equal(t, []string{"http://localhost:5173", "https://app.salon.com.br"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "host=db port=5432 user=salon password=from-env dbname=salon sslmode=disable", cfg.Database.DSN())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, CacheDriverMemory, cfg.Cache.Driver)
	assert.Equal(t, EventsDriverNone, cfg.Events.Driver)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown cache driver", content: "[cache]\ndriver = \"memcached\"\n"},
		{name: "rabbitmq without url", content: "[events]\ndriver = \"rabbitmq\"\n"},
		{name: "auth without secret", content: "[auth]\nenabled = true\n"},
		{name: "bad timezone", content: "[app]\ntimezone = \"Mars/Olympus\"\n"},
		{name: "port out of range", content: "[server]\nhttp_port = 70000\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "[server\nhttp_port = "))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}
