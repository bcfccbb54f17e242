package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[server]
http_port = 8090

[database]
host = "db"
user = "slots"
password = "from-file"
dbname = "quickcourt"

[venue_service]
url = "http://venue:8080"

[slots]
retention_days = 14
auto_migrate = true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 14, cfg.Slots.RetentionDays)
	assert.True(t, cfg.Slots.AutoMigrate)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Empty(t, cfg.NATS.URL)
	assert.Equal(t, "host=db port=5432 user=slots password=from-file dbname=quickcourt sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("QC_DB_PASSWORD", "from-env")
	t.Setenv("QC_DB_PORT", "6432")
	t.Setenv("QC_NATS_URL", "nats://nats:4222")

	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 6432, cfg.Database.Port)
	assert.Equal(t, "nats://nats:4222", cfg.NATS.URL)

	t.Setenv("QC_DB_PORT", "postgres")
	_, err = Load(writeConfig(t, testConfig))
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, ErrReadConfig)

	_, err = Load(writeConfig(t, "[server]\nhttp_port = \"abc\"\n"))
	require.ErrorIs(t, err, ErrReadConfig)

	_, err = Load(writeConfig(t, "[database]\nhost = \"db\"\ndbname = \"q\"\n"))
	require.ErrorIs(t, err, ErrInvalidConfig)
}
