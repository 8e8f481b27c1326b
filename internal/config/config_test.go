package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/paramspec/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), c)
}

func TestLoad_File(t *testing.T) {
	path := testutils.WriteFile(t, "paramspec.yaml", `
server:
  port: 9090
  shutdown_timeout: 10s
log:
  level: debug
  format: json
journal:
  backend: redis
  ttl: 30m
  redis:
    addr: redis:6379
    db: 2
validation:
  scalar_allow_list: true
`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, 10*time.Second, c.Server.ShutdownTimeout)
	assert.Equal(t, int64(1<<20), c.Server.MaxBodyBytes)
	assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, c.Log)
	assert.Equal(t, "redis", c.Journal.Backend)
	assert.Equal(t, 30*time.Minute, c.Journal.TTL)
	assert.Equal(t, "redis:6379", c.Journal.Redis.Addr)
	assert.Equal(t, 2, c.Journal.Redis.DB)
	assert.Equal(t, "paramspec:failures:", c.Journal.Redis.Prefix)
	assert.True(t, c.Validation.ScalarAllowList)
	assert.False(t, c.Validation.StrictElementTypes)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := testutils.WriteFile(t, "paramspec.yaml", "server:\n  port: 9090\n")
	t.Setenv("PARAMSPEC_SERVER_PORT", "7070")
	t.Setenv("PARAMSPEC_TRACING_ENABLED", "true")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, c.Server.Port)
	assert.True(t, c.Tracing.Enabled)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"backend": "journal:\n  backend: postgres\n",
		"level":   "log:\n  level: loud\n",
		"format":  "log:\n  format: xml\n",
		"port":    "server:\n  port: 70000\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(testutils.WriteFile(t, "paramspec.yaml", content))
			assert.Error(t, err)
		})
	}
}
