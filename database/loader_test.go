/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
connection:
  type: sqlite
  dbname: ":memory:"
  password: secret
  max_open_conns: 5
  conn_max_lifetime: 90s
log:
  level: debug
  format: json
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(EnvPrefix+"CONNECTION__MAX_IDLE_CONNS", "3")

	cfg, err := LoadConfig(writeFile(t, "db.yaml", sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Connection.Type)
	assert.Equal(t, ":memory:", cfg.Connection.DBName)
	assert.Equal(t, 5, cfg.Connection.MaxOpenConns)
	assert.Equal(t, 3, cfg.Connection.MaxIdleConns)
	assert.Equal(t, 90*time.Second, cfg.Connection.ConnMaxLifetime)
	// untouched keys keep their defaults
	assert.Equal(t, 5*time.Second, cfg.Connection.ReconnectInterval)
	assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, cfg.Log)
}

func TestLoadConfigFromEnvOnly(t *testing.T) {
	t.Setenv(EnvPrefix+"CONNECTION__TYPE", "postgres")
	t.Setenv(EnvPrefix+"CONNECTION__DRIVER", "pgx")
	t.Setenv(EnvPrefix+"CONNECTION__PORT", "5433")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Connection.Type)
	assert.Equal(t, "pgx", cfg.Connection.Driver)
	assert.Equal(t, 5433, cfg.Connection.Port)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	// type is required
	_, err = LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "bad.yaml", "connection:\n  type: oracle\n"))
	assert.ErrorContains(t, err, "invalid database configuration")

	_, err = LoadConfig(writeFile(t, "bad.yaml", "connection:\n  type: sqlite\nlog:\n  format: xml\n"))
	assert.ErrorContains(t, err, "Format")
}

func TestExportRedactsPassword(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "db.yaml", sampleYAML))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "nested", "out.yaml")
	require.NoError(t, cfg.Export(out))
	assert.Equal(t, "secret", cfg.Connection.Password)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), redacted)
	assert.NotContains(t, string(data), "secret")

	reloaded, err := LoadConfig(out)
	require.NoError(t, err)
	assert.Equal(t, cfg.Connection.ConnMaxLifetime, reloaded.Connection.ConnMaxLifetime)
	assert.Equal(t, cfg.Connection.MaxOpenConns, reloaded.Connection.MaxOpenConns)
}
