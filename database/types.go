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
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"
)

// AbstractDatabaseManager defines the operations for managing a database
// connection and reporting its health.
type AbstractDatabaseManager interface {
	Connect(ctx context.Context) error
	Disconnect() error
	Reconnect(ctx context.Context) error
	Ping(ctx context.Context) error
	HealthCheck(ctx context.Context) *HealthStatus
	GetDB() *bun.DB
	GetSQLDB() *sql.DB
	GetStats() *DBStats
	SetLogger(logger Logger)
}

// HealthStatus holds the result of a health check against the database.
type HealthStatus struct {
	Healthy       bool          `json:"healthy"`
	Connected     bool          `json:"connected"`
	ResponseTime  time.Duration `json:"response_time"`
	ActiveConns   int           `json:"active_conns"`
	IdleConns     int           `json:"idle_conns"`
	MaxOpenConns  int           `json:"max_open_conns"`
	LastError     string        `json:"last_error,omitempty"`
	LastCheckTime time.Time     `json:"last_check_time"`
}

// DBStats mirrors database/sql stats returned by the manager.
type DBStats struct {
	MaxOpenConns      int           `json:"max_open_conns"`
	OpenConns         int           `json:"open_conns"`
	InUse             int           `json:"in_use"`
	Idle              int           `json:"idle"`
	WaitCount         int64         `json:"wait_count"`
	WaitDuration      time.Duration `json:"wait_duration"`
	MaxIdleClosed     int64         `json:"max_idle_closed"`
	MaxIdleTimeClosed int64         `json:"max_idle_time_closed"`
	MaxLifetimeClosed int64         `json:"max_lifetime_closed"`
}

// ConnectionConfig describes how to connect to a database and tune its pool.
// Fields tagged with env are overridden by the matching DB_* variables when
// the factory builds a manager.
type ConnectionConfig struct {
	Type                string        `json:"type" yaml:"type" koanf:"type" validate:"required,oneof=mysql postgres postgresql sqlite sqlite3"`
	Driver              string        `json:"driver" yaml:"driver" koanf:"driver" validate:"omitempty,oneof=pq pgx"` // postgres only
	Host                string        `json:"host" yaml:"host" koanf:"host" env:"DB_HOST"`
	Port                int           `json:"port" yaml:"port" koanf:"port" env:"DB_PORT" validate:"gte=0,lte=65535"`
	Username            string        `json:"username" yaml:"username" koanf:"username" env:"DB_USERNAME"`
	Password            string        `json:"password" yaml:"password" koanf:"password" env:"DB_PASSWORD"`
	DBName              string        `json:"dbname" yaml:"dbname" koanf:"dbname" env:"DB_NAME"`
	SSLMode             string        `json:"sslmode" yaml:"sslmode" koanf:"sslmode" env:"DB_SSLMODE"`
	Charset             string        `json:"charset" yaml:"charset" koanf:"charset"` // MySQL only, utf8mb4 when empty
	MaxIdleConns        int           `json:"max_idle_conns" yaml:"max_idle_conns" koanf:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" validate:"gte=0"`
	MaxOpenConns        int           `json:"max_open_conns" yaml:"max_open_conns" koanf:"max_open_conns" env:"DB_MAX_OPEN_CONNS" validate:"gte=0"`
	ConnMaxLifetime     time.Duration `json:"conn_max_lifetime" yaml:"conn_max_lifetime" koanf:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	ConnMaxIdleTime     time.Duration `json:"conn_max_idle_time" yaml:"conn_max_idle_time" koanf:"conn_max_idle_time"`
	ConnectTimeout      time.Duration `json:"connect_timeout" yaml:"connect_timeout" koanf:"connect_timeout"`
	ReadTimeout         time.Duration `json:"read_timeout" yaml:"read_timeout" koanf:"read_timeout"`
	WriteTimeout        time.Duration `json:"write_timeout" yaml:"write_timeout" koanf:"write_timeout"`
	EnableReconnect     bool          `json:"enable_reconnect" yaml:"enable_reconnect" koanf:"enable_reconnect" env:"DB_ENABLE_RECONNECT"`
	ReconnectInterval   time.Duration `json:"reconnect_interval" yaml:"reconnect_interval" koanf:"reconnect_interval" env:"DB_RECONNECT_INTERVAL"`
	MaxReconnectTries   int           `json:"max_reconnect_tries" yaml:"max_reconnect_tries" koanf:"max_reconnect_tries" validate:"gte=0"`
	HealthCheckInterval time.Duration `json:"health_check_interval" yaml:"health_check_interval" koanf:"health_check_interval"`
	EnableQueryLog      bool          `json:"enable_query_log" yaml:"enable_query_log" koanf:"enable_query_log" env:"DB_ENABLE_QUERY_LOG"`
	SlowQueryTime       time.Duration `json:"slow_query_time" yaml:"slow_query_time" koanf:"slow_query_time"`
	EnableMetrics       bool          `json:"enable_metrics" yaml:"enable_metrics" koanf:"enable_metrics" env:"DB_ENABLE_METRICS"`
	EnableTracing       bool          `json:"enable_tracing" yaml:"enable_tracing" koanf:"enable_tracing" env:"DB_ENABLE_TRACING"`
}

// LogConfig selects the level and format of the DATABASE logger.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" koanf:"level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	Format string `json:"format" yaml:"format" koanf:"format" validate:"omitempty,oneof=text json"`
}

// Config aggregates connection and logging settings.
type Config struct {
	Connection ConnectionConfig `json:"connection" yaml:"connection" koanf:"connection"`
	Log        LogConfig        `json:"log" yaml:"log" koanf:"log"`
}

// DefaultConnectionConfig returns a connection config with sensible defaults.
func DefaultConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		MaxIdleConns:        10,
		MaxOpenConns:        100,
		ConnMaxLifetime:     time.Hour,
		ConnMaxIdleTime:     time.Minute * 30,
		ConnectTimeout:      time.Second * 10,
		ReadTimeout:         time.Second * 30,
		WriteTimeout:        time.Second * 30,
		EnableReconnect:     true,
		ReconnectInterval:   time.Second * 5,
		MaxReconnectTries:   3,
		HealthCheckInterval: time.Minute * 5,
		EnableQueryLog:      false,
		SlowQueryTime:       time.Second * 2,
	}
}

// DefaultConfig returns a Config holding DefaultConnectionConfig and info
// level text logging.
func DefaultConfig() *Config {
	return &Config{
		Connection: *DefaultConnectionConfig(),
		Log:        LogConfig{Level: "info", Format: "text"},
	}
}
