// Package database manages the *bun.DB that repositories run against:
// configuration loading, connection and pool management for MySQL,
// PostgreSQL and SQLite, health checks, error classification, and the query
// hooks used for logging, metrics and tracing.
package database
