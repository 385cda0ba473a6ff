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
	"errors"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/uptrace/bun"
)

// QueryLogEnv overrides QueryHook at runtime: "0" disables it, "1" logs
// failed queries and "2" logs every query.
const QueryLogEnv = "TABLEREPO_QUERY_LOG"

var querySilent atomic.Bool

// SetQueryLogSilent mutes QueryHook and SlowQueryHook process-wide.
func SetQueryLogSilent(b bool) {
	querySilent.Store(b)
}

var operationColors = map[string]*color.Color{
	"SELECT": color.New(color.FgGreen),
	"INSERT": color.New(color.FgBlue),
	"UPDATE": color.New(color.FgYellow),
	"DELETE": color.New(color.FgMagenta),
}

func colorQuery(event *bun.QueryEvent) string {
	c, ok := operationColors[event.Operation()]
	if !ok {
		c = color.New(color.FgRed)
	}
	return c.Sprint(event.Query)
}

func isBenignQueryError(err error) bool {
	return err == nil || errors.Is(err, sql.ErrNoRows) || errors.Is(err, sql.ErrTxDone)
}

// QueryHook logs executed queries through a Logger. Failed queries are logged
// at error level; successful ones at debug level when verbose.
type QueryHook struct {
	logger  Logger
	verbose bool
	envName string
}

var _ bun.QueryHook = (*QueryHook)(nil)

// NewQueryHook returns a QueryHook writing to logger, or the package logger
// when nil.
func NewQueryHook(logger Logger, verbose bool) *QueryHook {
	if logger == nil {
		logger = GetLogger()
	}
	return &QueryHook{logger: logger, verbose: verbose, envName: QueryLogEnv}
}

func (h *QueryHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *QueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	if querySilent.Load() {
		return
	}
	enabled, verbose := true, h.verbose
	if env, ok := os.LookupEnv(h.envName); ok {
		env = strings.TrimSpace(env)
		enabled = env != "" && env != "0"
		verbose = env == "2"
	}
	if !enabled {
		return
	}

	dur := time.Since(event.StartTime).Round(time.Microsecond)
	if !isBenignQueryError(event.Err) {
		h.logger.Error("[BUN] "+colorQuery(event), "duration", dur, "error", event.Err)
		return
	}
	if verbose {
		h.logger.Debug("[BUN] "+colorQuery(event), "duration", dur)
	}
}

// SlowQueryHook warns about successful queries slower than threshold.
type SlowQueryHook struct {
	threshold time.Duration
	logger    Logger
}

var _ bun.QueryHook = (*SlowQueryHook)(nil)

func NewSlowQueryHook(threshold time.Duration, logger Logger) *SlowQueryHook {
	if logger == nil {
		logger = GetLogger()
	}
	return &SlowQueryHook{threshold: threshold, logger: logger}
}

func (h *SlowQueryHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *SlowQueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	if querySilent.Load() || event.Err != nil || h.threshold <= 0 {
		return
	}
	duration := time.Since(event.StartTime)
	if duration > h.threshold {
		h.logger.Warn("[BUN_SLOW] "+color.New(color.BgYellow).Sprint(event.Query),
			"duration", duration.Round(time.Microsecond),
			"slow_threshold", h.threshold,
		)
	}
}
