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
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryHookLogsFailuresOnly(t *testing.T) {
	t.Setenv(QueryLogEnv, "1")
	logger := &recordingLogger{}
	db := newSQLiteDB(t, NewQueryHook(logger, true))
	ctx := context.Background()

	_, err := db.ExecContext(ctx, "SELECT 1")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "SELECT * FROM missing")
	require.Error(t, err)

	assert.Equal(t, []string{"error"}, logger.levels())
	assert.True(t, strings.Contains(logger.entries[0].msg, "missing"))
}

func TestQueryHookVerbose(t *testing.T) {
	t.Setenv(QueryLogEnv, "2")
	logger := &recordingLogger{}
	db := newSQLiteDB(t, NewQueryHook(logger, false))

	_, err := db.ExecContext(context.Background(), "SELECT 1")
	require.NoError(t, err)
	assert.Equal(t, []string{"debug"}, logger.levels())
}

func TestQueryHookDisabledByEnv(t *testing.T) {
	t.Setenv(QueryLogEnv, "0")
	logger := &recordingLogger{}
	db := newSQLiteDB(t, NewQueryHook(logger, true))

	_, _ = db.ExecContext(context.Background(), "SELECT * FROM missing")
	assert.Empty(t, logger.levels())
}

func TestQueryHookSilent(t *testing.T) {
	SetQueryLogSilent(true)
	t.Cleanup(func() { SetQueryLogSilent(false) })

	logger := &recordingLogger{}
	db := newSQLiteDB(t, NewQueryHook(logger, true), NewSlowQueryHook(time.Nanosecond, logger))
	_, _ = db.ExecContext(context.Background(), "SELECT * FROM missing")
	_, _ = db.ExecContext(context.Background(), "SELECT 1")
	assert.Empty(t, logger.levels())
}

func TestSlowQueryHook(t *testing.T) {
	logger := &recordingLogger{}
	db := newSQLiteDB(t, NewSlowQueryHook(time.Nanosecond, logger))

	_, err := db.ExecContext(context.Background(), "SELECT 1")
	require.NoError(t, err)
	require.Equal(t, []string{"warn"}, logger.levels())
	assert.Contains(t, logger.entries[0].fields, "slow_threshold")

	fast := &recordingLogger{}
	db = newSQLiteDB(t, NewSlowQueryHook(time.Hour, fast))
	_, err = db.ExecContext(context.Background(), "SELECT 1")
	require.NoError(t, err)
	assert.Empty(t, fast.levels())
}
