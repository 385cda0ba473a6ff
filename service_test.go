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

package tablerepo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/tablerepo/database"
	"github.com/tomoncle/tablerepo/record"
	"github.com/tomoncle/tablerepo/types"
	"github.com/uptrace/bun"
)

const widgetsDDL = `CREATE TABLE widgets (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	createdAt TEXT,
	updatedAt TEXT,
	deletedAt TEXT
)`

func setupGlobalDB(t *testing.T) *bun.DB {
	t.Helper()
	cfg := database.DefaultConfig()
	cfg.Connection.Type = "sqlite"
	cfg.Connection.HealthCheckInterval = 0
	db, err := database.InitDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.CloseDB() })

	_, err = db.ExecContext(context.Background(), widgetsDDL)
	require.NoError(t, err)
	return db
}

func TestNewServiceRequiresRegisteredType(t *testing.T) {
	_, err := NewService[*record.Entity]("unknown_table")
	assert.True(t, errors.Is(err, ErrTypeNotRegistered))
	assert.ErrorContains(t, err, "unknown_table")
}

func TestServiceAgainstGlobalDB(t *testing.T) {
	setupGlobalDB(t)
	ctx := context.Background()
	record.Register("widgets", record.NewEntityType("name", "createdAt", "updatedAt", "deletedAt"))

	svc, err := NewService[*record.Entity]("widgets")
	require.NoError(t, err)
	typ, _ := record.Lookup[*record.Entity]("widgets")

	for _, name := range []string{"gear", "bolt", "nut"} {
		got, ok, err := svc.Insert(ctx, typ.New(record.Row{"name": name}))
		require.NoError(t, err)
		require.True(t, ok)
		assert.False(t, got.IsEmpty("createdAt"))
	}

	all, err := svc.Get(ctx, types.NewFilters().OrderedBy(types.OrderAsc("name")))
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "bolt", all[0].String("name"))

	page, err := svc.ForPage(ctx, 2, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total())
	assert.Equal(t, 1, page.Len())

	page, err = svc.Page(ctx, types.NewPageRequest(1, 10, nil))
	require.NoError(t, err)
	assert.Equal(t, 3, page.Len())

	bolt, ok, err := svc.OneByColumnValue(ctx, "bolt", "name", nil)
	require.NoError(t, err)
	require.True(t, ok)

	bolt.Set("name", "screw")
	updated, ok, err := svc.Update(ctx, bolt)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "screw", updated.String("name"))

	unique, err := svc.IsUnique(ctx, "name", "screw", "id", bolt.ID())
	require.NoError(t, err)
	assert.True(t, unique)

	deleted, err := svc.Delete(ctx, bolt.ID())
	require.NoError(t, err)
	assert.True(t, deleted)

	_, ok, err = svc.ByID(ctx, bolt.ID(), nil)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = svc.ByID(ctx, bolt.ID(), types.NewFilters().WithDeleted())
	require.NoError(t, err)
	assert.True(t, ok)

	exists, err := svc.Exists(ctx, "name", "screw")
	require.NoError(t, err)
	assert.True(t, exists)

	var n int
	require.NoError(t, svc.SelectBuilder().ColumnExpr("count(*)").Scan(ctx, &n))
	assert.Equal(t, 3, n)
}

func TestServiceWithTx(t *testing.T) {
	db := setupGlobalDB(t)
	ctx := context.Background()
	typ := record.NewEntityType("name", "createdAt", "updatedAt", "deletedAt")
	svc := NewServiceWithType("widgets", typ)

	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, ok, err := svc.WithTx(tx).Insert(ctx, typ.New(record.Row{"name": "rolled back"}))
		require.NoError(t, err)
		require.True(t, ok)
		return errors.New("abort")
	})
	require.Error(t, err)

	rows, err := svc.Get(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
