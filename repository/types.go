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

package repository

import (
	"context"

	"github.com/tomoncle/tablerepo/record"
	"github.com/tomoncle/tablerepo/types"
	"github.com/uptrace/bun"
)

// CrudRepository defines the write operations and identity lookups for one
// table. Not-found is reported as the zero R (nil for pointer records) and a
// nil error.
type CrudRepository[R record.Record] interface {
	// Insert stamps empty createdAt/updatedAt, writes DBData and re-reads the
	// row by its generated identity. ok is false when the store returned no
	// identity or the row is not readable afterwards. A type that declares no
	// field besides id has nothing to write and fails with ErrNothingToInsert.
	Insert(ctx context.Context, rec R) (R, bool, error)

	// ByID returns the row with the given identity under filters.
	ByID(ctx context.Context, id any, filters *types.Filters) (R, bool, error)

	// OneByColumnValue returns the first row where column equals value.
	OneByColumnValue(ctx context.Context, value any, column string, filters *types.Filters) (R, bool, error)

	// Update stamps updatedAt, writes DBData where id = rec.ID() and re-reads
	// the row. ok is false when no row was affected.
	Update(ctx context.Context, rec R) (R, bool, error)

	// Delete soft deletes rows of soft-deleting types and hard deletes the
	// rest. It reports whether the row is no longer visible by default.
	Delete(ctx context.Context, id any) (bool, error)
}

// QueryRepository defines list, page and predicate reads.
type QueryRepository[R record.Record] interface {
	// Get returns every matching row in store order. Never nil.
	Get(ctx context.Context, filters *types.Filters) ([]R, error)

	// ForPage returns one page of matching rows. Out-of-range page and
	// perPage values are normalized, never rejected.
	ForPage(ctx context.Context, page int, perPage int, filters *types.Filters) (*types.Page[R], error)

	// Page is ForPage driven by a PageRequest.
	Page(ctx context.Context, request *types.PageRequest) (*types.Page[R], error)

	// Exists reports whether any row, deleted or not, has column = value.
	Exists(ctx context.Context, column string, value any) (bool, error)

	// IsUnique reports whether no row has column = value, ignoring rows where
	// exceptColumn = except. An empty exceptColumn disables the exception.
	IsUnique(ctx context.Context, column string, value any, exceptColumn string, except any) (bool, error)
}

// Repository combines CRUD and query operations and exposes the bound table,
// record type and a Bun select builder for advanced use cases.
type Repository[R record.Record] interface {
	CrudRepository[R]
	QueryRepository[R]
	Table() string
	Type() *record.Type[R]
	NewSelect() *bun.SelectQuery
}
