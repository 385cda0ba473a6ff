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
	"errors"
	"fmt"

	"github.com/tomoncle/tablerepo/record"
	"github.com/tomoncle/tablerepo/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/feature"
)

// ErrNothingToInsert is returned by Insert for records whose type declares no
// writable field.
var ErrNothingToInsert = errors.New("record has no writable fields")

type baseRepositoryImpl[R record.Record] struct {
	db    bun.IDB
	table string
	typ   *record.Type[R]
	opts  *options
}

// NewRepository returns a repository over table whose rows hydrate into typ.
// db may be a *bun.DB, a *bun.Conn or a bun.Tx.
func NewRepository[R record.Record](db bun.IDB, table string, typ *record.Type[R], opts ...Option) Repository[R] {
	return &baseRepositoryImpl[R]{
		db:    db,
		table: table,
		typ:   typ,
		opts:  newOptions(opts...),
	}
}

func (r *baseRepositoryImpl[R]) Table() string { return r.table }

func (r *baseRepositoryImpl[R]) Type() *record.Type[R] { return r.typ }

// NewSelect returns a select builder bound to the table, without any
// soft-delete policy applied.
func (r *baseRepositoryImpl[R]) NewSelect() *bun.SelectQuery {
	return r.db.NewSelect().TableExpr("?", bun.Ident(r.table))
}

func (r *baseRepositoryImpl[R]) Insert(ctx context.Context, rec R) (R, bool, error) {
	var zero R
	now := types.FormatTimestamp(r.opts.now())
	for _, field := range []string{record.FieldCreatedAt, record.FieldUpdatedAt} {
		if rec.Has(field) && record.IsEmpty(rec.Get(field)) {
			rec.Set(field, now)
		}
	}

	data := map[string]interface{}(rec.DBData())
	if len(data) == 0 {
		return zero, false, fmt.Errorf("%w: %s", ErrNothingToInsert, r.table)
	}
	query := r.db.NewInsert().Model(&data).TableExpr("?", bun.Ident(r.table))

	var id any
	if r.db.Dialect().Features().Has(feature.InsertReturning) {
		var returned []map[string]interface{}
		if err := query.Returning("?", bun.Ident(record.FieldID)).Scan(ctx, &returned); err != nil {
			return zero, false, err
		}
		if len(returned) > 0 {
			id = normalizeValue(returned[0][record.FieldID])
		}
	} else {
		res, err := query.Exec(ctx)
		if err != nil {
			return zero, false, err
		}
		if lastID, err := res.LastInsertId(); err == nil && lastID != 0 {
			id = lastID
		}
	}

	if id == nil {
		r.opts.logger.Debug("insert returned no identity", "table", r.table)
		return zero, false, nil
	}
	return r.ByID(ctx, id, nil)
}

func (r *baseRepositoryImpl[R]) Get(ctx context.Context, filters *types.Filters) ([]R, error) {
	query, err := r.baseQuery(filters)
	if err != nil {
		return nil, err
	}
	var rows []map[string]interface{}
	if err := query.Scan(ctx, &rows); err != nil {
		return nil, err
	}
	return r.resultIntoEntities(rows), nil
}

func (r *baseRepositoryImpl[R]) ForPage(ctx context.Context, page int, perPage int, filters *types.Filters) (*types.Page[R], error) {
	return r.Page(ctx, types.NewPageRequest(page, perPage, filters))
}

func (r *baseRepositoryImpl[R]) Page(ctx context.Context, request *types.PageRequest) (*types.Page[R], error) {
	if request == nil {
		request = types.NewPageRequest(types.DefaultPage, types.DefaultPerPage, nil)
	}
	if request.Normalized() {
		r.opts.logger.Debug("pagination normalized", "table", r.table,
			"page", request.GetPage(), "perPage", request.GetPerPage())
	}
	query, err := r.baseQuery(request.GetFilters())
	if err != nil {
		return nil, err
	}
	total, err := query.Count(ctx)
	if err != nil {
		return nil, err
	}
	// past the last page there is nothing to fetch
	if request.GetPage() > types.PageCount(total, request.GetPerPage()) {
		return types.NewPage[R](total, request.GetPage(), request.GetPerPage(), nil), nil
	}
	var rows []map[string]interface{}
	err = query.
		Offset(request.GetOffset()).
		Limit(request.GetPerPage()).
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return types.NewPage(total, request.GetPage(), request.GetPerPage(), r.resultIntoEntities(rows)), nil
}

func (r *baseRepositoryImpl[R]) ByID(ctx context.Context, id any, filters *types.Filters) (R, bool, error) {
	return r.OneByColumnValue(ctx, id, record.FieldID, filters)
}

func (r *baseRepositoryImpl[R]) OneByColumnValue(ctx context.Context, value any, column string, filters *types.Filters) (R, bool, error) {
	var zero R
	query, err := r.baseQuery(filters)
	if err != nil {
		return zero, false, err
	}
	var rows []map[string]interface{}
	err = query.
		Where("? = ?", bun.Ident(column), value).
		Limit(1).
		Scan(ctx, &rows)
	if err != nil {
		return zero, false, err
	}
	return r.resultIntoEntity(rows)
}

func (r *baseRepositoryImpl[R]) Update(ctx context.Context, rec R) (R, bool, error) {
	var zero R
	id := rec.ID()
	if id == nil {
		r.opts.logger.Debug("update skipped for record without identity", "table", r.table)
		return zero, false, nil
	}
	if rec.Has(record.FieldUpdatedAt) {
		rec.Set(record.FieldUpdatedAt, types.FormatTimestamp(r.opts.now()))
	}

	data := map[string]interface{}(rec.DBData())
	res, err := r.db.NewUpdate().
		Model(&data).
		TableExpr("?", bun.Ident(r.table)).
		Where("? = ?", bun.Ident(record.FieldID), id).
		Exec(ctx)
	if err != nil {
		return zero, false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return zero, false, err
	}
	if affected == 0 {
		return zero, false, nil
	}
	return r.ByID(ctx, id, nil)
}

func (r *baseRepositoryImpl[R]) Delete(ctx context.Context, id any) (bool, error) {
	if r.typ.UsesSoftDelete() {
		r.opts.logger.Debug("soft delete", "table", r.table, "id", id)
		data := map[string]interface{}{record.FieldDeletedAt: types.FormatTimestamp(r.opts.now())}
		_, err := r.db.NewUpdate().
			Model(&data).
			TableExpr("?", bun.Ident(r.table)).
			Where("? = ?", bun.Ident(record.FieldID), id).
			Exec(ctx)
		if err != nil {
			return false, err
		}
	} else {
		r.opts.logger.Debug("hard delete", "table", r.table, "id", id)
		_, err := r.db.NewDelete().
			TableExpr("?", bun.Ident(r.table)).
			Where("? = ?", bun.Ident(record.FieldID), id).
			Exec(ctx)
		if err != nil {
			return false, err
		}
	}
	_, found, err := r.ByID(ctx, id, nil)
	if err != nil {
		return false, err
	}
	return !found, nil
}

func (r *baseRepositoryImpl[R]) Exists(ctx context.Context, column string, value any) (bool, error) {
	return r.NewSelect().
		Where("? = ?", bun.Ident(column), value).
		Exists(ctx)
}

func (r *baseRepositoryImpl[R]) IsUnique(ctx context.Context, column string, value any, exceptColumn string, except any) (bool, error) {
	query := r.NewSelect().Where("? = ?", bun.Ident(column), value)
	if exceptColumn != "" {
		query = query.Where("? != ?", bun.Ident(exceptColumn), except)
	}
	count, err := query.Count(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// baseQuery applies ordering, the identity set, raw predicates and the
// soft-delete policy. Invalid directions fail before any round trip.
func (r *baseRepositoryImpl[R]) baseQuery(filters *types.Filters) (*bun.SelectQuery, error) {
	if filters == nil {
		filters = &types.Filters{}
	}
	query := r.NewSelect().ColumnExpr("*")

	for _, term := range filters.OrderBy {
		if !term.Direction.IsValid() {
			return nil, fmt.Errorf("%w: column %q", types.ErrInvalidDirection, term.Column)
		}
		query = query.OrderExpr("? "+term.Direction.String(), bun.Ident(term.Column))
	}

	if filters.IDs != nil {
		if len(filters.IDs) == 0 {
			query = query.Where("1 = 0")
		} else {
			query = query.Where("? IN (?)", bun.Ident(record.FieldID), bun.In(filters.IDs))
		}
	}

	for _, where := range filters.Where {
		if where != nil && where.Schema != "" {
			query = query.Where(where.Schema, where.Args...)
		}
	}

	if r.typ.UsesSoftDelete() {
		switch {
		case filters.OnlyDeleted:
			query = query.Where("? IS NOT NULL", bun.Ident(record.FieldDeletedAt))
		case !filters.IncludeDeleted:
			query = query.Where("? IS NULL", bun.Ident(record.FieldDeletedAt))
		}
	}
	return query, nil
}

func (r *baseRepositoryImpl[R]) resultIntoEntity(rows []map[string]interface{}) (R, bool, error) {
	var zero R
	if r.typ == nil || len(rows) == 0 {
		return zero, false, nil
	}
	return r.typ.Make(toRow(rows[0])), true, nil
}

func (r *baseRepositoryImpl[R]) resultIntoEntities(rows []map[string]interface{}) []R {
	if r.typ == nil || len(rows) == 0 {
		return []R{}
	}
	converted := make([]record.Row, 0, len(rows))
	for _, row := range rows {
		converted = append(converted, toRow(row))
	}
	return r.typ.MakeAll(converted)
}

func toRow(raw map[string]interface{}) record.Row {
	row := make(record.Row, len(raw))
	for k, v := range raw {
		row[k] = normalizeValue(v)
	}
	return row
}

// normalizeValue turns driver byte slices into strings. MySQL hands back
// []byte for most column types.
func normalizeValue(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
