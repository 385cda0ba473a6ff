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
	"fmt"
	"sync"

	"github.com/tomoncle/tablerepo/database"
	"github.com/tomoncle/tablerepo/record"
	"github.com/tomoncle/tablerepo/repository"
	"github.com/tomoncle/tablerepo/types"
	"github.com/uptrace/bun"
)

// ErrTypeNotRegistered is returned by NewService when no record type of the
// requested kind is registered for the table.
var ErrTypeNotRegistered = errors.New("record type not registered")

type Service[R record.Record] interface {
	// Insert writes a new row and returns it as stored.
	Insert(ctx context.Context, rec R) (R, bool, error)

	// Get returns every row matching filters.
	Get(ctx context.Context, filters *types.Filters) ([]R, error)

	// ForPage returns one page of rows matching filters.
	ForPage(ctx context.Context, page, perPage int, filters *types.Filters) (*types.Page[R], error)

	// Page returns the page described by request.
	Page(ctx context.Context, request *types.PageRequest) (*types.Page[R], error)

	// ByID returns the row with the given identity.
	ByID(ctx context.Context, id any, filters *types.Filters) (R, bool, error)

	// OneByColumnValue returns the first row where column equals value.
	OneByColumnValue(ctx context.Context, value any, column string, filters *types.Filters) (R, bool, error)

	// Update writes rec over the row with the same identity.
	Update(ctx context.Context, rec R) (R, bool, error)

	// Delete removes, or soft deletes, the row with the given identity.
	Delete(ctx context.Context, id any) (bool, error)

	// Exists reports whether any row has column = value.
	Exists(ctx context.Context, column string, value any) (bool, error)

	// IsUnique reports whether value is unused in column apart from the
	// row(s) where exceptColumn = except.
	IsUnique(ctx context.Context, column string, value any, exceptColumn string, except any) (bool, error)

	// WithTx returns a repository for the same table running inside tx.
	WithTx(tx bun.Tx) repository.Repository[R]

	// SelectBuilder returns a Bun select query builder for the table.
	SelectBuilder() *bun.SelectQuery
}

type baseServiceImpl[R record.Record] struct {
	table string
	typ   *record.Type[R]
	opts  []repository.Option
	repo  repository.Repository[R]
	once  sync.Once
}

// NewService returns a Service for table using the record type registered
// for it with record.Register. The repository binds to the global database on
// first use.
func NewService[R record.Record](table string, opts ...repository.Option) (Service[R], error) {
	typ, ok := record.Lookup[R](table)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotRegistered, table)
	}
	return NewServiceWithType(table, typ, opts...), nil
}

// NewServiceWithType is NewService with an explicit record type.
func NewServiceWithType[R record.Record](table string, typ *record.Type[R], opts ...repository.Option) Service[R] {
	return &baseServiceImpl[R]{table: table, typ: typ, opts: opts}
}

func (s *baseServiceImpl[R]) baseRepo() repository.Repository[R] {
	s.once.Do(func() { s.repo = repository.NewRepository(database.GetDB(), s.table, s.typ, s.opts...) })
	return s.repo
}

func (s *baseServiceImpl[R]) Insert(ctx context.Context, rec R) (R, bool, error) {
	return s.baseRepo().Insert(ctx, rec)
}

func (s *baseServiceImpl[R]) Get(ctx context.Context, filters *types.Filters) ([]R, error) {
	return s.baseRepo().Get(ctx, filters)
}

func (s *baseServiceImpl[R]) ForPage(ctx context.Context, page, perPage int, filters *types.Filters) (*types.Page[R], error) {
	return s.baseRepo().ForPage(ctx, page, perPage, filters)
}

func (s *baseServiceImpl[R]) Page(ctx context.Context, request *types.PageRequest) (*types.Page[R], error) {
	return s.baseRepo().Page(ctx, request)
}

func (s *baseServiceImpl[R]) ByID(ctx context.Context, id any, filters *types.Filters) (R, bool, error) {
	return s.baseRepo().ByID(ctx, id, filters)
}

func (s *baseServiceImpl[R]) OneByColumnValue(ctx context.Context, value any, column string, filters *types.Filters) (R, bool, error) {
	return s.baseRepo().OneByColumnValue(ctx, value, column, filters)
}

func (s *baseServiceImpl[R]) Update(ctx context.Context, rec R) (R, bool, error) {
	return s.baseRepo().Update(ctx, rec)
}

func (s *baseServiceImpl[R]) Delete(ctx context.Context, id any) (bool, error) {
	return s.baseRepo().Delete(ctx, id)
}

func (s *baseServiceImpl[R]) Exists(ctx context.Context, column string, value any) (bool, error) {
	return s.baseRepo().Exists(ctx, column, value)
}

func (s *baseServiceImpl[R]) IsUnique(ctx context.Context, column string, value any, exceptColumn string, except any) (bool, error) {
	return s.baseRepo().IsUnique(ctx, column, value, exceptColumn, except)
}

func (s *baseServiceImpl[R]) WithTx(tx bun.Tx) repository.Repository[R] {
	return repository.NewRepository(&tx, s.table, s.typ, s.opts...)
}

func (s *baseServiceImpl[R]) SelectBuilder() *bun.SelectQuery {
	return s.baseRepo().NewSelect()
}
