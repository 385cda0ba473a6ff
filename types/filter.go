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

package types

// QueryFilter describes a WHERE clause schema and its argument values.
type QueryFilter struct {
	Schema string
	Args   []interface{}
}

// NewQueryFilter creates a new query filter with schema and args.
func NewQueryFilter(schema string, args ...interface{}) *QueryFilter {
	return &QueryFilter{schema, args}
}

// OrderBy is a single column -> direction ordering term.
type OrderBy struct {
	Column    string
	Direction Direction
}

// OrderAsc orders by column ascending.
func OrderAsc(column string) OrderBy {
	return OrderBy{Column: column, Direction: DirectionAsc}
}

// OrderDesc orders by column descending.
func OrderDesc(column string) OrderBy {
	return OrderBy{Column: column, Direction: DirectionDesc}
}

// Filters controls ordering, identity restriction and deletion visibility of
// repository reads. The zero value (and a nil *Filters) applies no ordering,
// no identity restriction and hides soft-deleted rows.
//
// OnlyDeleted takes precedence over IncludeDeleted when both are set.
type Filters struct {
	// OrderBy terms are applied in slice order.
	OrderBy []OrderBy
	// IDs restricts results to the given identities. A nil slice means no
	// restriction; a non-nil empty slice matches nothing.
	IDs []any
	// IncludeDeleted also returns soft-deleted rows.
	IncludeDeleted bool
	// OnlyDeleted returns soft-deleted rows only.
	OnlyDeleted bool
	// Where holds extra raw predicates ANDed onto the query.
	Where []*QueryFilter
}

// NewFilters returns an empty filter set ready for chaining.
func NewFilters() *Filters {
	return &Filters{}
}

// OrderedBy appends ordering terms.
func (f *Filters) OrderedBy(terms ...OrderBy) *Filters {
	f.OrderBy = append(f.OrderBy, terms...)
	return f
}

// WithIDs restricts the identity set. Calling it with no ids matches nothing.
func (f *Filters) WithIDs(ids ...any) *Filters {
	if ids == nil {
		ids = []any{}
	}
	f.IDs = ids
	return f
}

// WithDeleted includes soft-deleted rows.
func (f *Filters) WithDeleted() *Filters {
	f.IncludeDeleted = true
	return f
}

// OnlyTrashed limits results to soft-deleted rows.
func (f *Filters) OnlyTrashed() *Filters {
	f.OnlyDeleted = true
	return f
}

// Matching ANDs a raw predicate onto the query.
func (f *Filters) Matching(schema string, args ...interface{}) *Filters {
	f.Where = append(f.Where, NewQueryFilter(schema, args...))
	return f
}
