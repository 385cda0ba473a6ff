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

package record

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/tomoncle/tablerepo/types"
)

// Record is a persistable domain object with a declared field set.
// Implementations embed Base; the unexported method keeps it that way.
type Record interface {
	Schema() *Schema
	Has(field string) bool
	Get(field string) any
	Set(field string, value any) bool
	ID() any
	DBData() Row
	base() *Base
}

// Base stores the field values of a record. Embed it in domain types and
// create instances through a Type so the schema is bound.
type Base struct {
	schema *Schema
	values Row
}

var _ Record = (*Base)(nil)

func (b *Base) base() *Base { return b }

func (b *Base) bind(schema *Schema, row Row, withID bool) {
	b.schema = schema
	b.values = make(Row, len(schema.fields))
	for _, f := range schema.fields {
		if f == FieldID && !withID {
			continue
		}
		if v, ok := row[f]; ok {
			b.values[f] = v
		}
	}
}

// Schema returns the bound schema, nil for an unbound Base.
func (b *Base) Schema() *Schema { return b.schema }

// Has reports whether the record type declares field, regardless of its value.
func (b *Base) Has(field string) bool { return b.schema.Has(field) }

// Get returns the value of field, nil when unset or undeclared.
func (b *Base) Get(field string) any { return b.values[field] }

// Set assigns a declared field and reports whether it was declared.
func (b *Base) Set(field string, value any) bool {
	if !b.Has(field) {
		return false
	}
	if b.values == nil {
		b.values = make(Row)
	}
	b.values[field] = value
	return true
}

// ID returns the identity value, nil for an unpersisted record.
func (b *Base) ID() any { return b.values[FieldID] }

// DBData returns every declared field except id. Unset fields map to nil.
func (b *Base) DBData() Row {
	fields := b.schema.Writable()
	out := make(Row, len(fields))
	for _, f := range fields {
		out[f] = b.values[f]
	}
	return out
}

// Values returns every declared field including id.
func (b *Base) Values() Row {
	fields := b.schema.Fields()
	out := make(Row, len(fields))
	for _, f := range fields {
		out[f] = b.values[f]
	}
	return out
}

// IsEmpty reports whether field holds no meaningful value.
func (b *Base) IsEmpty(field string) bool { return IsEmpty(b.values[field]) }

// String returns field rendered as text.
func (b *Base) String(field string) string {
	switch v := b.values[field].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return types.FormatTimestamp(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Int64 returns field as an integer, 0 when unset or not numeric. Unsigned
// values above math.MaxInt64 saturate.
func (b *Base) Int64(field string) int64 {
	switch v := b.values[field].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		if v > math.MaxInt64 {
			return math.MaxInt64
		}
		return int64(v)
	case uint:
		if uint64(v) > math.MaxInt64 {
			return math.MaxInt64
		}
		return int64(v)
	case float64:
		return int64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	case []byte:
		n, _ := strconv.ParseInt(string(v), 10, 64)
		return n
	default:
		return 0
	}
}

// Bool returns field as a boolean; numeric columns are true when non-zero.
func (b *Base) Bool(field string) bool {
	if v, ok := b.values[field].(bool); ok {
		return v
	}
	return b.Int64(field) != 0
}

// Time parses field as a timestamp.
func (b *Base) Time(field string) (time.Time, bool) {
	var ts types.Timestamp
	if err := ts.Scan(b.values[field]); err != nil || !ts.Valid {
		return time.Time{}, false
	}
	return ts.Time, true
}

// MarshalJSON encodes the declared fields in declaration order.
func (b *Base) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range b.schema.Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(b.values[f])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// IsEmpty reports whether v is nil, an empty string or byte slice, a zero
// time or a null Timestamp.
func IsEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []byte:
		return len(x) == 0
	case time.Time:
		return x.IsZero()
	case types.Timestamp:
		return !x.Valid
	default:
		return false
	}
}

// Type describes a record type: its schema and how to build an instance.
// Capability questions (Has, UsesSoftDelete) are answered here without an
// instance.
type Type[R Record] struct {
	schema *Schema
	newFn  func() R
}

// NewType declares a record type. newFn must return a fresh, non-nil record.
func NewType[R Record](newFn func() R, fields ...string) *Type[R] {
	return &Type[R]{schema: NewSchema(fields...), newFn: newFn}
}

func (t *Type[R]) Schema() *Schema {
	if t == nil {
		return nil
	}
	return t.schema
}

// UsesSoftDelete reports whether the type declares deletedAt.
func (t *Type[R]) UsesSoftDelete() bool { return t.Schema().UsesSoftDelete() }

// Has reports whether the type declares field.
func (t *Type[R]) Has(field string) bool { return t.Schema().Has(field) }

// New creates an unpersisted record from values. Undeclared keys and id are
// ignored.
func (t *Type[R]) New(values Row) R {
	r := t.newFn()
	r.base().bind(t.schema, values, false)
	return r
}

// Make hydrates a record from a raw row, keeping its id.
func (t *Type[R]) Make(row Row) R {
	r := t.newFn()
	r.base().bind(t.schema, row, true)
	return r
}

// MakeAll hydrates rows in order. The result is never nil.
func (t *Type[R]) MakeAll(rows []Row) []R {
	out := make([]R, 0, len(rows))
	for _, row := range rows {
		out = append(out, t.Make(row))
	}
	return out
}

// Entity is a schema-only record for tables that need no typed accessors.
type Entity struct {
	Base
}

// NewEntityType declares an Entity-backed record type.
func NewEntityType(fields ...string) *Type[*Entity] {
	return NewType(func() *Entity { return &Entity{} }, fields...)
}
