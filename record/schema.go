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

// Reserved and lifecycle field names.
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
	FieldDeletedAt = "deletedAt"
)

// Row is one raw row keyed by column name.
type Row map[string]any

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Schema is the declared, ordered field set of a record type. The id field
// is always part of a schema and always comes first.
type Schema struct {
	fields []string
	index  map[string]int
}

// NewSchema declares the fields of a record type. Duplicates and empty names
// are dropped; id is added when missing.
func NewSchema(fields ...string) *Schema {
	s := &Schema{index: make(map[string]int, len(fields)+1)}
	s.add(FieldID)
	for _, f := range fields {
		s.add(f)
	}
	return s
}

func (s *Schema) add(field string) {
	if field == "" {
		return
	}
	if _, ok := s.index[field]; ok {
		return
	}
	s.index[field] = len(s.fields)
	s.fields = append(s.fields, field)
}

// Has reports whether field is declared.
func (s *Schema) Has(field string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[field]
	return ok
}

// Fields returns all declared fields in declaration order, id first.
func (s *Schema) Fields() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.fields))
	copy(out, s.fields)
	return out
}

// Writable returns the declared fields that belong in a write payload.
func (s *Schema) Writable() []string {
	if s == nil {
		return nil
	}
	return s.Fields()[1:]
}

// UsesSoftDelete reports whether the type declares deletedAt.
func (s *Schema) UsesSoftDelete() bool {
	return s.Has(FieldDeletedAt)
}
