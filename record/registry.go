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
	"sort"
	"sync"
)

var defaultRegistry = newTypeRegistry()

// TypeRegistry maps table names to the record types stored in them.
type TypeRegistry interface {
	Register(table string, typ any)
	Lookup(table string) (any, bool)
	Tables() []string
}

type typeRegistry struct {
	types map[string]any
	mutex sync.RWMutex
}

func newTypeRegistry() TypeRegistry {
	return &typeRegistry{
		types: make(map[string]any),
	}
}

// NewTypeRegistry returns an empty registry, independent of the default one.
func NewTypeRegistry() TypeRegistry {
	return newTypeRegistry()
}

func (r *typeRegistry) Register(table string, typ any) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.types[table] = typ
}

func (r *typeRegistry) Lookup(table string) (any, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	typ, ok := r.types[table]
	return typ, ok
}

func (r *typeRegistry) Tables() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]string, 0, len(r.types))
	for table := range r.types {
		result = append(result, table)
	}
	sort.Strings(result)
	return result
}

// Register binds a record type to a table in the default registry. A later
// registration for the same table replaces the earlier one.
func Register[R Record](table string, typ *Type[R]) {
	defaultRegistry.Register(table, typ)
}

// Lookup returns the record type registered for table. ok is false when the
// table is unknown or registered with a different record type.
func Lookup[R Record](table string) (typ *Type[R], ok bool) {
	return LookupIn[R](defaultRegistry, table)
}

// LookupIn is Lookup against a specific registry.
func LookupIn[R Record](registry TypeRegistry, table string) (*Type[R], bool) {
	v, ok := registry.Lookup(table)
	if !ok {
		return nil, false
	}
	typ, ok := v.(*Type[R])
	return typ, ok
}

// RegisteredTables lists the tables of the default registry in sorted order.
func RegisteredTables() []string {
	return defaultRegistry.Tables()
}
