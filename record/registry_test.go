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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	reg := NewTypeRegistry()
	items := NewEntityType("name")
	reg.Register("items", items)
	reg.Register("articles", articles)

	got, ok := LookupIn[*Entity](reg, "items")
	require.True(t, ok)
	assert.Same(t, items, got)

	_, ok = LookupIn[*Entity](reg, "articles")
	assert.False(t, ok, "registered with another record type")

	_, ok = LookupIn[*Entity](reg, "missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"articles", "items"}, reg.Tables())
}

func TestDefaultRegistry(t *testing.T) {
	typ := NewEntityType("label")
	Register("registry_test_labels", typ)

	got, ok := Lookup[*Entity]("registry_test_labels")
	require.True(t, ok)
	assert.Same(t, typ, got)
	assert.Contains(t, RegisteredTables(), "registry_test_labels")
}
