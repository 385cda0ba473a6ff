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

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRequestNormalization(t *testing.T) {
	cases := []struct {
		name        string
		page        int
		perPage     int
		wantPage    int
		wantPerPage int
		wantOffset  int
	}{
		{"defaults kept", 1, 10, 1, 10, 0},
		{"page zero", 0, 10, 1, 10, 0},
		{"negative page", -4, 25, 1, 25, 0},
		{"per page zero", 3, 0, 3, 10, 20},
		{"per page negative", 2, -1, 2, 10, 10},
		{"per page above max", 2, 101, 2, 10, 10},
		{"per page at max", 2, 100, 2, 100, 100},
		{"per page one", 5, 1, 5, 1, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := NewPageRequest(tc.page, tc.perPage, nil)
			assert.Equal(t, tc.wantPage, req.GetPage())
			assert.Equal(t, tc.wantPerPage, req.GetPerPage())
			assert.Equal(t, tc.wantOffset, req.GetOffset())
		})
	}
}

func TestPageRequestNormalized(t *testing.T) {
	assert.False(t, NewPageRequest(1, 10, nil).Normalized())
	assert.True(t, NewPageRequest(0, 10, nil).Normalized())
	assert.True(t, NewPageRequest(1, 500, nil).Normalized())
}

func TestNewPageMath(t *testing.T) {
	cases := []struct {
		name      string
		total     int
		page      int
		perPage   int
		wantPages int
		wantPrev  int
		hasPrev   bool
		wantNext  int
		hasNext   bool
	}{
		{"empty", 0, 1, 10, 0, 0, false, 0, false},
		{"single partial page", 3, 1, 10, 1, 0, false, 0, false},
		{"exact multiple", 20, 1, 10, 2, 0, false, 2, true},
		{"last page", 21, 3, 10, 3, 2, true, 0, false},
		{"middle page", 50, 3, 10, 5, 2, true, 4, true},
		{"beyond last page", 5, 4, 2, 3, 3, true, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPage[string](tc.total, tc.page, tc.perPage, nil)
			assert.Equal(t, tc.total, p.Total())
			assert.Equal(t, tc.wantPages, p.Pages())
			assert.Equal(t, tc.page, p.CurrentPage())

			prev, ok := p.Previous()
			assert.Equal(t, tc.hasPrev, ok)
			assert.Equal(t, tc.wantPrev, prev)

			next, ok := p.Next()
			assert.Equal(t, tc.hasNext, ok)
			assert.Equal(t, tc.wantNext, next)
		})
	}
}

func TestPageCurrentPageIsNotClampedToPerPage(t *testing.T) {
	p := NewPage[int](100, 7, 2, nil)
	assert.Equal(t, 7, p.CurrentPage())
	assert.True(t, p.IsCurrent(7))
	assert.False(t, p.IsCurrent(2))
}

func TestPageIsReadOnly(t *testing.T) {
	items := []string{"a", "b"}
	p := NewPage(2, 1, 10, items)

	items[0] = "changed"
	got, ok := p.At(0)
	require.True(t, ok)
	assert.Equal(t, "a", got)

	copied := p.Items()
	copied[1] = "changed"
	got, _ = p.At(1)
	assert.Equal(t, "b", got)

	assert.ErrorIs(t, p.Set(0, "x"), ErrPageReadOnly)
	assert.ErrorIs(t, p.Delete(0), ErrPageReadOnly)
	assert.Equal(t, 2, p.Len())
}

func TestPageAccess(t *testing.T) {
	p := NewPage(3, 1, 10, []string{"a", "b", "c"})

	_, ok := p.At(-1)
	assert.False(t, ok)
	_, ok = p.At(3)
	assert.False(t, ok)

	var seen []string
	for i, item := range p.All() {
		assert.Equal(t, len(seen), i)
		seen = append(seen, item)
	}
	assert.Equal(t, []string{"a", "b", "c"}, seen)

	seen = seen[:0]
	for _, item := range p.All() {
		seen = append(seen, item)
		break
	}
	assert.Equal(t, []string{"a"}, seen)
}

func TestPageMarshalJSON(t *testing.T) {
	p := NewPage(3, 1, 2, []string{"a", "b"})
	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":3,"previous":null,"next":2,"pages":2,"currentPage":1,"items":["a","b"]}`, string(b))

	empty := NewPage[string](0, 1, 10, nil)
	b, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":0,"previous":null,"next":null,"pages":0,"currentPage":1,"items":[]}`, string(b))
}

func TestPageRequestOffsetSaturates(t *testing.T) {
	assert.Equal(t, 0, NewPageRequest(1, 10, nil).GetOffset())
	assert.Equal(t, 20, NewPageRequest(3, 10, nil).GetOffset())
	assert.Equal(t, math.MaxInt, NewPageRequest(math.MaxInt, 10, nil).GetOffset())
	assert.Equal(t, math.MaxInt, NewPageRequest(math.MaxInt/2, 3, nil).GetOffset())
	assert.Equal(t, math.MaxInt-1, NewPageRequest(math.MaxInt, 1, nil).GetOffset())
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 10))
	assert.Equal(t, 0, PageCount(5, 0))
	assert.Equal(t, 1, PageCount(10, 10))
	assert.Equal(t, 2, PageCount(11, 10))
	assert.Equal(t, math.MaxInt, PageCount(math.MaxInt, 1))
	assert.Equal(t, math.MaxInt/100+1, PageCount(math.MaxInt, 100))
}
