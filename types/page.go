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
	"errors"
	"iter"
	"math"

	"github.com/goccy/go-json"
)

// Pagination bounds.
const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// ErrPageReadOnly is returned by every mutating method of Page.
var ErrPageReadOnly = errors.New("the pagination object is read-only")

// PageRequest describes a page number, page size and the filters to page over.
type PageRequest struct {
	page    int
	perPage int
	filters *Filters
}

// NewPageRequest constructs a PageRequest. Out-of-range values are normalized
// by the getters, never rejected.
func NewPageRequest(page int, perPage int, filters *Filters) *PageRequest {
	return &PageRequest{page, perPage, filters}
}

// GetPage returns the requested page, floored at 1.
func (p *PageRequest) GetPage() int {
	if p.page < 1 {
		return DefaultPage
	}
	return p.page
}

// GetPerPage returns the page size; values outside [1, MaxPerPage] fall back
// to DefaultPerPage.
func (p *PageRequest) GetPerPage() int {
	if p.perPage < 1 || p.perPage > MaxPerPage {
		return DefaultPerPage
	}
	return p.perPage
}

// GetOffset returns the number of rows before the page, saturating at
// math.MaxInt for page numbers too large to address.
func (p *PageRequest) GetOffset() int {
	page, perPage := p.GetPage()-1, p.GetPerPage()
	if page > math.MaxInt/perPage {
		return math.MaxInt
	}
	return page * perPage
}

func (p *PageRequest) GetFilters() *Filters {
	return p.filters
}

// Normalized reports whether GetPage or GetPerPage differ from the raw input.
func (p *PageRequest) Normalized() bool {
	return p.page != p.GetPage() || p.perPage != p.GetPerPage()
}

// Page is an immutable slice of a filtered result set plus pagination metadata.
type Page[T any] struct {
	total       int
	previous    *int
	next        *int
	pages       int
	currentPage int
	items       []T
}

// NewPage builds a Page for the given normalized page and page size. pages is
// ceil(total/perPage), or 0 when total is 0.
func NewPage[T any](total int, page int, perPage int, items []T) *Page[T] {
	p := &Page[T]{
		total:       total,
		currentPage: page,
		items:       make([]T, len(items)),
	}
	copy(p.items, items)
	p.pages = PageCount(total, perPage)
	if page > 1 {
		prev := page - 1
		p.previous = &prev
	}
	if page < p.pages {
		next := page + 1
		p.next = &next
	}
	return p
}

// PageCount returns ceil(total/perPage), or 0 when either is not positive.
func PageCount(total int, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return total/perPage + min(total%perPage, 1)
}

// Total is the size of the whole filtered set, not just this page.
func (p *Page[T]) Total() int { return p.total }

func (p *Page[T]) Pages() int { return p.pages }

func (p *Page[T]) CurrentPage() int { return p.currentPage }

// Previous returns the previous page number; ok is false on the first page.
func (p *Page[T]) Previous() (page int, ok bool) {
	if p.previous == nil {
		return 0, false
	}
	return *p.previous, true
}

// Next returns the next page number; ok is false on the last page.
func (p *Page[T]) Next() (page int, ok bool) {
	if p.next == nil {
		return 0, false
	}
	return *p.next, true
}

// IsCurrent reports whether page is the page this result represents.
func (p *Page[T]) IsCurrent(page int) bool {
	return page == p.currentPage
}

// Len returns the number of items on this page.
func (p *Page[T]) Len() int { return len(p.items) }

// At returns the item at index i.
func (p *Page[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(p.items) {
		var zero T
		return zero, false
	}
	return p.items[i], true
}

// Items returns a copy of the page items.
func (p *Page[T]) Items() []T {
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out
}

// All iterates over the items in order.
func (p *Page[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range p.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Set always fails: pages are read-only.
func (p *Page[T]) Set(int, T) error { return ErrPageReadOnly }

// Delete always fails: pages are read-only.
func (p *Page[T]) Delete(int) error { return ErrPageReadOnly }

type pageJSON[T any] struct {
	Total       int  `json:"total"`
	Previous    *int `json:"previous"`
	Next        *int `json:"next"`
	Pages       int  `json:"pages"`
	CurrentPage int  `json:"currentPage"`
	Items       []T  `json:"items"`
}

// MarshalJSON implements json.Marshaler.
func (p *Page[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(pageJSON[T]{
		Total:       p.total,
		Previous:    p.previous,
		Next:        p.next,
		Pages:       p.pages,
		CurrentPage: p.currentPage,
		Items:       p.items,
	})
}
