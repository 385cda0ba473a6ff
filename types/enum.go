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
	"fmt"
	"strings"
)

// Common illegal/default values used by enums.
const (
	IllegalValue = -1
	IllegalName  = "unknown"
	IllegalDesc  = "unknown"
)

// ErrInvalidDirection is returned when an ordering direction is neither ASC nor DESC.
var ErrInvalidDirection = errors.New("invalid order direction")

// BaseEnum represents a basic enum contract used by domain types.
type BaseEnum interface {
	IsValid() bool
	Number() int
	String() string
	Desc() string
	Name() string
}

// Direction is the sort direction of an ORDER BY term.
type Direction int

const (
	DirectionAsc Direction = iota
	DirectionDesc
)

var _ BaseEnum = DirectionAsc

func (d Direction) IsValid() bool {
	return d == DirectionAsc || d == DirectionDesc
}

func (d Direction) Number() int {
	if !d.IsValid() {
		return IllegalValue
	}
	return int(d)
}

// String returns the SQL keyword for the direction.
func (d Direction) String() string {
	switch d {
	case DirectionAsc:
		return "ASC"
	case DirectionDesc:
		return "DESC"
	default:
		return IllegalName
	}
}

func (d Direction) Desc() string {
	switch d {
	case DirectionAsc:
		return "ascending"
	case DirectionDesc:
		return "descending"
	default:
		return IllegalDesc
	}
}

func (d Direction) Name() string {
	if !d.IsValid() {
		return IllegalName
	}
	return strings.ToLower(d.String())
}

// ParseDirection accepts "asc"/"desc" in any case; an empty string means ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return DirectionAsc, nil
	case "desc":
		return DirectionDesc, nil
	default:
		return Direction(IllegalValue), fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}
