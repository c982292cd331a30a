// This file is part of go-mc/server project.
// Copyright (C) 2023.  Tnze
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package broadphase

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for malformed bounding volumes.
	ErrInvalidInput = errors.New("invalid bounding volume")
	// ErrInvalidConfig is returned for unusable sweep settings.
	ErrInvalidConfig = errors.New("invalid sweep config")
	// ErrBatchTooLarge is returned when one batch window would not fit
	// in the configured memory budget. Reduce batch-size and retry.
	ErrBatchTooLarge = errors.New("batch window exceeds memory budget")
	// ErrInvalidCursor is returned when a cursor does not belong to the set.
	ErrInvalidCursor = errors.New("invalid batch cursor")
)

// InvalidBoxError reports which input volume broke the contract.
type InvalidBoxError struct {
	Index  int    // position in the caller's slice, -1 for constructors
	Set    string // "a" or "b" in a cross sweep, empty otherwise
	ID     int
	Reason string
}

func (e *InvalidBoxError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("box %d: %s", e.ID, e.Reason)
	case e.Set != "":
		return fmt.Sprintf("box %d at %s[%d]: %s", e.ID, e.Set, e.Index, e.Reason)
	}
	return fmt.Sprintf("box %d at index %d: %s", e.ID, e.Index, e.Reason)
}

func (e *InvalidBoxError) Unwrap() error { return ErrInvalidInput }
