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

// Йоу, чат! Сьогодні розберемо sort-and-sweep!
// Сортуємо коробки по мінімуму на одній осі, а потім для кожної коробки
// дивимось тільки вперед, поки наступні коробки починаються не пізніше,
// ніж закінчується поточна. Все, що далі, перетнутися вже не може.

package broadphase

import (
	"cmp"
	"fmt"
	"slices"
)

// Pair is a candidate pair of primitive ids. Self sweeps store it with
// A < B, cross sweeps keep A from the first collection.
type Pair struct {
	A, B int
}

type side uint8

const (
	sideA side = iota
	sideB
)

func (s side) String() string {
	if s == sideB {
		return "b"
	}
	return "a"
}

type entry struct {
	AABB
	side side
}

// SortedSet is a validated copy of the input sorted along one axis.
// It is read-only once built and safe to share between goroutines.
type SortedSet struct {
	entries []entry
	axis    int
	cross   bool
}

// Len returns the number of volumes in the set.
func (s *SortedSet) Len() int { return len(s.entries) }

// Axis returns the sweep axis.
func (s *SortedSet) Axis() int { return s.axis }

// At returns the i-th volume in sweep order.
func (s *SortedSet) At(i int) AABB { return s.entries[i].AABB }

// newSortedSet copies and validates groups, then sorts them along axis,
// or along SelectAxis when axis is AxisAuto. Two groups make a cross set.
// Ids must be unique within a group; the groups of a cross set may reuse them.
func newSortedSet(axis int, groups ...[]AABB) (*SortedSet, error) {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	set := &SortedSet{entries: make([]entry, 0, n), cross: len(groups) > 1}
	for gi, g := range groups {
		seen := make(map[int]int, len(g))
		for i := range g {
			e := entry{AABB: g[i], side: side(gi)}
			if err := e.normalize(); err != nil {
				return nil, set.invalid(e.side, i, g[i].ID, err.Error())
			}
			if first, ok := seen[e.ID]; ok {
				return nil, set.invalid(e.side, i, e.ID, fmt.Sprintf("duplicate id, first at index %d", first))
			}
			seen[e.ID] = i
			set.entries = append(set.entries, e)
		}
	}

	if axis == AxisAuto {
		axis = SelectAxis(groups...)
	}
	set.axis = axis
	slices.SortFunc(set.entries, func(a, b entry) int {
		if c := compareAlong(axis, &a.AABB, &b.AABB); c != 0 {
			return c
		}
		return cmp.Compare(a.side, b.side)
	})
	return set, nil
}

func (s *SortedSet) invalid(sd side, index, id int, reason string) *InvalidBoxError {
	err := &InvalidBoxError{Index: index, ID: id, Reason: reason}
	if s.cross {
		err.Set = sd.String()
	}
	return err
}

// sweepRange finds the pairs whose first element in sweep order lies in
// [start, end). Partners are searched up to limit, bounded only by the
// active-set condition partner.Min <= box.Max on the sweep axis.
func sweepRange(set *SortedSet, start, end, limit int, out []Pair) []Pair {
	axis := set.axis
	entries := set.entries[:limit]
	for i := start; i < end; i++ {
		a := &entries[i]
		hi := a.Max[axis]
		for j := i + 1; j < len(entries) && entries[j].Min[axis] <= hi; j++ {
			b := &entries[j]
			if set.cross && a.side == b.side {
				continue
			}
			if !a.Overlaps(&b.AABB) || !IsValidPair(&a.AABB, &b.AABB) {
				continue
			}
			out = append(out, set.pair(a, b))
		}
	}
	return out
}

func (s *SortedSet) pair(a, b *entry) Pair {
	if s.cross {
		if a.side == sideB {
			a, b = b, a
		}
		return Pair{a.ID, b.ID}
	}
	if a.ID > b.ID {
		a, b = b, a
	}
	return Pair{a.ID, b.ID}
}
