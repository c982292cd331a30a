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
	"cmp"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// SelectAxis returns the axis along which box centers are spread the
// most, so the sweep keeps the fewest boxes active at once. Ties go to
// the lower axis and degenerate input returns axis 0.
func SelectAxis(groups ...[]AABB) int {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	if n < 2 {
		return 0
	}

	centers := make([]float64, n)
	best, bestVar := 0, 0.0
	for axis := 0; axis < 3; axis++ {
		i := 0
		for _, g := range groups {
			for k := range g {
				centers[i] = (g[k].Min[axis] + g[k].Max[axis]) / 2
				i++
			}
		}
		if v := stat.PopVariance(centers, nil); v > bestVar {
			best, bestVar = axis, v
		}
	}
	return best
}

// SortAlongAxis orders boxes by ascending Min on axis, ties by ID.
func SortAlongAxis(boxes []AABB, axis int) {
	slices.SortFunc(boxes, func(a, b AABB) int {
		return compareAlong(axis, &a, &b)
	})
}

func compareAlong(axis int, a, b *AABB) int {
	if c := cmp.Compare(a.Min[axis], b.Min[axis]); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
