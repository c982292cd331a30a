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
	"ScalableCCD/broadphase/internal/bvh"
)

type (
	aabb3d  = bvh.AABB[float64]
	boxNode = bvh.Node[float64, aabb3d, int]
	boxTree = bvh.Tree[float64, aabb3d, int]
)

// TreeOverlaps answers the same question as SortAndSweep with a BVH
// query per volume. It is slower and single threaded, and exists to
// cross-check the sweep.
func TreeOverlaps(boxes []AABB) ([]Pair, error) {
	set, err := newSortedSet(0, boxes)
	if err != nil {
		return nil, err
	}
	tree := buildTree(set.entries)

	var pairs []Pair
	for i := range set.entries {
		a := &set.entries[i]
		tree.Find(bvh.TouchBound(a.bound()), func(n *boxNode) bool {
			if n.Value <= i {
				return true
			}
			b := &set.entries[n.Value]
			if IsValidPair(&a.AABB, &b.AABB) {
				pairs = append(pairs, set.pair(a, b))
			}
			return true
		})
	}
	return pairs, nil
}

// TreeOverlapsCross is TreeOverlaps for two collections.
func TreeOverlapsCross(a, b []AABB) ([]Pair, error) {
	set, err := newSortedSet(0, a, b)
	if err != nil {
		return nil, err
	}
	var as, bs []entry
	for _, e := range set.entries {
		if e.side == sideA {
			as = append(as, e)
		} else {
			bs = append(bs, e)
		}
	}
	tree := buildTree(bs)

	var pairs []Pair
	for i := range as {
		x := &as[i]
		tree.Find(bvh.TouchBound(x.bound()), func(n *boxNode) bool {
			y := &bs[n.Value]
			if IsValidPair(&x.AABB, &y.AABB) {
				pairs = append(pairs, set.pair(x, y))
			}
			return true
		})
	}
	return pairs, nil
}

func buildTree(entries []entry) *boxTree {
	var tree boxTree
	for i := range entries {
		tree.Insert(entries[i].bound(), i)
	}
	return &tree
}
