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
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var sortPairs = cmpopts.SortSlices(func(x, y Pair) bool {
	if x.A != y.A {
		return x.A < y.A
	}
	return x.B < y.B
})

func box(t testing.TB, id int, lower, upper Vec3, vids ...int) AABB {
	t.Helper()
	v := [3]int{NoVertex, NoVertex, NoVertex}
	copy(v[:], vids)
	b, err := NewAABB(id, lower, upper, v)
	require.NoError(t, err)
	return b
}

func newTestSweeper(t testing.TB, config Config) *Sweeper {
	t.Helper()
	s, err := NewSweeper(zaptest.NewLogger(t), config)
	require.NoError(t, err)
	return s
}

// randomScene makes n primitives of mixed kinds over a shared pool of
// mesh vertices, so both overlaps and shared-vertex rejections happen.
func randomScene(t testing.TB, rng *rand.Rand, n int, kinds ...Kind) []AABB {
	t.Helper()
	if len(kinds) == 0 {
		kinds = []Kind{KindVertex, KindEdge, KindFace}
	}
	const world, extent, pool = 40.0, 3.0, 300
	boxes := make([]AABB, n)
	for i := range boxes {
		k := kinds[rng.Intn(len(kinds))]
		perm := rng.Perm(pool)
		vids := []int{perm[0], perm[1], perm[2]}[:k]
		var lo Vec3
		for d := range lo {
			lo[d] = rng.Float64() * world
		}
		hi := lo.Add(Vec3{rng.Float64() * extent, rng.Float64() * extent, rng.Float64() * extent})
		// a few exactly touching boxes to exercise closed intervals
		if i > 0 && rng.Intn(10) == 0 {
			lo = boxes[i-1].Max
			hi = lo.Add(Vec3{1, 1, 1})
		}
		boxes[i] = box(t, i, lo, hi, vids...)
	}
	return boxes
}

func bruteForce(boxes []AABB) []Pair {
	var pairs []Pair
	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			a, b := &boxes[i], &boxes[j]
			if a.Overlaps(b) && IsValidPair(a, b) {
				p := Pair{a.ID, b.ID}
				if p.A > p.B {
					p.A, p.B = p.B, p.A
				}
				pairs = append(pairs, p)
			}
		}
	}
	return pairs
}

func bruteForceCross(as, bs []AABB) []Pair {
	var pairs []Pair
	for i := range as {
		for j := range bs {
			if as[i].Overlaps(&bs[j]) && IsValidPair(&as[i], &bs[j]) {
				pairs = append(pairs, Pair{as[i].ID, bs[j].ID})
			}
		}
	}
	return pairs
}

func requireSamePairs(t *testing.T, want, got []Pair) {
	t.Helper()
	if diff := cmp.Diff(want, got, sortPairs, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("pair sets differ (-want +got):\n%s", diff)
	}
}
