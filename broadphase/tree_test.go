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

	"github.com/stretchr/testify/require"
)

func TestTreeOverlaps(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	boxes := randomScene(t, rng, 1000)

	got, err := TreeOverlaps(boxes)
	require.NoError(t, err)
	requireSamePairs(t, bruteForce(boxes), got)

	s := newTestSweeper(t, Config{Workers: 2})
	_, swept, err := s.SortAndSweep(boxes)
	require.NoError(t, err)
	requireSamePairs(t, got, swept)
}

func TestTreeOverlapsCross(t *testing.T) {
	rng := rand.New(rand.NewSource(14))
	verts := randomScene(t, rng, 500, KindVertex)
	faces := randomScene(t, rng, 700, KindFace)

	got, err := TreeOverlapsCross(verts, faces)
	require.NoError(t, err)
	requireSamePairs(t, bruteForceCross(verts, faces), got)
}

func TestTreeOverlaps_Invalid(t *testing.T) {
	_, err := TreeOverlaps([]AABB{{ID: 4, VertexIDs: [3]int{-1, -1, -1}}})
	require.ErrorIs(t, err, ErrInvalidInput)
}
