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

// Package mesh loads triangle mesh snapshots and turns two of them into
// the swept bounding volumes of their vertices, edges and faces.
package mesh

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"ScalableCCD/broadphase"
)

var (
	// ErrFormat is returned for files that cannot be parsed.
	ErrFormat = errors.New("malformed mesh file")
	// ErrMismatch is returned when two snapshots do not share topology.
	ErrMismatch = errors.New("mesh snapshots do not match")
)

// Mesh is one snapshot of a triangle mesh.
type Mesh struct {
	Vertices []broadphase.Vec3
	Faces    [][3]int
}

// Validate checks that every face references existing, distinct vertices.
func (m *Mesh) Validate() error {
	for i, f := range m.Faces {
		for _, v := range f {
			if v < 0 || v >= len(m.Vertices) {
				return fmt.Errorf("%w: face %d references vertex %d of %d", ErrFormat, i, v, len(m.Vertices))
			}
		}
		if f[0] == f[1] || f[1] == f[2] || f[0] == f[2] {
			return fmt.Errorf("%w: face %d is degenerate %v", ErrFormat, i, f)
		}
	}
	return nil
}

// Edges returns the unique undirected edges of the faces with the smaller
// vertex first, ordered by the larger vertex and then by the smaller one.
// This is the column-major order of the upper triangle of the adjacency
// matrix, so edge ids agree with ground truth written in that numbering.
func (m *Mesh) Edges() [][2]int {
	edges := make([][2]int, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		for k := 0; k < 3; k++ {
			e := [2]int{f[k], f[(k+1)%3]}
			if e[0] > e[1] {
				e[0], e[1] = e[1], e[0]
			}
			edges = append(edges, e)
		}
	}
	slices.SortFunc(edges, func(a, b [2]int) int {
		if c := cmp.Compare(a[1], b[1]); c != 0 {
			return c
		}
		return cmp.Compare(a[0], b[0])
	})
	return slices.Clip(slices.Compact(edges))
}
