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

package mesh

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand"

	"ScalableCCD/broadphase"
)

// Cloth returns an n×n grid of vertices spanning size×size in the XY
// plane, split into 2(n-1)² triangles.
func Cloth(n int, size float64) *Mesh {
	m := &Mesh{
		Vertices: make([]broadphase.Vec3, 0, n*n),
		Faces:    make([][3]int, 0, 2*(n-1)*(n-1)),
	}
	step := size / float64(max(n-1, 1))
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			m.Vertices = append(m.Vertices, broadphase.Vec3{float64(i) * step, float64(j) * step, 0})
		}
	}
	for j := 0; j+1 < n; j++ {
		for i := 0; i+1 < n; i++ {
			a := j*n + i
			b, c, d := a+1, a+n, a+n+1
			m.Faces = append(m.Faces, [3]int{a, b, d}, [3]int{a, d, c})
		}
	}
	return m
}

// Drape returns a copy of m bent along the X axis into an arch of the
// given height, plus uniform noise of amplitude jitter. The faces are
// shared with m.
func (m *Mesh) Drape(rng *rand.Rand, height, jitter float64) *Mesh {
	out := &Mesh{Vertices: make([]broadphase.Vec3, len(m.Vertices)), Faces: m.Faces}
	var width float64
	for _, v := range m.Vertices {
		width = max(width, v[0])
	}
	for i, v := range m.Vertices {
		if width > 0 {
			theta := math.Pi * v[0] / width
			v[0] = width / 2 * (1 - math.Cos(theta))
			v[2] = height * math.Sin(theta)
		}
		for d := range v {
			v[d] += (rng.Float64()*2 - 1) * jitter
		}
		out.Vertices[i] = v
	}
	return out
}

// WriteOBJ writes m as a Wavefront OBJ stream.
func (m *Mesh) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d vertices, %d faces\n", len(m.Vertices), len(m.Faces))
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v[0], v[1], v[2])
	}
	for _, f := range m.Faces {
		fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1)
	}
	return bw.Flush()
}
