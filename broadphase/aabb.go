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

// Йоу, чат! Тут живе обмежувальний об'єм одного примітиву сітки:
// вершини, ребра або трикутника. Коробка покриває примітив в обох
// моментах часу t0 і t1, тому все, що може зіткнутися за цей крок,
// обов'язково має коробки, що перетинаються.

package broadphase

import (
	"fmt"
	"math"

	"ScalableCCD/broadphase/internal/bvh"
)

// Vec3 is a point or extent in world space.
type Vec3 = bvh.Vec3[float64]

// NoVertex marks an unused slot of AABB.VertexIDs.
const NoVertex = -1

// Kind is the primitive type a bounding volume encloses.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVertex
	KindEdge
	KindFace
)

func (k Kind) String() string {
	switch k {
	case KindVertex:
		return "vertex"
	case KindEdge:
		return "edge"
	case KindFace:
		return "face"
	}
	return "invalid"
}

// AABB is the swept bounding volume of one primitive. Intervals are closed.
type AABB struct {
	Min, Max Vec3
	// ID is unique within the primitive class (vertices, edges or faces).
	ID int
	// VertexIDs are the mesh vertices the primitive touches,
	// unused slots hold NoVertex.
	VertexIDs [3]int
	// Kind is derived from VertexIDs and never set by hand.
	Kind Kind
}

// NewAABB validates the box and derives its kind.
func NewAABB(id int, lower, upper Vec3, vertexIDs [3]int) (AABB, error) {
	b := AABB{Min: lower, Max: upper, ID: id, VertexIDs: vertexIDs}
	if err := b.normalize(); err != nil {
		return AABB{}, &InvalidBoxError{Index: -1, ID: id, Reason: err.Error()}
	}
	return b, nil
}

// FromPoints builds the box enclosing points, typically the primitive's
// corners at t0 and t1.
func FromPoints(id int, vertexIDs [3]int, points ...Vec3) (AABB, error) {
	if len(points) == 0 {
		return AABB{}, &InvalidBoxError{Index: -1, ID: id, Reason: "no points"}
	}
	box := bvh.FromPoints(points...)
	return NewAABB(id, box.Lower, box.Upper, vertexIDs)
}

// Inflate returns a copy widened by r on every side.
func (b AABB) Inflate(r float64) AABB {
	box := b.bound().Inflate(r)
	b.Min, b.Max = box.Lower, box.Upper
	return b
}

// Overlaps is the full 3-D closed interval test.
func (b *AABB) Overlaps(other *AABB) bool {
	return b.Min[0] <= other.Max[0] && other.Min[0] <= b.Max[0] &&
		b.Min[1] <= other.Max[1] && other.Min[1] <= b.Max[1] &&
		b.Min[2] <= other.Max[2] && other.Min[2] <= b.Max[2]
}

// Center returns the midpoint of the box.
func (b *AABB) Center() Vec3 { return b.bound().Center() }

// Validate checks the box invariants without changing it.
func (b *AABB) Validate() error {
	c := *b
	return c.normalize()
}

func (b *AABB) bound() bvh.AABB[float64] {
	return bvh.AABB[float64]{Lower: b.Min, Upper: b.Max}
}

// normalize checks intervals and vertex ids and sets Kind.
func (b *AABB) normalize() error {
	for d := 0; d < 3; d++ {
		if math.IsNaN(b.Min[d]) || math.IsNaN(b.Max[d]) {
			return fmt.Errorf("NaN on axis %d", d)
		}
		if b.Min[d] > b.Max[d] {
			return fmt.Errorf("min %g > max %g on axis %d", b.Min[d], b.Max[d], d)
		}
	}
	k, err := kindOf(b.VertexIDs)
	if err != nil {
		return err
	}
	b.Kind = k
	return nil
}

// kindOf reads the sentinel pattern: (a,-1,-1) vertex, (a,b,-1) edge,
// (a,b,c) face. Used slots must be distinct.
func kindOf(v [3]int) (Kind, error) {
	n := 0
	for n < 3 && v[n] >= 0 {
		n++
	}
	for i := n; i < 3; i++ {
		if v[i] >= 0 {
			return KindInvalid, fmt.Errorf("vertex ids %v: used slot after unused one", v)
		}
	}
	if n == 0 {
		return KindInvalid, fmt.Errorf("vertex ids %v: no vertex", v)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if v[i] == v[j] {
				return KindInvalid, fmt.Errorf("vertex ids %v: repeated vertex %d", v, v[i])
			}
		}
	}
	return Kind(n), nil
}
