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

// AABB для CCD: інтервали по осях замкнені, тобто коробки, що тільки
// торкаються гранню чи кутом, вважаються такими, що перетинаються.

package bvh

// AABB - куб, вирівняний по осях координат
type AABB[I Number] struct {
	Lower, Upper Vec3[I] // нижній та верхній кути
}

// FromPoints returns the smallest AABB containing every point.
// It panics when called without points.
func FromPoints[I Number](points ...Vec3[I]) AABB[I] {
	box := AABB[I]{Lower: points[0], Upper: points[0]}
	for _, p := range points[1:] {
		box.Lower = box.Lower.Min(p)
		box.Upper = box.Upper.Max(p)
	}
	return box
}

// Touch перевіряє чи перетинаються два AABB по всіх трьох осях
func (aabb AABB[I]) Touch(other AABB[I]) bool {
	return aabb.Lower.LessEq(other.Upper) && other.Lower.LessEq(aabb.Upper)
}

// Union повертає найменший AABB, що містить обидва вхідні
func (aabb AABB[I]) Union(other AABB[I]) AABB[I] {
	return AABB[I]{
		Upper: aabb.Upper.Max(other.Upper),
		Lower: aabb.Lower.Min(other.Lower),
	}
}

// Inflate розширює AABB на r у всі боки
func (aabb AABB[I]) Inflate(r I) AABB[I] {
	d := Vec3[I]{r, r, r}
	return AABB[I]{Lower: aabb.Lower.Sub(d), Upper: aabb.Upper.Add(d)}
}

// Surface повертає площу поверхні AABB (вартість для SAH)
func (aabb AABB[I]) Surface() I {
	e := aabb.Upper.Sub(aabb.Lower)
	return 2 * (e[0]*e[1] + e[1]*e[2] + e[2]*e[0])
}

// Center повертає центр AABB
func (aabb AABB[I]) Center() Vec3[I] {
	s := aabb.Lower.Add(aabb.Upper)
	return Vec3[I]{s[0] / 2, s[1] / 2, s[2] / 2}
}
