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

// Вектори для обмежувальних об'ємів. Тут тільки 3D, бо сітки у нас
// завжди тривимірні, а всі порівняння мають бути по всіх трьох осях.

package bvh

import "golang.org/x/exp/constraints"

// Number - допустимі типи координат
type Number interface {
	constraints.Signed | constraints.Float
}

// Vec3 - тривимірний вектор
type Vec3[I Number] [3]I

// Add додає інший вектор до поточного
func (v Vec3[I]) Add(other Vec3[I]) Vec3[I] {
	return Vec3[I]{v[0] + other[0], v[1] + other[1], v[2] + other[2]}
}

// Sub віднімає інший вектор від поточного
func (v Vec3[I]) Sub(other Vec3[I]) Vec3[I] {
	return Vec3[I]{v[0] - other[0], v[1] - other[1], v[2] - other[2]}
}

// Max повертає покомпонентний максимум
func (v Vec3[I]) Max(other Vec3[I]) Vec3[I] {
	return Vec3[I]{max(v[0], other[0]), max(v[1], other[1]), max(v[2], other[2])}
}

// Min повертає покомпонентний мінімум
func (v Vec3[I]) Min(other Vec3[I]) Vec3[I] {
	return Vec3[I]{min(v[0], other[0]), min(v[1], other[1]), min(v[2], other[2])}
}

// LessEq перевіряє чи всі координати <= other.
// Межі включні: дотик вважається перетином.
func (v Vec3[I]) LessEq(other Vec3[I]) bool {
	return v[0] <= other[0] && v[1] <= other[1] && v[2] <= other[2]
}

