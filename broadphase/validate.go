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

// IsValidPair reports whether two primitives may form a CCD query.
// Two vertices never do, and neither do primitives sharing a mesh vertex.
func IsValidPair(a, b *AABB) bool {
	if a.Kind == KindInvalid || b.Kind == KindInvalid {
		return false
	}
	if a.Kind == KindVertex && b.Kind == KindVertex {
		return false
	}
	return !shareVertex(a, b)
}

func shareVertex(a, b *AABB) bool {
	for i := 0; i < int(a.Kind); i++ {
		for j := 0; j < int(b.Kind); j++ {
			if a.VertexIDs[i] == b.VertexIDs[j] {
				return true
			}
		}
	}
	return false
}
