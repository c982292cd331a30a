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

package bvh

import "testing"

func TestAABB_Touch(t *testing.T) {
	a := AABB[float64]{Lower: Vec3[float64]{0, 0, 0}, Upper: Vec3[float64]{2, 1, 1}}
	for _, tt := range []struct {
		name  string
		other AABB[float64]
		want  bool
	}{
		{"overlap", AABB[float64]{Lower: Vec3[float64]{1, 0, 0}, Upper: Vec3[float64]{3, 1, 1}}, true},
		{"touch face", AABB[float64]{Lower: Vec3[float64]{2, 0, 0}, Upper: Vec3[float64]{3, 1, 1}}, true},
		{"touch corner", AABB[float64]{Lower: Vec3[float64]{2, 1, 1}, Upper: Vec3[float64]{3, 2, 2}}, true},
		{"apart on x", AABB[float64]{Lower: Vec3[float64]{2.5, 0, 0}, Upper: Vec3[float64]{3, 1, 1}}, false},
		{"apart on z", AABB[float64]{Lower: Vec3[float64]{0, 0, 1.5}, Upper: Vec3[float64]{1, 1, 2}}, false},
		{"contained", AABB[float64]{Lower: Vec3[float64]{0.5, 0.2, 0.2}, Upper: Vec3[float64]{1, 0.4, 0.4}}, true},
	} {
		if got := a.Touch(tt.other); got != tt.want {
			t.Errorf("%s: a.Touch = %v, want %v", tt.name, got, tt.want)
		}
		if got := tt.other.Touch(a); got != tt.want {
			t.Errorf("%s: other.Touch = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAABB_UnionSurface(t *testing.T) {
	a := FromPoints(Vec3[float64]{0, 0, 0}, Vec3[float64]{1, 1, 1})
	b := FromPoints(Vec3[float64]{2, 0, 0})
	u := a.Union(b)
	if u.Lower != (Vec3[float64]{0, 0, 0}) || u.Upper != (Vec3[float64]{2, 1, 1}) {
		t.Errorf("Union = %v", u)
	}
	if s := u.Surface(); s != 10 {
		t.Errorf("Surface = %v, want 10", s)
	}
	if c := u.Center(); c != (Vec3[float64]{1, 0.5, 0.5}) {
		t.Errorf("Center = %v", c)
	}
	if in := a.Inflate(0.5); in.Lower != (Vec3[float64]{-0.5, -0.5, -0.5}) {
		t.Errorf("Inflate = %v", in)
	}
}
