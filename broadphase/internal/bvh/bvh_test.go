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

import (
	"math/rand"
	"slices"
	"testing"
)

type (
	vec3d  = Vec3[float64]
	aabb3d = AABB[float64]
	tree3d = Tree[float64, aabb3d, int]
)

func unitBoxAt(x, y, z float64) aabb3d {
	return aabb3d{Lower: vec3d{x, y, z}, Upper: vec3d{x + 1, y + 1, z + 1}}
}

func collect(tree *tree3d, test func(aabb3d) bool) []int {
	var result []int
	tree.Find(test, func(n *Node[float64, aabb3d, int]) bool {
		result = append(result, n.Value)
		return true
	})
	slices.Sort(result)
	return result
}

func TestTree_Insert(t *testing.T) {
	aabbs := []aabb3d{
		unitBoxAt(0, 0, 0),
		unitBoxAt(1, 0, 0),
		unitBoxAt(10, 0, 0),
		unitBoxAt(11, 0, 0),
		unitBoxAt(100, 0, 0),
		unitBoxAt(101, 0, 0),
		unitBoxAt(110, 0, 0),
		unitBoxAt(111, 0, 0),
		{Lower: vec3d{-1, -1, -1}, Upper: vec3d{1, 1, 1}},
	}

	var tree tree3d
	for i, aabb := range aabbs {
		tree.Insert(aabb, i)
		t.Log(&tree)
	}
	if tree.Len() != len(aabbs) {
		t.Fatalf("Len() = %d, want %d", tree.Len(), len(aabbs))
	}

	// точка - це вироджений AABB
	got := collect(&tree, TouchBound(FromPoints(vec3d{0.5, 0.5, 0.5})))
	if want := []int{0, 8}; !slices.Equal(got, want) {
		t.Errorf("TouchBound(0.5) = %v, want %v", got, want)
	}
}

func TestTree_Find_ClosedBounds(t *testing.T) {
	var tree tree3d
	tree.Insert(unitBoxAt(0, 0, 0), 0)
	tree.Insert(unitBoxAt(1, 1, 1), 1) // торкається кутом
	tree.Insert(unitBoxAt(3, 0, 0), 2)

	got := collect(&tree, TouchBound(unitBoxAt(0, 0, 0)))
	if want := []int{0, 1}; !slices.Equal(got, want) {
		t.Errorf("TouchBound = %v, want %v", got, want)
	}
	got = collect(&tree, TouchBound(FromPoints(vec3d{4, 1, 1})))
	if want := []int{2}; !slices.Equal(got, want) {
		t.Errorf("TouchBound(4,1,1) = %v, want %v", got, want)
	}
}

func TestTree_Find_Stop(t *testing.T) {
	var tree tree3d
	for i := 0; i < 10; i++ {
		tree.Insert(unitBoxAt(0, 0, 0), i)
	}
	visited := 0
	tree.Find(TouchBound(unitBoxAt(0, 0, 0)), func(*Node[float64, aabb3d, int]) bool {
		visited++
		return visited < 3
	})
	if visited != 3 {
		t.Errorf("visited %d leaves after stop, want 3", visited)
	}
}

// Дерево повинно знаходити рівно те, що знаходить повний перебір
func TestTree_Find_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	boxes := make([]aabb3d, 500)
	var tree tree3d
	for i := range boxes {
		p := vec3d{rng.Float64() * 100, rng.Float64() * 100, rng.Float64() * 100}
		boxes[i] = aabb3d{Lower: p, Upper: p.Add(vec3d{rng.Float64() * 5, rng.Float64() * 5, rng.Float64() * 5})}
		tree.Insert(boxes[i], i)
	}
	for q := 0; q < 50; q++ {
		query := boxes[rng.Intn(len(boxes))].Inflate(2)
		var want []int
		for i, b := range boxes {
			if b.Touch(query) {
				want = append(want, i)
			}
		}
		if got := collect(&tree, TouchBound(query)); !slices.Equal(got, want) {
			t.Fatalf("query %d: got %v, want %v", q, got, want)
		}
	}
}

func TestTree_Empty(t *testing.T) {
	var tree tree3d
	if got := collect(&tree, TouchBound(unitBoxAt(0, 0, 0))); len(got) != 0 {
		t.Errorf("empty tree found %v", got)
	}
	if tree.String() != "{}" {
		t.Errorf("String() = %q", tree.String())
	}
}

// BenchmarkTree_Insert тестує швидкість додавання в дерево
func BenchmarkTree_Insert(b *testing.B) {
	const size = 25
	aabbs := make([]aabb3d, b.N)
	for i := range aabbs {
		p := vec3d{rand.Float64() * 1e4, rand.Float64() * 1e4, rand.Float64() * 1e4}
		aabbs[i] = aabb3d{Lower: p, Upper: p}.Inflate(size)
	}
	b.ResetTimer()

	var tree tree3d
	for i, v := range aabbs {
		tree.Insert(v, i)
	}
}

// BenchmarkTree_Find_random тестує швидкість пошуку в дереві
func BenchmarkTree_Find_random(b *testing.B) {
	const size = 25
	aabbs := make([]aabb3d, b.N)
	poses := make([]vec3d, b.N)
	for i := range aabbs {
		poses[i] = vec3d{rand.Float64() * 1e4, rand.Float64() * 1e4, rand.Float64() * 1e4}
		aabbs[i] = aabb3d{Lower: poses[i], Upper: poses[i]}.Inflate(size)
	}
	var tree tree3d
	for i, v := range aabbs {
		tree.Insert(v, i)
	}
	b.ResetTimer()

	for _, v := range poses {
		tree.Find(TouchBound(FromPoints(v)), func(*Node[float64, aabb3d, int]) bool { return true })
	}
}
