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

// BVH дерево з вставкою по SAH (surface area heuristic).
// У broad phase воно не основний алгоритм: ним перевіряємо
// sort-and-sweep, бо обидва мають давати однакову множину пар.

package bvh

import (
	"container/heap"
	"fmt"
)

// Bound - обмежувальний об'єм, який можна зберігати в дереві
type Bound[I Number, B any] interface {
	Union(B) B
	Surface() I
}

// Node - вузол BVH дерева. Value має сенс тільки в листах.
type Node[I Number, B Bound[I, B], V any] struct {
	Box      B
	Value    V
	parent   *Node[I, B, V]
	children [2]*Node[I, B, V]
	isLeaf   bool
}

func (n *Node[I, B, V]) findAnotherChild(not *Node[I, B, V]) *Node[I, B, V] {
	switch not {
	case n.children[0]:
		return n.children[1]
	case n.children[1]:
		return n.children[0]
	}
	panic("bvh: node is not a child of its parent")
}

func (n *Node[I, B, V]) findChildPointer(child *Node[I, B, V]) **Node[I, B, V] {
	switch child {
	case n.children[0]:
		return &n.children[0]
	case n.children[1]:
		return &n.children[1]
	}
	panic("bvh: node is not a child of its parent")
}

// Tree - BVH дерево. Нульове значення готове до використання.
type Tree[I Number, B Bound[I, B], V any] struct {
	root *Node[I, B, V]
	size int
}

// Len повертає кількість листів
func (t *Tree[I, B, V]) Len() int { return t.size }

// Insert додає новий лист в дерево:
// 1. шукаємо сусіда з найменшою вартістю (branch and bound по купі)
// 2. створюємо батьківський вузол для сусіда і листа
// 3. оновлюємо об'єми вгору по дереву, пробуючи ротації
func (t *Tree[I, B, V]) Insert(leaf B, value V) *Node[I, B, V] {
	n := &Node[I, B, V]{Box: leaf, Value: value, isLeaf: true}
	t.size++
	if t.root == nil {
		t.root = n
		return n
	}

	sibling := t.root
	parentTo := &t.root
	bestCost := t.root.Box.Union(leaf).Surface()
	leafCost := leaf.Surface()

	queue := searchHeap[I, Node[I, B, V]]{{pointer: t.root, parentTo: &t.root}}
	for queue.Len() > 0 {
		p := heap.Pop(&queue).(searchItem[I, Node[I, B, V]])
		merged := p.pointer.Box.Union(leaf).Surface()
		if cost := p.inheritedCost + merged; cost <= bestCost {
			bestCost = cost
			sibling = p.pointer
			parentTo = p.parentTo
		}
		inherited := p.inheritedCost + merged - p.pointer.Box.Surface()
		if p.pointer.isLeaf || inherited+leafCost >= bestCost {
			continue
		}
		for k := range p.pointer.children {
			heap.Push(&queue, searchItem[I, Node[I, B, V]]{
				pointer:       p.pointer.children[k],
				parentTo:      &p.pointer.children[k],
				inheritedCost: inherited,
			})
		}
	}

	*parentTo = &Node[I, B, V]{
		Box:      sibling.Box.Union(leaf),
		parent:   sibling.parent,
		children: [2]*Node[I, B, V]{sibling, n},
	}
	n.parent = *parentTo
	sibling.parent = *parentTo

	for p := *parentTo; p != nil; p = p.parent {
		p.Box = p.children[0].Box.Union(p.children[1].Box)
		t.rotate(p)
	}
	return n
}

// rotate міняє місцями брата вузла з одним з його дітей,
// якщо це зменшує площу вузла
func (t *Tree[I, B, V]) rotate(n *Node[I, B, V]) {
	if n.isLeaf || n.parent == nil {
		return
	}
	sibling := n.parent.findAnotherChild(n)
	current := n.Box.Surface()
	for k := range n.children {
		keep, moved := n.children[1-k], n.children[k]
		if keep.Box.Union(sibling.Box).Surface() >= current {
			continue
		}
		*n.parent.findChildPointer(sibling) = moved
		moved.parent = n.parent
		n.children[k] = sibling
		sibling.parent = n
		n.Box = n.children[0].Box.Union(n.children[1].Box)
		return
	}
}

// Find walks every leaf whose bound passes test. Internal nodes failing
// test are pruned, so test must be monotone: if a bound passes, every
// bound containing it passes too. foreach returning false stops the walk.
func (t *Tree[I, B, V]) Find(test func(bound B) bool, foreach func(n *Node[I, B, V]) bool) {
	if t.root == nil {
		return
	}
	stack := []*Node[I, B, V]{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !test(n.Box) {
			continue
		}
		if n.isLeaf {
			if !foreach(n) {
				return
			}
			continue
		}
		stack = append(stack, n.children[1], n.children[0])
	}
}

// String повертає текстове представлення дерева
func (t *Tree[I, B, V]) String() string {
	if t.root == nil {
		return "{}"
	}
	return t.root.String()
}

// String повертає текстове представлення вузла
func (n *Node[I, B, V]) String() string {
	if n.isLeaf {
		return fmt.Sprint(n.Value)
	}
	return fmt.Sprintf("{%v, %v}", n.children[0], n.children[1])
}

// TouchBound створює функцію для пошуку об'ємів, що перетинаються з іншим
func TouchBound[B interface{ Touch(B) bool }](other B) func(bound B) bool {
	return func(bound B) bool {
		return bound.Touch(other)
	}
}

type (
	searchHeap[I Number, V any] []searchItem[I, V]
	searchItem[I Number, V any] struct {
		pointer       *V
		parentTo      **V
		inheritedCost I
	}
)

func (h searchHeap[I, V]) Len() int           { return len(h) }
func (h searchHeap[I, V]) Less(i, j int) bool { return h[i].inheritedCost < h[j].inheritedCost }
func (h searchHeap[I, V]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *searchHeap[I, V]) Push(x any)        { *h = append(*h, x.(searchItem[I, V])) }
func (h *searchHeap[I, V]) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
