// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

// Package xorlist implements a doubly linked list whose nodes store a single
// link field: the exclusive-or of the identities of their two neighbours. A
// traversal recovers the next node by XOR-ing that field with the identity of
// the node it just left, which works identically in both directions.
//
// Nodes live in an arena and are identified by small integer handles, which
// keeps the link field a plain integer without hiding references from the
// garbage collector.
//
// A [List] is owned by a single goroutine; it performs no locking. Lists
// returned by [List.SplitOff] share their storage with the source list and
// must be owned by the same goroutine as it.
//
// The zero value of [List] is an empty list ready to use:
//
//	var l xorlist.List[int]
//	l.PushBack(1)
//	l.PushFront(0)
//	for v := range l.Values() {
//		...
//	}
package xorlist

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/DataDog/xorlist-go/footprint"
	"github.com/DataDog/xorlist-go/xorlist/internal/arena"
)

// List is a doubly linked list of values of type T using XOR-combined links.
type List[T any] struct {
	head    arena.Handle    // First node, or arena.Nil when empty
	tail    arena.Handle    // Last node, or arena.Nil when empty
	len     int             // Number of nodes in the list
	nodes   *arena.Arena[T] // Node storage, allocated on first insertion
	version uint64          // Bumped by every structural mutation
}

// New creates a new, empty [List].
func New[T any]() *List[T] {
	return &List[T]{}
}

// From creates a new [List] holding the provided values, in order.
func From[T any](values ...T) *List[T] {
	l := New[T]()
	for _, v := range values {
		l.PushBack(v)
	}
	return l
}

// Len returns the number of values in the list.
func (l *List[T]) Len() int {
	return l.len
}

// Empty returns true if the list holds no value.
func (l *List[T]) Empty() bool {
	return l.head == arena.Nil
}

// PushBack appends value at the back of the list and returns a pointer to the
// stored copy, which remains valid until that value is removed from the list.
func (l *List[T]) PushBack(value T) *T {
	node := l.alloc(value)
	if l.tail == arena.Nil {
		l.head = node
	} else {
		l.nodes.SetLink(node, l.tail)
		l.nodes.Toggle(l.tail, node)
	}
	l.tail = node
	l.len++
	return l.nodes.Value(node)
}

// PushFront prepends value at the front of the list and returns a pointer to
// the stored copy, which remains valid until that value is removed from the
// list.
func (l *List[T]) PushFront(value T) *T {
	node := l.alloc(value)
	if l.head == arena.Nil {
		l.tail = node
	} else {
		l.nodes.SetLink(node, l.head)
		l.nodes.Toggle(l.head, node)
	}
	l.head = node
	l.len++
	return l.nodes.Value(node)
}

// PopFront removes the first value of the list and returns it. The boolean is
// false if the list was empty.
func (l *List[T]) PopFront() (T, bool) {
	if l.head == arena.Nil {
		var zero T
		return zero, false
	}
	node := l.head
	l.head = l.unlinkEnd(node)
	if l.head == arena.Nil {
		l.tail = arena.Nil
	}
	return l.nodes.Free(node), true
}

// PopBack removes the last value of the list and returns it. The boolean is
// false if the list was empty.
func (l *List[T]) PopBack() (T, bool) {
	if l.tail == arena.Nil {
		var zero T
		return zero, false
	}
	node := l.tail
	l.tail = l.unlinkEnd(node)
	if l.tail == arena.Nil {
		l.head = arena.Nil
	}
	return l.nodes.Free(node), true
}

// Front returns the first value of the list. The boolean is false if the list
// is empty.
func (l *List[T]) Front() (T, bool) {
	if p := l.FrontPtr(); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// Back returns the last value of the list. The boolean is false if the list is
// empty.
func (l *List[T]) Back() (T, bool) {
	if p := l.BackPtr(); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// FrontPtr returns a pointer to the first value of the list, or nil if the
// list is empty. Writes through the pointer update the list in place.
func (l *List[T]) FrontPtr() *T {
	if l.head == arena.Nil {
		return nil
	}
	return l.nodes.Value(l.head)
}

// BackPtr returns a pointer to the last value of the list, or nil if the list
// is empty. Writes through the pointer update the list in place.
func (l *List[T]) BackPtr() *T {
	if l.tail == arena.Nil {
		return nil
	}
	return l.nodes.Value(l.tail)
}

// Clear removes every value from the list, releasing each node in turn.
func (l *List[T]) Clear() {
	detached := List[T]{head: l.head, tail: l.tail, len: l.len, nodes: l.nodes}
	l.head, l.tail, l.len = arena.Nil, arena.Nil, 0
	l.version++
	for {
		if _, ok := detached.PopFront(); !ok {
			return
		}
	}
}

// Append moves all values of other to the back of l, leaving other empty.
// When both lists share their storage (as lists obtained from
// [List.SplitOff] do), this takes constant time; otherwise the values of
// other are moved one by one.
func (l *List[T]) Append(other *List[T]) {
	if other == l {
		panic("xorlist: cannot append a list to itself")
	}

	switch {
	case l.tail == arena.Nil:
		l.swap(other)
		l.version++
		other.version++

	case other.head == arena.Nil:
		// Nothing to move

	case l.nodes == other.nodes:
		l.nodes.Toggle(l.tail, other.head)
		l.nodes.Toggle(other.head, l.tail)
		l.tail = other.tail
		l.len += other.len
		other.head, other.tail, other.len = arena.Nil, arena.Nil, 0
		l.version++
		other.version++

	default:
		for {
			v, ok := other.PopFront()
			if !ok {
				break
			}
			l.PushBack(v)
		}
	}
}

// SplitOff splits the list in two at the given index: l retains the values at
// positions [0, at) and the returned list holds those at [at, Len()). It
// panics if at is negative or greater than [List.Len]. The returned list
// shares its storage with l.
func (l *List[T]) SplitOff(at int) *List[T] {
	if at < 0 || at > l.len {
		panic(fmt.Sprintf("xorlist: SplitOff index %d out of range [0, %d]", at, l.len))
	}

	split := &List[T]{nodes: l.nodes}
	switch at {
	case 0:
		l.swap(split)
		l.version++
		return split
	case l.len:
		return split
	}

	var beforeSplit arena.Handle
	node := l.head
	for range at {
		node, beforeSplit = l.nodes.Next(node, beforeSplit), node
	}

	l.nodes.Toggle(beforeSplit, node)
	l.nodes.Toggle(node, beforeSplit)

	split.head, split.tail, split.len = node, l.tail, l.len-at
	l.tail, l.len = beforeSplit, at
	l.version++

	return split
}

// Contains reports whether value is present in the list.
func Contains[T comparable](l *List[T], value T) bool {
	return l.ContainsFunc(func(v T) bool { return v == value })
}

// ContainsFunc reports whether at least one value of the list satisfies pred.
func (l *List[T]) ContainsFunc(pred func(T) bool) bool {
	for v := range l.Values() {
		if pred(v) {
			return true
		}
	}
	return false
}

// Slice returns the values of the list, in order, as a new slice.
func (l *List[T]) Slice() []T {
	res := make([]T, 0, l.len)
	for v := range l.Values() {
		res = append(res, v)
	}
	return res
}

// String formats the list as its values in order, like a slice.
func (l *List[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range l.All() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, v)
	}
	b.WriteByte(']')
	return b.String()
}

// GetMemoryFootprint provides the size of the list in memory in bytes. Storage
// shared with other lists is reported in full by each of them.
func (l *List[T]) GetMemoryFootprint() *footprint.MemoryFootprint {
	mf := footprint.New(unsafe.Sizeof(*l))
	if l.nodes != nil {
		nodes := l.nodes.GetMemoryFootprint()
		nodes.SetNote(fmt.Sprintf("%d nodes, %d of them in this list", l.nodes.Live(), l.len))
		mf.AddChild("arena", nodes)
	}
	return mf
}

// alloc stores value in a new, unlinked node.
func (l *List[T]) alloc(value T) arena.Handle {
	if l.nodes == nil {
		l.nodes = arena.New[T]()
	}
	l.version++
	return l.nodes.Alloc(value)
}

// unlinkEnd detaches the end node from its only neighbour and returns that
// neighbour, which is arena.Nil if node was the last one in the list.
func (l *List[T]) unlinkEnd(node arena.Handle) arena.Handle {
	neighbour := l.nodes.Next(node, arena.Nil)
	if neighbour != arena.Nil {
		l.nodes.Toggle(neighbour, node)
	}
	l.len--
	l.version++
	return neighbour
}

// swap exchanges the contents of l and other.
func (l *List[T]) swap(other *List[T]) {
	l.head, other.head = other.head, l.head
	l.tail, other.tail = other.tail, l.tail
	l.len, other.len = other.len, l.len
	l.nodes, other.nodes = other.nodes, l.nodes
}
