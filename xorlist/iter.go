// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package xorlist

import (
	"iter"

	"github.com/DataDog/xorlist-go/xorlist/internal/arena"
)

type (
	// cursor walks a list from both ends through the link codec. Each end keeps
	// its own previously visited node, so forward and backward steps can be
	// interleaved freely; the two ends meet once remaining reaches zero.
	cursor[T any] struct {
		list      *List[T]
		front     arena.Handle // Next node to yield from the front
		frontPrev arena.Handle // Node last yielded from the front
		back      arena.Handle // Next node to yield from the back
		backPrev  arena.Handle // Node last yielded from the back
		remaining int          // Number of nodes not yet yielded
		version   uint64       // Version of list when the cursor was created
	}

	// Iter is a double-ended iterator over the values of a [List].
	//
	// The list must not be structurally modified (values pushed, popped, split
	// off, appended or cleared) while the iterator is in use; stepping an
	// iterator after such a modification panics.
	Iter[T any] struct {
		cursor[T]
	}

	// IterMut is a double-ended iterator over pointers to the values of a
	// [List], allowing them to be updated in place. It has the same
	// restrictions as [Iter].
	IterMut[T any] struct {
		cursor[T]
	}

	// IntoIter is a double-ended iterator that owns the values it yields,
	// removing each of them as it goes.
	IntoIter[T any] struct {
		list List[T]
	}
)

func newCursor[T any](l *List[T]) cursor[T] {
	return cursor[T]{
		list:      l,
		front:     l.head,
		back:      l.tail,
		remaining: l.len,
		version:   l.version,
	}
}

// stepFront returns the front node and advances past it, or arena.Nil once
// the cursor is exhausted.
func (c *cursor[T]) stepFront() arena.Handle {
	if c.remaining == 0 {
		return arena.Nil
	}
	c.check()
	node := c.front
	c.front, c.frontPrev = c.list.nodes.Next(node, c.frontPrev), node
	c.remaining--
	return node
}

// stepBack returns the back node and retreats past it, or arena.Nil once the
// cursor is exhausted.
func (c *cursor[T]) stepBack() arena.Handle {
	if c.remaining == 0 {
		return arena.Nil
	}
	c.check()
	node := c.back
	c.back, c.backPrev = c.list.nodes.Next(node, c.backPrev), node
	c.remaining--
	return node
}

func (c *cursor[T]) check() {
	if c.version != c.list.version {
		panic("xorlist: list modified during iteration")
	}
}

// Len returns the exact number of values the iterator has yet to yield. Like
// Next, it panics if the list was structurally modified while values remain.
func (c *cursor[T]) Len() int {
	if c.remaining > 0 {
		c.check()
	}
	return c.remaining
}

// Iter returns an [Iter] over the values of the list.
func (l *List[T]) Iter() *Iter[T] {
	return &Iter[T]{newCursor(l)}
}

// Next returns the next value from the front. The boolean is false once the
// iterator is exhausted, and stays false thereafter.
func (it *Iter[T]) Next() (T, bool) {
	return it.value(it.stepFront())
}

// NextBack returns the next value from the back. The boolean is false once
// the iterator is exhausted, and stays false thereafter.
func (it *Iter[T]) NextBack() (T, bool) {
	return it.value(it.stepBack())
}

func (it *Iter[T]) value(node arena.Handle) (T, bool) {
	if node == arena.Nil {
		var zero T
		return zero, false
	}
	return *it.list.nodes.Value(node), true
}

// IterMut returns an [IterMut] over pointers to the values of the list.
func (l *List[T]) IterMut() *IterMut[T] {
	return &IterMut[T]{newCursor(l)}
}

// Next returns a pointer to the next value from the front, or nil once the
// iterator is exhausted.
func (it *IterMut[T]) Next() *T {
	return it.value(it.stepFront())
}

// NextBack returns a pointer to the next value from the back, or nil once the
// iterator is exhausted.
func (it *IterMut[T]) NextBack() *T {
	return it.value(it.stepBack())
}

func (it *IterMut[T]) value(node arena.Handle) *T {
	if node == arena.Nil {
		return nil
	}
	return it.list.nodes.Value(node)
}

// IntoIter moves the values of the list into a new [IntoIter], leaving the
// list empty.
func (l *List[T]) IntoIter() *IntoIter[T] {
	it := &IntoIter[T]{}
	it.list.swap(l)
	l.version++
	return it
}

// Next removes and returns the value at the front.
func (it *IntoIter[T]) Next() (T, bool) {
	return it.list.PopFront()
}

// NextBack removes and returns the value at the back.
func (it *IntoIter[T]) NextBack() (T, bool) {
	return it.list.PopBack()
}

// Len returns the exact number of values the iterator has yet to yield.
func (it *IntoIter[T]) Len() int {
	return it.list.Len()
}

// Values returns an iterator over the values of the list, front to back.
func (l *List[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := l.Iter()
		for v, ok := it.Next(); ok; v, ok = it.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// All returns an iterator over the positions and values of the list, front to
// back.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		it := l.Iter()
		for i := 0; ; i++ {
			v, ok := it.Next()
			if !ok || !yield(i, v) {
				return
			}
		}
	}
}

// Backward returns an iterator over the positions and values of the list,
// back to front.
func (l *List[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		it := l.Iter()
		for i := l.len - 1; ; i-- {
			v, ok := it.NextBack()
			if !ok || !yield(i, v) {
				return
			}
		}
	}
}

// Pointers returns an iterator over pointers to the values of the list, front
// to back.
func (l *List[T]) Pointers() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		it := l.IterMut()
		for p := it.Next(); p != nil; p = it.Next() {
			if !yield(p) {
				return
			}
		}
	}
}

// Drain returns an iterator that removes and yields the values of the list,
// front to back. Values not consumed when iteration stops remain in the list.
func (l *List[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v, ok := l.PopFront(); ok; v, ok = l.PopFront() {
			if !yield(v) {
				return
			}
		}
	}
}

// Collect creates a new [List] holding the values of seq, in order.
func Collect[T any](seq iter.Seq[T]) *List[T] {
	l := New[T]()
	for v := range seq {
		l.PushBack(v)
	}
	return l
}
