// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

// Package arena provides the node storage backing XOR-linked lists. Nodes are
// addressed by small integer [Handle] values instead of pointers, so that the
// exclusive-or of two neighbours' identities can be stored in a single link
// field without hiding references from the garbage collector.
//
// Slots are kept in fixed-size pages that are never reallocated, so a pointer
// to a live node's value remains valid until that node is freed. Freed slots
// are threaded onto a recycle chain through their link field and handed out
// again by later allocations.
package arena

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/DataDog/xorlist-go/footprint"
	"github.com/DataDog/xorlist-go/log"
)

const (
	pageShift = 8              // log2 of the number of slots per page
	pageItems = 1 << pageShift // Number of slots per page
	pageMask  = pageItems - 1  // Mask selecting the slot position within a page
)

type (
	// Handle is the identity of a node within an [Arena]. The zero value, [Nil],
	// never denotes a node.
	Handle uint32

	// Arena stores nodes holding values of type T. It is not safe for
	// concurrent use.
	Arena[T any] struct {
		pages [][]slot[T] // Slot pages, each holding exactly pageItems slots
		next  Handle      // Lowest handle that was never allocated
		free  Handle      // Head of the recycle chain of freed slots
		live  int         // Number of currently allocated slots
	}

	// slot is a single node: a value and the XOR of its neighbours' handles.
	slot[T any] struct {
		value T
		link  Handle
	}
)

// Nil is the "no neighbour" sentinel handle.
const Nil Handle = 0

// New creates a new, empty [Arena].
func New[T any]() *Arena[T] {
	// Handle 0 is reserved for [Nil], so allocation starts at 1.
	return &Arena[T]{next: 1}
}

// Alloc stores value in a fresh node whose link is [Nil] and returns its
// handle.
func (a *Arena[T]) Alloc(value T) Handle {
	var h Handle
	if a.free != Nil {
		h = a.free
		a.free = a.slot(h).link
	} else {
		if a.next == math.MaxUint32 {
			panic("arena: handle space exhausted")
		}
		h = a.next
		a.next++
		if page := int(h >> pageShift); page >= len(a.pages) {
			a.pages = append(a.pages, make([]slot[T], pageItems))
			log.Trace("arena: allocated page %d (%d slots)", page, len(a.pages)*pageItems)
		}
	}

	s := a.slot(h)
	s.value = value
	s.link = Nil
	a.live++
	return h
}

// Free releases the node identified by h and returns the value it held. The
// caller must ensure no link still encodes h.
func (a *Arena[T]) Free(h Handle) T {
	if h == Nil {
		panic("arena: free of nil handle")
	}
	s := a.slot(h)
	value := s.value

	var zero T
	s.value = zero
	s.link = a.free
	a.free = h
	a.live--

	return value
}

// Value returns a pointer to the value held by the node identified by h.
func (a *Arena[T]) Value(h Handle) *T {
	return &a.slot(h).value
}

// Link returns the link field of the node identified by h.
func (a *Arena[T]) Link(h Handle) Handle {
	return a.slot(h).link
}

// SetLink overwrites the link field of the node identified by h.
func (a *Arena[T]) SetLink(h Handle, link Handle) {
	a.slot(h).link = link
}

// Toggle folds other into the link field of the node identified by h. Since
// XOR is its own inverse, this both adds and removes a neighbour.
func (a *Arena[T]) Toggle(h Handle, other Handle) {
	a.slot(h).link ^= other
}

// Next decodes the neighbour of h that is not prev. Walking forward, prev is
// the node just left behind on the head side; walking backward it is the node
// just left behind on the tail side. Passing [Nil] as prev from an end node
// yields its only neighbour, or [Nil] for a lone node.
func (a *Arena[T]) Next(h Handle, prev Handle) Handle {
	return a.slot(h).link ^ prev
}

// Live returns the number of currently allocated nodes.
func (a *Arena[T]) Live() int {
	return a.live
}

// Pages returns the number of slot pages currently held.
func (a *Arena[T]) Pages() int {
	return len(a.pages)
}

// GetMemoryFootprint provides the size of the arena in memory in bytes.
func (a *Arena[T]) GetMemoryFootprint() *footprint.MemoryFootprint {
	slotSize := unsafe.Sizeof(slot[T]{})
	pageTable := uintptr(cap(a.pages)) * unsafe.Sizeof([]slot[T](nil))
	mf := footprint.New(unsafe.Sizeof(*a) + pageTable)
	mf.AddChild("pages", footprint.New(uintptr(len(a.pages)*pageItems)*slotSize))
	return mf
}

// String returns a short description of the arena's occupancy.
func (a *Arena[T]) String() string {
	return fmt.Sprintf("arena{live: %d, pages: %d}", a.live, len(a.pages))
}

// slot returns the slot identified by h.
func (a *Arena[T]) slot(h Handle) *slot[T] {
	return &a.pages[h>>pageShift][h&pageMask]
}
