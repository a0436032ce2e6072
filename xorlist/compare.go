// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package xorlist

import "cmp"

// Equal reports whether both lists hold equal values in the same order.
func Equal[T comparable](a, b *List[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc reports whether both lists have the same length and eq holds for
// every pair of values at the same position. Lists of different lengths are
// never equal, and eq is not called for them.
func EqualFunc[T, U any](a *List[T], b *List[U], eq func(T, U) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	ia, ib := a.Iter(), b.Iter()
	for {
		x, ok := ia.Next()
		if !ok {
			return true
		}
		y, _ := ib.Next()
		if !eq(x, y) {
			return false
		}
	}
}

// Compare compares the values of both lists lexicographically, using
// [cmp.Compare] on each pair. A list that is a prefix of the other orders
// first. The result is 0 if a == b, -1 if a < b, and +1 if a > b.
func Compare[T cmp.Ordered](a, b *List[T]) int {
	return CompareFunc(a, b, cmp.Compare[T])
}

// CompareFunc is like [Compare] but uses a custom comparison function on each
// pair of values.
func CompareFunc[T, U any](a *List[T], b *List[U], cmp func(T, U) int) int {
	ia, ib := a.Iter(), b.Iter()
	for {
		x, okA := ia.Next()
		y, okB := ib.Next()
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return -1
		case !okB:
			return +1
		}
		if c := cmp(x, y); c != 0 {
			return c
		}
	}
}
