// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package xorlist

import (
	"container/list"
	"fmt"
	"testing"
)

var benchmarkSizes = []int{1_000, 10_000, 100_000}

func BenchmarkPushFront(b *testing.B) {
	for _, n := range benchmarkSizes {
		b.Run(fmt.Sprintf("xor/%d", n), func(b *testing.B) {
			for range b.N {
				l := New[int]()
				for i := range n {
					l.PushFront(i)
				}
			}
		})
		b.Run(fmt.Sprintf("std/%d", n), func(b *testing.B) {
			for range b.N {
				l := list.New()
				for i := range n {
					l.PushFront(i)
				}
			}
		})
	}
}

func BenchmarkPushBack(b *testing.B) {
	for _, n := range benchmarkSizes {
		b.Run(fmt.Sprintf("xor/%d", n), func(b *testing.B) {
			for range b.N {
				l := New[int]()
				for i := range n {
					l.PushBack(i)
				}
			}
		})
		b.Run(fmt.Sprintf("std/%d", n), func(b *testing.B) {
			for range b.N {
				l := list.New()
				for i := range n {
					l.PushBack(i)
				}
			}
		})
	}
}

func BenchmarkPopFront(b *testing.B) {
	for _, n := range benchmarkSizes {
		b.Run(fmt.Sprintf("xor/%d", n), func(b *testing.B) {
			for range b.N {
				b.StopTimer()
				l := New[int]()
				for i := range n {
					l.PushBack(i)
				}
				b.StartTimer()
				for _, ok := l.PopFront(); ok; _, ok = l.PopFront() {
				}
			}
		})
		b.Run(fmt.Sprintf("std/%d", n), func(b *testing.B) {
			for range b.N {
				b.StopTimer()
				l := list.New()
				for i := range n {
					l.PushBack(i)
				}
				b.StartTimer()
				for e := l.Front(); e != nil; e = l.Front() {
					l.Remove(e)
				}
			}
		})
	}
}

func BenchmarkPopBack(b *testing.B) {
	for _, n := range benchmarkSizes {
		b.Run(fmt.Sprintf("xor/%d", n), func(b *testing.B) {
			for range b.N {
				b.StopTimer()
				l := New[int]()
				for i := range n {
					l.PushBack(i)
				}
				b.StartTimer()
				for _, ok := l.PopBack(); ok; _, ok = l.PopBack() {
				}
			}
		})
		b.Run(fmt.Sprintf("std/%d", n), func(b *testing.B) {
			for range b.N {
				b.StopTimer()
				l := list.New()
				for i := range n {
					l.PushBack(i)
				}
				b.StartTimer()
				for e := l.Back(); e != nil; e = l.Back() {
					l.Remove(e)
				}
			}
		})
	}
}

func BenchmarkIterate(b *testing.B) {
	l := New[int]()
	for i := range 100_000 {
		l.PushBack(i)
	}
	b.ResetTimer()
	for range b.N {
		sum := 0
		for v := range l.Values() {
			sum += v
		}
		_ = sum
	}
}
