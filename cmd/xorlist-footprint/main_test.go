// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package main

import (
	"bytes"
	"container/list"
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
	"unsafe"

	"github.com/DataDog/xorlist-go/xorlist"
	"github.com/pbnjay/memory"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func runApp(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	require.NoError(t, app.Run(append([]string{"xorlist-footprint"}, args...)))
	return out.String()
}

// tableRows counts the header and body rows of a rendered table.
func tableRows(out string) int {
	var rows int
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "|") {
			rows++
		}
	}
	return rows
}

func TestFootprintCmd(t *testing.T) {
	out := runApp(t, "footprint", "--sizes", "10,100", "--parallelism", "2")
	require.Contains(t, out, "CONTAINER/LIST")
	require.Contains(t, out, "100 |")
	require.Equal(t, 3, tableRows(out))
}

func TestRoundtripCmd(t *testing.T) {
	t.Run("Flags", func(t *testing.T) {
		out := runApp(t, "roundtrip", "--sizes", "1,2,257")
		require.Contains(t, out, "POP BACK")
		require.Equal(t, 3, strings.Count(out, "| xorlist "))
		require.Equal(t, 7, tableRows(out))
	})

	t.Run("Env", func(t *testing.T) {
		t.Setenv(envSizes, "3")
		out := runApp(t, "roundtrip")
		require.Equal(t, 1, strings.Count(out, "| xorlist "))
		require.Equal(t, 3, tableRows(out))
	})
}

func TestRoundtripXor(t *testing.T) {
	for _, size := range []int{1, 2, 3, 255, 256, 257, 1000} {
		_, _, _, err := roundtripXor(size)
		require.NoError(t, err, "size %d", size)
	}
}

func TestCheckOrder(t *testing.T) {
	require.NoError(t, checkOrder(xorlist.From(0, 1, 2)))
	require.EqualError(t, checkOrder(xorlist.From(0, 2, 1)), "forward walk yielded 2 at position 1")
	require.EqualError(t, checkOrder(xorlist.From(1)), "forward walk yielded 1 at position 0")
}

func TestRoundtripFailure(t *testing.T) {
	mismatch := errors.New("front drain yielded 7 at position 3")
	defer func(orig func(int) (time.Duration, time.Duration, time.Duration, error)) { xorRoundtrip = orig }(xorRoundtrip)
	xorRoundtrip = func(size int) (time.Duration, time.Duration, time.Duration, error) {
		if size == 20 {
			return 0, 0, 0, mismatch
		}
		return roundtripXor(size)
	}

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run([]string{"xorlist-footprint", "roundtrip", "--sizes", "10,20", "--parallelism", "1"})
	require.ErrorIs(t, err, mismatch)
	require.EqualError(t, err, "xorlist-footprint: size 20: front drain yielded 7 at position 3")
	require.NotContains(t, err.Error(), "%!w")
	require.Zero(t, tableRows(out.String()))
}

func TestValidateConfig(t *testing.T) {
	for _, tc := range []struct {
		name        string
		sizes       []int
		parallelism int
		expected    config
	}{
		{
			name:        "valid",
			sizes:       []int{5, 50},
			parallelism: 3,
			expected:    config{Sizes: []int{5, 50}, Parallelism: 3},
		},
		{
			name:        "non-positive-sizes",
			sizes:       []int{-1, 0, 7},
			parallelism: 1,
			expected:    config{Sizes: []int{7}, Parallelism: 1},
		},
		{
			name:        "no-sizes",
			sizes:       []int{0},
			parallelism: 1,
			expected:    config{Sizes: defaultSizes, Parallelism: 1},
		},
		{
			name:        "parallelism",
			sizes:       []int{1},
			parallelism: 0,
			expected:    config{Sizes: []int{1}, Parallelism: defaultParallelism},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, validateConfig(tc.sizes, tc.parallelism))
		})
	}
}

func TestStdListFootprint(t *testing.T) {
	var v int
	base := unsafe.Sizeof(list.List{})
	require.Equal(t, base, stdListFootprint(0))
	require.Equal(t, base+10*(unsafe.Sizeof(list.Element{})+unsafe.Sizeof(v)), stdListFootprint(10))
}

func TestCheckMemory(t *testing.T) {
	t.Run("Small", func(t *testing.T) {
		require.NoError(t, checkMemory([]int{1, 1000}))
	})

	t.Run("Overflow", func(t *testing.T) {
		require.Error(t, checkMemory([]int{10, math.MaxInt}))
		require.Error(t, checkMemory([]int{int(maxSize) + 1}))
	})

	t.Run("SystemMemory", func(t *testing.T) {
		total := memory.TotalMemory()
		if total == 0 {
			t.Skip("total memory is unknown on this platform")
		}
		size := int(total / uint64(stdElementSize))
		require.LessOrEqual(t, uint64(size), uint64(maxSize))
		require.ErrorContains(t, checkMemory([]int{size}), "of system memory")
	})
}

func TestForEachSize(t *testing.T) {
	t.Run("Visits", func(t *testing.T) {
		cfg := config{Sizes: []int{1, 2, 3, 4}, Parallelism: 2}
		sum := atomic.NewInt64(0)
		seen := make([]int, len(cfg.Sizes))
		err := forEachSize(context.Background(), cfg, func(_ context.Context, i int, size int) error {
			sum.Add(int64(size))
			seen[i] = size
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, int64(10), sum.Load())
		require.Equal(t, cfg.Sizes, seen)
	})

	t.Run("Error", func(t *testing.T) {
		boom := errors.New("boom")
		cfg := config{Sizes: []int{1, 2, 3}, Parallelism: 1}
		err := forEachSize(context.Background(), cfg, func(_ context.Context, _ int, size int) error {
			if size == 2 {
				return boom
			}
			return nil
		})
		require.ErrorIs(t, err, boom)
	})
}
