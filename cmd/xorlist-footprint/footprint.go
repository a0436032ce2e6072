// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package main

import (
	"container/list"
	"context"
	"fmt"
	"math"
	"strconv"
	"unsafe"

	"github.com/DataDog/xorlist-go/log"
	"github.com/DataDog/xorlist-go/xorlist"
	"github.com/docker/go-units"
	"github.com/olekukonko/tablewriter"
	"github.com/pbnjay/memory"
	"github.com/urfave/cli/v2"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

var FootprintCmd = cli.Command{
	Action: doFootprint,
	Name:   "footprint",
	Usage:  "reports the memory held by lists of int of various sizes",
	Flags: []cli.Flag{
		&sizesFlag,
		&parallelismFlag,
	},
}

type footprintResult struct {
	size uint64
	xor  uintptr
	std  uintptr
}

func doFootprint(c *cli.Context) error {
	cfg := newConfig(c)
	if err := checkMemory(cfg.Sizes); err != nil {
		return err
	}

	results := make([]footprintResult, len(cfg.Sizes))
	nodes := atomic.NewInt64(0)
	err := forEachSize(c.Context, cfg, func(_ context.Context, i int, size int) error {
		l := xorlist.New[int]()
		for v := range size {
			l.PushBack(v)
		}
		nodes.Add(int64(l.Len()))
		results[i] = footprintResult{
			size: uint64(size),
			xor:  l.GetMemoryFootprint().Total(),
			std:  stdListFootprint(size),
		}
		return nil
	})
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(c.App.Writer)
	table.SetHeader([]string{"size", "xorlist", "container/list", "ratio"})
	for _, r := range results {
		table.Append([]string{
			strconv.FormatUint(r.size, 10),
			units.BytesSize(float64(r.xor)),
			units.BytesSize(float64(r.std)),
			fmt.Sprintf("%.2f", float64(r.xor)/float64(r.std)),
		})
	}
	table.Render()

	log.Info("xorlist-footprint: measured %d nodes across %d lists", nodes.Load(), len(results))
	return nil
}

// stdElementSize is the memory held per value by a container/list of ints:
// the element plus the boxed value behind its interface.
const stdElementSize = unsafe.Sizeof(list.Element{}) + unsafe.Sizeof(int(0))

// maxSize is the largest size whose footprint estimate fits in a uintptr.
const maxSize = (math.MaxUint - unsafe.Sizeof(list.List{})) / stdElementSize

// stdListFootprint estimates the memory held by a container/list holding size
// ints. size must not exceed maxSize.
func stdListFootprint(size int) uintptr {
	return unsafe.Sizeof(list.List{}) + uintptr(size)*stdElementSize
}

// checkMemory refuses sizes whose lists could not comfortably fit in memory.
func checkMemory(sizes []int) error {
	for _, size := range sizes {
		if uint64(size) > uint64(maxSize) {
			return log.Errorf("xorlist-footprint: size %d is too large, the maximum is %d", size, uint64(maxSize))
		}
	}

	limit := memory.TotalMemory() / 2
	if limit == 0 {
		// Total memory could not be determined on this platform.
		return nil
	}
	for _, size := range sizes {
		if need := uint64(stdListFootprint(size)); need > limit {
			return log.Errorf("xorlist-footprint: size %d needs about %s, more than half of the %s of system memory",
				size, units.BytesSize(float64(need)), units.BytesSize(float64(memory.TotalMemory())))
		}
	}
	return nil
}

// forEachSize calls fn for every configured size, running up to
// cfg.Parallelism calls concurrently. Each call owns the lists it builds.
func forEachSize(ctx context.Context, cfg config, fn func(ctx context.Context, i int, size int) error) error {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(cfg.Parallelism)
	for i, size := range cfg.Sizes {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(ctx, i, size)
		})
	}
	return group.Wait()
}
