// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package main

import (
	"container/list"
	"context"
	"fmt"
	"time"

	"github.com/DataDog/xorlist-go/log"
	"github.com/DataDog/xorlist-go/xorlist"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"go.uber.org/atomic"
)

var RoundtripCmd = cli.Command{
	Action: doRoundtrip,
	Name:   "roundtrip",
	Usage:  "fills and drains lists from both ends, verifying order and timing each phase",
	Flags: []cli.Flag{
		&sizesFlag,
		&parallelismFlag,
	},
}

// xorRoundtrip is replaced in tests to exercise the failure path.
var xorRoundtrip = roundtripXor

type roundtripResult struct {
	size int

	xorFill, xorFront, xorBack time.Duration
	stdFill, stdFront, stdBack time.Duration
}

func doRoundtrip(c *cli.Context) error {
	cfg := newConfig(c)
	if err := checkMemory(cfg.Sizes); err != nil {
		return err
	}

	results := make([]roundtripResult, len(cfg.Sizes))
	verified := atomic.NewInt64(0)
	err := forEachSize(c.Context, cfg, func(ctx context.Context, i int, size int) error {
		res := roundtripResult{size: size}

		var err error
		if res.xorFill, res.xorFront, res.xorBack, err = xorRoundtrip(size); err != nil {
			err = fmt.Errorf("xorlist-footprint: size %d: %w", size, err)
			_ = log.Errorf("%v", err)
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		res.stdFill, res.stdFront, res.stdBack = roundtripStd(size)

		verified.Add(int64(size))
		results[i] = res
		return nil
	})
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(c.App.Writer)
	table.SetHeader([]string{"size", "list", "fill", "pop front", "pop back"})
	for _, r := range results {
		size := fmt.Sprint(r.size)
		table.Append([]string{size, "xorlist", r.xorFill.String(), r.xorFront.String(), r.xorBack.String()})
		table.Append([]string{size, "container/list", r.stdFill.String(), r.stdFront.String(), r.stdBack.String()})
	}
	table.Render()

	log.Info("xorlist-footprint: verified ordering of %d values", verified.Load())
	return nil
}

// roundtripXor fills an XOR list with 0..size-1, checks it reads back the same
// both ways, then drains it once from the front and once from the back.
func roundtripXor(size int) (fill, front, back time.Duration, err error) {
	start := time.Now()
	l := xorlist.New[int]()
	for v := range size {
		l.PushBack(v)
	}
	fill = time.Since(start)

	if err := checkOrder(l); err != nil {
		return 0, 0, 0, err
	}

	// Splitting in the middle and joining again must preserve the order.
	tail := l.SplitOff(size / 2)
	l.Append(tail)
	if err := checkOrder(l); err != nil {
		return 0, 0, 0, fmt.Errorf("after split and append: %w", err)
	}

	start = time.Now()
	for want := 0; ; want++ {
		v, ok := l.PopFront()
		if !ok {
			if want != size {
				return 0, 0, 0, fmt.Errorf("front drain yielded %d values, want %d", want, size)
			}
			break
		}
		if v != want {
			return 0, 0, 0, fmt.Errorf("front drain yielded %d at position %d", v, want)
		}
	}
	front = time.Since(start)

	for v := range size {
		l.PushBack(v)
	}
	start = time.Now()
	for want := size - 1; ; want-- {
		v, ok := l.PopBack()
		if !ok {
			if want != -1 {
				return 0, 0, 0, fmt.Errorf("back drain stopped early, %d values missing", want+1)
			}
			break
		}
		if v != want {
			return 0, 0, 0, fmt.Errorf("back drain yielded %d, want %d", v, want)
		}
	}
	back = time.Since(start)

	return fill, front, back, nil
}

// checkOrder verifies l holds 0..Len()-1 when read from either end.
func checkOrder(l *xorlist.List[int]) error {
	it := l.Iter()
	for want := 0; it.Len() > 0; want++ {
		if v, _ := it.Next(); v != want {
			return fmt.Errorf("forward walk yielded %d at position %d", v, want)
		}
	}
	for i, v := range l.Backward() {
		if v != i {
			return fmt.Errorf("backward walk yielded %d at position %d", v, i)
		}
	}
	return nil
}

// roundtripStd performs the same fill and drains on a container/list.
func roundtripStd(size int) (fill, front, back time.Duration) {
	start := time.Now()
	l := list.New()
	for v := range size {
		l.PushBack(v)
	}
	fill = time.Since(start)

	start = time.Now()
	for e := l.Front(); e != nil; e = l.Front() {
		l.Remove(e)
	}
	front = time.Since(start)

	for v := range size {
		l.PushBack(v)
	}
	start = time.Now()
	for e := l.Back(); e != nil; e = l.Back() {
		l.Remove(e)
	}
	back = time.Since(start)

	return fill, front, back
}
