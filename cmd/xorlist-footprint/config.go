// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

package main

import (
	"runtime"

	"github.com/DataDog/xorlist-go/log"
	"github.com/urfave/cli/v2"
)

// Configuration environment variables
const (
	envSizes       = "XORLIST_SIZES"
	envParallelism = "XORLIST_PARALLELISM"
)

var (
	defaultSizes       = []int{1_000, 10_000, 100_000, 1_000_000}
	defaultParallelism = runtime.GOMAXPROCS(0)

	sizesFlag = cli.IntSliceFlag{
		Name:    "sizes",
		Usage:   "list sizes to measure",
		EnvVars: []string{envSizes},
		Value:   cli.NewIntSlice(defaultSizes...),
	}
	parallelismFlag = cli.IntFlag{
		Name:    "parallelism",
		Usage:   "maximum number of sizes measured concurrently",
		EnvVars: []string{envParallelism},
		Value:   defaultParallelism,
	}
)

// config holds the settings shared by all commands.
type config struct {
	Sizes       []int
	Parallelism int
}

// newConfig reads the configuration from the command line and environment.
func newConfig(c *cli.Context) config {
	return validateConfig(c.IntSlice(sizesFlag.Name), c.Int(parallelismFlag.Name))
}

// validateConfig drops unusable values, falling back to defaults where
// nothing usable remains.
func validateConfig(sizes []int, parallelism int) config {
	valid := make([]int, 0, len(sizes))
	for _, size := range sizes {
		if size <= 0 {
			log.Debug("xorlist-footprint: ignoring non-positive size %d", size)
			continue
		}
		valid = append(valid, size)
	}
	if len(valid) == 0 {
		log.Debug("xorlist-footprint: no valid size configured in %s. Defaulting to %v", envSizes, defaultSizes)
		valid = append(valid, defaultSizes...)
	}

	if parallelism < 1 {
		log.Debug("xorlist-footprint: %s value must be at least 1. Defaulting to %d", envParallelism, defaultParallelism)
		parallelism = defaultParallelism
	}

	return config{Sizes: valid, Parallelism: parallelism}
}
