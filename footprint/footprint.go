// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

// Package footprint describes the in-memory size of data structures as a tree
// of named components.
package footprint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/docker/go-units"
)

// MemoryFootprint is the size of a component in bytes, excluding the size of
// its children, together with the footprints of the named children.
type MemoryFootprint struct {
	value    uintptr
	children map[string]*MemoryFootprint
	note     string
}

// New creates a new [MemoryFootprint] with the given own size and no children.
func New(value uintptr) *MemoryFootprint {
	return &MemoryFootprint{
		value:    value,
		children: map[string]*MemoryFootprint{},
	}
}

// AddChild attaches a named child footprint. A child attached several times,
// anywhere in the tree, is only counted once by [MemoryFootprint.Total].
func (mf *MemoryFootprint) AddChild(name string, child *MemoryFootprint) {
	if child != nil {
		mf.children[name] = child
	}
}

// SetNote attaches a free-form annotation printed next to this component.
func (mf *MemoryFootprint) SetNote(note string) {
	mf.note = note
}

// Value returns the own size of this component, excluding its children.
func (mf *MemoryFootprint) Value() uintptr {
	return mf.value
}

// Total returns the size of this component including all of its children.
func (mf *MemoryFootprint) Total() uintptr {
	return mf.total(map[*MemoryFootprint]struct{}{})
}

func (mf *MemoryFootprint) total(visited map[*MemoryFootprint]struct{}) uintptr {
	if _, seen := visited[mf]; seen {
		return 0
	}
	visited[mf] = struct{}{}
	sum := mf.value
	for _, child := range mf.children {
		sum += child.total(visited)
	}
	return sum
}

// String renders the footprint as one line per component, children first,
// each with its total size and slash-separated path.
func (mf *MemoryFootprint) String() string {
	var b strings.Builder
	mf.write(&b, ".")
	return b.String()
}

func (mf *MemoryFootprint) write(b *strings.Builder, path string) {
	names := make([]string, 0, len(mf.children))
	for name := range mf.children {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		mf.children[name].write(b, path+"/"+name)
	}

	fmt.Fprintf(b, "%10s %s", units.BytesSize(float64(mf.Total())), path)
	if mf.note != "" {
		fmt.Fprintf(b, " (%s)", mf.note)
	}
	b.WriteByte('\n')
}
