// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2022-present Datadog, Inc.

// Package log is a thin indirection over the logging facility used by this
// module. By default messages are forwarded to the datadog-agent logger; a
// different [Backend] can be installed with [SetBackend].
package log

import (
	ddlog "github.com/DataDog/datadog-agent/pkg/util/log"
	"go.uber.org/atomic"
)

// Backend is the set of logging functions used by this package. Fields left
// nil when passed to [SetBackend] fall back to the default implementation.
type Backend struct {
	Trace     func(string, ...any)
	Debug     func(string, ...any)
	Info      func(string, ...any)
	Warn      func(string, ...any)
	Errorf    func(string, ...any) error
	Criticalf func(string, ...any) error
}

var (
	defaultBackend = Backend{
		Trace:     ddlog.Tracef,
		Debug:     ddlog.Debugf,
		Info:      ddlog.Infof,
		Warn:      func(format string, args ...any) { _ = ddlog.Warnf(format, args...) },
		Errorf:    ddlog.Errorf,
		Criticalf: ddlog.Criticalf,
	}

	backend atomic.Pointer[Backend]
)

func init() {
	b := defaultBackend
	backend.Store(&b)
}

// SetBackend replaces the active logging backend.
func SetBackend(b Backend) {
	if b.Trace == nil {
		b.Trace = defaultBackend.Trace
	}
	if b.Debug == nil {
		b.Debug = defaultBackend.Debug
	}
	if b.Info == nil {
		b.Info = defaultBackend.Info
	}
	if b.Warn == nil {
		b.Warn = defaultBackend.Warn
	}
	if b.Errorf == nil {
		b.Errorf = defaultBackend.Errorf
	}
	if b.Criticalf == nil {
		b.Criticalf = defaultBackend.Criticalf
	}
	backend.Store(&b)
}

// Trace logs a message at trace level.
func Trace(format string, args ...any) {
	backend.Load().Trace(format, args...)
}

// Debug logs a message at debug level.
func Debug(format string, args ...any) {
	backend.Load().Debug(format, args...)
}

// Info logs a message at info level.
func Info(format string, args ...any) {
	backend.Load().Info(format, args...)
}

// Warn logs a message at warning level.
func Warn(format string, args ...any) {
	backend.Load().Warn(format, args...)
}

// Errorf logs a message at error level and returns it as an error.
func Errorf(format string, args ...any) error {
	return backend.Load().Errorf(format, args...)
}

// Criticalf logs a message at critical level and returns it as an error.
func Criticalf(format string, args ...any) error {
	return backend.Load().Criticalf(format, args...)
}
