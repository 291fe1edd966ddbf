// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package widehash

import "runtime"

type options struct {
	workers int
	lanes   int
	backend Backend
	logger  *Logger
}

func defaultOptions() options {
	return options{
		workers: runtime.GOMAXPROCS(0),
		lanes:   DefaultLanes,
		backend: ActiveBackend(),
		logger:  NoopLogger(),
	}
}

// Option configures an Engine.
type Option func(*options)

// WithWorkers bounds the goroutines used by fast hash batches.
// Values below 1 run batches on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.workers = n
	}
}

// WithLanes sets how many SHA-256 jobs advance together, 1..MaxLanes.
// The lane width changes throughput only.
func WithLanes(k int) Option {
	return func(o *options) {
		o.lanes = k
	}
}

// WithBackend forces a backend. Unavailable backends fall back to Generic.
func WithBackend(b Backend) Option {
	return func(o *options) {
		if !b.Available() {
			b = Generic
		}
		o.backend = b
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}
