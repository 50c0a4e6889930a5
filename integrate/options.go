// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package integrate

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/born-ml/normint/tensor"
)

// Pad selects how gradient fields are extended before the transform.
type Pad string

// Supported pad modes.
const (
	// PadNone transforms the fields at their own size.
	PadNone Pad = ""
	// PadAntisym mirrors the fields to twice their size with antisymmetric
	// reflection before the transform.
	PadAntisym Pad = "antisym"
)

// Option configures an integration call.
type Option func(*config)

type config struct {
	pad     Pad
	workers int
	backend tensor.Backend
	log     logrus.FieldLogger
}

func newConfig(opts []Option) config {
	cfg := config{
		pad: PadNone,
		log: discardLogger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithPad sets the pad mode. The default is PadNone.
func WithPad(pad Pad) Option {
	return func(c *config) {
		c.pad = pad
	}
}

// WithWorkers passes a parallelism hint to the backend's FFTs. Values <= 0
// leave the choice to the backend. The hint never changes the result.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithBackend uses b instead of the backend registered for the inputs' device.
func WithBackend(b tensor.Backend) Option {
	return func(c *config) {
		c.backend = b
	}
}

// WithLogger sets the logger that receives per-stage debug events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
