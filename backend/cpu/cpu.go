// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/normint/internal/backend/cpu"
	"github.com/born-ml/normint/tensor"
)

// Backend represents the CPU backend implementation.
//
// CPU backend provides pure Go implementations of all tensor operations;
// FFTs use gonum's dsp/fourier plans fanned out over goroutines.
type Backend = internalcpu.CPUBackend

// Option configures a Backend.
type Option = internalcpu.Option

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Importing this package is not required to integrate CPU tensors: the
// backend registers itself for tensor.CPU. Use New to pass a configured
// instance explicitly:
//
//	backend := cpu.New(cpu.WithDefaultWorkers(4))
//	phase, err := integrate.Kottler(gy, gx, integrate.WithBackend(backend))
func New(opts ...Option) *Backend {
	return internalcpu.New(opts...)
}

// WithDefaultWorkers sets the FFT worker count used when a call passes a
// worker hint <= 0.
func WithDefaultWorkers(n int) Option {
	return internalcpu.WithDefaultWorkers(n)
}
