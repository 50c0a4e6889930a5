// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package integrate

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	_ "github.com/born-ml/normint/internal/backend/cpu" // registers the CPU backend
	"github.com/born-ml/normint/internal/padding"
	"github.com/born-ml/normint/internal/validate"
	"github.com/born-ml/normint/tensor"
)

// Kottler integrates a gradient field into the scalar field it derives
// from, following Kottler et al., "A two-directional approach for grating
// based differential phase contrast imaging using hard x-rays" (2007).
//
// gy and gx are the vertical (∂φ/∂y) and horizontal (∂φ/∂x) components, in
// units per sample, with identical shape (..., y, x); leading axes are a
// batch of independent fields. The complex field gx + i·gy is transformed,
// divided by the gradient symbol i·2π·(fx + i·fy) and transformed back. The
// integration constant cannot be recovered from gradients and is fixed so
// that the result has zero mean over the transformed extent.
//
// The result is real with shape (..., y, x) and the promoted floating type
// of gy and gx.
//
// Example:
//
//	phase, err := integrate.Kottler(gy, gx,
//	    integrate.WithPad(integrate.PadAntisym),
//	    integrate.WithWorkers(4),
//	)
func Kottler(gy, gx *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error) {
	k, err := newKottler(gy, gx, opts)
	if err != nil {
		return nil, err
	}

	b := k.backend
	phase := k.spectrum()

	out := b.Real(b.IFFT2(phase, k.cfg.workers))
	if k.padded {
		out = b.Slice(out, -2, 0, k.y)
		out = b.Slice(out, -1, 0, k.x)
	}

	k.log.Debug("kottler: done")
	return out, nil
}

// KottlerSpectrum runs the same validation and spectral division as Kottler
// but returns the phase spectrum before the inverse transform. Its shape is
// (..., y, x), doubled on both trailing axes when padding is on, and its
// zero-frequency entry is always exactly 0.
func KottlerSpectrum(gy, gx *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error) {
	k, err := newKottler(gy, gx, opts)
	if err != nil {
		return nil, err
	}
	return k.spectrum(), nil
}

// kottler holds the validated inputs of one integration call.
type kottler struct {
	cfg     config
	backend tensor.Backend
	log     logrus.FieldLogger
	dtype   tensor.DataType
	y, x    int
	padded  bool
	gy, gx  *tensor.RawTensor
}

func newKottler(gy, gx *tensor.RawTensor, opts []Option) (*kottler, error) {
	cfg := newConfig(opts)

	b := cfg.backend
	if b == nil {
		var err error
		if b, err = tensor.ResolveBackend(gy, gx); err != nil {
			return nil, fmt.Errorf("kottler: %w", err)
		}
	}

	dtype, err := tensor.ResultType(gy.DType(), gx.DType())
	if err != nil || !dtype.IsRealFloating() {
		return nil, fmt.Errorf("%w: got %s and %s", ErrDtype, gy.DType(), gx.DType())
	}

	y, x, err := validate.CheckShapes(gx, gy)
	if err != nil {
		return nil, err
	}

	var padded bool
	switch cfg.pad {
	case PadAntisym:
		padded = true
	case PadNone:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidPad, string(cfg.pad))
	}

	log := cfg.log.WithFields(logrus.Fields{
		"shape":   gy.Shape(),
		"dtype":   dtype,
		"pad":     cfg.pad,
		"workers": cfg.workers,
		"backend": b.Name(),
	})

	gy, gx = b.Cast(gy, dtype), b.Cast(gx, dtype)
	if padded {
		gy, gx = padding.Antisym(b, gy, gx)
		log.WithField("padded_shape", gx.Shape()).Debug("kottler: applied antisymmetric padding")
	}

	return &kottler{
		cfg:     cfg,
		backend: b,
		log:     log,
		dtype:   dtype,
		y:       y,
		x:       x,
		padded:  padded,
		gy:      gy,
		gx:      gx,
	}, nil
}

// spectrum divides the spectrum of gx + i·gy by the gradient symbol.
func (k *kottler) spectrum() *tensor.RawTensor {
	b := k.backend
	_, ny, nx := k.gx.Shape().Plane()

	fx := b.FFTFreq(nx, k.dtype)
	fy := b.Reshape(b.FFTFreq(ny, k.dtype), tensor.Shape{ny, 1})

	num := b.FFT2(b.Complex(k.gx, k.gy), k.cfg.workers)

	// i·2π·(fx + i·fy); the zero-frequency entry is 0 and its quotient is
	// discarded, so it is replaced by 1 only to keep the division finite.
	den := b.MulScalar(b.Complex(fx, fy), complex(0, 2*math.Pi))
	den = b.SetItem(den, 1.0, 0, 0)

	phase := b.Div(num, den)
	phase = b.SetItem(phase, 0.0, 0, 0)

	k.log.WithField("grid", tensor.Shape{ny, nx}).Debug("kottler: spectral division complete")
	return phase
}
