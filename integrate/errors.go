// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package integrate

import (
	"errors"

	"github.com/born-ml/normint/internal/validate"
)

// Sentinel errors returned by the integrators. Returned errors wrap one of
// these; test with errors.Is.
var (
	// ErrDtype is returned when the gradient fields do not promote to a real
	// floating-point type (integer, bool or complex input).
	ErrDtype = errors.New("integrate: input arrays must be real-valued")

	// ErrShape is returned when gy and gx do not share a 2-D (or batched)
	// shape.
	ErrShape = validate.ErrShape

	// ErrInvalidPad is returned for a pad mode other than PadNone or
	// PadAntisym.
	ErrInvalidPad = errors.New("integrate: invalid value for pad")
)
