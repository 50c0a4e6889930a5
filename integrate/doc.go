// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package integrate reconstructs scalar fields from their gradients.
//
// # Overview
//
// Kottler integrates the vertical and horizontal gradient components of a
// field in the frequency domain:
//   - Inputs may be float32 or float64 and are promoted to a common type
//   - Leading axes are a batch of independent fields
//   - Optional antisymmetric padding suppresses edge artifacts
//
// Inputs are never modified. The arrays are resolved to the backend
// registered for their device unless WithBackend is given.
//
// # Errors
//
// Integer, bool and complex inputs fail with ErrDtype, mismatched shapes with
// ErrShape and unknown pad modes with ErrInvalidPad. Checks run in that order.
package integrate
