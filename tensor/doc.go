// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the array type consumed and produced by the
// integrators in package integrate.
//
// # Overview
//
// A RawTensor is a contiguous row-major N-D array with a runtime data type
// and a device tag:
//   - Real, integer, bool and complex data types (DataType)
//   - NumPy-style broadcasting and type promotion (ResultType)
//   - A Backend interface with one registered implementation per Device
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/normint/integrate"
//	    "github.com/born-ml/normint/tensor"
//	)
//
//	func main() {
//	    gy, _ := tensor.FromSlice(gyData, tensor.Shape{512, 512}, tensor.CPU)
//	    gx, _ := tensor.FromSlice(gxData, tensor.Shape{512, 512}, tensor.CPU)
//	    phase, err := integrate.Kottler(gy, gx, integrate.WithPad(integrate.PadAntisym))
//	}
//
// Leading axes beyond the last two are treated as a batch of independent
// images.
package tensor
