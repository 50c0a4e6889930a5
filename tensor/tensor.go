// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/normint/internal/tensor"
)

// Element is a constraint for the Go types a tensor can hold:
// float32, float64, int32, int64, uint8, bool, complex64, complex128.
type Element = tensor.Element

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32    DataType = tensor.Float32
	Float64    DataType = tensor.Float64
	Int32      DataType = tensor.Int32
	Int64      DataType = tensor.Int64
	Uint8      DataType = tensor.Uint8
	Bool       DataType = tensor.Bool
	Complex64  DataType = tensor.Complex64
	Complex128 DataType = tensor.Complex128
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	CUDA   Device = tensor.CUDA
	Vulkan Device = tensor.Vulkan
	Metal  Device = tensor.Metal
	WebGPU Device = tensor.WebGPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// RawTensor is a contiguous row-major array tagged with its shape, data type
// and device.
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float64, tensor.CPU)
//	data := raw.AsFloat64()  // zero-copy typed view
//	clone := raw.Clone()     // deep copy
type RawTensor = tensor.RawTensor

// Backend is the capability set a numeric backend supplies: element-wise
// arithmetic, complex construction, shape manipulation, functional indexed
// assignment and batched 2D FFTs.
type Backend = tensor.Backend

// Errors returned by ResultType and ResolveBackend.
var (
	ErrNoPromotion    = tensor.ErrNoPromotion
	ErrNoBackend      = tensor.ErrNoBackend
	ErrDeviceMismatch = tensor.ErrDeviceMismatch
)

// NewRaw creates a zero-filled tensor with the given shape, dtype, and device.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromSlice creates a tensor from a Go slice. The data is copied.
//
// Example:
//
//	data := []float64{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3}, tensor.CPU)
func FromSlice[T Element](data []T, shape Shape, device Device) (*RawTensor, error) {
	return tensor.FromSlice(data, shape, device)
}

// Values returns a typed zero-copy view of a tensor's data.
// Panics if T does not match the tensor's data type.
func Values[T Element](r *RawTensor) []T {
	return tensor.Values[T](r)
}

// ResultType returns the data type two operands promote to.
func ResultType(a, b DataType) (DataType, error) {
	return tensor.ResultType(a, b)
}

// RegisterBackend makes a backend available for tensors on device.
func RegisterBackend(device Device, factory func() Backend) {
	tensor.RegisterBackend(device, factory)
}

// ResolveBackend returns the backend registered for the device shared by
// the given tensors.
func ResolveBackend(tensors ...*RawTensor) (Backend, error) {
	return tensor.ResolveBackend(tensors...)
}
