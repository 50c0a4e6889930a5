package cpu

import (
	"fmt"

	"github.com/born-ml/normint/internal/tensor"
)

// The operations in this file only move whole elements, so they work on the
// byte buffer directly and support every dtype.

// Reshape returns a copy of the tensor with a different shape.
func (cpu *CPUBackend) Reshape(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if err := newShape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: invalid shape: %v", err))
	}

	if x.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: incompatible shapes: %v -> %v (different number of elements)",
			x.Shape(), newShape))
	}

	result, err := tensor.NewRaw(newShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}

	copy(result.Data(), x.Data())
	return result
}

// Flip reverses the order of elements along dim.
// Supports negative dim indexing (-1 = last dimension).
//
// Example:
//
//	x: [[1, 2, 3], [4, 5, 6]]
//	backend.Flip(x, -1) → [[3, 2, 1], [6, 5, 4]]
func (cpu *CPUBackend) Flip(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	dim, err := shape.NormalizeDim(dim)
	if err != nil {
		panic(fmt.Sprintf("flip: %v", err))
	}

	result, err := tensor.NewRaw(shape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("flip: %v", err))
	}

	outer, n, block := splitAt(shape, dim, x.DType())
	src, dst := x.Data(), result.Data()
	for o := 0; o < outer; o++ {
		base := o * n * block
		for j := 0; j < n; j++ {
			to := base + j*block
			from := base + (n-1-j)*block
			copy(dst[to:to+block], src[from:from+block])
		}
	}

	return result
}

// Cat concatenates tensors along the specified dimension.
//
// All tensors must have the same dtype and the same shape except along the
// concatenation dimension. Supports negative dim indexing (-1 = last dimension).
//
// Example:
//
//	a: shape [2, 3], b: shape [2, 5]
//	backend.Cat([]*RawTensor{a, b}, 1) // Shape: [2, 8]
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	shape := tensors[0].Shape()
	ndim := len(shape)
	dtype := tensors[0].DType()

	dim, err := shape.NormalizeDim(dim)
	if err != nil {
		panic(fmt.Sprintf("cat: %v", err))
	}

	totalDim := 0
	for i, t := range tensors {
		tShape := t.Shape()
		if len(tShape) != ndim {
			panic(fmt.Sprintf("cat: tensor %d has %d dimensions, expected %d", i, len(tShape), ndim))
		}
		if t.DType() != dtype {
			panic(fmt.Sprintf("cat: tensor %d has dtype %s, expected %s", i, t.DType(), dtype))
		}

		for d := 0; d < ndim; d++ {
			if d == dim {
				totalDim += tShape[d]
			} else if tShape[d] != shape[d] {
				panic(fmt.Sprintf("cat: tensor %d dimension %d is %d, expected %d", i, d, tShape[d], shape[d]))
			}
		}
	}

	outShape := shape.Clone()
	outShape[dim] = totalDim

	result, err := tensor.NewRaw(outShape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cat: %v", err))
	}

	outer, _, block := splitAt(outShape, dim, dtype)
	dst := result.Data()
	pos := 0
	for o := 0; o < outer; o++ {
		for _, t := range tensors {
			chunk := t.Shape()[dim] * block
			copy(dst[pos:pos+chunk], t.Data()[o*chunk:(o+1)*chunk])
			pos += chunk
		}
	}

	return result
}

// Slice keeps indices [start, end) along dim.
//
// Example:
//
//	x: shape [2, 8, 8]
//	backend.Slice(x, -1, 0, 5) // Shape: [2, 8, 5]
func (cpu *CPUBackend) Slice(x *tensor.RawTensor, dim, start, end int) *tensor.RawTensor {
	shape := x.Shape()
	dim, err := shape.NormalizeDim(dim)
	if err != nil {
		panic(fmt.Sprintf("slice: %v", err))
	}
	if start < 0 || end > shape[dim] || start >= end {
		panic(fmt.Sprintf("slice: range [%d, %d) invalid for dimension %d of size %d", start, end, dim, shape[dim]))
	}

	outShape := shape.Clone()
	outShape[dim] = end - start

	result, err := tensor.NewRaw(outShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("slice: %v", err))
	}

	outer, n, block := splitAt(shape, dim, x.DType())
	width := (end - start) * block
	src, dst := x.Data(), result.Data()
	for o := 0; o < outer; o++ {
		from := (o*n + start) * block
		copy(dst[o*width:(o+1)*width], src[from:from+width])
	}

	return result
}

// splitAt describes a contiguous tensor as outer × shape[dim] × block,
// where block is the byte size of one step along dim.
func splitAt(shape tensor.Shape, dim int, dtype tensor.DataType) (outer, n, block int) {
	outer = 1
	for _, d := range shape[:dim] {
		outer *= d
	}
	block = dtype.Size()
	for _, d := range shape[dim+1:] {
		block *= d
	}
	return outer, shape[dim], block
}
