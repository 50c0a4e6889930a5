package cpu

import (
	"fmt"

	"github.com/born-ml/normint/internal/tensor"
)

// SetItem returns a copy of x with x[..., index...] = value.
//
// index addresses the trailing len(index) axes; the assignment is repeated
// for every entry of the leading axes. Negative indices count from the end
// of their axis. x itself is never modified.
//
// Example:
//
//	x: shape [2, 4, 4]
//	backend.SetItem(x, 1.0, 0, 0) // x[0,0,0] and x[1,0,0] set to 1
func (cpu *CPUBackend) SetItem(x *tensor.RawTensor, value any, index ...int) *tensor.RawTensor {
	shape := x.Shape()
	if len(index) == 0 || len(index) > len(shape) {
		panic(fmt.Sprintf("setitem: %d indices for %dD tensor", len(index), len(shape)))
	}

	trailing := shape[len(shape)-len(index):]
	strides := trailing.ComputeStrides()
	offset := 0
	for i, idx := range index {
		if idx < 0 {
			idx += trailing[i]
		}
		if idx < 0 || idx >= trailing[i] {
			panic(fmt.Sprintf("setitem: index %d out of bounds for axis of size %d", index[i], trailing[i]))
		}
		offset += idx * strides[i]
	}
	block := trailing.NumElements()

	result := x.Clone()

	switch x.DType() {
	case tensor.Float32:
		setEvery(result.AsFloat32(), scalarOf[float32](value), offset, block)
	case tensor.Float64:
		setEvery(result.AsFloat64(), scalarOf[float64](value), offset, block)
	case tensor.Int32:
		setEvery(result.AsInt32(), scalarOf[int32](value), offset, block)
	case tensor.Int64:
		setEvery(result.AsInt64(), scalarOf[int64](value), offset, block)
	case tensor.Uint8:
		setEvery(result.AsUint8(), scalarOf[uint8](value), offset, block)
	case tensor.Bool:
		setEvery(result.AsBool(), scalarOf[bool](value), offset, block)
	case tensor.Complex64:
		setEvery(result.AsComplex64(), scalarOf[complex64](value), offset, block)
	case tensor.Complex128:
		setEvery(result.AsComplex128(), scalarOf[complex128](value), offset, block)
	default:
		panic(fmt.Sprintf("setitem: unsupported dtype %s", x.DType()))
	}

	return result
}

func setEvery[T tensor.Element](data []T, v T, offset, block int) {
	for base := 0; base < len(data); base += block {
		data[base+offset] = v
	}
}
