package tensor

import "fmt"

// Zeros creates a zero-filled tensor.
//
// Example:
//
//	t, err := tensor.Zeros(Shape{3, 4}, Float64, CPU)
func Zeros(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return NewRaw(shape, dtype, device)
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
//
// Example:
//
//	gx, err := tensor.FromSlice([]float64{1, 2, 3, 4}, Shape{2, 2}, CPU)
func FromSlice[T Element](data []T, shape Shape, device Device) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), device)
	if err != nil {
		return nil, err
	}

	copy(Values[T](raw), data)
	return raw, nil
}

// Values returns a typed view of the tensor's data.
// Panics if T does not match the tensor's dtype.
//
// WARNING: Modifications to the returned slice will modify the tensor.
func Values[T Element](r *RawTensor) []T {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return any(r.AsFloat32()).([]T)
	case float64:
		return any(r.AsFloat64()).([]T)
	case int32:
		return any(r.AsInt32()).([]T)
	case int64:
		return any(r.AsInt64()).([]T)
	case uint8:
		return any(r.AsUint8()).([]T)
	case bool:
		return any(r.AsBool()).([]T)
	case complex64:
		return any(r.AsComplex64()).([]T)
	case complex128:
		return any(r.AsComplex128()).([]T)
	default:
		panic("unsupported type")
	}
}
