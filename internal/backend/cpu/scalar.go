package cpu

import (
	"fmt"

	"github.com/born-ml/normint/internal/tensor"
)

// MulScalar multiplies each element of the tensor by a scalar value.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("mulScalar: failed to create result tensor: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		mulScalar(result, x, scalarOf[float32](scalar))
	case tensor.Float64:
		mulScalar(result, x, scalarOf[float64](scalar))
	case tensor.Int32:
		mulScalar(result, x, scalarOf[int32](scalar))
	case tensor.Int64:
		mulScalar(result, x, scalarOf[int64](scalar))
	case tensor.Complex64:
		mulScalar(result, x, scalarOf[complex64](scalar))
	case tensor.Complex128:
		mulScalar(result, x, scalarOf[complex128](scalar))
	default:
		panic(fmt.Sprintf("mulScalar: unsupported dtype %v", x.DType()))
	}

	return result
}

// Neg negates each element of the tensor.
func (cpu *CPUBackend) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("neg: failed to create result tensor: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		applyUnary(result, x, func(v float32) float32 { return -v })
	case tensor.Float64:
		applyUnary(result, x, func(v float64) float64 { return -v })
	case tensor.Int32:
		applyUnary(result, x, func(v int32) int32 { return -v })
	case tensor.Int64:
		applyUnary(result, x, func(v int64) int64 { return -v })
	case tensor.Complex64:
		applyUnary(result, x, func(v complex64) complex64 { return -v })
	case tensor.Complex128:
		applyUnary(result, x, func(v complex128) complex128 { return -v })
	default:
		panic(fmt.Sprintf("neg: unsupported dtype %v", x.DType()))
	}

	return result
}

func mulScalar[T arith](result, x *tensor.RawTensor, s T) {
	applyUnary(result, x, func(v T) T { return v * s })
}

// scalarOf converts a Go number to element type T.
// Complex values are only accepted for real T when their imaginary part is zero.
func scalarOf[T tensor.Element](value any) T {
	if v, ok := value.(T); ok {
		return v
	}

	c, ok := asComplex(value)
	if !ok {
		panic(fmt.Sprintf("scalar of type %T is not a number", value))
	}

	var out T
	switch p := any(&out).(type) {
	case *complex64:
		*p = complex64(c)
		return out
	case *complex128:
		*p = c
		return out
	}

	if imag(c) != 0 {
		panic(fmt.Sprintf("complex scalar %v assigned to real element type %T", c, out))
	}
	r := real(c)
	switch p := any(&out).(type) {
	case *float32:
		*p = float32(r)
	case *float64:
		*p = r
	case *int32:
		*p = int32(r)
	case *int64:
		*p = int64(r)
	case *uint8:
		*p = uint8(r)
	case *bool:
		*p = r != 0
	}
	return out
}

func asComplex(value any) (complex128, bool) {
	switch v := value.(type) {
	case float32:
		return complex(float64(v), 0), true
	case float64:
		return complex(v, 0), true
	case int:
		return complex(float64(v), 0), true
	case int32:
		return complex(float64(v), 0), true
	case int64:
		return complex(float64(v), 0), true
	case uint8:
		return complex(float64(v), 0), true
	case complex64:
		return complex128(v), true
	case complex128:
		return v, true
	default:
		return 0, false
	}
}
