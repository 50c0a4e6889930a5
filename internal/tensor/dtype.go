// Package tensor provides the runtime-typed array and backend abstractions used by the integrators.
package tensor

import (
	"errors"
	"fmt"
)

// ErrNoPromotion is returned by ResultType when two data types have no common type.
var ErrNoPromotion = errors.New("tensor: no type promotion")

// Element is a constraint for the Go types a RawTensor can hold.
type Element interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8 | ~bool | ~complex64 | ~complex128
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
	Bool
	Complex64
	Complex128
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64, Complex64:
		return 8
	case Complex128:
		return 16
	case Uint8, Bool:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Bool:
		return "bool"
	case Complex64:
		return "complex64"
	case Complex128:
		return "complex128"
	default:
		return "unknown"
	}
}

// IsRealFloating reports whether dt is a real floating-point type.
func (dt DataType) IsRealFloating() bool {
	return dt == Float32 || dt == Float64
}

// IsComplex reports whether dt is a complex floating-point type.
func (dt DataType) IsComplex() bool {
	return dt == Complex64 || dt == Complex128
}

// IsInteger reports whether dt is a signed or unsigned integer type.
func (dt DataType) IsInteger() bool {
	return dt == Int32 || dt == Int64 || dt == Uint8
}

// ComplexOf returns the complex type whose components have type dt.
// Complex types map to themselves.
func (dt DataType) ComplexOf() DataType {
	switch dt {
	case Float32, Complex64:
		return Complex64
	case Float64, Complex128:
		return Complex128
	default:
		panic(fmt.Sprintf("no complex counterpart for %s", dt))
	}
}

// RealOf returns the component type of a complex dt.
// Real floating types map to themselves.
func (dt DataType) RealOf() DataType {
	switch dt {
	case Float32, Complex64:
		return Float32
	case Float64, Complex128:
		return Float64
	default:
		panic(fmt.Sprintf("no real counterpart for %s", dt))
	}
}

// ResultType returns the type both a and b promote to.
//
// Promotion stays within a kind and widens: float32+float64 is float64,
// int32+uint8 is int32. Real floats mix with complex types and produce the
// complex type wide enough for both. Integer or bool operands mixed with a
// floating or complex operand have no common type.
func ResultType(a, b DataType) (DataType, error) {
	if a == b {
		return a, nil
	}

	switch {
	case isFloating(a) && isFloating(b):
		if !a.IsComplex() && !b.IsComplex() {
			return Float64, nil // only float32/float64 remain
		}
		if a.RealOf() == Float64 || b.RealOf() == Float64 {
			return Complex128, nil
		}
		return Complex64, nil
	case a.IsInteger() && b.IsInteger():
		if a == Int64 || b == Int64 {
			return Int64, nil
		}
		return Int32, nil
	}

	return 0, fmt.Errorf("%w: %s and %s", ErrNoPromotion, a, b)
}

func isFloating(dt DataType) bool {
	return dt.IsRealFloating() || dt.IsComplex()
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T Element](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	case complex64:
		return Complex64
	case complex128:
		return Complex128
	default:
		panic("unsupported type")
	}
}
