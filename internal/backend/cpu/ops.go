package cpu

import (
	"github.com/born-ml/normint/internal/tensor"
)

// arith is the set of element types that support + - * /.
type arith interface {
	float32 | float64 | int32 | int64 | uint8 | complex64 | complex128
}

type binaryOp int

const (
	opAdd binaryOp = iota
	opSub
	opMul
	opDiv
)

func binaryFunc[T arith](op binaryOp) func(x, y T) T {
	switch op {
	case opAdd:
		return func(x, y T) T { return x + y }
	case opSub:
		return func(x, y T) T { return x - y }
	case opMul:
		return func(x, y T) T { return x * y }
	case opDiv:
		return func(x, y T) T { return x / y }
	default:
		panic("unknown binary op")
	}
}

// applyBinary computes result = a op b, broadcasting when shapes differ.
func applyBinary[T arith](result, a, b *tensor.RawTensor, op binaryOp) {
	dst := tensor.Values[T](result)
	x := tensor.Values[T](a)
	y := tensor.Values[T](b)
	f := binaryFunc[T](op)

	if a.Shape().Equal(b.Shape()) {
		for i := range dst {
			dst[i] = f(x[i], y[i])
		}
		return
	}

	outShape := result.Shape()
	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(a.Shape(), outShape)
	bStrides := computeBroadcastStridesForShape(b.Shape(), outShape)

	for i := range dst {
		aIdx := computeFlatIndex(i, outStrides, aStrides)
		bIdx := computeFlatIndex(i, outStrides, bStrides)
		dst[i] = f(x[aIdx], y[bIdx])
	}
}

func applyUnary[T arith](result, x *tensor.RawTensor, f func(T) T) {
	dst := tensor.Values[T](result)
	for i, v := range tensor.Values[T](x) {
		dst[i] = f(v)
	}
}
