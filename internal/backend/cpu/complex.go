package cpu

import (
	"fmt"

	"github.com/born-ml/normint/internal/tensor"
)

// Complex builds the complex tensor re + i·im.
//
// re and im must share a real floating dtype and broadcast against each
// other; the result has the matching complex dtype. Broadcasting lets a row
// vector and a column vector form a full 2D grid:
//
//	fx: shape [x], fy: shape [y, 1] → Complex(fx, fy): shape [y, x]
func (cpu *CPUBackend) Complex(re, im *tensor.RawTensor) *tensor.RawTensor {
	if re.DType() != im.DType() || !re.DType().IsRealFloating() {
		panic(fmt.Sprintf("complex: need matching real floating dtypes, got %s and %s", re.DType(), im.DType()))
	}

	outShape, _, err := tensor.BroadcastShapes(re.Shape(), im.Shape())
	if err != nil {
		panic(fmt.Sprintf("complex: %v", err))
	}

	result, err := tensor.NewRaw(outShape, re.DType().ComplexOf(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("complex: failed to create result tensor: %v", err))
	}

	switch re.DType() {
	case tensor.Float32:
		combineComplex(result.AsComplex64(), re.AsFloat32(), im.AsFloat32(), re.Shape(), im.Shape(), outShape)
	case tensor.Float64:
		combineComplex(result.AsComplex128(), re.AsFloat64(), im.AsFloat64(), re.Shape(), im.Shape(), outShape)
	}

	return result
}

// Real returns the real component of a complex tensor.
func (cpu *CPUBackend) Real(x *tensor.RawTensor) *tensor.RawTensor {
	if !x.DType().IsComplex() {
		panic(fmt.Sprintf("real: need a complex dtype, got %s", x.DType()))
	}

	result, err := tensor.NewRaw(x.Shape(), x.DType().RealOf(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("real: failed to create result tensor: %v", err))
	}

	switch x.DType() {
	case tensor.Complex64:
		dst := result.AsFloat32()
		for i, v := range x.AsComplex64() {
			dst[i] = real(v)
		}
	case tensor.Complex128:
		dst := result.AsFloat64()
		for i, v := range x.AsComplex128() {
			dst[i] = real(v)
		}
	}

	return result
}

func combineComplex[F float32 | float64, C complex64 | complex128](dst []C, re, im []F, reShape, imShape, outShape tensor.Shape) {
	if reShape.Equal(imShape) {
		for i := range dst {
			dst[i] = C(complex(float64(re[i]), float64(im[i])))
		}
		return
	}

	outStrides := outShape.ComputeStrides()
	reStrides := computeBroadcastStridesForShape(reShape, outShape)
	imStrides := computeBroadcastStridesForShape(imShape, outShape)
	for i := range dst {
		r := re[computeFlatIndex(i, outStrides, reStrides)]
		m := im[computeFlatIndex(i, outStrides, imStrides)]
		dst[i] = C(complex(float64(r), float64(m)))
	}
}
