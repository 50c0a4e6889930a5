package cpu

import (
	"fmt"

	"github.com/born-ml/normint/internal/tensor"
)

type realNumber interface {
	float32 | float64 | int32 | int64 | uint8
}

type complexNumber interface {
	complex64 | complex128
}

// Cast converts the tensor to a different data type.
//
// Real and integer types convert freely (float to int truncates toward
// zero), and real values widen into complex types with a zero imaginary
// part. Complex to real is rejected; use Real to drop the imaginary part
// explicitly.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	// Still copy when the dtype matches: results never alias inputs.
	if x.DType() == dtype {
		return x.Clone()
	}

	result, err := tensor.NewRaw(x.Shape(), dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cast: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		castFromReal(result, x.AsFloat32())
	case tensor.Float64:
		castFromReal(result, x.AsFloat64())
	case tensor.Int32:
		castFromReal(result, x.AsInt32())
	case tensor.Int64:
		castFromReal(result, x.AsInt64())
	case tensor.Uint8:
		castFromReal(result, x.AsUint8())
	case tensor.Bool:
		castFromReal(result, boolsToUint8(x.AsBool()))
	case tensor.Complex64:
		castFromComplex(result, x.AsComplex64())
	case tensor.Complex128:
		castFromComplex(result, x.AsComplex128())
	default:
		panic(fmt.Sprintf("cast: unsupported source dtype %v", x.DType()))
	}

	return result
}

func castFromReal[S realNumber](result *tensor.RawTensor, src []S) {
	switch result.DType() {
	case tensor.Float32:
		convertReal(result.AsFloat32(), src)
	case tensor.Float64:
		convertReal(result.AsFloat64(), src)
	case tensor.Int32:
		convertReal(result.AsInt32(), src)
	case tensor.Int64:
		convertReal(result.AsInt64(), src)
	case tensor.Uint8:
		convertReal(result.AsUint8(), src)
	case tensor.Bool:
		dst := result.AsBool()
		for i, v := range src {
			dst[i] = v != 0
		}
	case tensor.Complex64:
		widenToComplex(result.AsComplex64(), src)
	case tensor.Complex128:
		widenToComplex(result.AsComplex128(), src)
	}
}

func castFromComplex[S complexNumber](result *tensor.RawTensor, src []S) {
	switch result.DType() {
	case tensor.Complex64:
		convertComplex(result.AsComplex64(), src)
	case tensor.Complex128:
		convertComplex(result.AsComplex128(), src)
	default:
		panic(fmt.Sprintf("cast: complex to %s discards the imaginary part, use Real", result.DType()))
	}
}

func convertReal[S, D realNumber](dst []D, src []S) {
	for i, v := range src {
		dst[i] = D(v)
	}
}

func convertComplex[S, D complexNumber](dst []D, src []S) {
	for i, v := range src {
		dst[i] = D(v)
	}
}

func widenToComplex[S realNumber, D complexNumber](dst []D, src []S) {
	for i, v := range src {
		dst[i] = D(complex(float64(v), 0))
	}
}

func boolsToUint8(src []bool) []uint8 {
	out := make([]uint8, len(src))
	for i, v := range src {
		if v {
			out[i] = 1
		}
	}
	return out
}
