package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/born-ml/normint/internal/parallel"
	"github.com/born-ml/normint/internal/tensor"
)

// FFTFreq returns the sample frequencies of a length-n DFT in cycles per
// sample: [0, 1, ..., ⌈n/2⌉-1, -⌊n/2⌋, ..., -1] / n.
//
// Example:
//
//	backend.FFTFreq(4, tensor.Float64) → [0, 0.25, -0.5, -0.25]
func (cpu *CPUBackend) FFTFreq(n int, dtype tensor.DataType) *tensor.RawTensor {
	if !dtype.IsRealFloating() {
		panic(fmt.Sprintf("fftfreq: dtype %s is not real floating", dtype))
	}

	result, err := tensor.NewRaw(tensor.Shape{n}, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("fftfreq: %v", err))
	}

	positive := (n-1)/2 + 1
	freq := func(i int) float64 {
		k := i
		if i >= positive {
			k = i - n
		}
		return float64(k) / float64(n)
	}

	switch dtype {
	case tensor.Float32:
		dst := result.AsFloat32()
		for i := range dst {
			dst[i] = float32(freq(i))
		}
	case tensor.Float64:
		dst := result.AsFloat64()
		for i := range dst {
			dst[i] = freq(i)
		}
	}

	return result
}

// FFT2 computes the unnormalized forward 2D DFT over the last two axes,
// batched over any leading axes.
func (cpu *CPUBackend) FFT2(x *tensor.RawTensor, workers int) *tensor.RawTensor {
	return cpu.fft2("fft2", x, workers, false)
}

// IFFT2 computes the inverse 2D DFT over the last two axes, normalized by
// 1/(rows·cols), batched over any leading axes.
func (cpu *CPUBackend) IFFT2(x *tensor.RawTensor, workers int) *tensor.RawTensor {
	return cpu.fft2("ifft2", x, workers, true)
}

// fft2 runs the row-column algorithm. Every row and every column is an
// independent 1D transform; they are distributed over workers goroutines,
// each holding its own gonum plan. A 1D transform is computed the same way
// whichever goroutine runs it, so the result does not depend on workers.
// Complex64 input is transformed in complex128 and rounded back.
func (cpu *CPUBackend) fft2(name string, x *tensor.RawTensor, workers int, inverse bool) *tensor.RawTensor {
	if !x.DType().IsComplex() {
		panic(fmt.Sprintf("%s: need a complex dtype, got %s", name, x.DType()))
	}
	if len(x.Shape()) < 2 {
		panic(fmt.Sprintf("%s: need at least 2 dimensions, got shape %v", name, x.Shape()))
	}
	if workers <= 0 {
		workers = cpu.workers
	}
	cfg := parallel.WithWorkers(workers)

	batch, rows, cols := x.Shape().Plane()
	work := loadComplex128(x)

	// Rows are contiguous.
	parallel.ForChunks(batch*rows, func(start, end int) {
		plan := fourier.NewCmplxFFT(cols)
		buf := make([]complex128, cols)
		for r := start; r < end; r++ {
			seg := work[r*cols : (r+1)*cols]
			transform1D(plan, buf, seg, inverse)
		}
	}, cfg)

	// Columns are strided by cols within each plane.
	parallel.ForChunks(batch*cols, func(start, end int) {
		plan := fourier.NewCmplxFFT(rows)
		col := make([]complex128, rows)
		buf := make([]complex128, rows)
		for k := start; k < end; k++ {
			base := (k/cols)*rows*cols + k%cols
			for i := range col {
				col[i] = work[base+i*cols]
			}
			transform1D(plan, buf, col, inverse)
			for i, v := range col {
				work[base+i*cols] = v
			}
		}
	}, cfg)

	if inverse {
		scale := complex(1/float64(rows*cols), 0)
		for i := range work {
			work[i] *= scale
		}
	}

	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}
	storeComplex128(result, work)
	return result
}

// transform1D replaces seg with its DFT, using buf as scratch.
func transform1D(plan *fourier.CmplxFFT, buf, seg []complex128, inverse bool) {
	if inverse {
		plan.Sequence(buf, seg)
	} else {
		plan.Coefficients(buf, seg)
	}
	copy(seg, buf)
}

func loadComplex128(x *tensor.RawTensor) []complex128 {
	out := make([]complex128, x.NumElements())
	switch x.DType() {
	case tensor.Complex64:
		for i, v := range x.AsComplex64() {
			out[i] = complex128(v)
		}
	case tensor.Complex128:
		copy(out, x.AsComplex128())
	}
	return out
}

func storeComplex128(dst *tensor.RawTensor, src []complex128) {
	switch dst.DType() {
	case tensor.Complex64:
		convertComplex(dst.AsComplex64(), src)
	case tensor.Complex128:
		copy(dst.AsComplex128(), src)
	}
}
