// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package integrate

import (
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/normint/backend/cpu"
	"github.com/born-ml/normint/tensor"
)

// periodicField samples a smooth periodic potential and its analytic
// gradient (per sample) on an ny×nx grid. All frequencies are below Nyquist,
// so spectral integration recovers it exactly up to rounding.
func periodicField(ny, nx int, shift float64) (phi, gy, gx []float64) {
	ax := 2 * math.Pi / float64(nx)
	ay := 2 * math.Pi / float64(ny)

	phi = make([]float64, ny*nx)
	gy = make([]float64, ny*nx)
	gx = make([]float64, ny*nx)
	for r := 0; r < ny; r++ {
		for c := 0; c < nx; c++ {
			x, y := float64(c), float64(r)
			i := r*nx + c
			phi[i] = math.Sin(ax*x)*math.Cos(2*ay*y) + 0.5*math.Cos(3*ax*x+shift) + 0.25*math.Sin(ay*y-shift)
			gx[i] = ax*math.Cos(ax*x)*math.Cos(2*ay*y) - 1.5*ax*math.Sin(3*ax*x+shift)
			gy[i] = -2*ay*math.Sin(ax*x)*math.Sin(2*ay*y) + 0.25*ay*math.Cos(ay*y-shift)
		}
	}
	return phi, gy, gx
}

// rampField is a non-periodic potential: a plane plus a vertical parabola.
func rampField(ny, nx int) (phi, gy, gx []float64) {
	const a, b = 0.05, 0.03

	phi = make([]float64, ny*nx)
	gy = make([]float64, ny*nx)
	gx = make([]float64, ny*nx)
	for r := 0; r < ny; r++ {
		for c := 0; c < nx; c++ {
			y := float64(r)
			i := r*nx + c
			phi[i] = a*float64(c) + b*y*y/float64(ny)
			gx[i] = a
			gy[i] = 2 * b * y / float64(ny)
		}
	}
	return phi, gy, gx
}

func centered(v []float64) []float64 {
	out := append([]float64(nil), v...)
	floats.AddConst(-floats.Sum(v)/float64(len(v)), out)
	return out
}

func mustTensor[T tensor.Element](t *testing.T, data []T, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.FromSlice(data, shape, tensor.CPU)
	require.NoError(t, err)
	return raw
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}

func TestKottler_RecoversPeriodicField(t *testing.T) {
	const ny, nx = 32, 48
	phi, gy, gx := periodicField(ny, nx, 0.3)

	got, err := Kottler(mustTensor(t, gy, tensor.Shape{ny, nx}), mustTensor(t, gx, tensor.Shape{ny, nx}))
	require.NoError(t, err)

	require.Equal(t, tensor.Shape{ny, nx}, got.Shape())
	require.Equal(t, tensor.Float64, got.DType())
	assert.True(t, floats.EqualApprox(centered(phi), centered(got.AsFloat64()), 1e-9))
}

func TestKottler_Float32(t *testing.T) {
	const ny, nx = 16, 24
	phi, gy, gx := periodicField(ny, nx, 1.1)

	got, err := Kottler(
		mustTensor(t, toFloat32(gy), tensor.Shape{ny, nx}),
		mustTensor(t, toFloat32(gx), tensor.Shape{ny, nx}),
	)
	require.NoError(t, err)
	require.Equal(t, tensor.Float32, got.DType())

	rec := make([]float64, ny*nx)
	for i, v := range got.AsFloat32() {
		rec[i] = float64(v)
	}
	assert.True(t, floats.EqualApprox(centered(phi), centered(rec), 1e-4))
}

func TestKottler_MixedPrecisionPromotes(t *testing.T) {
	const ny, nx = 8, 8
	_, gy, gx := periodicField(ny, nx, 0)

	got, err := Kottler(mustTensor(t, toFloat32(gy), tensor.Shape{ny, nx}), mustTensor(t, gx, tensor.Shape{ny, nx}))
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, got.DType())
}

func TestKottler_ShapePreserved(t *testing.T) {
	for _, shape := range []tensor.Shape{{1, 1}, {5, 7}, {16, 9}, {2, 3, 6, 4}} {
		for _, pad := range []Pad{PadNone, PadAntisym} {
			gy := make([]float64, shape.NumElements())
			gx := make([]float64, shape.NumElements())
			for i := range gy {
				gy[i] = math.Sin(float64(i))
				gx[i] = math.Cos(float64(3 * i))
			}

			got, err := Kottler(mustTensor(t, gy, shape), mustTensor(t, gx, shape), WithPad(pad))
			require.NoError(t, err, "shape %v pad %q", shape, pad)
			assert.Equal(t, shape, got.Shape(), "pad %q", pad)
		}
	}
}

func TestKottler_RejectsNonRealDtypes(t *testing.T) {
	shape := tensor.Shape{4, 4}
	ints := mustTensor(t, make([]int32, 16), shape)
	longs := mustTensor(t, make([]int64, 16), shape)
	cplx := mustTensor(t, make([]complex128, 16), shape)
	bools := mustTensor(t, make([]bool, 16), shape)
	real64 := mustTensor(t, make([]float64, 16), shape)

	cases := []struct {
		name   string
		gy, gx *tensor.RawTensor
	}{
		{"Int32", ints, ints},
		{"Int64", longs, longs},
		{"Complex", cplx, cplx},
		{"RealAndComplex", real64, cplx},
		{"IntAndFloat", ints, real64},
		{"Bool", bools, bools},
	}

	for _, tc := range cases {
		for _, pad := range []Pad{PadNone, PadAntisym, "bogus"} {
			_, err := Kottler(tc.gy, tc.gx, WithPad(pad))
			assert.ErrorIs(t, err, ErrDtype, "%s pad %q", tc.name, pad)
		}
	}
}

func TestKottler_RejectsInvalidPad(t *testing.T) {
	const ny, nx = 8, 8
	_, gy, gx := periodicField(ny, nx, 0)
	gyT := mustTensor(t, gy, tensor.Shape{ny, nx})
	gxT := mustTensor(t, gx, tensor.Shape{ny, nx})

	for _, pad := range []Pad{"reflect", "ANTISYM", "none", " antisym"} {
		got, err := Kottler(gyT, gxT, WithPad(pad))
		require.ErrorIs(t, err, ErrInvalidPad)
		assert.Nil(t, got)
		assert.Contains(t, err.Error(), string(pad))
	}

	assert.Equal(t, gy, gyT.AsFloat64(), "gy must be untouched")
	assert.Equal(t, gx, gxT.AsFloat64(), "gx must be untouched")
}

func TestKottler_RejectsShapeMismatch(t *testing.T) {
	gy := mustTensor(t, make([]float64, 12), tensor.Shape{3, 4})
	gx := mustTensor(t, make([]float64, 12), tensor.Shape{4, 3})

	_, err := Kottler(gy, gx)
	assert.ErrorIs(t, err, ErrShape)

	vec := mustTensor(t, make([]float64, 4), tensor.Shape{4})
	_, err = Kottler(vec, vec)
	assert.ErrorIs(t, err, ErrShape)
}

func TestKottler_UnregisteredDevice(t *testing.T) {
	gy, err := tensor.NewRaw(tensor.Shape{4, 4}, tensor.Float64, tensor.CUDA)
	require.NoError(t, err)

	_, err = Kottler(gy, gy)
	assert.ErrorIs(t, err, tensor.ErrNoBackend)
}

func TestKottlerSpectrum_ZeroFrequencyIsFixed(t *testing.T) {
	const ny, nx = 12, 10

	// Non-zero-mean gradients would put a finite quotient at DC if it were
	// not overwritten.
	_, gy, gx := rampField(ny, nx)
	gy2, gx2 := append(append([]float64(nil), gy...), gx...), append(append([]float64(nil), gx...), gy...)
	gyT := mustTensor(t, gy2, tensor.Shape{2, ny, nx})
	gxT := mustTensor(t, gx2, tensor.Shape{2, ny, nx})

	for _, pad := range []Pad{PadNone, PadAntisym} {
		phase, err := KottlerSpectrum(gyT, gxT, WithPad(pad))
		require.NoError(t, err)

		batch, rows, cols := phase.Shape().Plane()
		require.Equal(t, 2, batch)
		if pad == PadAntisym {
			assert.Equal(t, []int{2 * ny, 2 * nx}, []int{rows, cols})
		} else {
			assert.Equal(t, []int{ny, nx}, []int{rows, cols})
		}

		data := phase.AsComplex128()
		for p := 0; p < batch; p++ {
			assert.Equal(t, complex128(0), data[p*rows*cols], "pad %q batch %d", pad, p)
		}
		assert.NotEqual(t, complex128(0), data[cols], "pad %q: non-DC bins carry the field", pad)
	}
}

func TestKottler_PaddingReducesEdgeError(t *testing.T) {
	const ny, nx = 32, 32
	phi, gy, gx := rampField(ny, nx)
	want := centered(phi)

	borderRMS := func(pad Pad) float64 {
		got, err := Kottler(mustTensor(t, gy, tensor.Shape{ny, nx}), mustTensor(t, gx, tensor.Shape{ny, nx}), WithPad(pad))
		require.NoError(t, err)
		rec := centered(got.AsFloat64())

		var sum float64
		var n int
		for r := 0; r < ny; r++ {
			for c := 0; c < nx; c++ {
				if r > 1 && r < ny-2 && c > 1 && c < nx-2 {
					continue
				}
				d := rec[r*nx+c] - want[r*nx+c]
				sum += d * d
				n++
			}
		}
		return math.Sqrt(sum / float64(n))
	}

	plain := borderRMS(PadNone)
	padded := borderRMS(PadAntisym)

	assert.Less(t, padded, plain)
	assert.Less(t, padded, plain/2, "antisymmetric padding should remove most of the edge error")
}

func TestKottler_WorkerInvariance(t *testing.T) {
	const ny, nx = 40, 36
	_, gy, gx := periodicField(ny, nx, 0.7)
	gyT := mustTensor(t, gy, tensor.Shape{ny, nx})
	gxT := mustTensor(t, gx, tensor.Shape{ny, nx})

	for _, pad := range []Pad{PadNone, PadAntisym} {
		base, err := Kottler(gyT, gxT, WithPad(pad))
		require.NoError(t, err)

		for _, workers := range []int{1, 4} {
			got, err := Kottler(gyT, gxT, WithPad(pad), WithWorkers(workers))
			require.NoError(t, err)
			assert.Equal(t, base.AsFloat64(), got.AsFloat64(), "pad %q workers %d", pad, workers)
		}
	}
}

func TestKottler_BatchIndependence(t *testing.T) {
	const ny, nx = 16, 20
	_, gyA, gxA := periodicField(ny, nx, 0.1)
	_, gyB, gxB := rampField(ny, nx)

	for _, pad := range []Pad{PadNone, PadAntisym} {
		joint, err := Kottler(
			mustTensor(t, append(append([]float64(nil), gyA...), gyB...), tensor.Shape{2, ny, nx}),
			mustTensor(t, append(append([]float64(nil), gxA...), gxB...), tensor.Shape{2, ny, nx}),
			WithPad(pad), WithWorkers(3),
		)
		require.NoError(t, err)
		require.Equal(t, tensor.Shape{2, ny, nx}, joint.Shape())

		a, err := Kottler(mustTensor(t, gyA, tensor.Shape{ny, nx}), mustTensor(t, gxA, tensor.Shape{ny, nx}), WithPad(pad))
		require.NoError(t, err)
		b, err := Kottler(mustTensor(t, gyB, tensor.Shape{ny, nx}), mustTensor(t, gxB, tensor.Shape{ny, nx}), WithPad(pad))
		require.NoError(t, err)

		data := joint.AsFloat64()
		assert.Equal(t, a.AsFloat64(), data[:ny*nx], "pad %q entry 0", pad)
		assert.Equal(t, b.AsFloat64(), data[ny*nx:], "pad %q entry 1", pad)
	}
}

func TestKottler_Deterministic(t *testing.T) {
	const ny, nx = 24, 24
	_, gy, gx := rampField(ny, nx)
	gyT := mustTensor(t, gy, tensor.Shape{ny, nx})
	gxT := mustTensor(t, gx, tensor.Shape{ny, nx})

	first, err := Kottler(gyT, gxT, WithPad(PadAntisym))
	require.NoError(t, err)
	second, err := Kottler(gyT, gxT, WithPad(PadAntisym))
	require.NoError(t, err)

	assert.Equal(t, first.AsFloat64(), second.AsFloat64())
	assert.Equal(t, gy, gyT.AsFloat64(), "inputs must be untouched")
}

func TestKottler_WithBackend(t *testing.T) {
	const ny, nx = 16, 16
	_, gy, gx := periodicField(ny, nx, 0.2)
	gyT := mustTensor(t, gy, tensor.Shape{ny, nx})
	gxT := mustTensor(t, gx, tensor.Shape{ny, nx})

	want, err := Kottler(gyT, gxT)
	require.NoError(t, err)
	got, err := Kottler(gyT, gxT, WithBackend(cpu.New(cpu.WithDefaultWorkers(2))))
	require.NoError(t, err)

	assert.Equal(t, want.AsFloat64(), got.AsFloat64())
}

func TestKottler_LogsStages(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	_, gy, gx := periodicField(8, 8, 0)
	_, err := Kottler(
		mustTensor(t, gy, tensor.Shape{8, 8}),
		mustTensor(t, gx, tensor.Shape{8, 8}),
		WithPad(PadAntisym), WithLogger(log),
	)
	require.NoError(t, err)

	var messages []string
	for _, e := range hook.AllEntries() {
		messages = append(messages, e.Message)
	}
	assert.Contains(t, messages, "kottler: applied antisymmetric padding")
	assert.Contains(t, messages, "kottler: done")

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, "CPU", last.Data["backend"])
	assert.Equal(t, PadAntisym, last.Data["pad"])
}
