package tensor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype DataType
		size  int
	}{
		{Float32, 4},
		{Float64, 8},
		{Int32, 4},
		{Int64, 8},
		{Uint8, 1},
		{Bool, 1},
		{Complex64, 8},
		{Complex128, 16},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.size, tt.dtype.Size(), tt.dtype.String())
	}
}

func TestDataTypeKinds(t *testing.T) {
	assert.True(t, Float32.IsRealFloating())
	assert.True(t, Float64.IsRealFloating())
	assert.False(t, Complex128.IsRealFloating())
	assert.False(t, Int64.IsRealFloating())

	assert.True(t, Complex64.IsComplex())
	assert.True(t, Int32.IsInteger())
	assert.False(t, Bool.IsInteger())

	assert.Equal(t, Complex64, Float32.ComplexOf())
	assert.Equal(t, Complex128, Float64.ComplexOf())
	assert.Equal(t, Float32, Complex64.RealOf())
	assert.Equal(t, Float64, Complex128.RealOf())
	assert.Panics(t, func() { Int32.ComplexOf() })
}

func TestResultType(t *testing.T) {
	tests := []struct {
		a, b    DataType
		want    DataType
		wantErr bool
	}{
		{Float32, Float32, Float32, false},
		{Float32, Float64, Float64, false},
		{Float64, Float32, Float64, false},
		{Float32, Complex64, Complex64, false},
		{Float64, Complex64, Complex128, false},
		{Complex64, Complex128, Complex128, false},
		{Int32, Uint8, Int32, false},
		{Int32, Int64, Int64, false},
		{Int32, Float32, 0, true},
		{Bool, Float64, 0, true},
		{Int64, Complex128, 0, true},
	}

	for _, tt := range tests {
		got, err := ResultType(tt.a, tt.b)
		if tt.wantErr {
			require.Error(t, err, "%s+%s", tt.a, tt.b)
			assert.True(t, errors.Is(err, ErrNoPromotion))
			continue
		}
		require.NoError(t, err, "%s+%s", tt.a, tt.b)
		assert.Equal(t, tt.want, got, "%s+%s", tt.a, tt.b)
	}
}

func TestShapeHelpers(t *testing.T) {
	s := Shape{3, 4, 5}
	assert.Equal(t, 60, s.NumElements())
	assert.Equal(t, []int{20, 5, 1}, s.ComputeStrides())

	batch, rows, cols := s.Plane()
	assert.Equal(t, 3, batch)
	assert.Equal(t, 4, rows)
	assert.Equal(t, 5, cols)

	dim, err := s.NormalizeDim(-1)
	require.NoError(t, err)
	assert.Equal(t, 2, dim)
	_, err = s.NormalizeDim(3)
	assert.Error(t, err)

	assert.Error(t, Shape{2, 0}.Validate())
	assert.Panics(t, func() { Shape{4}.Plane() })
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b      Shape
		expected  Shape
		shouldErr bool
	}{
		{Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, false},
		{Shape{1, 5}, Shape{3, 5}, Shape{3, 5}, false},
		{Shape{3, 4}, Shape{3, 4}, Shape{3, 4}, false},
		{Shape{4, 1}, Shape{6}, Shape{4, 6}, false},
		{Shape{2, 4, 6}, Shape{4, 6}, Shape{2, 4, 6}, false},
		{Shape{3, 4}, Shape{3, 5}, nil, true},
		{Shape{2, 3}, Shape{3, 3}, nil, true},
	}

	for _, tt := range tests {
		result, _, err := BroadcastShapes(tt.a, tt.b)
		if tt.shouldErr {
			assert.Error(t, err, "%v vs %v", tt.a, tt.b)
			continue
		}
		require.NoError(t, err)
		assert.True(t, result.Equal(tt.expected), "BroadcastShapes(%v, %v) = %v, want %v", tt.a, tt.b, result, tt.expected)
	}
}

func TestFromSlice(t *testing.T) {
	raw, err := FromSlice([]complex128{1 + 2i, 3, 4i, -1}, Shape{2, 2}, CPU)
	require.NoError(t, err)
	assert.Equal(t, Complex128, raw.DType())
	assert.Equal(t, []complex128{1 + 2i, 3, 4i, -1}, raw.AsComplex128())

	_, err = FromSlice([]float32{1, 2, 3}, Shape{2, 2}, CPU)
	assert.Error(t, err)
}

func TestRawTensorViews(t *testing.T) {
	raw, err := Zeros(Shape{2, 3}, Float64, CPU)
	require.NoError(t, err)

	data := raw.AsFloat64()
	require.Len(t, data, 6)
	data[4] = 42
	assert.Equal(t, 42.0, raw.AsFloat64()[4], "AsFloat64 should be a zero-copy view")
	assert.Equal(t, 48, raw.ByteSize())

	assert.Panics(t, func() { raw.AsFloat32() })
	assert.Panics(t, func() { Values[complex64](raw) })
	assert.Equal(t, "float64[2 3]@CPU", raw.String())
}

func TestRawTensorCloneIsDeep(t *testing.T) {
	raw, err := FromSlice([]float32{1, 2, 3, 4}, Shape{4}, CPU)
	require.NoError(t, err)

	clone := raw.Clone()
	clone.AsFloat32()[0] = -1

	assert.Equal(t, float32(1), raw.AsFloat32()[0])
	assert.True(t, clone.Shape().Equal(raw.Shape()))
}

type fakeBackend struct {
	Backend
	device Device
}

func (f fakeBackend) Name() string   { return "fake" }
func (f fakeBackend) Device() Device { return f.device }

func TestResolveBackend(t *testing.T) {
	RegisterBackend(Metal, func() Backend { return fakeBackend{device: Metal} })

	a, err := Zeros(Shape{2, 2}, Float64, Metal)
	require.NoError(t, err)
	b, err := Zeros(Shape{2, 2}, Float64, Metal)
	require.NoError(t, err)

	backend, err := ResolveBackend(a, b)
	require.NoError(t, err)
	assert.Equal(t, "fake", backend.Name())

	t.Run("DeviceMismatch", func(t *testing.T) {
		c, err := Zeros(Shape{2, 2}, Float64, Vulkan)
		require.NoError(t, err)
		_, err = ResolveBackend(a, c)
		assert.ErrorIs(t, err, ErrDeviceMismatch)
	})

	t.Run("Unregistered", func(t *testing.T) {
		c, err := Zeros(Shape{2, 2}, Float64, CUDA)
		require.NoError(t, err)
		_, err = ResolveBackend(c)
		assert.ErrorIs(t, err, ErrNoBackend)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ResolveBackend()
		assert.ErrorIs(t, err, ErrNoBackend)
	})
}
