package cpu

import (
	"github.com/born-ml/normint/internal/tensor"
)

// computeBroadcastStridesForShape returns element strides that map an index
// in outShape onto a tensor of inShape. Axes the input lacks or holds with
// size 1 get stride 0, so the same element is reused along them.
func computeBroadcastStridesForShape(inShape, outShape tensor.Shape) []int {
	strides := make([]int, len(outShape))
	offset := len(outShape) - len(inShape)
	origStrides := inShape.ComputeStrides()

	for i := offset; i < len(outShape); i++ {
		if inShape[i-offset] != 1 {
			strides[i] = origStrides[i-offset]
		}
	}

	return strides
}

// computeFlatIndex converts a flat output index into the flat index of a
// broadcast input, given the output strides and the input's broadcast strides.
func computeFlatIndex(outIdx int, outStrides, inStrides []int) int {
	flatIdx := 0
	for i, s := range outStrides {
		flatIdx += (outIdx / s) * inStrides[i]
		outIdx %= s
	}
	return flatIdx
}
