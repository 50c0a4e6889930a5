// Package padding extends gradient fields before spectral integration.
package padding

import (
	"github.com/born-ml/normint/internal/tensor"
)

// Antisym doubles both spatial axes of a gradient pair by mirroring it about
// the high-index edges, flipping signs so that the pair stays the gradient of
// the evenly mirrored potential. The extended fields are periodic without a
// jump.
//
// With flipx/flipy reversing the last/second-to-last axis:
//
//	gx' = [[gx,        -flipx(gx)       ],
//	       [flipy(gx), -flipy(flipx(gx))]]
//
//	gy' = [[gy,         flipx(gy)       ],
//	       [-flipy(gy), -flipy(flipx(gy))]]
//
// The mirror repeats the boundary sample, so the row gx = [1 2 3] becomes
// [1 2 3 -3 -2 -1]. Leading batch axes are carried through unchanged.
func Antisym(b tensor.Backend, gy, gx *tensor.RawTensor) (*tensor.RawTensor, *tensor.RawTensor) {
	const rows, cols = -2, -1

	// gx is odd across the vertical edge and even across the horizontal one.
	gxTop := b.Cat([]*tensor.RawTensor{gx, b.Neg(b.Flip(gx, cols))}, cols)
	gxPad := b.Cat([]*tensor.RawTensor{gxTop, b.Flip(gxTop, rows)}, rows)

	// gy is even across the vertical edge and odd across the horizontal one.
	gyTop := b.Cat([]*tensor.RawTensor{gy, b.Flip(gy, cols)}, cols)
	gyPad := b.Cat([]*tensor.RawTensor{gyTop, b.Neg(b.Flip(gyTop, rows))}, rows)

	return gyPad, gxPad
}
