// Package validate checks gradient fields before integration.
package validate

import (
	"errors"
	"fmt"

	"github.com/born-ml/normint/internal/tensor"
)

// ErrShape is returned when two gradient fields cannot be integrated together.
var ErrShape = errors.New("validate: incompatible gradient shapes")

// CheckShapes returns the extent (y, x) of the two trailing axes shared by
// gx and gy. Both fields must be at least 2-D and have identical shapes,
// including any leading batch axes.
func CheckShapes(gx, gy *tensor.RawTensor) (y, x int, err error) {
	sx, sy := gx.Shape(), gy.Shape()

	if len(sx) < 2 || len(sy) < 2 {
		return 0, 0, fmt.Errorf("%w: need at least 2 dimensions, got gx %v and gy %v", ErrShape, sx, sy)
	}
	if !sx.Equal(sy) {
		return 0, 0, fmt.Errorf("%w: gx %v does not match gy %v", ErrShape, sx, sy)
	}

	return sx[len(sx)-2], sx[len(sx)-1], nil
}
