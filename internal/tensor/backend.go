package tensor

// Backend defines the operations a numeric backend supplies to the
// frequency-domain integrators.
//
// All operations are functional: they allocate and return a new tensor and
// never write into their arguments. Misuse (mismatched dtypes, out-of-range
// dimensions) panics; callers validate user input before reaching a backend.
//
// Implementations:
//   - CPU: pure Go, FFTs via gonum (internal/backend/cpu)
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	// Both operands must share a dtype.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// MulScalar multiplies every element by scalar. The scalar must have the
	// Go type of the tensor's dtype, or be a complex128 for complex tensors.
	MulScalar(x *RawTensor, scalar any) *RawTensor
	Neg(x *RawTensor) *RawTensor

	// Complex builds re + i·im with broadcasting; re and im share a real
	// floating dtype and the result has the matching complex dtype.
	Complex(re, im *RawTensor) *RawTensor
	// Real returns the real component of a complex tensor.
	Real(x *RawTensor) *RawTensor

	Cast(x *RawTensor, dtype DataType) *RawTensor
	Reshape(x *RawTensor, shape Shape) *RawTensor

	// Flip reverses the order of elements along dim.
	Flip(x *RawTensor, dim int) *RawTensor
	// Cat concatenates tensors along dim.
	Cat(tensors []*RawTensor, dim int) *RawTensor
	// Slice keeps indices [start, end) along dim.
	Slice(x *RawTensor, dim, start, end int) *RawTensor
	// SetItem returns a copy of x with x[..., index...] = value, where index
	// addresses the trailing len(index) axes and the assignment is repeated
	// for every leading batch entry. Negative indices count from the end.
	SetItem(x *RawTensor, value any, index ...int) *RawTensor

	// FFTFreq returns the n sample frequencies of a length-n DFT in cycles
	// per sample, zero frequency first, as a 1-D tensor of dtype.
	FFTFreq(n int, dtype DataType) *RawTensor
	// FFT2 and IFFT2 transform the last two axes of a complex tensor,
	// batched over leading axes. workers is a parallelism hint; values <= 0
	// select the backend default. IFFT2 is normalized by 1/(rows·cols).
	FFT2(x *RawTensor, workers int) *RawTensor
	IFFT2(x *RawTensor, workers int) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
