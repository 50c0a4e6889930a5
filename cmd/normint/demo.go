package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/normint/integrate"
	"github.com/born-ml/normint/tensor"
)

// sizeValue is a "HxW" grid size flag.
type sizeValue struct {
	y, x int
}

var _ pflag.Value = (*sizeValue)(nil)

func (s *sizeValue) String() string { return fmt.Sprintf("%dx%d", s.y, s.x) }

func (s *sizeValue) Type() string { return "HxW" }

func (s *sizeValue) Set(v string) error {
	hs, ws, ok := strings.Cut(strings.ToLower(v), "x")
	if !ok {
		return fmt.Errorf("size %q: want HxW", v)
	}
	y, err := strconv.Atoi(hs)
	if err != nil {
		return fmt.Errorf("size %q: %w", v, err)
	}
	x, err := strconv.Atoi(ws)
	if err != nil {
		return fmt.Errorf("size %q: %w", v, err)
	}
	if y < 1 || x < 1 {
		return fmt.Errorf("size %q: dimensions must be positive", v)
	}
	s.y, s.x = y, x
	return nil
}

type demoOpts struct {
	root    *rootOpts
	size    sizeValue
	pad     string
	workers int
	dtype   string
	field   string
}

func newDemoCommand(root *rootOpts) *cobra.Command {
	opts := &demoOpts{root: root, size: sizeValue{y: 128, x: 128}}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Integrate a synthetic gradient field and report the reconstruction error",
		Long: `Synthesize a scalar field, differentiate it analytically, integrate the
gradients back with the Kottler method and print the error against the
original field. The integration constant is not recoverable, so both fields
are compared after removing their means.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.complete(cmd.Flags()); err != nil {
				return err
			}
			return opts.run(cmd)
		},
	}

	flags := cmd.Flags()
	flags.Var(&opts.size, "size", "Grid size as HxW")
	flags.StringVar(&opts.pad, "pad", string(integrate.PadNone), `Pad mode ("" or "antisym")`)
	flags.IntVar(&opts.workers, "workers", 0, "FFT worker hint (0 = backend default). Falls back to $"+envWorkers+".")
	flags.StringVar(&opts.dtype, "dtype", "float64", "Element type (float32 or float64)")
	flags.StringVar(&opts.field, "field", "periodic", "Synthetic field (periodic or ramp)")
	return cmd
}

func (o *demoOpts) complete(flags *pflag.FlagSet) error {
	if !flags.Changed("workers") {
		if v, ok := os.LookupEnv(envWorkers); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("$%s: %w", envWorkers, err)
			}
			o.workers = n
		}
	}
	switch o.dtype {
	case "float32", "float64":
	default:
		return fmt.Errorf("--dtype: unsupported %q", o.dtype)
	}
	switch o.field {
	case "periodic", "ramp":
	default:
		return fmt.Errorf("--field: unknown %q", o.field)
	}
	return nil
}

func (o *demoOpts) run(cmd *cobra.Command) error {
	log := o.root.log.WithFields(logrus.Fields{
		"size":    o.size.String(),
		"field":   o.field,
		"dtype":   o.dtype,
		"workers": o.workers,
	})

	phi, gy, gx := synthesize(o.field, o.size.y, o.size.x)
	shape := tensor.Shape{o.size.y, o.size.x}

	gyT, gxT, err := o.toTensors(gy, gx, shape)
	if err != nil {
		return err
	}

	start := time.Now()
	out, err := integrate.Kottler(gyT, gxT,
		integrate.WithPad(integrate.Pad(o.pad)),
		integrate.WithWorkers(o.workers),
		integrate.WithLogger(log),
	)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	log.WithField("elapsed", elapsed).Info("integrated")

	rec := asFloat64(out)
	rms, maxAbs := compare(phi, rec)

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "shape:     %v\n", out.Shape())
	fmt.Fprintf(w, "dtype:     %s\n", out.DType())
	fmt.Fprintf(w, "pad:       %q\n", o.pad)
	fmt.Fprintf(w, "rms error: %.3e\n", rms)
	fmt.Fprintf(w, "max error: %.3e\n", maxAbs)
	return nil
}

func (o *demoOpts) toTensors(gy, gx []float64, shape tensor.Shape) (gyT, gxT *tensor.RawTensor, err error) {
	if o.dtype == "float32" {
		if gyT, err = tensor.FromSlice(narrow(gy), shape, tensor.CPU); err != nil {
			return nil, nil, err
		}
		gxT, err = tensor.FromSlice(narrow(gx), shape, tensor.CPU)
		return gyT, gxT, err
	}
	if gyT, err = tensor.FromSlice(gy, shape, tensor.CPU); err != nil {
		return nil, nil, err
	}
	gxT, err = tensor.FromSlice(gx, shape, tensor.CPU)
	return gyT, gxT, err
}

// synthesize samples a potential and its analytic per-sample gradient.
func synthesize(field string, ny, nx int) (phi, gy, gx []float64) {
	ax := 2 * math.Pi / float64(nx)
	ay := 2 * math.Pi / float64(ny)

	phi = make([]float64, ny*nx)
	gy = make([]float64, ny*nx)
	gx = make([]float64, ny*nx)
	for r := 0; r < ny; r++ {
		for c := 0; c < nx; c++ {
			x, y := float64(c), float64(r)
			i := r*nx + c
			switch field {
			case "ramp":
				phi[i] = 0.05*x + 0.03*y*y/float64(ny)
				gx[i] = 0.05
				gy[i] = 0.06 * y / float64(ny)
			default:
				phi[i] = math.Sin(ax*x) * math.Cos(ay*y)
				gx[i] = ax * math.Cos(ax*x) * math.Cos(ay*y)
				gy[i] = -ay * math.Sin(ax*x) * math.Sin(ay*y)
			}
		}
	}
	return phi, gy, gx
}

// compare returns the RMS and maximum absolute difference of the mean-free
// parts of want and got.
func compare(want, got []float64) (rms, maxAbs float64) {
	n := float64(len(want))
	diff := make([]float64, len(want))
	floats.SubTo(diff, got, want)
	floats.AddConst(-floats.Sum(diff)/n, diff)

	rms = floats.Norm(diff, 2) / math.Sqrt(n)
	maxAbs = math.Max(math.Abs(floats.Max(diff)), math.Abs(floats.Min(diff)))
	return rms, maxAbs
}

func narrow(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}

func asFloat64(r *tensor.RawTensor) []float64 {
	if r.DType() == tensor.Float64 {
		return r.AsFloat64()
	}
	src := r.AsFloat32()
	out := make([]float64, len(src))
	for i, x := range src {
		out[i] = float64(x)
	}
	return out
}
