package gaussblur

import (
	"fmt"

	"github.com/deepteams/gaussblur/imagef"
	"github.com/deepteams/gaussblur/internal/pool"
)

// ExtrapolateBorders writes in into the middle of out and fills radius
// samples on each side by mirroring across the edge sample, which is
// itself excluded as a mirror source:
//
//	in:  [a0 a1 a2 ... aN]
//	out: [aR ... a2 a1 | a0 a1 a2 ... aN | aN-1 aN-2 ... aN-R]
//
// out must have length len(in)+2*radius. Mirror indices are clamped
// into range, but radius > len(in) is a caller precondition violation:
// the clamped values no longer follow the mirror rule.
func ExtrapolateBorders(in, out []float32, radius int) {
	xsize := len(in)
	if len(out) != xsize+2*radius {
		panic(fmt.Sprintf("gaussblur: border buffer length %d, want %d", len(out), xsize+2*radius))
	}
	copy(out[radius:], in)
	lastcol := xsize - 1
	for x := 1; x <= radius; x++ {
		out[radius-x] = in[min(x, lastcol)]
		out[radius+lastcol+x] = in[max(0, lastcol-x)]
	}
}

// convolveXSampleAndTranspose convolves every row of in with kernel
// (mirrored borders), keeps every res-th result, and writes the output
// transposed. Applying it twice yields the full separable 2-D
// convolution with decimation in both axes.
func convolveXSampleAndTranspose(in *imagef.Plane, kernel []float32, res int) *imagef.Plane {
	radius := len(kernel) / 2
	outX := in.XSize() / res
	out := imagef.New(in.YSize(), outX)
	ext := pool.GetRow(in.XSize() + 2*radius)
	defer pool.PutRow(ext)
	for y := 0; y < in.YSize(); y++ {
		ExtrapolateBorders(in.Row(y), ext, radius)
		for ox := 0; ox < outX; ox++ {
			// ext[x+j] is in.Row(y)[x*res - radius + j] with mirroring.
			x := ox * res
			var sum float32
			for j, w := range kernel {
				sum += ext[x+j] * w
			}
			out.Row(ox)[y] = sum
		}
	}
	return out
}

// ConvolveAndSample convolves in with the given odd-length kernel,
// applied separably with mirrored borders, and keeps every res-th
// sample in each axis. The result has size (xsize/res, ysize/res).
// Fusing the blur with the decimation avoids materializing a blurred
// full-resolution plane when building multiscale pyramids.
//
// Both dimensions of in must be integer multiples of res, and the
// kernel radius must not exceed either dimension; violations are
// caller bugs and panic.
func ConvolveAndSample(in *imagef.Plane, kernel []float32, res int) *imagef.Plane {
	if len(kernel) == 0 || len(kernel)%2 == 0 {
		panic(fmt.Sprintf("gaussblur: kernel length %d, want odd", len(kernel)))
	}
	if res <= 0 {
		panic(fmt.Sprintf("gaussblur: sample factor %d out of range", res))
	}
	if in.XSize()%res != 0 || in.YSize()%res != 0 {
		panic(fmt.Sprintf("gaussblur: plane %dx%d not divisible by sample factor %d",
			in.XSize(), in.YSize(), res))
	}
	tmp := convolveXSampleAndTranspose(in, kernel, res)
	return convolveXSampleAndTranspose(tmp, kernel, res)
}
