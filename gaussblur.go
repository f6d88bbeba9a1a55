package gaussblur

import (
	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
	"github.com/deepteams/gaussblur/imagef"
)

// Blur smooths in with a Gaussian of the given sigma using the
// recursive engine and returns a freshly allocated plane. exec may be
// nil to run single-threaded.
//
// Callers filtering many planes at the same sigma should instead build
// the coefficients once with CreateRecursiveGaussian and call
// FastGaussian with a reused scratch plane.
func Blur(in *imagef.Plane, sigma float64, exec workerpool.Executor) *imagef.Plane {
	rg := CreateRecursiveGaussian(sigma)
	tmp := imagef.New(in.XSize(), in.YSize())
	out := imagef.New(in.XSize(), in.YSize())
	FastGaussian(rg, in, exec, tmp, out)
	return out
}

// parallelFor partitions [0, n) across the pool's workers and returns
// once every subrange has been processed. A nil exec runs the whole
// range inline.
func parallelFor(exec workerpool.Executor, n int, fn func(start, end int)) {
	if exec == nil {
		fn(0, n)
		return
	}
	exec.ParallelFor(n, fn)
}
