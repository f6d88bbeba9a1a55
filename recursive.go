package gaussblur

import (
	"fmt"
	"math"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
	"github.com/deepteams/gaussblur/imagef"
	"github.com/deepteams/gaussblur/internal/pool"
)

// RecursiveGaussian holds the precomputed coefficients of a recursive
// (IIR) approximation of a Gaussian with a fixed sigma. The filter is a
// sum of three truncated cosines (orders 1, 3 and 5), each realized by
// a second-order recurrence, so applying it costs O(width) regardless
// of sigma.
//
// Construction is the expensive part; the bundle is immutable
// afterwards, safe for concurrent use, and meant to be built once per
// sigma and reused across rows and planes.
type RecursiveGaussian struct {
	radius int

	// Per order: feed-forward term of the recurrence and first-order
	// feedback multiplier 2*cos(omega).
	n2 [3]float32
	d1 [3]float32

	// The recurrence unrolled four outputs at a time, all relative to
	// the first of the four. mulPrev/mulPrev2 weight the last and
	// second-to-last already-known outputs; mulIn[c] weights the input
	// term c steps back, so lane j folds in inputs 0..j (the missing
	// weights for later lanes are never read).
	mulPrev  [3][4]float32
	mulPrev2 [3][4]float32
	mulIn    [3][4]float32
}

// Radius returns the effective half-width of the filter, which is also
// the length of the zero-padded virtual boundary consumed on each side
// of a row.
func (rg *RecursiveGaussian) Radius() int { return rg.radius }

// dcGainSigns is the sign of the summed taps of each truncated cosine;
// it alternates with the order (the Dirichlet closed form flips sign at
// omega > pi).
var dcGainSigns = [3]float64{1, -1, 1}

// CreateRecursiveGaussian derives the recursive filter for the given
// sigma, following the truncated-cosine construction (Charalampidis,
// 2016): the Gaussian is approximated on a window of half-width
// N = round(3.2795*sigma + 0.2546) by three cosines whose frequencies
// k*pi/(2N), k in {1,3,5}, vanish at the window edge, so each one runs
// as an exact second-order recurrence. Per-order weights are the
// spectral projection of the unit Gaussian onto those cosines, rescaled
// so the total DC gain is exactly 1.
//
// Panics if sigma <= 0.
func CreateRecursiveGaussian(sigma float64) *RecursiveGaussian {
	if sigma <= 0 {
		panic(fmt.Sprintf("gaussblur: sigma %v out of range, must be > 0", sigma))
	}

	radius := math.Round(3.2795*sigma + 0.2546)
	if radius < 1 {
		// Keeps the frequencies finite for sigma below ~0.08; the filter
		// degenerates towards identity there anyway.
		radius = 1
	}
	rg := &RecursiveGaussian{radius: int(radius)}

	var omega, beta [3]float64
	dc := 0.0
	for i := 0; i < 3; i++ {
		k := float64(2*i + 1)
		omega[i] = k * math.Pi / (2 * radius)
		// Sum of the 2N+1 cosine taps, via the Dirichlet kernel.
		p := dcGainSigns[i] / math.Tan(omega[i]/2)
		// Projection of the unit Gaussian onto cos(omega*x) over the
		// window: (1/N) * exp(-sigma^2*omega^2/2).
		beta[i] = math.Exp(-0.5*sigma*sigma*omega[i]*omega[i]) / radius
		dc += beta[i] * p
	}
	for i := range beta {
		// Unit DC gain: constants pass through the filter unchanged.
		beta[i] /= dc
	}

	for i := 0; i < 3; i++ {
		// cos(omega*n) obeys c[n] = d*c[n-1] - c[n-2]. Because the
		// frequency vanishes at the window edge (cos(omega*N) = 0), the
		// truncated kernel is generated by feeding the recurrence the
		// input at distances N-1 and N+1 only, weighted by n2.
		d := 2 * math.Cos(omega[i])
		n2 := -beta[i] * math.Cos(omega[i]*(radius+1))
		rg.n2[i] = float32(n2)
		rg.d1[i] = float32(d)

		// chain[c] is the weight an input picks up c recurrence steps
		// later; it obeys the same recurrence as the cosine.
		var chain [5]float64
		chain[0], chain[1] = 1, d
		for c := 2; c < 5; c++ {
			chain[c] = d*chain[c-1] - chain[c-2]
		}
		for lane := 0; lane < 4; lane++ {
			rg.mulPrev[i][lane] = float32(chain[lane+1])
			rg.mulPrev2[i][lane] = float32(-chain[lane])
			rg.mulIn[i][lane] = float32(n2 * chain[lane])
		}
	}
	return rg
}

// FastGaussian1D applies the recursive filter to a single row. Samples
// outside [0, len(in)) are treated as zero; this zero-padded boundary
// deliberately differs from the mirrored boundary of ConvolveAndSample,
// and callers switching between the two paths must account for it.
// Runtime is O(len(in)), independent of sigma.
//
// out must be at least as long as in and must not overlap it.
func FastGaussian1D(rg *RecursiveGaussian, in, out []float32) {
	width := len(in)
	if len(out) < width {
		panic(fmt.Sprintf("gaussblur: output row length %d < input length %d", len(out), width))
	}
	N := rg.radius

	// y[n-1] and y[n-2] of each order's recurrence. Every output at
	// n <= -N is zero under zero padding, so starting the sweep at
	// n = 1-N with zeroed history is exact, and the sweep cost stays
	// proportional to the row length.
	var prev1, prev2 [3]float32

	// Head: both edges may fall outside the row.
	n := 1 - N
	headEnd := min(width, N+1)
	for ; n < headEnd; n++ {
		left := n - N - 1
		right := n + N - 1
		var sum float32
		if left >= 0 {
			sum = in[left]
		}
		if right < width {
			sum += in[right]
		}
		var total float32
		for i := 0; i < 3; i++ {
			y := rg.n2[i]*sum + rg.d1[i]*prev1[i] - prev2[i]
			prev2[i] = prev1[i]
			prev1[i] = y
			total += y
		}
		if n >= 0 {
			out[n] = total
		}
	}

	// Main body: four outputs per step, branch-free since n >= N+1 and
	// n+N+2 < width keep every index in range. Lane 0 needs both
	// history terms at full weight; each later lane trades history
	// weight for one more folded-in input, and lanes 3 and 2 become the
	// next iteration's history.
	for ; n <= width-N-3; n += 4 {
		s0 := in[n-N-1] + in[n+N-1]
		s1 := in[n-N] + in[n+N]
		s2 := in[n-N+1] + in[n+N+1]
		s3 := in[n-N+2] + in[n+N+2]
		var t0, t1, t2, t3 float32
		for i := 0; i < 3; i++ {
			mi := &rg.mulIn[i]
			mp := &rg.mulPrev[i]
			mq := &rg.mulPrev2[i]
			p1, p2 := prev1[i], prev2[i]
			y0 := mi[0]*s0 + mp[0]*p1 + mq[0]*p2
			y1 := mi[0]*s1 + mi[1]*s0 + mp[1]*p1 + mq[1]*p2
			y2 := mi[0]*s2 + mi[1]*s1 + mi[2]*s0 + mp[2]*p1 + mq[2]*p2
			y3 := mi[0]*s3 + mi[1]*s2 + mi[2]*s1 + mi[3]*s0 + mp[3]*p1 + mq[3]*p2
			prev2[i] = y2
			prev1[i] = y3
			t0 += y0
			t1 += y1
			t2 += y2
			t3 += y3
		}
		out[n] = t0
		out[n+1] = t1
		out[n+2] = t2
		out[n+3] = t3
	}

	// Tail: only the right edge can run out of input here.
	for ; n < width; n++ {
		sum := in[n-N-1]
		if right := n + N - 1; right < width {
			sum += in[right]
		}
		var total float32
		for i := 0; i < 3; i++ {
			y := rg.n2[i]*sum + rg.d1[i]*prev1[i] - prev2[i]
			prev2[i] = prev1[i]
			prev1[i] = y
			total += y
		}
		out[n] = total
	}
}

// FastGaussian applies the recursive filter along both axes of in:
// every row into tmp, then every column of tmp into out, running the
// same 1-D routine over a transposed access pattern for the vertical
// pass. Row tasks (then column tasks) are distributed over exec and own
// disjoint stripes of the output, so no locking is needed; the column
// pass starts only once every row task has completed. A nil exec runs
// both passes inline.
//
// tmp and out must have the same size as in. tmp must not alias in or
// out; it is scratch owned by the caller so repeated calls can reuse
// one allocation.
func FastGaussian(rg *RecursiveGaussian, in *imagef.Plane, exec workerpool.Executor, tmp, out *imagef.Plane) {
	if !in.EqualSize(tmp) || !in.EqualSize(out) {
		panic(fmt.Sprintf("gaussblur: plane sizes differ: in %dx%d, tmp %dx%d, out %dx%d",
			in.XSize(), in.YSize(), tmp.XSize(), tmp.YSize(), out.XSize(), out.YSize()))
	}
	xsize, ysize := in.XSize(), in.YSize()

	parallelFor(exec, ysize, func(start, end int) {
		for y := start; y < end; y++ {
			FastGaussian1D(rg, in.Row(y), tmp.Row(y))
		}
	})

	parallelFor(exec, xsize, func(start, end int) {
		colIn := pool.GetRow(ysize)
		colOut := pool.GetRow(ysize)
		defer pool.PutRow(colIn)
		defer pool.PutRow(colOut)
		for x := start; x < end; x++ {
			for y := 0; y < ysize; y++ {
				colIn[y] = tmp.At(x, y)
			}
			FastGaussian1D(rg, colIn, colOut)
			for y := 0; y < ysize; y++ {
				out.Set(x, y, colOut[y])
			}
		}
	})
}
