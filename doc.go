// Package gaussblur implements Gaussian smoothing of single-channel
// float32 planes for codec-internal filtering: pre/post-processing and
// multiscale analysis.
//
// Two complementary algorithms are provided:
//
//   - ConvolveAndSample: exact truncated-kernel convolution with
//     mirrored borders, fused with integer-factor downsampling. Cost
//     grows with the kernel radius; intended for pyramid construction.
//   - CreateRecursiveGaussian / FastGaussian1D / FastGaussian: a
//     recursive (IIR) approximation with zero-padded borders whose
//     per-pixel cost is independent of sigma; intended for large-radius
//     blurs applied at many sigma values.
//
// The two paths intentionally use different boundary conditions
// (mirrored versus zero-padded) and are not interchangeable near edges.
//
// Basic usage:
//
//	rg := gaussblur.CreateRecursiveGaussian(4.5)
//	tmp := imagef.New(in.XSize(), in.YSize())
//	out := imagef.New(in.XSize(), in.YSize())
//	gaussblur.FastGaussian(rg, in, pool, tmp, out)
//
// or, when one-shot convenience beats scratch reuse:
//
//	out := gaussblur.Blur(in, 4.5, pool)
//
// All contract violations (non-positive sigma, mismatched plane sizes,
// non-divisible decimation) panic at entry; the numeric routines never
// fail mid-computation.
package gaussblur
