package gaussblur

import (
	"fmt"
	"math"
)

// GaussianKernel returns the 2*radius+1 taps of a truncated discrete
// Gaussian with standard deviation sigma, normalized to sum to 1. The
// center tap is at index radius. Panics if radius is negative or sigma
// is not positive; a clamped sigma would silently change filtering
// semantics, so the contract fails fast instead.
func GaussianKernel(radius int, sigma float64) []float32 {
	if radius < 0 {
		panic(fmt.Sprintf("gaussblur: negative kernel radius %d", radius))
	}
	if sigma <= 0 {
		panic(fmt.Sprintf("gaussblur: sigma %v out of range, must be > 0", sigma))
	}
	kernel := make([]float32, 2*radius+1)
	scaler := -1.0 / (2 * sigma * sigma)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(scaler * float64(i*i))
		kernel[i+radius] = float32(v)
		sum += v
	}
	for i := range kernel {
		kernel[i] = float32(float64(kernel[i]) / sum)
	}
	return kernel
}
