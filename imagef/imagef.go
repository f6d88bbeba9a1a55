// Package imagef provides a single-channel float32 image plane with a
// row stride. It is the pixel container consumed by the gaussblur
// filters; the filters only ever read and write planes through Row and
// never retain one beyond a call.
package imagef

import "fmt"

// Plane is a 2-D array of float32 samples, row-major, with each row
// independently addressable as a contiguous slice.
type Plane struct {
	xsize  int
	ysize  int
	stride int
	pix    []float32
}

// New allocates a zeroed Plane of the given dimensions.
// Panics if xsize or ysize is not positive.
func New(xsize, ysize int) *Plane {
	if xsize <= 0 || ysize <= 0 {
		panic(fmt.Sprintf("imagef: invalid plane size %dx%d", xsize, ysize))
	}
	return &Plane{
		xsize:  xsize,
		ysize:  ysize,
		stride: xsize,
		pix:    make([]float32, xsize*ysize),
	}
}

// XSize returns the plane width in samples.
func (p *Plane) XSize() int { return p.xsize }

// YSize returns the plane height in samples.
func (p *Plane) YSize() int { return p.ysize }

// Row returns row y as a slice of length XSize. The slice aliases the
// plane's storage; writes through it modify the plane.
func (p *Plane) Row(y int) []float32 {
	off := y * p.stride
	return p.pix[off : off+p.xsize : off+p.xsize]
}

// At returns the sample at (x, y).
func (p *Plane) At(x, y int) float32 { return p.pix[y*p.stride+x] }

// Set stores v at (x, y).
func (p *Plane) Set(x, y int, v float32) { p.pix[y*p.stride+x] = v }

// Fill sets every sample to v.
func (p *Plane) Fill(v float32) {
	for y := 0; y < p.ysize; y++ {
		row := p.Row(y)
		for x := range row {
			row[x] = v
		}
	}
}

// EqualSize reports whether p and q have identical dimensions.
func (p *Plane) EqualSize(q *Plane) bool {
	return p.xsize == q.xsize && p.ysize == q.ysize
}
