// Package pool provides bucketed sync.Pool instances for float32
// scratch rows used in filtering hot paths: padded convolution rows and
// gathered column strips. Buffers are organized by size class to
// minimize waste.
package pool

import "sync"

// Size classes, in float32 elements. Size64K covers padded rows of
// planes up to 64K samples wide; larger requests share the top class.
const (
	Size256  = 256
	Size1K   = 1024
	Size4K   = 4096
	Size16K  = 16384
	Size64K  = 65536
	Size256K = 262144
)

// bucketIndex returns the pool index for a given element count.
func bucketIndex(n int) int {
	switch {
	case n <= Size256:
		return 0
	case n <= Size1K:
		return 1
	case n <= Size4K:
		return 2
	case n <= Size16K:
		return 3
	case n <= Size64K:
		return 4
	default:
		return 5
	}
}

var sizes = [6]int{Size256, Size1K, Size4K, Size16K, Size64K, Size256K}

var pools [6]sync.Pool

func init() {
	for i := range pools {
		n := sizes[i]
		pools[i] = sync.Pool{
			New: func() any {
				s := make([]float32, n)
				return &s
			},
		}
	}
}

// GetRow returns a float32 slice of exactly n elements from the pool.
// Contents are unspecified; callers that need zeroed scratch must clear
// it. The caller must call PutRow when done.
func GetRow(n int) []float32 {
	idx := bucketIndex(n)
	sp := pools[idx].Get().(*[]float32)
	s := *sp
	if cap(s) < n {
		s = make([]float32, n)
		*sp = s
		return s
	}
	return s[:n]
}

// PutRow returns a slice to the pool. The slice must have been obtained
// from GetRow. Slices smaller than Size256 are not pooled.
func PutRow(s []float32) {
	c := cap(s)
	if c < Size256 {
		return
	}
	idx := bucketIndex(c)
	s = s[:c]
	pools[idx].Put(&s)
}
