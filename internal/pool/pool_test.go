package pool

import (
	"sync"
	"testing"
)

func TestGetPutRow_ExactLength(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"256", 256},
		{"1K", 1024},
		{"4K", 4096},
		{"16K", 16384},
		{"64K", 65536},
		{"500", 500},
		{"3000", 3000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := GetRow(tt.n)
			if len(s) != tt.n {
				t.Errorf("GetRow(%d): len = %d, want %d", tt.n, len(s), tt.n)
			}
			PutRow(s)
		})
	}
}

func TestBucketIndex(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{1, 0},
		{256, 0},
		{257, 1},
		{1024, 1},
		{1025, 2},
		{4096, 2},
		{4097, 3},
		{16384, 3},
		{16385, 4},
		{65536, 4},
		{65537, 5},
		{262144, 5},
		{1 << 20, 5},
	}
	for _, tt := range tests {
		if got := bucketIndex(tt.n); got != tt.want {
			t.Errorf("bucketIndex(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestGetRow_LargerThanTopClass(t *testing.T) {
	// Requests above the top size class must still return an exact-length
	// slice; the pool reallocates when a pooled buffer is too small.
	n := 2 * Size256K
	s := GetRow(n)
	if len(s) != n {
		t.Errorf("GetRow(%d): len = %d, want %d", n, len(s), n)
	}
	PutRow(s)
}

func TestGetRow_ZeroLength(t *testing.T) {
	s := GetRow(0)
	if len(s) != 0 {
		t.Errorf("GetRow(0): len = %d, want 0", len(s))
	}
	PutRow(s)
}

func TestPutRow_SmallAndNil(t *testing.T) {
	PutRow(make([]float32, 10)) // below the smallest class, dropped
	PutRow(nil)

	s := GetRow(256)
	if len(s) != 256 {
		t.Errorf("GetRow(256) after small PutRow: len = %d", len(s))
	}
	PutRow(s)
}

func TestConcurrency(t *testing.T) {
	const goroutines = 16
	const iterations = 100

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				for _, n := range []int{128, 512, 2048, 8192, 32768} {
					s := GetRow(n)
					if len(s) != n {
						t.Errorf("concurrent GetRow(%d): len = %d", n, len(s))
						return
					}
					for j := range s {
						s[j] = float32(j)
					}
					PutRow(s)
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkGetRow(b *testing.B) {
	for i := 0; i < b.N; i++ {
		s := GetRow(4096)
		PutRow(s)
	}
}
