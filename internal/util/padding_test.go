package util

import (
	"sync"
	"testing"
	"unsafe"
)

func TestPaddedAtomicUint64_Size(t *testing.T) {
	t.Parallel()

	if got := unsafe.Sizeof(PaddedAtomicUint64{}); got != CacheLineSize {
		t.Fatalf("PaddedAtomicUint64 size = %d, want %d", got, CacheLineSize)
	}
}

func TestPaddedAtomicUint64_ConcurrentAdd(t *testing.T) {
	t.Parallel()

	var c PaddedAtomicUint64
	const workers, perWorker = 8, 1000

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				c.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := c.Load(); got != workers*perWorker {
		t.Fatalf("counter = %d, want %d", got, workers*perWorker)
	}
}
