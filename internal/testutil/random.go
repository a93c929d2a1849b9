package testutil

import (
	"fmt"
	"sync"
)

// SequenceRandom is a deterministic pw.RandomSource. Intn cycles through
// values, reducing each modulo n; Bytes fills with an incrementing counter.
// Safe for concurrent use.
type SequenceRandom struct {
	mu     sync.Mutex
	values []int
	next   int
	fill   byte
}

// NewSequenceRandom creates a SequenceRandom cycling through values. With no
// values it always returns 0.
func NewSequenceRandom(values ...int) *SequenceRandom {
	return &SequenceRandom{values: values}
}

func (r *SequenceRandom) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("invalid bound %d", n)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.values) == 0 {
		return 0, nil
	}
	v := r.values[r.next%len(r.values)]
	r.next++
	return v % n, nil
}

func (r *SequenceRandom) Bytes(n int) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := make([]byte, n)
	for i := range b {
		b[i] = r.fill
		r.fill++
	}
	return b, nil
}
