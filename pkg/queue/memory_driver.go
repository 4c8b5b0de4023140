package queue

import "context"

// memoryBuffer bounds how many jobs the in-process queue holds before Push
// blocks.
const memoryBuffer = 1000

// MemoryDriver is a channel-backed queue driver. Jobs do not survive a
// restart; development and tests only.
type MemoryDriver struct {
	ch chan []byte
}

// NewMemoryDriver builds an in-memory queue.
func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{ch: make(chan []byte, memoryBuffer)}
}

func (d *MemoryDriver) Push(payload []byte) error {
	d.ch <- payload
	return nil
}

func (d *MemoryDriver) Pop(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case payload := <-d.ch:
		return payload, nil
	}
}
