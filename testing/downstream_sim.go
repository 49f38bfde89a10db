package testing

import (
	"sync"

	"github.com/opd-ai/vpp/video"
)

// RecordingDownstream collects every buffer pushed to it.
type RecordingDownstream struct {
	mu      sync.Mutex
	buffers []*video.Buffer
	err     error
	failAt  int
}

// NewRecordingDownstream creates an empty recorder.
func NewRecordingDownstream() *RecordingDownstream {
	return &RecordingDownstream{failAt: -1}
}

// FailWith makes the push with index n (zero-based) and every later push
// return err. A negative n disables failures.
func (r *RecordingDownstream) FailWith(n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failAt = n
	r.err = err
}

// Push implements IDownstream.Push. A rejected buffer is released.
func (r *RecordingDownstream) Push(buf *video.Buffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAt >= 0 && len(r.buffers) >= r.failAt {
		buf.Release()
		return r.err
	}
	r.buffers = append(r.buffers, buf)
	return nil
}

// Buffers returns the pushed buffers in order.
func (r *RecordingDownstream) Buffers() []*video.Buffer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*video.Buffer(nil), r.buffers...)
}

// Len returns the number of pushed buffers.
func (r *RecordingDownstream) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buffers)
}

// Reset forgets every pushed buffer.
func (r *RecordingDownstream) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buffers = nil
}
