package testing

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vpp/interfaces"
	"github.com/opd-ai/vpp/video"
)

// SimulatedSurfacePool hands out SimulatedSurfaces. A capacity of zero
// means unbounded.
type SimulatedSurfacePool struct {
	mu          sync.Mutex
	info        video.Info
	capacity    int
	outstanding int
	acquired    int
	closed      bool
}

// NewSimulatedSurfacePool creates a pool for info.
func NewSimulatedSurfacePool(info video.Info, capacity int) *SimulatedSurfacePool {
	logrus.WithFields(logrus.Fields{
		"function": "NewSimulatedSurfacePool",
		"info":     info.String(),
		"capacity": capacity,
	}).Debug("Creating simulated surface pool")

	return &SimulatedSurfacePool{info: info, capacity: capacity}
}

// Acquire implements ISurfacePool.Acquire.
func (p *SimulatedSurfacePool) Acquire() (*video.SurfaceProxy, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, errors.Wrap(interfaces.ErrPoolExhausted, "pool closed")
	}
	if p.capacity > 0 && p.outstanding >= p.capacity {
		logrus.WithFields(logrus.Fields{
			"function":    "SimulatedSurfacePool.Acquire",
			"outstanding": p.outstanding,
			"capacity":    p.capacity,
		}).Warn("Simulated surface pool exhausted")
		return nil, errors.Wrapf(interfaces.ErrPoolExhausted, "%d surfaces outstanding", p.outstanding)
	}

	p.outstanding++
	p.acquired++
	surface := NewSimulatedSurface(p.info.Width, p.info.Height, p.info.Format)
	return video.NewSurfaceProxy(surface, p.release), nil
}

func (p *SimulatedSurfacePool) release(video.Surface) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.outstanding--
}

// Info implements ISurfacePool.Info.
func (p *SimulatedSurfacePool) Info() video.Info {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.info
}

// Close implements ISurfacePool.Close.
func (p *SimulatedSurfacePool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Outstanding returns the number of surfaces not yet released.
func (p *SimulatedSurfacePool) Outstanding() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.outstanding
}

// Acquired returns the total number of surfaces handed out.
func (p *SimulatedSurfacePool) Acquired() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.acquired
}

// Closed reports whether Close was called.
func (p *SimulatedSurfacePool) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
