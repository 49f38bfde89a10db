package testing

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vpp/interfaces"
	"github.com/opd-ai/vpp/video"
)

// SimulatedDisplay creates SimulatedFilters and SimulatedSurfacePools and
// keeps every instance it created for inspection.
type SimulatedDisplay struct {
	mu sync.Mutex

	rawFormats   []video.Format
	hasGL        bool
	noFilter     bool
	poolCapacity int
	configure    []func(*SimulatedFilter)

	filters []*SimulatedFilter
	pools   []*SimulatedSurfacePool
}

// NewSimulatedDisplay creates a display with OpenGL support and every raw
// format available.
func NewSimulatedDisplay() *SimulatedDisplay {
	logrus.WithFields(logrus.Fields{
		"function": "NewSimulatedDisplay",
	}).Info("Creating simulated display for testing")

	return &SimulatedDisplay{
		rawFormats: video.AllRawFormats(),
		hasGL:      true,
	}
}

// ConfigureFilters registers fn to run on every filter created from now on.
func (d *SimulatedDisplay) ConfigureFilters(fn func(*SimulatedFilter)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.configure = append(d.configure, fn)
}

// DisableFilters makes NewFilter fail, as on a driver without video
// processing support.
func (d *SimulatedDisplay) DisableFilters() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.noFilter = true
}

// SetOpenGL sets the value reported by HasOpenGL.
func (d *SimulatedDisplay) SetOpenGL(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hasGL = enabled
}

// SetRawFormats replaces the raw formats reported to negotiation.
func (d *SimulatedDisplay) SetRawFormats(formats ...video.Format) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rawFormats = append([]video.Format(nil), formats...)
}

// SetPoolCapacity bounds every pool created afterwards.
func (d *SimulatedDisplay) SetPoolCapacity(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.poolCapacity = n
}

// NewFilter implements IDisplay.NewFilter.
func (d *SimulatedDisplay) NewFilter() (interfaces.IFilter, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.noFilter {
		return nil, errors.Wrap(interfaces.ErrOperationUnsupported, "simulated display has no video processing")
	}
	f := NewSimulatedFilter()
	for _, fn := range d.configure {
		fn(f)
	}
	d.filters = append(d.filters, f)
	return f, nil
}

// NewSurfacePool implements IDisplay.NewSurfacePool.
func (d *SimulatedDisplay) NewSurfacePool(info video.Info) (interfaces.ISurfacePool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if info.Width <= 0 || info.Height <= 0 {
		return nil, errors.Newf("invalid pool size %dx%d", info.Width, info.Height)
	}
	p := NewSimulatedSurfacePool(info, d.poolCapacity)
	d.pools = append(d.pools, p)
	return p, nil
}

// RawFormats implements IDisplay.RawFormats.
func (d *SimulatedDisplay) RawFormats() []video.Format {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]video.Format(nil), d.rawFormats...)
}

// HasOpenGL implements IDisplay.HasOpenGL.
func (d *SimulatedDisplay) HasOpenGL() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hasGL
}

// Filters returns every filter created so far, oldest first.
func (d *SimulatedDisplay) Filters() []*SimulatedFilter {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*SimulatedFilter(nil), d.filters...)
}

// LastFilter returns the most recently created filter, or nil.
func (d *SimulatedDisplay) LastFilter() *SimulatedFilter {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.filters) == 0 {
		return nil
	}
	return d.filters[len(d.filters)-1]
}

// Pools returns every pool created so far, oldest first.
func (d *SimulatedDisplay) Pools() []*SimulatedSurfacePool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*SimulatedSurfacePool(nil), d.pools...)
}

// LastPool returns the most recently created pool, or nil.
func (d *SimulatedDisplay) LastPool() *SimulatedSurfacePool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.pools) == 0 {
		return nil
	}
	return d.pools[len(d.pools)-1]
}
