package vpp

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vpp/deinterlace"
	"github.com/opd-ai/vpp/interfaces"
	"github.com/opd-ai/vpp/params"
	"github.com/opd-ai/vpp/video"
)

// Option configures an Element at construction.
type Option func(*Element)

// WithReconfigure sets the callback run when a property change or an
// orientation tag requires the host to renegotiate. It runs without the
// element lock held.
func WithReconfigure(fn func()) Option {
	return func(e *Element) {
		e.reconfigure = fn
	}
}

// WithCanDMABuf declares that downstream imports DMABuf, which removes the
// GL texture upload alternative from the source caps.
func WithCanDMABuf(can bool) Option {
	return func(e *Element) {
		e.canDMABuf = can
	}
}

// WithResetHistoryOnGap drops the deinterlace references after a timestamp
// discontinuity when an advanced method is configured.
func WithResetHistoryOnGap(enable bool) Option {
	return func(e *Element) {
		e.resetOnGap = enable
	}
}

// WithParameters replaces the initial parameter state.
func WithParameters(state *params.State) Option {
	return func(e *Element) {
		if state != nil {
			e.state = state
		}
	}
}

// Element is one postprocessing stage.
type Element struct {
	mu sync.Mutex
	id string

	display    interfaces.IDisplay
	downstream interfaces.IDownstream

	reconfigure func()
	canDMABuf   bool
	resetOnGap  bool

	state   *params.State
	history *deinterlace.History

	filter        interfaces.IFilter
	filterOps     []interfaces.OpInfo
	filterFormats []video.Format
	pool          interfaces.ISurfacePool
	poolInfo      video.Info

	// generation changes whenever the binding, the pool or the negotiated
	// formats are replaced.
	generation uint64

	allowedSink *video.Caps
	allowedSrc  *video.Caps

	sinkInfo      video.Info
	srcInfo       video.Info
	fieldDuration time.Duration

	getVASurfaces bool
	forwardCrop   bool
	hasVPP        bool
	useVPP        bool
	sameCaps      bool
	passthrough   bool
}

// New creates an element bound to display, pushing output frames to
// downstream. When the display offers a Filter Engine binding, the
// colour-balance and skin-tone-level defaults are taken from it.
func New(display interfaces.IDisplay, downstream interfaces.IDownstream, opts ...Option) *Element {
	e := &Element{
		id:            uuid.NewString(),
		display:       display,
		downstream:    downstream,
		state:         params.NewState(),
		history:       deinterlace.NewHistory(),
		fieldDuration: video.ClockTimeNone,
		getVASurfaces: true,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.mu.Lock()
	if err := e.ensureFilterCaps(); err == nil {
		e.state.InitDefaults(e.filterOps)
		e.hasVPP = true
	}
	e.mu.Unlock()

	e.log("New").WithFields(logrus.Fields{
		"has_vpp":      e.hasVPP,
		"reset_on_gap": e.resetOnGap,
		"can_dmabuf":   e.canDMABuf,
	}).Info("Created postprocessing element")

	return e
}

// ID returns the element instance identifier used in logs.
func (e *Element) ID() string {
	return e.id
}

func (e *Element) log(function string) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"function":   "Element." + function,
		"element_id": e.id,
	})
}

// Start prepares the element for streaming.
func (e *Element) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.history.Reset()
	if e.display == nil {
		return errors.Wrap(ErrNoDisplay, "start")
	}
	if err := e.ensureFilter(); err != nil {
		e.log("Start").WithField("error", err.Error()).Warn("No Filter Engine binding, hardware path unavailable")
	}

	e.log("Start").Info("Element started")
	return nil
}

// Stop forgets the negotiated formats and the deinterlace history.
func (e *Element) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.history.Reset()
	e.resetNegotiated()

	e.log("Stop").Info("Element stopped")
	return nil
}

// Close releases the Filter Engine binding and the surface pool.
func (e *Element) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.destroy()
	e.log("Close").Info("Element closed")
	return err
}

func (e *Element) resetNegotiated() {
	e.fieldDuration = video.ClockTimeNone
	e.sinkInfo = video.Info{}
	e.srcInfo = video.Info{}
	e.poolInfo = video.Info{}
	e.generation++
}

func (e *Element) ensureFilter() error {
	if e.filter != nil {
		return nil
	}
	if e.display == nil {
		return ErrNoDisplay
	}

	e.allowedSink = nil
	e.allowedSrc = nil

	filter, err := e.display.NewFilter()
	if err != nil {
		return errors.Wrap(err, "create filter")
	}
	e.filter = filter
	return nil
}

func (e *Element) ensureFilterCaps() error {
	if err := e.ensureFilter(); err != nil {
		return err
	}

	if e.filterOps == nil {
		ops, err := e.filter.Operations()
		if err != nil {
			return errors.Wrap(err, "query filter operations")
		}
		e.filterOps = ops
	}
	if e.filterFormats == nil {
		formats, err := e.filter.Formats()
		if err != nil {
			return errors.Wrap(err, "query filter formats")
		}
		e.filterFormats = formats
	}
	return nil
}

func (e *Element) create() error {
	if e.display == nil {
		return ErrNoDisplay
	}
	e.useVPP = false
	e.hasVPP = e.ensureFilter() == nil

	e.log("create").WithField("has_vpp", e.hasVPP).Info("Filter Engine binding rebuilt")
	return nil
}

func (e *Element) destroyFilter() error {
	var errs error
	e.generation++
	e.filterFormats = nil
	e.filterOps = nil
	e.hasVPP = false

	if e.filter != nil {
		if err := e.filter.Close(); err != nil {
			errs = errors.CombineErrors(errs, errors.Wrap(err, "close filter"))
		}
		e.filter = nil
	}
	if e.pool != nil {
		if err := e.pool.Close(); err != nil {
			errs = errors.CombineErrors(errs, errors.Wrap(err, "close surface pool"))
		}
		e.pool = nil
	}
	return errs
}

func (e *Element) destroy() error {
	e.history.Reset()
	err := e.destroyFilter()
	e.allowedSink = nil
	e.allowedSrc = nil
	return err
}

// checkFilterUpdate reports whether the hardware path has pending work.
func (e *Element) checkFilterUpdate() bool {
	return e.hasVPP && e.state.HasPendingWork()
}

// applyPending pushes pending values into the binding and reports whether
// work remains pending afterwards.
func (e *Element) applyPending() bool {
	if !e.checkFilterUpdate() {
		return false
	}
	if err := e.state.ApplyPending(e.filter); err != nil {
		e.log("applyPending").WithField("error", err.Error()).Warn("Filter rejected pending parameters")
	}
	return e.checkFilterUpdate()
}

func (e *Element) notifyReconfigure() {
	if e.reconfigure != nil {
		e.reconfigure()
	}
}

func (e *Element) ensureBufferPool(info video.Info) error {
	info = info.WithFormat(e.state.Format.Value())
	if e.pool != nil && !e.poolInfo.Changed(info) {
		return nil
	}
	if e.display == nil {
		return ErrNoDisplay
	}

	pool, err := e.display.NewSurfacePool(info)
	if err != nil {
		return errors.Wrapf(ErrResourceAcquisition, "surface pool for %s: %v", info, err)
	}
	if e.pool != nil {
		if err := e.pool.Close(); err != nil {
			e.log("ensureBufferPool").WithField("error", err.Error()).Warn("Failed to close previous surface pool")
		}
	}
	e.pool = pool
	e.poolInfo = info
	e.generation++

	e.log("ensureBufferPool").WithField("info", info.String()).Debug("Surface pool ready")
	return nil
}
