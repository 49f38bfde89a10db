package testing

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vpp/interfaces"
	"github.com/opd-ai/vpp/video"
)

// FilterCall is one recorded call on a SimulatedFilter.
type FilterCall struct {
	Method string

	Op    interfaces.FilterOp
	Value interfaces.Value

	DeinterlaceMethod interfaces.DeinterlaceMethod
	DeinterlaceFlags  interfaces.DeinterlaceFlags
	References        []string

	Crop *video.Rectangle

	In          string
	Out         string
	RenderFlags video.RenderFlags
	Status      interfaces.FilterStatus

	HDR       bool
	Mastering *video.MasteringDisplayInfo
	Light     *video.ContentLightLevel
}

// SimulatedFilter is an in-memory Filter Engine binding. By default it
// supports every operation, every deinterlace method and every direction.
type SimulatedFilter struct {
	mu sync.Mutex

	ops        []interfaces.OpInfo
	formats    []video.Format
	rejected   map[interfaces.FilterOp]bool
	methods    map[interfaces.DeinterlaceMethod]bool
	directions map[video.Orientation]bool

	direction      video.Orientation
	deintMethod    interfaces.DeinterlaceMethod
	deintFlags     interfaces.DeinterlaceFlags
	crop           *video.Rectangle
	tonemap        bool
	status         interfaces.FilterStatus
	statusAfter    int
	lateStatus     interfaces.FilterStatus
	processed      int
	colorimetryErr error
	hdrErr         error
	opsErr         error
	closed         bool

	calls []FilterCall
}

// DefaultOperations returns the operation set advertised by a fresh
// SimulatedFilter.
func DefaultOperations() []interfaces.OpInfo {
	return []interfaces.OpInfo{
		{Op: interfaces.OpFormat},
		{Op: interfaces.OpCrop},
		{Op: interfaces.OpDenoise, Min: 0, Max: 1, Default: interfaces.Level(0)},
		{Op: interfaces.OpSharpen, Min: -1, Max: 1, Default: interfaces.Level(0)},
		{Op: interfaces.OpHue, Min: -180, Max: 180, Default: interfaces.Level(0)},
		{Op: interfaces.OpSaturation, Min: 0, Max: 2, Default: interfaces.Level(1)},
		{Op: interfaces.OpBrightness, Min: -1, Max: 1, Default: interfaces.Level(0)},
		{Op: interfaces.OpContrast, Min: 0, Max: 2, Default: interfaces.Level(1)},
		{Op: interfaces.OpDeinterlacing},
		{Op: interfaces.OpScaling, Default: interfaces.ScaleDefault},
		{Op: interfaces.OpVideoDirection, Default: interfaces.Direction(video.OrientationIdentity)},
		{Op: interfaces.OpHDRToneMap, Default: interfaces.Toggle(false)},
		{Op: interfaces.OpSkinTone, Default: interfaces.Toggle(false)},
		{Op: interfaces.OpSkinToneLevel, Min: 0, Max: 9, Default: interfaces.SkinToneLevel(3)},
	}
}

// NewSimulatedFilter creates a binding with the default capabilities.
func NewSimulatedFilter() *SimulatedFilter {
	logrus.WithFields(logrus.Fields{
		"function": "NewSimulatedFilter",
	}).Debug("Creating simulated filter")

	return &SimulatedFilter{
		ops: DefaultOperations(),
		formats: []video.Format{
			video.FormatNV12, video.FormatI420, video.FormatYV12,
			video.FormatP010, video.FormatBGRA, video.FormatRGBA,
		},
		rejected:  make(map[interfaces.FilterOp]bool),
		direction: video.OrientationIdentity,
		status:    interfaces.StatusSuccess,
		calls:     make([]FilterCall, 0),
	}
}

// SupportOnlyMethods restricts the deinterlace methods the binding accepts.
// DeinterlaceNone is always accepted.
func (f *SimulatedFilter) SupportOnlyMethods(methods ...interfaces.DeinterlaceMethod) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.methods = make(map[interfaces.DeinterlaceMethod]bool, len(methods)+1)
	f.methods[interfaces.DeinterlaceNone] = true
	for _, m := range methods {
		f.methods[m] = true
	}
}

// SupportOnlyDirections restricts the video directions the binding accepts.
func (f *SimulatedFilter) SupportOnlyDirections(dirs ...video.Orientation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.directions = make(map[video.Orientation]bool, len(dirs))
	for _, d := range dirs {
		f.directions[d] = true
	}
}

// RejectOperation makes SetOperation fail for op.
func (f *SimulatedFilter) RejectOperation(op interfaces.FilterOp) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejected[op] = true
}

// RemoveOperation drops op from the advertised operation set.
func (f *SimulatedFilter) RemoveOperation(op interfaces.FilterOp) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, info := range f.ops {
		if info.Op == op {
			f.ops = append(f.ops[:i], f.ops[i+1:]...)
			return
		}
	}
}

// SetDefault replaces the default reported for op.
func (f *SimulatedFilter) SetDefault(op interfaces.FilterOp, v interfaces.Value) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.ops {
		if f.ops[i].Op == op {
			f.ops[i].Default = v
		}
	}
}

// SetFormats replaces the advertised output formats.
func (f *SimulatedFilter) SetFormats(formats ...video.Format) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.formats = append([]video.Format(nil), formats...)
}

// SetProcessStatus sets the status returned by Process.
func (f *SimulatedFilter) SetProcessStatus(status interfaces.FilterStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

// SetProcessStatusAfter makes every Process call after the first n return
// status. Earlier calls keep the status set by SetProcessStatus.
func (f *SimulatedFilter) SetProcessStatusAfter(n int, status interfaces.FilterStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusAfter = n
	f.lateStatus = status
}

// FailColorimetry makes SetColorimetry return err.
func (f *SimulatedFilter) FailColorimetry(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.colorimetryErr = err
}

// FailHDR makes the tone-mapping setters return err.
func (f *SimulatedFilter) FailHDR(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hdrErr = err
}

// FailOperations makes Operations and Formats return err.
func (f *SimulatedFilter) FailOperations(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opsErr = err
}

func (f *SimulatedFilter) record(call FilterCall) {
	f.calls = append(f.calls, call)
}

// Operations implements IFilter.Operations.
func (f *SimulatedFilter) Operations() ([]interfaces.OpInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.opsErr != nil {
		return nil, f.opsErr
	}
	return append([]interfaces.OpInfo(nil), f.ops...), nil
}

// Formats implements IFilter.Formats.
func (f *SimulatedFilter) Formats() ([]video.Format, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.opsErr != nil {
		return nil, f.opsErr
	}
	return append([]video.Format(nil), f.formats...), nil
}

func (f *SimulatedFilter) lookup(op interfaces.FilterOp) (interfaces.OpInfo, bool) {
	for _, info := range f.ops {
		if info.Op == op {
			return info, true
		}
	}
	return interfaces.OpInfo{}, false
}

// SetOperation implements IFilter.SetOperation.
func (f *SimulatedFilter) SetOperation(op interfaces.FilterOp, value interfaces.Value) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(FilterCall{Method: "SetOperation", Op: op, Value: value})

	if _, ok := f.lookup(op); !ok || f.rejected[op] {
		return errors.Wrapf(interfaces.ErrOperationUnsupported, "simulated filter rejects %s", op)
	}
	if d, ok := value.(interfaces.Direction); ok {
		dir := video.Orientation(d)
		if f.directions != nil && !f.directions[dir] {
			return errors.Wrapf(interfaces.ErrOperationUnsupported, "direction %s", dir)
		}
		f.direction = dir
	}
	return nil
}

// Default implements IFilter.Default.
func (f *SimulatedFilter) Default(op interfaces.FilterOp) interfaces.Value {
	f.mu.Lock()
	defer f.mu.Unlock()
	info, ok := f.lookup(op)
	if !ok {
		return nil
	}
	return info.Default
}

// VideoDirection implements IFilter.VideoDirection.
func (f *SimulatedFilter) VideoDirection() video.Orientation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.direction
}

// SetCropRectangle implements IFilter.SetCropRectangle.
func (f *SimulatedFilter) SetCropRectangle(rect *video.Rectangle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var cp *video.Rectangle
	if rect != nil {
		r := *rect
		cp = &r
	}
	f.crop = cp
	f.record(FilterCall{Method: "SetCropRectangle", Crop: cp})
	return nil
}

// SetColorimetry implements IFilter.SetColorimetry.
func (f *SimulatedFilter) SetColorimetry(in, out video.Colorimetry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(FilterCall{Method: "SetColorimetry"})
	return f.colorimetryErr
}

// SetDeinterlacing implements IFilter.SetDeinterlacing.
func (f *SimulatedFilter) SetDeinterlacing(method interfaces.DeinterlaceMethod, flags interfaces.DeinterlaceFlags) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(FilterCall{Method: "SetDeinterlacing", DeinterlaceMethod: method, DeinterlaceFlags: flags})

	if f.methods != nil && !f.methods[method] {
		return errors.Wrapf(interfaces.ErrOperationUnsupported, "deinterlace method %s", method)
	}
	f.deintMethod = method
	f.deintFlags = flags
	return nil
}

// SetDeinterlacingReferences implements IFilter.SetDeinterlacingReferences.
func (f *SimulatedFilter) SetDeinterlacingReferences(forward []video.Surface) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(forward))
	for _, s := range forward {
		ids = append(ids, s.ID())
	}
	f.record(FilterCall{Method: "SetDeinterlacingReferences", References: ids})
	return nil
}

// SetHDRToneMap implements IFilter.SetHDRToneMap.
func (f *SimulatedFilter) SetHDRToneMap(enable bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(FilterCall{Method: "SetHDRToneMap", HDR: enable})
	if f.hdrErr != nil {
		return f.hdrErr
	}
	f.tonemap = enable
	return nil
}

// SetHDRToneMapMeta implements IFilter.SetHDRToneMapMeta.
func (f *SimulatedFilter) SetHDRToneMapMeta(mastering video.MasteringDisplayInfo, light video.ContentLightLevel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(FilterCall{Method: "SetHDRToneMapMeta", Mastering: &mastering, Light: &light})
	return f.hdrErr
}

// AppendCaps implements IFilter.AppendCaps.
func (f *SimulatedFilter) AppendCaps(s *video.Structure) {
	s.Annotate("backend", "simulated")
}

// Process implements IFilter.Process.
func (f *SimulatedFilter) Process(in, out video.Surface, flags video.RenderFlags) interfaces.FilterStatus {
	f.mu.Lock()
	defer f.mu.Unlock()

	status := f.status
	if f.statusAfter > 0 && f.processed >= f.statusAfter {
		status = f.lateStatus
	}
	f.processed++
	if f.closed {
		status = interfaces.StatusError
	}
	call := FilterCall{Method: "Process", RenderFlags: flags, Status: status,
		DeinterlaceMethod: f.deintMethod, DeinterlaceFlags: f.deintFlags}
	if in != nil {
		call.In = in.ID()
	}
	if out != nil {
		call.Out = out.ID()
	}
	if f.crop != nil {
		r := *f.crop
		call.Crop = &r
	}
	f.record(call)
	return status
}

// Close implements IFilter.Close.
func (f *SimulatedFilter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Closed reports whether Close was called.
func (f *SimulatedFilter) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// ToneMapping reports whether tone mapping is enabled.
func (f *SimulatedFilter) ToneMapping() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tonemap
}

// DeinterlaceMethod returns the method in effect.
func (f *SimulatedFilter) DeinterlaceMethod() interfaces.DeinterlaceMethod {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deintMethod
}

// Calls returns a copy of the call log.
func (f *SimulatedFilter) Calls() []FilterCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FilterCall(nil), f.calls...)
}

// CallsTo returns the recorded calls of one method.
func (f *SimulatedFilter) CallsTo(method string) []FilterCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []FilterCall
	for _, c := range f.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// ClearCalls empties the call log.
func (f *SimulatedFilter) ClearCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = f.calls[:0]
}
