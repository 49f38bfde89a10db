package deinterlace

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/opd-ai/vpp/video"
)

// Capacity is the number of reference frames kept for advanced methods.
const Capacity = 2

type entry struct {
	timestamp time.Duration
	proxy     *video.SurfaceProxy
}

// History is a fixed-capacity deque of past frames, most recent first. It
// also tracks the activity and field parity of the previous frame so that
// references from a different mode or parity are never handed out.
type History struct {
	entries []entry
	deint   bool
	tff     bool
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{entries: make([]entry, 0, Capacity)}
}

// Len returns the number of valid entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Active returns the deinterlace activity recorded for the previous frame.
func (h *History) Active() bool {
	return h.deint
}

// TopFieldFirst returns the parity recorded for the previous frame.
func (h *History) TopFieldFirst() bool {
	return h.tff
}

// Reset drops every entry and forgets the recorded activity and parity.
func (h *History) Reset() {
	h.clear()
	h.deint = false
	h.tff = false
}

func (h *History) clear() {
	for i := range h.entries {
		h.entries[i].proxy.Release()
		h.entries[i] = entry{}
	}
	h.entries = h.entries[:0]
}

// Observe records the activity and parity of the next frame, dropping all
// references if the activity changed or, with references held, the parity
// changed. It reports whether the activity changed.
func (h *History) Observe(deint, tff bool) bool {
	changed := deint != h.deint
	if changed || (len(h.entries) > 0 && tff != h.tff) {
		h.clear()
	}
	h.deint = deint
	h.tff = tff
	return changed
}

// ResetOnGap drops all references when ts moves backwards from the most
// recent entry or jumps by at least three field durations. It reports
// whether the history was cleared.
func (h *History) ResetOnGap(ts, fieldDuration time.Duration) bool {
	if len(h.entries) == 0 {
		return false
	}
	prev := h.entries[0].timestamp
	if prev == ts {
		return false
	}
	diff := ts - prev
	if diff < 0 || (fieldDuration > 0 && diff >= 3*fieldDuration-1) {
		h.clear()
		return true
	}
	return false
}

// Push adds buf as the most recent entry, evicting the oldest when full.
// The history holds its own reference on the buffer's surface.
func (h *History) Push(buf *video.Buffer) error {
	if buf == nil || buf.Surface == nil || buf.Surface.Proxy == nil {
		return ErrNoSurface
	}
	e := entry{timestamp: buf.Timestamp, proxy: buf.Surface.Proxy.Copy()}

	if len(h.entries) == Capacity {
		h.entries[Capacity-1].proxy.Release()
		h.entries = h.entries[:Capacity-1]
	}
	h.entries = append(h.entries, entry{})
	copy(h.entries[1:], h.entries[:len(h.entries)-1])
	h.entries[0] = e
	return nil
}

// Surfaces returns the reference surfaces, most recent first.
func (h *History) Surfaces() []video.Surface {
	out := make([]video.Surface, 0, len(h.entries))
	for _, e := range h.entries {
		out = append(out, e.proxy.Surface())
	}
	return out
}

// MostRecent returns the timestamp of the newest entry.
func (h *History) MostRecent() (time.Duration, error) {
	if len(h.entries) == 0 {
		return video.ClockTimeNone, errors.New("history is empty")
	}
	return h.entries[0].timestamp, nil
}
