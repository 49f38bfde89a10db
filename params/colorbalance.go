package params

import (
	"math"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vpp/interfaces"
)

// ChannelFactor scales operation values to integer channel values.
const ChannelFactor = 1000.0

// Channel is one colour-balance control.
type Channel struct {
	Label    string
	Op       interfaces.FilterOp
	MinValue int
	MaxValue int
}

var channelOps = []struct {
	op    interfaces.FilterOp
	label string
}{
	{interfaces.OpHue, "VA_FILTER_HUE"},
	{interfaces.OpSaturation, "VA_FILTER_SATURATION"},
	{interfaces.OpBrightness, "VA_FILTER_BRIGHTNESS"},
	{interfaces.OpContrast, "VA_FILTER_CONTRAST"},
}

// Channels builds the channel list from the operations a binding
// advertises. Operations the binding lacks get no channel.
func Channels(ops []interfaces.OpInfo) []Channel {
	var out []Channel
	for _, c := range channelOps {
		for _, info := range ops {
			if info.Op != c.op {
				continue
			}
			out = append(out, Channel{
				Label:    c.label,
				Op:       c.op,
				MinValue: int(info.Min * ChannelFactor),
				MaxValue: int(info.Max * ChannelFactor),
			})
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ColorBalance is a read/write view of the hue, saturation, brightness and
// contrast parameters. Access is serialised by the owner's lock.
type ColorBalance struct {
	mu       sync.Locker
	state    *State
	channels []Channel
	changed  func()
}

// NewColorBalance creates a view over state guarded by mu. changed, if not
// nil, runs after every successful set with mu released.
func NewColorBalance(mu sync.Locker, state *State, channels []Channel, changed func()) *ColorBalance {
	return &ColorBalance{mu: mu, state: state, channels: channels, changed: changed}
}

// Channels lists the available channels.
func (cb *ColorBalance) Channels() []Channel {
	return append([]Channel(nil), cb.channels...)
}

func (cb *ColorBalance) find(label string) (Channel, bool) {
	for _, ch := range cb.channels {
		if strings.EqualFold(ch.Label, label) {
			return ch, true
		}
	}
	return Channel{}, false
}

// SetValue clamps value to the channel range and stores it as a pending
// operation value.
func (cb *ColorBalance) SetValue(label string, value int) error {
	ch, ok := cb.find(label)
	if !ok {
		logrus.WithFields(logrus.Fields{
			"function": "ColorBalance.SetValue",
			"channel":  label,
		}).Warn("Unknown colour balance channel")
		return errors.Wrapf(ErrUnknownChannel, "%q", label)
	}
	value = clamp(value, ch.MinValue, ch.MaxValue)

	cb.mu.Lock()
	cb.state.colorParam(ch.Op).Set(float32(value) / ChannelFactor)
	cb.mu.Unlock()

	if cb.changed != nil {
		cb.changed()
	}
	return nil
}

// Value returns the channel value clamped to its range. ok is false for an
// unknown channel.
func (cb *ColorBalance) Value(label string) (int, bool) {
	ch, ok := cb.find(label)
	if !ok {
		logrus.WithFields(logrus.Fields{
			"function": "ColorBalance.Value",
			"channel":  label,
		}).Warn("Unknown colour balance channel")
		return 0, false
	}

	cb.mu.Lock()
	v := cb.state.colorParam(ch.Op).Value()
	cb.mu.Unlock()

	return clamp(int(math.Round(float64(v)*ChannelFactor)), ch.MinValue, ch.MaxValue), true
}
