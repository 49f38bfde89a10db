package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/vpp/interfaces"
	vpptest "github.com/opd-ai/vpp/testing"
	"github.com/opd-ai/vpp/video"
)

func setOps(f *vpptest.SimulatedFilter) []interfaces.FilterOp {
	var ops []interfaces.FilterOp
	for _, c := range f.CallsTo("SetOperation") {
		ops = append(ops, c.Op)
	}
	return ops
}

func TestApplyPending_ClearsDefaults(t *testing.T) {
	f := vpptest.NewSimulatedFilter()
	s := NewState()
	s.Denoise.Set(0.5)
	s.Contrast.Set(1)
	s.Scale.Set(interfaces.ScaleDefault)

	require.NoError(t, s.ApplyPending(f))
	assert.Equal(t, []interfaces.FilterOp{interfaces.OpDenoise, interfaces.OpContrast, interfaces.OpScaling}, setOps(f))
	assert.True(t, s.Denoise.Dirty())
	assert.False(t, s.Contrast.Dirty())
	assert.False(t, s.Scale.Dirty())
	assert.True(t, s.HasPendingWork())
}

func TestApplyPending_NothingPending(t *testing.T) {
	f := vpptest.NewSimulatedFilter()
	require.NoError(t, NewState().ApplyPending(f))
	assert.Empty(t, f.Calls())
}

func TestApplyPending_Format(t *testing.T) {
	f := vpptest.NewSimulatedFilter()
	s := NewState()
	s.Format.Set(video.FormatI420)

	require.NoError(t, s.ApplyPending(f))
	calls := f.CallsTo("SetOperation")
	require.Len(t, calls, 1)
	assert.Equal(t, interfaces.FormatValue(video.FormatI420), calls[0].Value)
	assert.True(t, s.Format.Dirty())
}

func TestApplyPending_Rejection(t *testing.T) {
	f := vpptest.NewSimulatedFilter()
	f.RejectOperation(interfaces.OpSharpen)
	s := NewState()
	s.Denoise.Set(0.1)
	s.Sharpen.Set(0.5)
	s.Hue.Set(30)

	err := s.ApplyPending(f)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrApplyFailed)
	assert.Equal(t, []interfaces.FilterOp{interfaces.OpDenoise, interfaces.OpSharpen}, setOps(f))
	assert.True(t, s.Sharpen.Dirty())
	assert.True(t, s.Hue.Dirty())
}

func TestApplyPending_SkinTone(t *testing.T) {
	tests := []struct {
		name      string
		mark      func(s *State)
		wantOps   []interfaces.FilterOp
		wantLevel bool
		wantTone  bool
	}{
		{
			name: "level takes precedence",
			mark: func(s *State) {
				s.SkinTone.Set(true)
				s.SkinToneLevel.Set(7)
			},
			wantOps:   []interfaces.FilterOp{interfaces.OpSkinToneLevel},
			wantLevel: true,
		},
		{
			name:    "default level clears both",
			mark:    func(s *State) { s.SkinTone.Set(true); s.SkinToneLevel.Set(3) },
			wantOps: []interfaces.FilterOp{interfaces.OpSkinToneLevel},
		},
		{
			name:     "toggle alone",
			mark:     func(s *State) { s.SkinTone.Set(true) },
			wantOps:  []interfaces.FilterOp{interfaces.OpSkinTone},
			wantTone: true,
		},
		{
			name:    "toggle back to default",
			mark:    func(s *State) { s.SkinTone.Set(false) },
			wantOps: []interfaces.FilterOp{interfaces.OpSkinTone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := vpptest.NewSimulatedFilter()
			s := NewState()
			tt.mark(s)

			require.NoError(t, s.ApplyPending(f))
			assert.Equal(t, tt.wantOps, setOps(f))
			assert.Equal(t, tt.wantLevel, s.SkinToneLevel.Dirty())
			assert.Equal(t, tt.wantTone, s.SkinTone.Dirty())
		})
	}
}

func TestApplyPending_Direction(t *testing.T) {
	tests := []struct {
		name      string
		direction video.Orientation
		tag       video.Orientation
		supported []video.Orientation
		wantDirty bool
		wantApply video.Orientation
	}{
		{
			name:      "rotation stays pending",
			direction: video.Orientation90R,
			wantDirty: true,
			wantApply: video.Orientation90R,
		},
		{
			name:      "identity clears",
			direction: video.OrientationIdentity,
			wantApply: video.OrientationIdentity,
		},
		{
			name:      "auto follows tag",
			direction: video.OrientationAuto,
			tag:       video.Orientation180,
			wantDirty: true,
			wantApply: video.Orientation180,
		},
		{
			name:      "unsupported only logged",
			direction: video.OrientationVert,
			supported: []video.Orientation{video.OrientationIdentity},
			wantDirty: true,
			wantApply: video.OrientationIdentity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := vpptest.NewSimulatedFilter()
			if tt.supported != nil {
				f.SupportOnlyDirections(tt.supported...)
			}
			s := NewState()
			s.TagDirection = tt.tag
			s.Direction.Set(tt.direction)

			require.NoError(t, s.ApplyPending(f))
			assert.Equal(t, tt.wantDirty, s.Direction.Dirty())
			assert.Equal(t, tt.wantApply, f.VideoDirection())
		})
	}
}

func TestApplyPending_Crop(t *testing.T) {
	f := vpptest.NewSimulatedFilter()
	s := NewState()
	s.Crop.Set(video.Margins{})
	require.NoError(t, s.ApplyPending(f))
	assert.False(t, s.Crop.Dirty())

	s.Crop.Set(video.Margins{Top: 8})
	require.NoError(t, s.ApplyPending(f))
	assert.True(t, s.Crop.Dirty())
	assert.Empty(t, f.Calls())
}
