package video

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"NV12", FormatNV12, false},
		{"nv12", FormatNV12, false},
		{"P010_10LE", FormatP010, false},
		{"ENCODED", FormatEncoded, false},
		{"UNKNOWN", FormatUnknown, true},
		{"H264", FormatUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInterlaceMode(t *testing.T) {
	for _, m := range []InterlaceMode{InterlaceProgressive, InterlaceInterleaved, InterlaceMixed, InterlaceFields} {
		got, err := ParseInterlaceMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseInterlaceMode("alternate")
	assert.Error(t, err)
}

func TestInfo_Changed(t *testing.T) {
	base := Info{Format: FormatNV12, Width: 1920, Height: 1080, InterlaceMode: InterlaceProgressive, FPSN: 30, FPSD: 1}

	tests := []struct {
		name   string
		modify func(i *Info)
		want   bool
	}{
		{"identical", func(*Info) {}, false},
		{"frame rate only", func(i *Info) { i.FPSN = 60 }, false},
		{"feature only", func(i *Info) { i.Feature = FeatureDMABuf }, false},
		{"format", func(i *Info) { i.Format = FormatI420 }, true},
		{"width", func(i *Info) { i.Width = 1280 }, true},
		{"height", func(i *Info) { i.Height = 720 }, true},
		{"interlace mode", func(i *Info) { i.InterlaceMode = InterlaceMixed }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := base
			tt.modify(&next)
			assert.Equal(t, tt.want, base.Changed(next))
		})
	}
}

func TestInfo_FrameDuration(t *testing.T) {
	assert.Equal(t, time.Second/25, Info{FPSN: 25, FPSD: 1}.FrameDuration())
	assert.Equal(t, time.Duration(33366666), Info{FPSN: 30000, FPSD: 1001}.FrameDuration())
	assert.Zero(t, Info{FPSN: 0, FPSD: 1}.FrameDuration())
	assert.Zero(t, Info{FPSN: 30, FPSD: 0}.FrameDuration())
}

func TestInfo_WithFormat(t *testing.T) {
	i := Info{Format: FormatNV12, Width: 8, Height: 8}
	assert.Equal(t, FormatI420, i.WithFormat(FormatI420).Format)
	assert.Equal(t, FormatNV12, i.WithFormat(FormatEncoded).Format)
	assert.Equal(t, FormatNV12, i.WithFormat(FormatUnknown).Format)
	assert.True(t, Info{}.IsZero())
	assert.False(t, i.IsZero())
}

func TestOrientation(t *testing.T) {
	tests := []struct {
		o         Orientation
		swaps     bool
		canonical bool
	}{
		{OrientationIdentity, false, true},
		{Orientation90R, true, true},
		{Orientation180, false, true},
		{Orientation90L, true, true},
		{OrientationHoriz, false, true},
		{OrientationVert, false, true},
		{OrientationULLR, true, true},
		{OrientationURLL, true, true},
		{OrientationAuto, false, false},
		{OrientationCustom, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.o.String(), func(t *testing.T) {
			assert.Equal(t, tt.swaps, tt.o.SwapsDimensions())
			assert.Equal(t, tt.canonical, tt.o.IsCanonical())

			parsed, err := ParseOrientation(tt.o.String())
			require.NoError(t, err)
			assert.Equal(t, tt.o, parsed)
		})
	}

	_, err := ParseOrientation("diagonal")
	assert.Error(t, err)
}

func TestMargins_IsZero(t *testing.T) {
	assert.True(t, Margins{}.IsZero())
	assert.False(t, Margins{Bottom: 1}.IsZero())
	assert.Equal(t, "(1,2,3,4)", Rectangle{X: 1, Y: 2, Width: 3, Height: 4}.String())
}
