package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDisplay(t *testing.T) {
	tests := []struct {
		backend     string
		wantErr     bool
		wantFilters bool
	}{
		{"full", false, true},
		{"bob-only", false, true},
		{"none", false, false},
		{"gpu", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			display, err := newDisplay(tt.backend)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			filter, err := display.NewFilter()
			if tt.wantFilters {
				require.NoError(t, err)
				assert.NotNil(t, filter)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRunCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{
			name: "progressive full backend",
			args: []string{"run", "--frames", "3", "--width", "320", "--height", "240", "--interlace-mode", "progressive", "--backend", "full"},
		},
		{
			name: "interlaced bob-only backend",
			args: []string{"run", "--frames", "4", "--width", "320", "--height", "240", "--interlace-mode", "interleaved", "--backend", "bob-only"},
		},
		{
			name:    "unknown backend",
			args:    []string{"run", "--frames", "1", "--width", "320", "--height", "240", "--interlace-mode", "progressive", "--backend", "gpu"},
			wantErr: true,
		},
		{
			name:    "zero frames",
			args:    []string{"run", "--frames", "0", "--width", "320", "--height", "240", "--interlace-mode", "progressive", "--backend", "full"},
			wantErr: true,
		},
		{
			name:    "unknown interlace mode",
			args:    []string{"run", "--frames", "1", "--width", "320", "--height", "240", "--interlace-mode", "sideways", "--backend", "full"},
			wantErr: true,
		},
		{
			name:    "missing preset",
			args:    []string{"run", "--frames", "1", "--width", "320", "--height", "240", "--interlace-mode", "progressive", "--backend", "full", "--preset", "/nonexistent/preset.yaml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd.SetArgs(tt.args)
			rootCmd.SilenceUsage = true
			rootCmd.SilenceErrors = true
			defer func() { _ = runCmd.Flags().Set("preset", "") }()

			err := rootCmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
