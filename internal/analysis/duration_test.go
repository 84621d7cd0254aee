package analysis

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{
			name:     "zero duration",
			duration: 0,
			want:     "0ms",
		},
		{
			name:     "sub-second shows milliseconds",
			duration: 450 * time.Millisecond,
			want:     "450ms",
		},
		{
			name:     "seconds round to whole values",
			duration: 11*time.Second + 460*time.Millisecond,
			want:     "11s",
		},
		{
			name:     "minutes include seconds",
			duration: 2*time.Minute + 30*time.Second,
			want:     "2m 30s",
		},
		{
			name:     "just under a minute rounds up",
			duration: 59*time.Second + 500*time.Millisecond,
			want:     "1m 0s",
		},
		{
			name:     "hours include minutes and seconds",
			duration: time.Hour + 23*time.Minute + 45*time.Second,
			want:     "1h 23m 45s",
		},
		{
			name:     "negative duration keeps sign",
			duration: -30 * time.Second,
			want:     "-30s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatDuration(tt.duration); got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.duration, got, tt.want)
			}
		})
	}
}
