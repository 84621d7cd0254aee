package bbs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroPad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		code  int
		width int
		want  string
	}{
		{"short code padded", 310, 5, "00310"},
		{"full width unchanged", 12345, 5, "12345"},
		{"wider than width", 123456, 5, "123456"},
		{"zero", 0, 5, "00000"},
		{"route width", 7, 3, "007"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ZeroPad(tt.code, tt.width))
		})
	}
}

func TestCodeSetContains(t *testing.T) {
	t.Parallel()

	cs := NewCodeSet().AddRange(100, 200).Add(420, 421)

	tests := []struct {
		name string
		code int
		want bool
	}{
		{"below range", 99, false},
		{"range lower bound", 100, true},
		{"inside range", 150, true},
		{"range upper bound", 200, true},
		{"above range", 201, false},
		{"individual code", 420, true},
		{"second individual code", 421, true},
		{"between individual codes", 422, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cs.Contains(tt.code))
		})
	}
}

func TestCodeSetInvertedRange(t *testing.T) {
	t.Parallel()

	cs := NewCodeSet().AddRange(200, 100)
	assert.True(t, cs.Contains(150))
	assert.False(t, cs.Contains(250))
}

func TestCodeSetNilContainsNothing(t *testing.T) {
	t.Parallel()

	var cs *CodeSet
	assert.False(t, cs.Contains(7))
}

func TestDefaultExclusions(t *testing.T) {
	t.Parallel()

	cs := DefaultExclusions()

	tests := []struct {
		name string
		code int
		want bool
	}{
		{"common loon", 7, true},
		{"range lower bound", 1, true},
		{"range upper bound", 399, true},
		{"first code past range", 400, false},
		{"common nighthawk", 420, true},
		{"common poorwill", 421, true},
		{"chimney swift", 423, false},
		{"passerine", 5000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cs.Contains(tt.code))
		})
	}
}
