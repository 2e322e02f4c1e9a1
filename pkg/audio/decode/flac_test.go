// ABOUTME: Tests for FLAC decoder
// ABOUTME: Tests bit depth scaling and rejection of non-FLAC data
package decode

import (
	"bytes"
	"errors"
	"testing"
)

func TestScaleTo24(t *testing.T) {
	tests := []struct {
		name     string
		sample   int32
		bitDepth int
		expected int32
	}{
		{"16-bit", 100, 16, 100 << 8},
		{"8-bit", -3, 8, -3 << 16},
		{"24-bit", 123456, 24, 123456},
		{"32-bit", 1 << 20, 32, 1 << 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := scaleTo24(tt.sample, tt.bitDepth)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestFLACDecode_Garbage(t *testing.T) {
	_, err := NewFLAC().Decode(bytes.NewReader([]byte("definitely not flac")))
	if err == nil {
		t.Fatal("expected error for invalid flac data, got nil")
	}
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt, got %v", err)
	}
}
