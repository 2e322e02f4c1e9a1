// ABOUTME: Tests for audio types
// ABOUTME: Tests sample conversions, buffer slicing and mono mixdown
package audio

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestSampleFromInt16(t *testing.T) {
	tests := []struct {
		name     string
		input    int16
		expected int32
	}{
		{"zero", 0, 0},
		{"positive", 100, 100 << 8},
		{"negative", -100, -100 << 8},
		{"max", 32767, 32767 << 8},
		{"min", -32768, -32768 << 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleFromInt16(tt.input)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestSampleToInt16(t *testing.T) {
	tests := []struct {
		name     string
		input    int32
		expected int16
	}{
		{"zero", 0, 0},
		{"positive", 100 << 8, 100},
		{"negative", -100 << 8, -100},
		{"24bit positive", 1000000, 3906}, // 1000000 >> 8 = 3906
		{"24bit negative", -1000000, -3907},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleToInt16(tt.input)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestSampleTo24Bit(t *testing.T) {
	tests := []struct {
		name     string
		input    int32
		expected [3]byte
	}{
		{"zero", 0, [3]byte{0, 0, 0}},
		{"positive", 0x123456, [3]byte{0x56, 0x34, 0x12}},
		{"negative", -256, [3]byte{0x00, 0xFF, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleTo24Bit(tt.input)
			if result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestSampleFrom24Bit(t *testing.T) {
	tests := []struct {
		name     string
		input    [3]byte
		expected int32
	}{
		{"zero", [3]byte{0, 0, 0}, 0},
		{"positive", [3]byte{0x56, 0x34, 0x12}, 0x123456},
		{"negative", [3]byte{0x00, 0xFF, 0xFF}, -256},
		{"max positive", [3]byte{0xFF, 0xFF, 0x7F}, Max24Bit},
		{"max negative", [3]byte{0x00, 0x00, 0x80}, Min24Bit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleFrom24Bit(tt.input)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestRoundTrip16Bit(t *testing.T) {
	// Test that 16-bit samples survive round-trip conversion
	samples := []int16{0, 100, -100, 1000, -1000, 32767, -32768}

	for _, original := range samples {
		sample32 := SampleFromInt16(original)
		result := SampleToInt16(sample32)
		if result != original {
			t.Errorf("round-trip failed: %d -> %d -> %d", original, sample32, result)
		}
	}
}

func TestRoundTrip24Bit(t *testing.T) {
	// Test that 24-bit samples survive round-trip conversion
	samples := []int32{0, 100000, -100000, Max24Bit, Min24Bit}

	for _, original := range samples {
		bytes := SampleTo24Bit(original)
		result := SampleFrom24Bit(bytes)
		// Mask to 24-bit for comparison
		expected := original & 0xFFFFFF
		if expected&0x800000 != 0 {
			expected |= ^0xFFFFFF
		}
		if result != expected {
			t.Errorf("round-trip failed: %d -> %v -> %d (expected %d)", original, bytes, result, expected)
		}
	}
}

func TestSampleFloatConversion(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected int32
	}{
		{"zero", 0, 0},
		{"half", 0.5, 4194304},
		{"negative full scale", -1, Min24Bit},
		{"clip positive", 1.5, Max24Bit},
		{"clip negative", -2, Min24Bit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleFromFloat(tt.input)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}

	if got := SampleToFloat(4194304); got != 0.5 {
		t.Errorf("expected 0.5, got %f", got)
	}
}

func TestBufferFramesAndDuration(t *testing.T) {
	buf := Buffer{
		Samples: make([]int32, 2*22050),
		Format:  Format{SampleRate: 22050, Channels: 2},
	}

	if buf.Frames() != 22050 {
		t.Errorf("expected 22050 frames, got %d", buf.Frames())
	}
	if buf.Duration() != time.Second {
		t.Errorf("expected 1s, got %v", buf.Duration())
	}

	empty := Buffer{}
	if empty.Frames() != 0 || empty.Duration() != 0 {
		t.Errorf("expected zero frames and duration for empty buffer")
	}
}

func TestBufferSlice(t *testing.T) {
	buf := Buffer{
		Samples: []int32{1, 2, 3, 4, 5, 6, 7, 8},
		Format:  Format{SampleRate: 8, Channels: 2},
	}

	tests := []struct {
		name       string
		start, end int
		expected   []int32
	}{
		{"middle", 1, 3, []int32{3, 4, 5, 6}},
		{"clamped end", 2, 10, []int32{5, 6, 7, 8}},
		{"clamped start", -1, 1, []int32{1, 2}},
		{"empty", 3, 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buf.Slice(tt.start, tt.end)
			if len(got.Samples) != len(tt.expected) {
				t.Fatalf("expected %d samples, got %d", len(tt.expected), len(got.Samples))
			}
			for i := range tt.expected {
				if got.Samples[i] != tt.expected[i] {
					t.Errorf("sample %d: expected %d, got %d", i, tt.expected[i], got.Samples[i])
				}
			}
		})
	}
}

func TestBufferMono(t *testing.T) {
	buf := Buffer{
		Samples: []int32{4194304, 0, -4194304, -4194304},
		Format:  Format{SampleRate: 16000, Channels: 2},
	}

	wave := buf.Mono()
	if wave.SampleRate != 16000 {
		t.Errorf("expected sample rate 16000, got %d", wave.SampleRate)
	}
	expected := []float64{0.25, -0.5}
	if len(wave.Samples) != len(expected) {
		t.Fatalf("expected %d samples, got %d", len(expected), len(wave.Samples))
	}
	for i, want := range expected {
		if math.Abs(wave.Samples[i]-want) > 1e-12 {
			t.Errorf("sample %d: expected %f, got %f", i, want, wave.Samples[i])
		}
	}
}

func TestWaveformValidate(t *testing.T) {
	tests := []struct {
		name    string
		wave    Waveform
		wantErr error
	}{
		{"valid", Waveform{Samples: []float64{0.1}, SampleRate: 22050}, nil},
		{"no samples", Waveform{SampleRate: 22050}, ErrEmptyWaveform},
		{"zero rate", Waveform{Samples: []float64{0.1}}, ErrInvalidSampleRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.wave.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
