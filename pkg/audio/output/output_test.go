// ABOUTME: Audio output tests
// ABOUTME: Verifies Output implementation and volume scaling without a device
package output

import "testing"

func TestOtoImplementsOutput(t *testing.T) {
	var _ Output = (*Oto)(nil)
	var _ VolumeControl = (*Oto)(nil)
}

func TestOtoWriteBeforeOpen(t *testing.T) {
	out := NewOto()
	if err := out.Write([]int32{0, 0}); err == nil {
		t.Fatal("expected error writing to unopened output, got nil")
	}
}

func TestSetVolumeClamps(t *testing.T) {
	out := NewOto()

	tests := []struct {
		input    int
		expected int
	}{
		{50, 50},
		{-10, 0},
		{150, 100},
	}

	for _, tt := range tests {
		out.SetVolume(tt.input)
		if out.Volume() != tt.expected {
			t.Errorf("expected %d, got %d", tt.expected, out.Volume())
		}
	}
}

func TestApplyVolume(t *testing.T) {
	tests := []struct {
		name     string
		samples  []int32
		volume   int
		muted    bool
		expected []int32
	}{
		{"full", []int32{1000, -1000}, 100, false, []int32{1000, -1000}},
		{"half", []int32{1000, -1000}, 50, false, []int32{500, -500}},
		{"muted", []int32{1000, -1000}, 100, true, []int32{0, 0}},
		{"clamped", []int32{Max, Min}, 100, false, []int32{Max, Min}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := applyVolume(tt.samples, tt.volume, tt.muted)
			for i := range tt.expected {
				if result[i] != tt.expected[i] {
					t.Errorf("sample %d: expected %d, got %d", i, tt.expected[i], result[i])
				}
			}
		})
	}
}
