package audio

import "testing"

func TestVolumeToLog2(t *testing.T) {
	tests := []struct {
		vol  float64
		want float64
	}{
		{1.0, 0},
		{0.5, -1},
		{0.25, -2},
	}

	for _, tt := range tests {
		if got := volumeToLog2(tt.vol); got != tt.want {
			t.Errorf("volumeToLog2(%v) = %v, want %v", tt.vol, got, tt.want)
		}
	}

	if got := volumeToLog2(0); got > -9 {
		t.Errorf("volumeToLog2(0) = %v, want effectively silent", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-0.1, 0, 1, 0},
		{1.5, 0, 1, 1},
	}

	for _, tt := range tests {
		if got := clamp(tt.v, tt.min, tt.max); got != tt.want {
			t.Errorf("clamp(%v, %v, %v) = %v, want %v", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestPlayBeforeInit(t *testing.T) {
	m := New(0.8)
	if err := m.Play(nil); err == nil {
		t.Error("Play before Init should fail")
	}
}

func TestNewClampsVolume(t *testing.T) {
	if v := New(2.0).Volume(); v != 1 {
		t.Errorf("volume = %v, want clamped to 1", v)
	}
}
