package meter

import (
	"testing"
	"time"
)

func TestStreamMeter_Rates(t *testing.T) {
	clock := time.Unix(1000, 0)
	m := NewStreamMeter(2 * time.Second)
	m.now = func() time.Time { return clock }

	for i := 0; i < 20; i++ {
		m.AddFrame(125000)
	}
	clock = clock.Add(time.Second)
	for i := 0; i < 10; i++ {
		m.AddFrame(125000)
	}

	fps, mbps := m.Rates()
	if fps != 15 {
		t.Errorf("fps = %v, want 15", fps)
	}
	if mbps != 15 {
		t.Errorf("mbps = %v, want 15", mbps)
	}

	// The first second leaves the window.
	clock = clock.Add(time.Second)
	fps, _ = m.Rates()
	if fps != 5 {
		t.Errorf("fps = %v after slide, want 5", fps)
	}

	clock = clock.Add(10 * time.Second)
	fps, mbps = m.Rates()
	if fps != 0 || mbps != 0 {
		t.Errorf("rates = %v, %v after idle, want 0, 0", fps, mbps)
	}
}

func TestSignalStrengthFor(t *testing.T) {
	cases := map[float64]string{
		0:    SIGNAL_WEAK,
		4.99: SIGNAL_WEAK,
		5:    SIGNAL_MODERATE,
		14.9: SIGNAL_MODERATE,
		15:   SIGNAL_STRONG,
		60:   SIGNAL_STRONG,
	}
	for fps, want := range cases {
		if got := SignalStrengthFor(fps); got != want {
			t.Errorf("SignalStrengthFor(%v) = %s, want %s", fps, got, want)
		}
	}
}
