// meter package keeps a sliding window of relayed frames and bytes.
package meter

import (
	"math"
	"sync"
	"time"
)

// Signal strength categories, by relayed frame rate.
const (
	SIGNAL_STRONG   = "Strong"
	SIGNAL_MODERATE = "Moderate"
	SIGNAL_WEAK     = "Weak"

	STRONG_MIN_FPS   = 15.0
	MODERATE_MIN_FPS = 5.0
)

type bucket struct {
	second int64
	frames uint64
	bytes  uint64
}

// StreamMeter counts frames and bytes in one-second buckets over a window.
type StreamMeter struct {
	buckets []bucket
	mutex   sync.Mutex

	// Clock, replaceable in tests.
	now func() time.Time
}

// NewStreamMeter creates a meter averaging over window, rounded down to whole seconds.
func NewStreamMeter(window time.Duration) *StreamMeter {
	n := int(window / time.Second)
	if n < 1 {
		n = 1
	}
	return &StreamMeter{
		buckets: make([]bucket, n),
		now:     time.Now,
	}
}

func (m *StreamMeter) current() *bucket {
	sec := m.now().Unix()
	b := &m.buckets[sec%int64(len(m.buckets))]
	if b.second != sec {
		*b = bucket{second: sec}
	}
	return b
}

// AddFrame records a relayed frame of size bytes.
func (m *StreamMeter) AddFrame(size int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	b := m.current()
	b.frames++
	b.bytes += uint64(size)
}

// Rates returns frames per second and megabits per second over the window, rounded
// to two decimals.
func (m *StreamMeter) Rates() (float64, float64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	n := int64(len(m.buckets))
	oldest := m.now().Unix() - n + 1

	var frames, bytes uint64
	for _, b := range m.buckets {
		if b.second >= oldest {
			frames += b.frames
			bytes += b.bytes
		}
	}

	fps := float64(frames) / float64(n)
	mbps := float64(bytes) * 8 / 1e6 / float64(n)
	return round2(fps), round2(mbps)
}

// SignalStrength categorizes the current frame rate.
func (m *StreamMeter) SignalStrength() string {
	fps, _ := m.Rates()
	return SignalStrengthFor(fps)
}

// SignalStrengthFor categorizes a frame rate.
func SignalStrengthFor(fps float64) string {
	switch {
	case fps >= STRONG_MIN_FPS:
		return SIGNAL_STRONG
	case fps >= MODERATE_MIN_FPS:
		return SIGNAL_MODERATE
	default:
		return SIGNAL_WEAK
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
