// status package polls the server's status endpoints into a ribbon of display
// strings.
package status

import (
	"context"
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"camdeck/v0/internal/config"
)

const (
	DEFAULT_POLL_INTERVAL = 30 * time.Second
)

type Indicator string

const (
	IndicatorRed    Indicator = "red"
	IndicatorYellow Indicator = "yellow"
	IndicatorGreen  Indicator = "green"
)

// IndicatorFor maps a signal strength category to its indicator colour.
// Anything that is not "Weak" or "Moderate" is green.
func IndicatorFor(strength string) Indicator {
	switch strength {
	case "Weak":
		return IndicatorRed
	case "Moderate":
		return IndicatorYellow
	default:
		return IndicatorGreen
	}
}

// ClassName returns the indicator's display class, ie. "status-indicator red".
func (i Indicator) ClassName() string {
	return "status-indicator " + string(i)
}

// FormatRate renders a rate in its shortest decimal form followed by unit.
func FormatRate(rate float64, unit string) string {
	return strconv.FormatFloat(rate, 'f', -1, 64) + unit
}

// Ribbon holds the last successfully fetched text of each metric. Empty fields
// have never been fetched.
type Ribbon struct {
	FrameRate      string
	StreamRate     string
	SignalStrength string
	Indicator      Indicator
	UpdatedAt      time.Time
}

// Source fetches the raw metrics.
type Source interface {
	FrameRate(ctx context.Context) (float64, error)
	StreamRate(ctx context.Context) (float64, error)
	SignalStrength(ctx context.Context) (string, error)
}

type PollerOptions struct {
	Interval time.Duration

	// Optional hook invoked after every completed tick with the current ribbon.
	OnUpdate func(Ribbon)
}

type Poller struct {
	source   Source
	interval time.Duration
	onUpdate func(Ribbon)

	ribbon   Ribbon
	mutex    sync.RWMutex
	inFlight atomic.Bool
}

// NewPoller creates a status poller reading from source.
func NewPoller(source Source, opts PollerOptions) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DEFAULT_POLL_INTERVAL
	}

	return &Poller{
		source:   source,
		interval: opts.Interval,
		onUpdate: opts.OnUpdate,
	}
}

// Ribbon returns a copy of the current ribbon.
func (p *Poller) Ribbon() Ribbon {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.ribbon
}

// Tick fetches the three metrics concurrently, each failing independently. A tick
// requested while the previous one is outstanding is skipped.
// It returns false when the tick was skipped.
func (p *Poller) Tick(ctx context.Context) bool {
	if !p.inFlight.CompareAndSwap(false, true) {
		if config.Verbose {
			log.Println("Status poll still outstanding, skipping tick")
		}
		return false
	}
	defer p.inFlight.Store(false)

	wg := sync.WaitGroup{}
	wg.Add(3)

	go func() {
		defer wg.Done()
		rate, err := p.source.FrameRate(ctx)
		if err != nil {
			log.Printf("Error fetching frame rate: %v\n", err)
			return
		}
		p.update(func(r *Ribbon) { r.FrameRate = FormatRate(rate, "fps") })
	}()

	go func() {
		defer wg.Done()
		rate, err := p.source.StreamRate(ctx)
		if err != nil {
			log.Printf("Error fetching stream rate: %v\n", err)
			return
		}
		p.update(func(r *Ribbon) { r.StreamRate = FormatRate(rate, "Mbps") })
	}()

	go func() {
		defer wg.Done()
		strength, err := p.source.SignalStrength(ctx)
		if err != nil {
			log.Printf("Error fetching signal strength: %v\n", err)
			return
		}
		p.update(func(r *Ribbon) {
			r.SignalStrength = strength
			r.Indicator = IndicatorFor(strength)
		})
	}()

	wg.Wait()

	if p.onUpdate != nil {
		p.onUpdate(p.Ribbon())
	}
	return true
}

func (p *Poller) update(fn func(*Ribbon)) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	fn(&p.ribbon)
	p.ribbon.UpdatedAt = time.Now()
}

// Run ticks immediately and then on every interval until ctx is done. Ticks run in
// their own goroutine so a slow server never delays the schedule, only skips ticks.
func (p *Poller) Run(ctx context.Context) {
	log.Printf("Starting status poller, interval %s\n", p.interval)
	go p.Tick(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Status poller terminating...")
			return
		case <-ticker.C:
			go p.Tick(ctx)
		}
	}
}
