package debug

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Profiler times named sections of block processing, such as the parameter
// refresh and the audio loop.
type Profiler struct {
	mu       sync.Mutex
	sections map[string]*section
	window   int
	enabled  atomic.Bool
}

type section struct {
	count  uint64
	total  time.Duration
	min    time.Duration
	max    time.Duration
	recent []time.Duration // ring of the last window timings
	next   int
}

// Timing is a snapshot of one section.
type Timing struct {
	Name   string
	Count  uint64
	Total  time.Duration
	Min    time.Duration
	Max    time.Duration
	recent []time.Duration
}

// NewProfiler keeps the last window timings of each section for percentiles.
func NewProfiler(window int) *Profiler {
	p := &Profiler{
		sections: make(map[string]*section),
		window:   max(window, 1),
	}
	p.enabled.Store(true)
	return p
}

func (p *Profiler) SetEnabled(enabled bool) { p.enabled.Store(enabled) }

func (p *Profiler) Enabled() bool { return p.enabled.Load() }

// Start begins timing name; call the returned func to stop.
func (p *Profiler) Start(name string) func() {
	if !p.enabled.Load() {
		return func() {}
	}
	start := time.Now()
	return func() { p.Record(name, time.Since(start)) }
}

// Record adds one timing for name.
func (p *Profiler) Record(name string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sections[name]
	if !ok {
		s = &section{min: elapsed, max: elapsed, recent: make([]time.Duration, 0, p.window)}
		p.sections[name] = s
	}
	s.count++
	s.total += elapsed
	s.min = min(s.min, elapsed)
	s.max = max(s.max, elapsed)
	if len(s.recent) < p.window {
		s.recent = append(s.recent, elapsed)
	} else {
		s.recent[s.next] = elapsed
	}
	s.next = (s.next + 1) % p.window
}

// Timing returns a snapshot of name.
func (p *Profiler) Timing(name string) (Timing, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sections[name]
	if !ok {
		return Timing{}, false
	}
	return Timing{
		Name:   name,
		Count:  s.count,
		Total:  s.total,
		Min:    s.min,
		Max:    s.max,
		recent: slices.Clone(s.recent),
	}, true
}

// Timings returns a snapshot of every section, sorted by name.
func (p *Profiler) Timings() []Timing {
	p.mu.Lock()
	names := make([]string, 0, len(p.sections))
	for name := range p.sections {
		names = append(names, name)
	}
	p.mu.Unlock()

	slices.Sort(names)
	out := make([]Timing, 0, len(names))
	for _, name := range names {
		if t, ok := p.Timing(name); ok {
			out = append(out, t)
		}
	}
	return out
}

func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sections = make(map[string]*section)
}

// Log writes one line per section.
func (p *Profiler) Log(log *zap.Logger) {
	for _, t := range p.Timings() {
		log.Info("profile", t.Fields()...)
	}
}

func (t Timing) Average() time.Duration {
	if t.Count == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Count)
}

// Percentile returns the nearest-rank percentile (0-100) over the recent window.
func (t Timing) Percentile(pct float64) time.Duration {
	if len(t.recent) == 0 {
		return 0
	}
	sorted := slices.Clone(t.recent)
	slices.Sort(sorted)
	pct = min(max(pct, 0), 100)
	return sorted[int(pct/100*float64(len(sorted)-1)+0.5)]
}

// Load is the average time as a percentage of the real-time budget for a block.
func (t Timing) Load(blockSize int, sampleRate float64) float64 {
	if blockSize <= 0 || sampleRate <= 0 {
		return 0
	}
	budget := float64(blockSize) / sampleRate * float64(time.Second)
	return float64(t.Average()) / budget * 100
}

func (t Timing) Fields() []zap.Field {
	return []zap.Field{
		zap.String("section", t.Name),
		zap.Uint64("count", t.Count),
		zap.Duration("avg", t.Average()),
		zap.Duration("min", t.Min),
		zap.Duration("max", t.Max),
		zap.Duration("p99", t.Percentile(99)),
	}
}
