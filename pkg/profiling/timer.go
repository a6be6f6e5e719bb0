// Package profiling times the stages of a docnav run and writes pprof
// profiles on request.
package profiling

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// Stopper ends a timed stage.
type Stopper interface {
	Stop()
}

// stage aggregates every run of one named stage. Stages may run
// concurrently, for example one per page.
type stage struct {
	name  string
	first time.Time
	count int
	total time.Duration
	max   time.Duration
}

// Profiler collects stage timings. The zero value is disabled.
type Profiler struct {
	mu      sync.Mutex
	enabled bool
	start   time.Time
	stages  map[string]*stage
}

var defaultProfiler = &Profiler{}

// Enable turns on the global profiler.
func Enable() { defaultProfiler.Enable() }

// Start begins timing a stage of the global profiler.
func Start(name string) Stopper { return defaultProfiler.Start(name) }

// Summarize writes the global profiler's stage table to w.
func Summarize(w io.Writer) { defaultProfiler.Summarize(w) }

// Enable starts collecting. Enabling twice keeps the earlier timings.
func (p *Profiler) Enable() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.enabled {
		return
	}
	p.enabled = true
	p.start = time.Now()
	p.stages = make(map[string]*stage)
}

// Start begins timing one run of the named stage. It is safe to call from
// several goroutines.
func (p *Profiler) Start(name string) Stopper {
	p.mu.Lock()
	enabled := p.enabled
	p.mu.Unlock()
	if !enabled {
		return noopStopper{}
	}
	return &run{profiler: p, name: name, start: time.Now()}
}

func (p *Profiler) record(name string, start time.Time, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.stages[name]
	if !ok {
		s = &stage{name: name, first: start}
		p.stages[name] = s
	}
	s.count++
	s.total += d
	if d > s.max {
		s.max = d
	}
}

// Summarize prints one line per stage in the order the stages first
// started, with the share of the wall time since Enable.
func (p *Profiler) Summarize(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return
	}
	wall := time.Since(p.start)

	stages := make([]*stage, 0, len(p.stages))
	for _, s := range p.stages {
		stages = append(stages, s)
	}
	sort.Slice(stages, func(i, j int) bool {
		return stages[i].first.Before(stages[j].first)
	})

	fmt.Fprintln(w, "\n--- Timing Profile ---")
	for _, s := range stages {
		share := 0.0
		if wall > 0 {
			share = float64(s.total) / float64(wall) * 100
		}
		if s.count == 1 {
			fmt.Fprintf(w, "- %s (%v, %.1f%%)\n", s.name, s.total.Round(100*time.Microsecond), share)
			continue
		}
		fmt.Fprintf(w, "- %s x%d (total %v, max %v, %.1f%%)\n",
			s.name, s.count, s.total.Round(100*time.Microsecond), s.max.Round(100*time.Microsecond), share)
	}
	fmt.Fprintf(w, "wall time %v\n", wall.Round(100*time.Microsecond))
	fmt.Fprintln(w, "--------------------")
}

type run struct {
	once     sync.Once
	profiler *Profiler
	name     string
	start    time.Time
}

// Stop records the run. Only the first call counts.
func (r *run) Stop() {
	r.once.Do(func() {
		r.profiler.record(r.name, r.start, time.Since(r.start))
	})
}

// noopStopper is used when the profiler is disabled.
type noopStopper struct{}

func (s noopStopper) Stop() {}
