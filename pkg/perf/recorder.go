// Package perf collects frame timings in dev mode.
package perf

import (
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Timing names recorded by the client.
const (
	Update = "update"
	Draw   = "draw"
	Frame  = "frame"
)

// Summary describes the samples of one timing in milliseconds.
type Summary struct {
	Name    string
	Samples int
	Mean    float64
	StdDev  float64
	P95     float64
	Max     float64
}

// window is a ring buffer of durations in milliseconds.
type window struct {
	samples []float64
	next    int
	count   int
}

func (w *window) add(ms float64) {
	w.samples[w.next] = ms
	w.next = (w.next + 1) % len(w.samples)
	if w.count < len(w.samples) {
		w.count++
	}
}

// Recorder keeps a rolling window of samples per timing name.
// It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	size    int
	windows map[string]*window
}

func NewRecorder(size int) *Recorder {
	if size < 1 {
		size = 240
	}
	return &Recorder{
		size:    size,
		windows: make(map[string]*window),
	}
}

func (r *Recorder) Record(name string, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.windows[name]
	if !ok {
		w = &window{samples: make([]float64, r.size)}
		r.windows[name] = w
	}
	w.add(float64(d) / float64(time.Millisecond))
}

// Time records how long fn takes under name.
func (r *Recorder) Time(name string, fn func()) {
	start := time.Now()
	fn()
	r.Record(name, time.Since(start))
}

// Summary returns the statistics of the current window for name.
// The zero Summary is returned when nothing was recorded.
func (r *Recorder) Summary(name string) Summary {
	r.mu.Lock()
	w, ok := r.windows[name]
	var x []float64
	if ok {
		x = make([]float64, w.count)
		copy(x, w.samples[:w.count])
	}
	r.mu.Unlock()

	s := Summary{Name: name, Samples: len(x)}
	if len(x) == 0 {
		return s
	}

	sort.Float64s(x)
	s.Mean = stat.Mean(x, nil)
	if len(x) > 1 {
		s.StdDev = stat.StdDev(x, nil)
	}
	s.P95 = stat.Quantile(0.95, stat.Empirical, x, nil)
	s.Max = floats.Max(x)
	return s
}

// Names returns the recorded timing names in order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.windows))
	for name := range r.windows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
