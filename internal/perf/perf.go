package perf

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andyrewlee/scrollster/internal/logging"
)

const (
	sampleWindow      = 128
	defaultIntervalMs = 5000
)

type stat struct {
	mu      sync.Mutex
	count   int64
	total   time.Duration
	min     time.Duration
	max     time.Duration
	samples []time.Duration
	idx     int
	full    bool
}

// StatSnapshot summarizes the samples recorded for one name.
type StatSnapshot struct {
	Name  string
	Count int64
	Avg   time.Duration
	Min   time.Duration
	Max   time.Duration
	P95   time.Duration
}

// CounterSnapshot is the value a counter reached since the last snapshot.
type CounterSnapshot struct {
	Name  string
	Value int64
}

var (
	enabled     atomic.Bool
	logInterval atomic.Int64
	lastLog     atomic.Int64

	mu       sync.Mutex
	stats    = map[string]*stat{}
	counters = map[string]*atomic.Int64{}
)

func init() {
	enabled.Store(isEnabled())
	logInterval.Store(int64(defaultLogInterval()))
}

// Enabled reports whether profiling is on (SCROLLSTER_PROFILE).
func Enabled() bool {
	return enabled.Load()
}

// Time returns a function that records the elapsed time when invoked.
//
//	defer perf.Time("viewport_render")()
func Time(name string) func() {
	if !enabled.Load() {
		return func() {}
	}
	start := time.Now()
	return func() { Record(name, time.Since(start)) }
}

// Record adds a duration sample.
func Record(name string, d time.Duration) {
	if !enabled.Load() {
		return
	}
	s := getStat(name)
	s.mu.Lock()
	s.count++
	s.total += d
	if s.count == 1 || d < s.min {
		s.min = d
	}
	s.max = max(s.max, d)
	if s.samples == nil {
		s.samples = make([]time.Duration, sampleWindow)
	}
	s.samples[s.idx] = d
	s.idx++
	if s.idx == len(s.samples) {
		s.idx = 0
		s.full = true
	}
	s.mu.Unlock()
	maybeLog()
}

// Count adds delta to a named counter.
func Count(name string, delta int64) {
	if !enabled.Load() {
		return
	}
	mu.Lock()
	c, ok := counters[name]
	if !ok {
		c = &atomic.Int64{}
		counters[name] = c
	}
	mu.Unlock()
	c.Add(delta)
	maybeLog()
}

func getStat(name string) *stat {
	mu.Lock()
	defer mu.Unlock()
	s, ok := stats[name]
	if !ok {
		s = &stat{}
		stats[name] = s
	}
	return s
}

func maybeLog() {
	interval := time.Duration(logInterval.Load())
	if interval <= 0 {
		return
	}
	now := time.Now().UnixNano()
	last := lastLog.Load()
	if last != 0 && time.Duration(now-last) < interval {
		return
	}
	if !lastLog.CompareAndSwap(last, now) {
		return
	}
	logSnapshot("PERF")
}

// Flush logs and resets everything collected so far.
func Flush(reason string) {
	if !enabled.Load() {
		return
	}
	prefix := "PERF SUMMARY"
	if strings.TrimSpace(reason) != "" {
		prefix = fmt.Sprintf("PERF SUMMARY %s", reason)
	}
	logSnapshot(prefix)
}

func logSnapshot(prefix string) {
	ss, cs := Snapshot()
	for _, s := range ss {
		logging.Info("%s %s count=%d avg=%s p95=%s min=%s max=%s",
			prefix, s.Name, s.Count, s.Avg, s.P95, s.Min, s.Max)
	}
	for _, c := range cs {
		logging.Info("%s %s count=%d", prefix, c.Name, c.Value)
	}
}

// Snapshot returns the current stats and counters sorted by name and
// resets them.
func Snapshot() ([]StatSnapshot, []CounterSnapshot) {
	mu.Lock()
	statList := make(map[string]*stat, len(stats))
	for name, s := range stats {
		statList[name] = s
	}
	counterList := make(map[string]*atomic.Int64, len(counters))
	for name, c := range counters {
		counterList[name] = c
	}
	mu.Unlock()

	var out []StatSnapshot
	for name, s := range statList {
		s.mu.Lock()
		if s.count > 0 {
			out = append(out, StatSnapshot{
				Name:  name,
				Count: s.count,
				Avg:   time.Duration(int64(s.total) / s.count),
				Min:   s.min,
				Max:   s.max,
				P95:   computeP95(s.samples, s.idx, s.full),
			})
		}
		s.count, s.total, s.min, s.max, s.idx, s.full = 0, 0, 0, 0, 0, false
		s.mu.Unlock()
	}

	var cout []CounterSnapshot
	for name, c := range counterList {
		if v := c.Swap(0); v != 0 {
			cout = append(cout, CounterSnapshot{Name: name, Value: v})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	sort.Slice(cout, func(i, j int) bool { return cout[i].Name < cout[j].Name })
	return out, cout
}

func computeP95(samples []time.Duration, idx int, full bool) time.Duration {
	n := idx
	if full {
		n = len(samples)
	}
	if n == 0 {
		return 0
	}
	window := make([]time.Duration, n)
	copy(window, samples[:n])
	sort.Slice(window, func(i, j int) bool { return window[i] < window[j] })
	pos := int(math.Ceil(0.95*float64(n))) - 1
	return window[min(max(pos, 0), n-1)]
}

func isEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("SCROLLSTER_PROFILE"))) {
	case "", "0", "false", "no":
		return false
	default:
		return true
	}
}

func defaultLogInterval() time.Duration {
	interval := defaultIntervalMs
	if raw := strings.TrimSpace(os.Getenv("SCROLLSTER_PROFILE_INTERVAL_MS")); raw != "" {
		if val, err := strconv.Atoi(raw); err == nil && val > 0 {
			interval = val
		}
	}
	return time.Duration(interval) * time.Millisecond
}
