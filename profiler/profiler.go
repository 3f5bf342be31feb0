// Package profiler records timing and size statistics for toolkit operations.
package profiler

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultMaxSamples is the number of recent samples kept per operation.
const DefaultMaxSamples = 600

// Profiler tracks per-operation durations and named metrics.
//
// It is safe for concurrent use. A nil *Profiler is valid and records nothing.
type Profiler struct {
	mu         sync.Mutex
	maxSamples int
	operations map[string]*TimeTracker
	metrics    map[string]*MetricTracker
}

// TimeTracker tracks operation timing statistics.
type TimeTracker struct {
	durations []time.Duration
	totalTime time.Duration
	minTime   time.Duration
	maxTime   time.Duration
	count     int64
	failures  int64
}

// MetricTracker tracks statistics for a named value such as an encoded size.
type MetricTracker struct {
	values []float64
	sum    float64
	min    float64
	max    float64
}

// OperationStats is a snapshot of one operation's timings.
type OperationStats struct {
	Name     string
	Count    int64
	Failures int64
	Average  time.Duration
	Min      time.Duration
	Max      time.Duration
}

// MetricStats is a snapshot of one metric.
type MetricStats struct {
	Name    string
	Samples int
	Average float64
	Min     float64
	Max     float64
}

// New creates a profiler keeping at most maxSamples recent samples per
// operation or metric. Zero selects DefaultMaxSamples.
func New(maxSamples int) *Profiler {
	if maxSamples <= 0 {
		maxSamples = DefaultMaxSamples
	}
	return &Profiler{
		maxSamples: maxSamples,
		operations: make(map[string]*TimeTracker),
		metrics:    make(map[string]*MetricTracker),
	}
}

// StartOperation begins timing an operation.
//
// Arguments:
// - name: The name of the operation to track
//
// Returns:
// - A function to call with the operation's error when it completes
func (p *Profiler) StartOperation(name string) func(err error) {
	if p == nil {
		return func(error) {}
	}
	start := time.Now()
	return func(err error) {
		p.recordOperationTime(name, time.Since(start), err != nil)
	}
}

// recordOperationTime records the completion time of an operation.
func (p *Profiler) recordOperationTime(name string, duration time.Duration, failed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tracker, exists := p.operations[name]
	if !exists {
		tracker = &TimeTracker{
			minTime: duration,
			maxTime: duration,
		}
		p.operations[name] = tracker
	}

	tracker.durations = append(tracker.durations, duration)
	if len(tracker.durations) > p.maxSamples {
		// Remove oldest sample
		tracker.totalTime -= tracker.durations[0]
		tracker.durations = tracker.durations[1:]
	}

	tracker.totalTime += duration
	tracker.count++
	if failed {
		tracker.failures++
	}

	if duration < tracker.minTime {
		tracker.minTime = duration
	}
	if duration > tracker.maxTime {
		tracker.maxTime = duration
	}
}

// RecordMetric records a value for a named metric.
func (p *Profiler) RecordMetric(name string, value float64) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	tracker, exists := p.metrics[name]
	if !exists {
		tracker = &MetricTracker{min: value, max: value}
		p.metrics[name] = tracker
	}

	tracker.values = append(tracker.values, value)
	tracker.sum += value
	if len(tracker.values) > p.maxSamples {
		tracker.sum -= tracker.values[0]
		tracker.values = tracker.values[1:]
	}

	if value < tracker.min {
		tracker.min = value
	}
	if value > tracker.max {
		tracker.max = value
	}
}

// Operations returns a snapshot of every tracked operation, sorted by name.
func (p *Profiler) Operations() []OperationStats {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	stats := make([]OperationStats, 0, len(p.operations))
	for name, tracker := range p.operations {
		var avg time.Duration
		if n := len(tracker.durations); n > 0 {
			avg = tracker.totalTime / time.Duration(n)
		}
		stats = append(stats, OperationStats{
			Name:     name,
			Count:    tracker.count,
			Failures: tracker.failures,
			Average:  avg,
			Min:      tracker.minTime,
			Max:      tracker.maxTime,
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats
}

// Metrics returns a snapshot of every tracked metric, sorted by name.
func (p *Profiler) Metrics() []MetricStats {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	stats := make([]MetricStats, 0, len(p.metrics))
	for name, tracker := range p.metrics {
		if len(tracker.values) == 0 {
			continue
		}
		stats = append(stats, MetricStats{
			Name:    name,
			Samples: len(tracker.values),
			Average: tracker.sum / float64(len(tracker.values)),
			Min:     tracker.min,
			Max:     tracker.max,
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats
}

// Report logs the current snapshot at info level.
func (p *Profiler) Report(logger *zap.Logger) {
	for _, op := range p.Operations() {
		logger.Info("operation",
			zap.String("name", op.Name),
			zap.Int64("count", op.Count),
			zap.Int64("failures", op.Failures),
			zap.Duration("avg", op.Average),
			zap.Duration("min", op.Min),
			zap.Duration("max", op.Max),
		)
	}
	for _, m := range p.Metrics() {
		logger.Info("metric",
			zap.String("name", m.Name),
			zap.Int("samples", m.Samples),
			zap.Float64("avg", m.Average),
			zap.Float64("min", m.Min),
			zap.Float64("max", m.Max),
		)
	}
}

// FormatBytes formats byte counts in human-readable format.
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
