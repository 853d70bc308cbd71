package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
	totalLatency map[string]time.Duration
}

// RouteStats summarizes one method/route/status combination.
type RouteStats struct {
	Count       int64
	MeanLatency time.Duration
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		totalLatency: make(map[string]time.Duration),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, strconv.Itoa(status))
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.totalLatency[key] += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := pathKey(path, method, code)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// Requests returns a copy of the request counters keyed by "path|method|status".
func (m *Metrics) Requests() map[string]RouteStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]RouteStats, len(m.requestCount))
	for key, count := range m.requestCount {
		out[key] = RouteStats{Count: count, MeanLatency: m.totalLatency[key] / time.Duration(count)}
	}
	return out
}

// Errors returns a copy of the error counters keyed by "path|method|code".
func (m *Metrics) Errors() map[string]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]int64, len(m.errorCount))
	for key, count := range m.errorCount {
		out[key] = count
	}
	return out
}

func pathKey(path, method, suffix string) string {
	return path + "|" + method + "|" + suffix
}
