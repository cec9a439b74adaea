// cmd/satyasetu/metrics.go
package main

import (
	"runtime"
	"sync"
	"time"
)

// Metrics holds system and application metrics
type Metrics struct {
	Timestamp      time.Time        `json:"timestamp"`
	MemoryUsageMB  float64          `json:"memory_usage_mb"`
	GoroutineCount int              `json:"goroutine_count"`
	UptimeHours    float64          `json:"uptime_hours"`
	Counters       map[string]int64 `json:"counters"`
}

var (
	countersMutex sync.RWMutex
	counters      = make(map[string]int64)
	startTime     = time.Now()
)

// Counter names
const (
	CounterAnalyses       = "analyses_total"
	CounterAlerts         = "alerts_total"
	CounterScrapeFailures = "scrape_failures"
	CounterOracleFailures = "oracle_failures"
	CounterMonitorRuns    = "monitor_runs"
	CounterAPIErrors      = "api_errors"
)

// IncrementCounter bumps a named application counter
func IncrementCounter(name string) {
	countersMutex.Lock()
	defer countersMutex.Unlock()
	counters[name]++
}

// CounterValue reads a named application counter
func CounterValue(name string) int64 {
	countersMutex.RLock()
	defer countersMutex.RUnlock()
	return counters[name]
}

// collectMetrics gathers system and application metrics
func collectMetrics() *Metrics {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	countersMutex.RLock()
	snapshot := make(map[string]int64, len(counters))
	for k, v := range counters {
		snapshot[k] = v
	}
	countersMutex.RUnlock()

	return &Metrics{
		Timestamp:      time.Now(),
		MemoryUsageMB:  float64(memStats.Alloc) / 1024 / 1024,
		GoroutineCount: runtime.NumGoroutine(),
		UptimeHours:    time.Since(startTime).Hours(),
		Counters:       snapshot,
	}
}
