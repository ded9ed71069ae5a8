// Package metrics counts code builds, codec calls and cache lookups for
// the session summary logged at exit.
package metrics

import (
	"sync/atomic"
	"time"
)

type counter int

const (
	builds counter = iota
	buildErrors
	buildNanos
	encodes
	decodes
	decodeErrors
	noError
	corrected
	uncorrectable
	cacheHits
	cacheMisses
	numCounters
)

// decodeCounters maps a decode status name to its counter.
//
//nolint:gochecknoglobals // Static lookup table
var decodeCounters = map[string]counter{
	"no_error":      noError,
	"corrected":     corrected,
	"uncorrectable": uncorrectable,
}

// Metrics is a set of atomic counters. The zero value is ready to use.
type Metrics struct {
	c [numCounters]atomic.Int64
}

// Global is the process-wide instance.
//
//nolint:gochecknoglobals // Intentional global for metrics access
var Global = &Metrics{}

func (m *Metrics) load(c counter) int64 {
	return m.c[c].Load()
}

func (m *Metrics) inc(c counter) {
	m.c[c].Add(1)
}

// RecordBuild records a code construction with its duration and outcome.
func (m *Metrics) RecordBuild(duration time.Duration, err error) {
	m.inc(builds)
	m.c[buildNanos].Add(duration.Nanoseconds())
	if err != nil {
		m.inc(buildErrors)
	}
}

// RecordEncode records an encode call.
func (m *Metrics) RecordEncode() {
	m.inc(encodes)
}

// RecordDecode records a decode by its status name ("no_error",
// "corrected", "uncorrectable"). A non-nil err counts as a failed decode.
func (m *Metrics) RecordDecode(status string, err error) {
	m.inc(decodes)
	if err != nil {
		m.inc(decodeErrors)
		return
	}
	if c, ok := decodeCounters[status]; ok {
		m.inc(c)
	}
}

// RecordCacheHit records a code cache hit.
func (m *Metrics) RecordCacheHit() {
	m.inc(cacheHits)
}

// RecordCacheMiss records a code cache miss.
func (m *Metrics) RecordCacheMiss() {
	m.inc(cacheMisses)
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	BuildsTotal   int64 `json:"builds_total"`
	BuildErrors   int64 `json:"build_errors"`
	EncodesTotal  int64 `json:"encodes_total"`
	DecodesTotal  int64 `json:"decodes_total"`
	DecodeErrors  int64 `json:"decode_errors"`
	NoError       int64 `json:"no_error"`
	Corrected     int64 `json:"corrected"`
	Uncorrectable int64 `json:"uncorrectable"`
	CacheHits     int64 `json:"cache_hits"`
	CacheMisses   int64 `json:"cache_misses"`
}

// Snapshot copies the counters. Counters are read one at a time, so a
// snapshot taken during concurrent updates may be slightly skewed.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		BuildsTotal:   m.load(builds),
		BuildErrors:   m.load(buildErrors),
		EncodesTotal:  m.load(encodes),
		DecodesTotal:  m.load(decodes),
		DecodeErrors:  m.load(decodeErrors),
		NoError:       m.load(noError),
		Corrected:     m.load(corrected),
		Uncorrectable: m.load(uncorrectable),
		CacheHits:     m.load(cacheHits),
		CacheMisses:   m.load(cacheMisses),
	}
}

// BuildsTotal returns the number of code constructions attempted.
func (m *Metrics) BuildsTotal() int64 {
	return m.load(builds)
}

// BuildLatencyAvgMs returns the mean build time in milliseconds, or 0.
func (m *Metrics) BuildLatencyAvgMs() float64 {
	return ratio(m.load(buildNanos), m.load(builds)) / 1e6
}

// CorrectionRate returns the percentage of successful decodes that
// flipped a bit.
func (m *Metrics) CorrectionRate() float64 {
	total := m.load(noError) + m.load(corrected) + m.load(uncorrectable)
	return ratio(m.load(corrected), total) * 100
}

// CacheHitRate returns the percentage of code lookups served from cache.
func (m *Metrics) CacheHitRate() float64 {
	hits := m.load(cacheHits)
	return ratio(hits, hits+m.load(cacheMisses)) * 100
}

func ratio(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole)
}

// Reset zeroes every counter.
func (m *Metrics) Reset() {
	for i := range m.c {
		m.c[i].Store(0)
	}
}
