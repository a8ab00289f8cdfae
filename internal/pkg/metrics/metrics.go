package metrics

import (
	"sync/atomic"
	"time"
)

// Recorder aggregates runtime counters for the generation pipeline: provider
// calls, cache effectiveness and generation timings. It is constructed once
// at startup and handed to each component that reports into it; a nil
// Recorder discards everything, so tests can omit it.
type Recorder struct {
	start time.Time

	apiCalls    atomic.Int64
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64

	generations atomic.Int64
	failures    atomic.Int64
	genNanos    atomic.Int64
}

func NewRecorder() *Recorder {
	return &Recorder{start: time.Now()}
}

// APICall counts one outbound provider call.
func (r *Recorder) APICall() {
	if r == nil {
		return
	}
	r.apiCalls.Add(1)
}

// CacheHit counts one read served from the cache tier.
func (r *Recorder) CacheHit() {
	if r == nil {
		return
	}
	r.cacheHits.Add(1)
}

// CacheMiss counts one read that fell through to the durable tier.
func (r *Recorder) CacheMiss() {
	if r == nil {
		return
	}
	r.cacheMisses.Add(1)
}

// Generation records one completed generation attempt and its duration.
func (r *Recorder) Generation(d time.Duration, ok bool) {
	if r == nil {
		return
	}
	r.generations.Add(1)
	r.genNanos.Add(int64(d))
	if !ok {
		r.failures.Add(1)
	}
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	UptimeSeconds        float64 `json:"uptime_seconds"`
	APICalls             int64   `json:"api_calls"`
	CacheHits            int64   `json:"cache_hits"`
	CacheMisses          int64   `json:"cache_misses"`
	CacheHitRate         float64 `json:"cache_hit_rate"`
	Generations          int64   `json:"generations"`
	GenerationFailures   int64   `json:"generation_failures"`
	AvgGenerationSeconds float64 `json:"avg_generation_seconds"`
}

func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}

	s := Snapshot{
		UptimeSeconds:      time.Since(r.start).Seconds(),
		APICalls:           r.apiCalls.Load(),
		CacheHits:          r.cacheHits.Load(),
		CacheMisses:        r.cacheMisses.Load(),
		Generations:        r.generations.Load(),
		GenerationFailures: r.failures.Load(),
	}
	if lookups := s.CacheHits + s.CacheMisses; lookups > 0 {
		s.CacheHitRate = float64(s.CacheHits) / float64(lookups)
	}
	if s.Generations > 0 {
		s.AvgGenerationSeconds = (time.Duration(r.genNanos.Load()) * time.Nanosecond).Seconds() / float64(s.Generations)
	}
	return s
}
