package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecorderCounters(t *testing.T) {
	r := NewRecorder()

	r.APICall()
	r.APICall()
	r.CacheHit()
	r.CacheHit()
	r.CacheHit()
	r.CacheMiss()
	r.Generation(2*time.Second, true)
	r.Generation(4*time.Second, false)

	s := r.Snapshot()
	assert.Equal(t, int64(2), s.APICalls)
	assert.Equal(t, int64(3), s.CacheHits)
	assert.Equal(t, int64(1), s.CacheMisses)
	assert.Equal(t, 0.75, s.CacheHitRate)
	assert.Equal(t, int64(2), s.Generations)
	assert.Equal(t, int64(1), s.GenerationFailures)
	assert.Equal(t, 3.0, s.AvgGenerationSeconds)
}

func TestRecorderEmpty(t *testing.T) {
	s := NewRecorder().Snapshot()

	// No lookups and no generations must not divide by zero.
	assert.Zero(t, s.CacheHitRate)
	assert.Zero(t, s.AvgGenerationSeconds)
}

func TestRecorderNilSafe(t *testing.T) {
	var r *Recorder

	r.APICall()
	r.CacheHit()
	r.CacheMiss()
	r.Generation(time.Second, true)

	assert.Equal(t, Snapshot{}, r.Snapshot())
}
