package services

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"

	"mds-registry-api/internal/infrastructure/metrics"
)

// recordCache remembers directory records under both their natural key and
// their id. Records are immutable once stored, so entries never go stale; the
// TTL only bounds memory for rarely used keys. A nil cache is a valid,
// always-missing cache.
type recordCache[V any] struct {
	lru      *expirable.LRU[string, V]
	mCounter *prometheus.CounterVec
}

func newRecordCache[V any](size int, ttl time.Duration, mCounter *prometheus.CounterVec) *recordCache[V] {
	if size <= 0 {
		return nil
	}
	return &recordCache[V]{
		lru:      expirable.NewLRU[string, V](size, nil, ttl),
		mCounter: mCounter,
	}
}

func (c *recordCache[V]) byKey(key string) (V, bool) { return c.get("key:" + key) }

func (c *recordCache[V]) byID(id string) (V, bool) { return c.get("id:" + id) }

func (c *recordCache[V]) get(k string) (V, bool) {
	if c == nil {
		var zero V
		return zero, false
	}
	v, ok := c.lru.Get(k)
	if ok {
		c.mCounter.WithLabelValues(metrics.DirectoryCacheHits).Inc()
	} else {
		c.mCounter.WithLabelValues(metrics.DirectoryCacheMiss).Inc()
	}
	return v, ok
}

func (c *recordCache[V]) add(key, id string, v V) {
	if c == nil {
		return
	}
	c.lru.Add("key:"+key, v)
	c.lru.Add("id:"+id, v)
}
