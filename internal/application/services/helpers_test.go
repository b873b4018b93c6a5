package services

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"mds-registry-api/config"
	"mds-registry-api/internal/application/ports"
	"mds-registry-api/internal/infrastructure/db/memory"
	"mds-registry-api/internal/infrastructure/metrics"
	"mds-registry-api/internal/infrastructure/mq"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []mq.Event
}

func (p *recordingPublisher) Publish(e mq.Event) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return true
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Action
	}
	return out
}

type fixture struct {
	store    *memory.Store
	events   *recordingPublisher
	mCounter *prometheus.CounterVec
	registry ports.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store:    memory.New(),
		events:   &recordingPublisher{},
		mCounter: metrics.NewUnregisteredCounter(),
	}
	f.registry = NewRegistryFromStores(
		Stores{Companies: f.store, Entries: f.store, Files: f.store},
		config.Cache{Size: 64, TTL: 0},
		f.events,
		zap.NewNop(),
		f.mCounter,
	)

	return f
}
