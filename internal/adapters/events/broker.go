// Package events fans completed runs out to live subscribers.
package events

import (
	"sync"
	"vrp-visualizer-service/internal/domain"
	"vrp-visualizer-service/internal/platform/metrics"
)

const subscriberBuffer = 16

// Broker is an in-process RunPublisher. Slow subscribers miss runs instead
// of stalling the solve that published them.
type Broker struct {
	mu   sync.Mutex
	subs map[chan domain.RunSummary]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: map[chan domain.RunSummary]struct{}{}}
}

func (b *Broker) Subscribe() chan domain.RunSummary {
	ch := make(chan domain.RunSummary, subscriberBuffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes ch and closes it. Calling it twice is a no-op.
func (b *Broker) Unsubscribe(ch chan domain.RunSummary) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; !ok {
		return
	}
	delete(b.subs, ch)
	close(ch)
}

func (b *Broker) Publish(run domain.RunSummary) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- run:
		default:
			metrics.StreamDropped.Inc()
		}
	}
}

func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
