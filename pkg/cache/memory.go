package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCounter is an in-process Counter used when Redis is not configured.
type MemoryCounter struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

type entry struct {
	count   int64
	expires time.Time
}

// NewMemoryCounter creates a counter and starts sweeping expired windows
// every sweep interval. A zero interval disables sweeping.
func NewMemoryCounter(sweep time.Duration) *MemoryCounter {
	m := &MemoryCounter{
		entries: make(map[string]*entry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if sweep > 0 {
		go m.sweepLoop(sweep)
	}
	return m
}

// Incr increments key, starting a fresh window if the previous one expired.
func (m *MemoryCounter) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e, ok := m.entries[key]
	if !ok || !now.Before(e.expires) {
		e = &entry{expires: now.Add(window)}
		m.entries[key] = e
	}
	e.count++
	return e.count, nil
}

// Ping always succeeds.
func (m *MemoryCounter) Ping(context.Context) error {
	return nil
}

// Close stops the sweeper.
func (m *MemoryCounter) Close() error {
	m.once.Do(func() { close(m.stop) })
	return nil
}

// Len reports the number of tracked keys.
func (m *MemoryCounter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *MemoryCounter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *MemoryCounter) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, key)
		}
	}
}
