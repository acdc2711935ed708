package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

const eventBuffer = 16

// Memory is an in-process medium. One Memory plays the role of the shared
// browser profile; each handle returned by Open is an independent "tab" with
// its own origin, so a single test can exercise cross-context propagation and
// the writer self-exclusion rule.
type Memory struct {
	mu      sync.Mutex
	entries map[string]Entry
	subs    map[*memorySub]struct{}
}

type memorySub struct {
	origin string
	keys   map[string]struct{}
	ch     chan Event
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]Entry),
		subs:    make(map[*memorySub]struct{}),
	}
}

// Open returns a new handle with its own origin identity.
func (m *Memory) Open() *MemoryHandle {
	return &MemoryHandle{medium: m, origin: uuid.NewString()}
}

type MemoryHandle struct {
	medium *Memory
	origin string
}

var _ Store = (*MemoryHandle)(nil)

func (h *MemoryHandle) Get(ctx context.Context, key string) (Entry, bool, error) {
	h.medium.mu.Lock()
	defer h.medium.mu.Unlock()
	e, ok := h.medium.entries[key]
	return e, ok, nil
}

func (h *MemoryHandle) Set(ctx context.Context, key, value string) (uint64, error) {
	h.medium.mu.Lock()
	defer h.medium.mu.Unlock()
	return h.medium.write(key, value, h.origin), nil
}

func (h *MemoryHandle) CompareAndSwap(ctx context.Context, key string, expected uint64, value string) (uint64, error) {
	h.medium.mu.Lock()
	defer h.medium.mu.Unlock()
	current := h.medium.entries[key].Version
	if current != expected {
		return current, ErrVersionConflict
	}
	return h.medium.write(key, value, h.origin), nil
}

// write must be called with the lock held.
func (m *Memory) write(key, value, origin string) uint64 {
	version := m.entries[key].Version + 1
	m.entries[key] = Entry{Value: value, Version: version}
	ev := Event{Key: key, NewValue: value, Origin: origin}
	for sub := range m.subs {
		if sub.origin == origin {
			continue
		}
		if _, ok := sub.keys[key]; !ok {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			// Listener is behind; it will re-read on its next event.
		}
	}
	return version
}

func (h *MemoryHandle) Subscribe(ctx context.Context, keys ...string) (<-chan Event, func()) {
	sub := &memorySub{
		origin: h.origin,
		keys:   make(map[string]struct{}, len(keys)),
		ch:     make(chan Event, eventBuffer),
	}
	for _, k := range keys {
		sub.keys[k] = struct{}{}
	}

	h.medium.mu.Lock()
	h.medium.subs[sub] = struct{}{}
	h.medium.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.medium.mu.Lock()
			delete(h.medium.subs, sub)
			h.medium.mu.Unlock()
			close(sub.ch)
		})
	}

	stop := context.AfterFunc(ctx, cancel)
	return sub.ch, func() { stop(); cancel() }
}
