package notify

import (
	"context"
	"sync"
)

// Memory is an in-process Bus for tests and single-node runs. Callbacks are
// invoked on the publisher's goroutine; subscribers must not block.
type Memory struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]func()
}

func NewMemory() *Memory {
	return &Memory{subs: make(map[string]map[int]func())}
}

func (m *Memory) Publish(ctx context.Context, room string) error {
	m.mu.Lock()
	fns := make([]func(), 0, len(m.subs[room]))
	for _, fn := range m.subs[room] {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return nil
}

func (m *Memory) Subscribe(ctx context.Context, room string, fn func()) (func(), error) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	if m.subs[room] == nil {
		m.subs[room] = make(map[int]func())
	}
	m.subs[room][id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs[room], id)
		m.mu.Unlock()
	}, nil
}
