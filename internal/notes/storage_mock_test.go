package notes

import (
	"context"
	"sync"
)

var _ Storage = (*storageMock)(nil)

type storageMock struct {
	mu        sync.Mutex
	saved     []Note
	saveCalls int

	LoadErr error
	SaveErr error
}

// newStorageMock returns an in-memory storage preloaded with the given notes.
func newStorageMock(preloaded ...Note) *storageMock {
	return &storageMock{
		saved: preloaded,
	}
}

func (m *storageMock) Load(context.Context) ([]Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	out := make([]Note, len(m.saved))
	copy(out, m.saved)
	return out, nil
}

func (m *storageMock) Save(_ context.Context, notes []Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.saved = make([]Note, len(notes))
	copy(m.saved, notes)
	return nil
}

func (m *storageMock) Saved() []Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved
}

func (m *storageMock) SaveCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveCalls
}
