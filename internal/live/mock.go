package live

import "sync"

var _ Broadcaster = (*MockBroadcaster)(nil)

// MockBroadcaster records published snapshots. It is safe for concurrent use.
type MockBroadcaster struct {
	mu        sync.Mutex
	Snapshots []Snapshot
}

func NewMock() *MockBroadcaster {
	return &MockBroadcaster{}
}

func (m *MockBroadcaster) Publish(s Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Snapshots = append(m.Snapshots, s)
}

// Types returns the type of every published snapshot in order.
func (m *MockBroadcaster) Types() []SnapshotType {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]SnapshotType, len(m.Snapshots))
	for i, s := range m.Snapshots {
		types[i] = s.Type
	}
	return types
}
