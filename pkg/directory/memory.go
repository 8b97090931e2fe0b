package directory

import (
	"context"
	"slices"
	"sync"
)

type Group struct {
	ID      int64
	Virtual bool
}

// Memory is a Directory held in maps.
type Memory struct {
	mu      sync.RWMutex
	users   map[int64]User
	members map[int64][]Group
}

func NewMemory() *Memory {
	return &Memory{
		users:   make(map[int64]User),
		members: make(map[int64][]Group),
	}
}

func (m *Memory) AddUser(u User, groups ...Group) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	m.members[u.ID] = append(m.members[u.ID], groups...)
}

func (m *Memory) User(_ context.Context, id int64) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (m *Memory) Groups(_ context.Context, userID int64) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]int64, 0, len(m.members[userID]))
	for _, g := range m.members[userID] {
		if !g.Virtual {
			ids = append(ids, g.ID)
		}
	}
	slices.Sort(ids)
	return slices.Compact(ids), nil
}
