package content

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and local development
// without redis.
type MemoryStore struct {
	mu          sync.RWMutex
	items       map[string]map[string]Item
	submissions []Submission
	users       map[string]User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]map[string]Item),
		users: make(map[string]User),
	}
}

func (m *MemoryStore) PutItem(ctx context.Context, collection string, item *Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.items[collection] == nil {
		m.items[collection] = make(map[string]Item)
	}
	m.items[collection][item.ID] = *item
	return nil
}

func (m *MemoryStore) GetItem(ctx context.Context, collection, id string) (*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (m *MemoryStore) ListItems(ctx context.Context, collection string) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]Item, 0, len(m.items[collection]))
	for _, item := range m.items[collection] {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (m *MemoryStore) DeleteItem(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[collection][id]; !ok {
		return ErrNotFound
	}
	delete(m.items[collection], id)
	return nil
}

func (m *MemoryStore) AddSubmission(ctx context.Context, submission *Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Newest first, matching the redis store.
	m.submissions = append([]Submission{*submission}, m.submissions...)
	return nil
}

func (m *MemoryStore) ListSubmissions(ctx context.Context) ([]Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Submission, len(m.submissions))
	copy(out, m.submissions)
	return out, nil
}

func (m *MemoryStore) PutUser(ctx context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users[user.ID] = *user
	return nil
}

func (m *MemoryStore) GetUser(ctx context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (m *MemoryStore) ListUsers(ctx context.Context) ([]User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}
