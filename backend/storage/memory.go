package storage

import (
	"sync"
	"time"

	"skillforge/backend/models"
)

// Memory is the default process-local store. State does not survive a
// restart. A global mutex guards the maps themselves; each progress
// record additionally carries its own mutex so the read-modify-write in
// UpdateProgress is serialized per record while unrelated users proceed
// in parallel.
type Memory struct {
	mu       sync.RWMutex
	nextID   uint
	users    map[uint]*models.User
	byEmail  map[string]uint
	progress map[uint]*progressEntry
}

type progressEntry struct {
	mu     sync.Mutex
	record *models.ProgressRecord
}

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[uint]*models.User),
		byEmail:  make(map[string]uint),
		progress: make(map[uint]*progressEntry),
	}
}

func (m *Memory) CreateUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byEmail[user.Email]; taken {
		return ErrEmailTaken
	}

	m.nextID++
	user.ID = m.nextID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	stored := *user
	m.users[user.ID] = &stored
	m.byEmail[user.Email] = user.ID
	return nil
}

func (m *Memory) UserByEmail(email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	user := *m.users[id]
	return &user, nil
}

func (m *Memory) UserByID(id uint) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	user := *stored
	return &user, nil
}

func (m *Memory) CreateProgress(userID uint, record *models.ProgressRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.progress[userID]; exists {
		return ErrProgressExists
	}
	m.progress[userID] = &progressEntry{record: record.Clone()}
	return nil
}

func (m *Memory) Progress(userID uint) (*models.ProgressRecord, error) {
	entry, err := m.entry(userID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.record.Clone(), nil
}

func (m *Memory) UpdateProgress(userID uint, fn func(*models.ProgressRecord) error) (*models.ProgressRecord, error) {
	entry, err := m.entry(userID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	// fn mutates a scratch copy; the stored record is only replaced on
	// success, so a failed transition leaves it untouched.
	scratch := entry.record.Clone()
	if err := fn(scratch); err != nil {
		return nil, err
	}
	entry.record = scratch
	return scratch.Clone(), nil
}

func (m *Memory) entry(userID uint) (*progressEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.progress[userID]
	if !ok {
		return nil, ErrProgressNotFound
	}
	return entry, nil
}
