package repositories

import (
	"context"
	"sync"

	"github.com/chickentitle/titlehall/titlehall/database/models"
)

// MemoryStore is a process-local AccountStore. It backs the default
// single-user deployment, where a database would be overkill, and
// doubles as the store used by the test suites. Snapshots are
// deep-copied on both Save and Load so callers never share state with
// the store.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[string]*models.Account),
	}
}

func (s *MemoryStore) Load(_ context.Context, name string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[name]
	if !ok {
		return nil, &NotFoundError{Entity: "account", ID: name}
	}
	return account.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[account.Name] = account.Clone()
	return nil
}

func (s *MemoryStore) Exists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.accounts[name]
	return ok, nil
}
