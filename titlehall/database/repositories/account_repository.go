package repositories

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/uptrace/bun"

	"github.com/chickentitle/titlehall/titlehall/config"
	"github.com/chickentitle/titlehall/titlehall/database/models"
	"github.com/chickentitle/titlehall/titlehall/logger"
)

// AccountStore is the persistence boundary of the progression core:
// one full snapshot per account name, replaced wholesale on Save.
type AccountStore interface {
	Load(ctx context.Context, name string) (*models.Account, error)
	Save(ctx context.Context, account *models.Account) error
	Exists(ctx context.Context, name string) (bool, error)
}

type accountRepository struct {
	*BaseRepository
	cache *lru.Cache
}

// NewAccountRepository returns a Postgres-backed AccountStore with an
// LRU read cache keyed by account name.
func NewAccountRepository(db *bun.DB) AccountStore {
	cache, _ := lru.New(config.AccountCacheSize)
	return &accountRepository{
		BaseRepository: NewBaseRepository(db),
		cache:          cache,
	}
}

func (r *accountRepository) Load(ctx context.Context, name string) (*models.Account, error) {
	if cached, ok := r.cache.Get(name); ok {
		return cached.(*models.Account).Clone(), nil
	}

	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	start := time.Now()
	account := new(models.Account)
	err := r.db.NewSelect().
		Model(account).
		Where("name = ?", name).
		Scan(timeoutCtx)
	logger.LogQuery("accounts.load", time.Since(start), err)
	if err != nil {
		return nil, r.HandleErrorWithID("load", "account", name, err)
	}

	r.cache.Add(name, account.Clone())
	return account, nil
}

func (r *accountRepository) Save(ctx context.Context, account *models.Account) error {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	start := time.Now()
	_, err := r.db.NewInsert().
		Model(account).
		On("CONFLICT (name) DO UPDATE").
		Set("credential = EXCLUDED.credential").
		Set("balance = EXCLUDED.balance").
		Set("owned_unlocks = EXCLUDED.owned_unlocks").
		Set("active_unlock = EXCLUDED.active_unlock").
		Set("elapsed_seconds = EXCLUDED.elapsed_seconds").
		Set("messages_sent = EXCLUDED.messages_sent").
		Set("objectives = EXCLUDED.objectives").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(timeoutCtx)
	logger.LogQuery("accounts.save", time.Since(start), err)
	if err != nil {
		return r.HandleErrorWithID("save", "account", account.Name, err)
	}

	r.cache.Add(account.Name, account.Clone())
	return nil
}

func (r *accountRepository) Exists(ctx context.Context, name string) (bool, error) {
	if r.cache.Contains(name) {
		return true, nil
	}

	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	exists, err := r.db.NewSelect().
		Model((*models.Account)(nil)).
		Where("name = ?", name).
		Exists(timeoutCtx)
	if err != nil {
		return false, r.HandleErrorWithID("exists", "account", name, err)
	}
	return exists, nil
}
