package economy

import (
	"log/slog"
	"time"

	"github.com/chickentitle/titlehall/titlehall/catalog"
	"github.com/chickentitle/titlehall/titlehall/database/models"
)

// Ledger owns every balance and ownership mutation of an account.
// Its operations are plain state transitions on the bound account;
// the session serializes all calls for a given account, which is what
// makes each operation atomic: either every field change below is
// observed, or none is.
type Ledger struct {
	catalog *catalog.Catalog
}

func NewLedger(cat *catalog.Catalog) *Ledger {
	return &Ledger{catalog: cat}
}

// NewAccount creates an account with the registration defaults: the
// starting grant, the default title owned and active, and every
// catalog objective present at zero progress.
func NewAccount(cat *catalog.Catalog, name, credential string, startingGrant int64, privileged bool) *models.Account {
	now := time.Now()
	account := &models.Account{
		Name:         name,
		Credential:   credential,
		Balance:      startingGrant,
		OwnedUnlocks: []string{cat.DefaultUnlockID()},
		ActiveUnlock: cat.DefaultUnlockID(),
		Privileged:   privileged,
		Objectives:   make(map[string]*models.ObjectiveState),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, tpl := range cat.Objectives() {
		account.Objectives[tpl.ID] = &models.ObjectiveState{TemplateID: tpl.ID}
	}
	return account
}

// BackfillObjectives adds zero-progress states for catalog objectives
// missing from a persisted account, so the map is never partially
// present after the catalog grows.
func BackfillObjectives(cat *catalog.Catalog, account *models.Account) {
	if account.Objectives == nil {
		account.Objectives = make(map[string]*models.ObjectiveState)
	}
	for _, tpl := range cat.Objectives() {
		if _, ok := account.Objectives[tpl.ID]; !ok {
			account.Objectives[tpl.ID] = &models.ObjectiveState{TemplateID: tpl.ID}
		}
	}
}

// Credit increases the balance. Amount must be positive; callers pass
// objective rewards and admin grants through here.
func (l *Ledger) Credit(account *models.Account, amount int64) error {
	if amount <= 0 {
		return ErrNonPositiveAmount
	}
	account.Balance += amount
	return nil
}

// Purchase debits the unlock price, adds the unlock to the owned set
// and makes it active, all as one step. It returns the authoritative
// new ownership count for purchase-count objective tracking.
func (l *Ledger) Purchase(account *models.Account, unlockID string) (int, error) {
	unlock := l.catalog.Unlock(unlockID)
	if unlock == nil {
		return 0, ErrUnknownUnlock
	}
	if account.Owns(unlockID) {
		return 0, ErrAlreadyOwned
	}
	if account.Balance < unlock.Price {
		return 0, &InsufficientFundsError{Price: unlock.Price, Balance: account.Balance}
	}

	account.Balance -= unlock.Price
	account.OwnedUnlocks = append(account.OwnedUnlocks, unlockID)
	account.ActiveUnlock = unlockID

	slog.Info("Unlock purchased",
		slog.String("type", "game"),
		slog.String("account", account.Name),
		slog.String("unlock", unlockID),
		slog.Int64("price", unlock.Price),
		slog.Int64("balance", account.Balance))

	return len(account.OwnedUnlocks), nil
}

// Activate switches the displayed title to an already-owned unlock.
func (l *Ledger) Activate(account *models.Account, unlockID string) error {
	if l.catalog.Unlock(unlockID) == nil {
		return ErrUnknownUnlock
	}
	if !account.Owns(unlockID) {
		return ErrNotOwned
	}
	account.ActiveUnlock = unlockID
	return nil
}

// ActiveLabel returns the display label of the active unlock, or ""
// when none is active. Chat author derivation and copy-to-clipboard
// both read the label through here.
func (l *Ledger) ActiveLabel(account *models.Account) string {
	if account.ActiveUnlock == "" {
		return ""
	}
	if unlock := l.catalog.Unlock(account.ActiveUnlock); unlock != nil {
		return unlock.DisplayName
	}
	return ""
}
