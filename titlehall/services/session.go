package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/chickentitle/titlehall/titlehall/catalog"
	"github.com/chickentitle/titlehall/titlehall/config"
	"github.com/chickentitle/titlehall/titlehall/database/models"
	"github.com/chickentitle/titlehall/titlehall/database/repositories"
	"github.com/chickentitle/titlehall/titlehall/economy"
	"github.com/chickentitle/titlehall/titlehall/logger"
)

// PurchaseResult reports what a purchase attempt actually did. When the
// unlock was already owned the session activates it instead of charging
// again, and ActivatedOnly is set.
type PurchaseResult struct {
	UnlockID      string           `json:"unlock_id"`
	OwnedCount    int              `json:"owned_count"`
	Balance       int64            `json:"balance"`
	ActivatedOnly bool             `json:"activated_only"`
	Completed     []CompletionInfo `json:"completed,omitempty"`
}

// SessionManager binds at most one account at a time and serializes
// every mutation of it behind a single mutex. The presence ticker, the
// autosave job and the request handlers all go through that mutex, so
// each operation observes and produces a consistent account state.
type SessionManager struct {
	store    repositories.AccountStore
	catalog  *catalog.Catalog
	ledger   *economy.Ledger
	tracker  *Tracker
	chat     *ChatFeed
	notifier Notifier

	startingGrant int64
	tickInterval  time.Duration

	mu         sync.Mutex
	account    *models.Account
	cancelTick context.CancelFunc
}

func NewSessionManager(
	store repositories.AccountStore,
	cat *catalog.Catalog,
	ledger *economy.Ledger,
	tracker *Tracker,
	chat *ChatFeed,
	notifier Notifier,
	startingGrant int64,
	tickInterval time.Duration,
) *SessionManager {
	if tickInterval <= 0 {
		tickInterval = config.TickInterval
	}
	return &SessionManager{
		store:         store,
		catalog:       cat,
		ledger:        ledger,
		tracker:       tracker,
		chat:          chat,
		notifier:      notifier,
		startingGrant: startingGrant,
		tickInterval:  tickInterval,
	}
}

// Register creates a new account with the starting grant and binds it
// as the active session.
func (m *SessionManager) Register(ctx context.Context, name, credential string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return m.fail(&ValidationError{Field: "name", Reason: "must not be empty"})
	}
	if credential == "" {
		return m.fail(&ValidationError{Field: "credential", Reason: "must not be empty"})
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.account != nil {
		return m.fail(ErrAlreadyAuthenticated)
	}

	exists, err := m.store.Exists(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check account existence: %w", err)
	}
	if exists {
		return m.fail(ErrDuplicateAccount)
	}

	account := economy.NewAccount(m.catalog, name, credential, m.startingGrant, name == config.PrivilegedAccountName)
	if err := m.store.Save(ctx, account); err != nil {
		return fmt.Errorf("failed to save new account: %w", err)
	}

	m.bind(account)
	slog.Info("Account registered",
		slog.String("type", "game"),
		slog.String("account", name),
		slog.Int64("balance", account.Balance))
	m.notifier.Notify(Notification{
		Kind:   NotifyInfo,
		Title:  "Welcome",
		Detail: fmt.Sprintf("Account created with %d coins", m.startingGrant),
	})
	return nil
}

// Login authenticates against a stored account and binds it. Objectives
// the persisted balance already satisfies complete immediately.
func (m *SessionManager) Login(ctx context.Context, name, credential string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return m.fail(&ValidationError{Field: "name", Reason: "must not be empty"})
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.account != nil {
		return m.fail(ErrAlreadyAuthenticated)
	}

	account, err := m.store.Load(ctx, name)
	if err != nil {
		if repositories.IsNotFound(err) {
			// Indistinguishable from a credential mismatch on purpose.
			return m.fail(ErrInvalidCredentials)
		}
		return fmt.Errorf("failed to load account: %w", err)
	}
	if account.Credential != credential {
		return m.fail(ErrInvalidCredentials)
	}

	economy.BackfillObjectives(m.catalog, account)
	m.bind(account)

	completed := m.tracker.OnBalanceObserved(account)
	if err := m.store.Save(ctx, account); err != nil {
		logger.LogError("Failed to save account after login settlement", err)
	}

	slog.Info("Account logged in",
		slog.String("type", "game"),
		slog.String("account", name),
		slog.Int("settled_objectives", len(completed)))
	m.notifier.Notify(Notification{
		Kind:   NotifyInfo,
		Title:  "Welcome back",
		Detail: fmt.Sprintf("Logged in as %s", name),
	})
	return nil
}

// Logout stops the presence ticker, flushes the account and clears the
// binding. The cancel happens before the flush, so a tick that already
// fired blocks on the mutex, then sees the binding gone and drops out.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.account == nil {
		return m.fail(ErrNotAuthenticated)
	}

	if m.cancelTick != nil {
		m.cancelTick()
		m.cancelTick = nil
	}

	if err := m.store.Save(ctx, m.account); err != nil {
		return fmt.Errorf("failed to save account on logout: %w", err)
	}

	slog.Info("Account logged out",
		slog.String("type", "game"),
		slog.String("account", m.account.Name),
		slog.Int64("elapsed_seconds", m.account.ElapsedSeconds))
	m.account = nil
	return nil
}

// SendMessage appends a chat entry under the author's current title
// label and advances chat objectives.
func (m *SessionManager) SendMessage(ctx context.Context, body string) (models.ChatEntry, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return models.ChatEntry{}, m.fail(&ValidationError{Field: "body", Reason: "must not be empty"})
	}
	if len(body) > config.MaxChatBodyLength {
		return models.ChatEntry{}, m.fail(&ValidationError{Field: "body", Reason: "too long"})
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.account == nil {
		return models.ChatEntry{}, m.fail(ErrNotAuthenticated)
	}

	displayed := m.displayedAuthor()
	entry := m.chat.Append(m.account.Name, displayed, body)
	m.tracker.OnMessageSent(m.account)

	if err := m.store.Save(ctx, m.account); err != nil {
		logger.LogError("Failed to save account after message", err)
	}
	return entry, nil
}

// Purchase buys an unlock for the bound account. Buying an unlock the
// account already owns is treated as an activation instead of an error
// surfaced to the user.
func (m *SessionManager) Purchase(ctx context.Context, unlockID string) (PurchaseResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.account == nil {
		return PurchaseResult{}, m.fail(ErrNotAuthenticated)
	}

	count, err := m.ledger.Purchase(m.account, unlockID)
	if err == economy.ErrAlreadyOwned {
		if aerr := m.ledger.Activate(m.account, unlockID); aerr != nil {
			return PurchaseResult{}, m.fail(aerr)
		}
		m.notifier.Notify(Notification{
			Kind:   NotifyInfo,
			Title:  "Title equipped",
			Detail: fmt.Sprintf("%s is now your active title", m.ledger.ActiveLabel(m.account)),
		})
		return PurchaseResult{
			UnlockID:      unlockID,
			OwnedCount:    len(m.account.OwnedUnlocks),
			Balance:       m.account.Balance,
			ActivatedOnly: true,
		}, nil
	}
	if err != nil {
		return PurchaseResult{}, m.fail(err)
	}

	completed := m.tracker.OnUnlockPurchased(m.account, count)
	if err := m.store.Save(ctx, m.account); err != nil {
		logger.LogError("Failed to save account after purchase", err)
	}

	m.notifier.Notify(Notification{
		Kind:   NotifyInfo,
		Title:  "Title purchased",
		Detail: fmt.Sprintf("%s is now your active title", m.ledger.ActiveLabel(m.account)),
	})
	return PurchaseResult{
		UnlockID:   unlockID,
		OwnedCount: count,
		Balance:    m.account.Balance,
		Completed:  completed,
	}, nil
}

// Activate switches the displayed title to an owned unlock.
func (m *SessionManager) Activate(ctx context.Context, unlockID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.account == nil {
		return m.fail(ErrNotAuthenticated)
	}
	if err := m.ledger.Activate(m.account, unlockID); err != nil {
		return m.fail(err)
	}
	if err := m.store.Save(ctx, m.account); err != nil {
		logger.LogError("Failed to save account after activation", err)
	}
	return nil
}

// CreditAdmin grants coins to the bound account. Privileged accounts
// only; the grant counts toward balance objectives like any credit.
func (m *SessionManager) CreditAdmin(ctx context.Context, amount int64) ([]CompletionInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.account == nil {
		return nil, m.fail(ErrNotAuthenticated)
	}
	if !m.account.Privileged {
		return nil, m.fail(ErrPermissionDenied)
	}
	if err := m.ledger.Credit(m.account, amount); err != nil {
		return nil, m.fail(&ValidationError{Field: "amount", Reason: "must be positive"})
	}

	completed := m.tracker.OnBalanceObserved(m.account)
	if err := m.store.Save(ctx, m.account); err != nil {
		logger.LogError("Failed to save account after admin credit", err)
	}

	slog.Info("Admin credit",
		slog.String("type", "game"),
		slog.String("account", m.account.Name),
		slog.Int64("amount", amount),
		slog.Int64("balance", m.account.Balance))
	return completed, nil
}

// CopyTitle returns the display label of an owned unlock for the
// clipboard. Ownership is required even when the unlock is not active.
func (m *SessionManager) CopyTitle(unlockID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.account == nil {
		return "", m.fail(ErrNotAuthenticated)
	}
	unlock := m.catalog.Unlock(unlockID)
	if unlock == nil {
		return "", m.fail(economy.ErrUnknownUnlock)
	}
	if !m.account.Owns(unlockID) {
		return "", m.fail(economy.ErrNotOwned)
	}
	return unlock.DisplayName, nil
}

// Snapshot returns a deep copy of the bound account for rendering.
func (m *SessionManager) Snapshot() (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.account == nil {
		return nil, ErrNotAuthenticated
	}
	return m.account.Clone(), nil
}

// Authenticated reports whether a session is currently bound.
func (m *SessionManager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.account != nil
}

// Flush persists the bound account, if any. The autosave job calls
// this on its interval.
func (m *SessionManager) Flush(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.account == nil {
		return nil
	}
	return m.store.Save(ctx, m.account)
}

// StartAutosave persists the bound account on the given interval until
// the context is cancelled.
func (m *SessionManager) StartAutosave(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = config.DefaultAutosaveInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := m.Flush(ctx); err != nil {
					slog.Error("Autosave failed", slog.Any("error", err))
				}
			}
		}
	}()
}

// bind attaches the account and starts its presence ticker. Caller
// holds the mutex.
func (m *SessionManager) bind(account *models.Account) {
	m.account = account

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelTick = cancel
	go m.runTicker(ctx)
}

// runTicker drives presence time for the bound account. Each tick takes
// the session mutex, so it interleaves cleanly with request handlers.
// Cancellation is re-checked under the mutex: a tick that raced with
// logout finds either a cancelled context or no account and does nothing.
func (m *SessionManager) runTicker(ctx context.Context) {
	ticker := time.NewTicker(m.tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.handleTick(ctx)
		}
	}
}

func (m *SessionManager) handleTick(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ctx.Err() != nil || m.account == nil {
		return
	}
	start := time.Now()
	m.tracker.OnTick(m.account)
	logger.LogSignal("tick", m.account.Name, time.Since(start), nil)
}

// displayedAuthor derives the frozen chat label, the active title's
// display name followed by the account name. Caller holds the mutex.
func (m *SessionManager) displayedAuthor() string {
	if label := m.ledger.ActiveLabel(m.account); label != "" {
		return fmt.Sprintf("%s %s", label, m.account.Name)
	}
	return m.account.Name
}

// fail reports the failure to the notifier and passes the error through.
func (m *SessionManager) fail(err error) error {
	m.notifier.Notify(Notification{
		Kind:   NotifyError,
		Title:  "Action failed",
		Detail: err.Error(),
	})
	return err
}
