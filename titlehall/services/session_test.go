package services

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/chickentitle/titlehall/titlehall/database/repositories"
	"github.com/chickentitle/titlehall/titlehall/economy"
)

func Test_Session_FullScenario(t *testing.T) {
	session, _, _ := newTestSession(t)
	ctx := context.Background()

	if err := session.Register(ctx, "alice", "secret"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	snapshot, err := session.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if snapshot.Balance != 100 {
		t.Errorf("Balance after register = %d, want 100", snapshot.Balance)
	}
	if !reflect.DeepEqual(snapshot.OwnedUnlocks, []string{"starter"}) {
		t.Errorf("OwnedUnlocks = %v, want [starter]", snapshot.OwnedUnlocks)
	}

	// One minute of presence completes the time objective.
	for i := 0; i < 60; i++ {
		session.handleTick(ctx)
	}
	snapshot, _ = session.Snapshot()
	if snapshot.Balance != 150 {
		t.Errorf("Balance after 60 ticks = %d, want 150", snapshot.Balance)
	}
	if !snapshot.Objective("presence").Completed {
		t.Error("presence objective not completed after 60 ticks")
	}

	result, err := session.Purchase(ctx, "premium")
	if err != nil {
		t.Fatalf("Purchase() error = %v", err)
	}
	if result.ActivatedOnly {
		t.Error("first purchase reported ActivatedOnly")
	}
	if result.OwnedCount != 2 {
		t.Errorf("OwnedCount = %d, want 2", result.OwnedCount)
	}
	if result.Balance != 50 {
		t.Errorf("Balance after purchase = %d, want 50", result.Balance)
	}

	// Re-buying an owned title activates it without charging.
	result, err = session.Purchase(ctx, "premium")
	if err != nil {
		t.Fatalf("repeat Purchase() error = %v", err)
	}
	if !result.ActivatedOnly {
		t.Error("repeat purchase not reported as activation")
	}
	if result.Balance != 50 {
		t.Errorf("Balance after repeat purchase = %d, want 50", result.Balance)
	}

	if err := session.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if session.Authenticated() {
		t.Error("Authenticated() = true after logout")
	}
}

func Test_Session_SnapshotRoundTrip(t *testing.T) {
	session, _, _ := newTestSession(t)
	ctx := context.Background()

	if err := session.Register(ctx, "alice", "secret"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		session.handleTick(ctx)
	}
	if _, err := session.SendMessage(ctx, "hello"); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if _, err := session.Purchase(ctx, "premium"); err != nil {
		t.Fatalf("Purchase() error = %v", err)
	}

	before, _ := session.Snapshot()
	if err := session.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if err := session.Login(ctx, "alice", "secret"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	after, _ := session.Snapshot()

	if !reflect.DeepEqual(before, after) {
		t.Errorf("state changed across logout/login:\nbefore %+v\nafter  %+v", before, after)
	}
}

func Test_Session_AuthErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("NotAuthenticated", func(t *testing.T) {
		session, _, _ := newTestSession(t)

		if _, err := session.SendMessage(ctx, "hi"); !errors.Is(err, ErrNotAuthenticated) {
			t.Errorf("SendMessage() error = %v, want ErrNotAuthenticated", err)
		}
		if _, err := session.Purchase(ctx, "premium"); !errors.Is(err, ErrNotAuthenticated) {
			t.Errorf("Purchase() error = %v, want ErrNotAuthenticated", err)
		}
		if err := session.Activate(ctx, "starter"); !errors.Is(err, ErrNotAuthenticated) {
			t.Errorf("Activate() error = %v, want ErrNotAuthenticated", err)
		}
		if _, err := session.Snapshot(); !errors.Is(err, ErrNotAuthenticated) {
			t.Errorf("Snapshot() error = %v, want ErrNotAuthenticated", err)
		}
		if err := session.Logout(ctx); !errors.Is(err, ErrNotAuthenticated) {
			t.Errorf("Logout() error = %v, want ErrNotAuthenticated", err)
		}
	})

	t.Run("AlreadyAuthenticated", func(t *testing.T) {
		session, _, _ := newTestSession(t)
		if err := session.Register(ctx, "alice", "secret"); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if err := session.Register(ctx, "bob", "secret"); !errors.Is(err, ErrAlreadyAuthenticated) {
			t.Errorf("Register() while bound error = %v, want ErrAlreadyAuthenticated", err)
		}
		if err := session.Login(ctx, "alice", "secret"); !errors.Is(err, ErrAlreadyAuthenticated) {
			t.Errorf("Login() while bound error = %v, want ErrAlreadyAuthenticated", err)
		}
	})

	t.Run("DuplicateAccount", func(t *testing.T) {
		session, _, _ := newTestSession(t)
		if err := session.Register(ctx, "alice", "secret"); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if err := session.Logout(ctx); err != nil {
			t.Fatalf("Logout() error = %v", err)
		}
		if err := session.Register(ctx, "alice", "other"); !errors.Is(err, ErrDuplicateAccount) {
			t.Errorf("Register() error = %v, want ErrDuplicateAccount", err)
		}
	})

	t.Run("InvalidCredentials", func(t *testing.T) {
		session, _, _ := newTestSession(t)
		if err := session.Register(ctx, "alice", "secret"); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if err := session.Logout(ctx); err != nil {
			t.Fatalf("Logout() error = %v", err)
		}

		if err := session.Login(ctx, "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login() wrong credential error = %v, want ErrInvalidCredentials", err)
		}
		if err := session.Login(ctx, "nobody", "secret"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login() unknown name error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("Validation", func(t *testing.T) {
		session, _, _ := newTestSession(t)

		if err := session.Register(ctx, "  ", "secret"); !IsValidation(err) {
			t.Errorf("Register() blank name error = %v, want ValidationError", err)
		}
		if err := session.Register(ctx, "alice", ""); !IsValidation(err) {
			t.Errorf("Register() empty credential error = %v, want ValidationError", err)
		}

		if err := session.Register(ctx, "alice", "secret"); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if _, err := session.SendMessage(ctx, "   "); !IsValidation(err) {
			t.Errorf("SendMessage() blank body error = %v, want ValidationError", err)
		}
		if _, err := session.SendMessage(ctx, strings.Repeat("a", 2001)); !IsValidation(err) {
			t.Errorf("SendMessage() oversized body error = %v, want ValidationError", err)
		}
	})
}

func Test_Session_AdminCredit(t *testing.T) {
	ctx := context.Background()

	t.Run("PermissionDenied", func(t *testing.T) {
		session, _, _ := newTestSession(t)
		if err := session.Register(ctx, "alice", "secret"); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if _, err := session.CreditAdmin(ctx, 100); !errors.Is(err, ErrPermissionDenied) {
			t.Errorf("CreditAdmin() error = %v, want ErrPermissionDenied", err)
		}
	})

	t.Run("PrivilegedGrant", func(t *testing.T) {
		session, _, _ := newTestSession(t)
		if err := session.Register(ctx, "admin", "secret"); err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		// 100 + 100 reaches the first wealth objective; its reward
		// chains into the second.
		completed, err := session.CreditAdmin(ctx, 100)
		if err != nil {
			t.Fatalf("CreditAdmin() error = %v", err)
		}
		if len(completed) != 2 {
			t.Fatalf("completed = %v, want saver and tycoon", completed)
		}

		snapshot, _ := session.Snapshot()
		if snapshot.Balance != 330 {
			t.Errorf("Balance = %d, want 330", snapshot.Balance)
		}
		if !snapshot.Privileged {
			t.Error("Privileged = false for admin account")
		}
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		session, _, _ := newTestSession(t)
		if err := session.Register(ctx, "admin", "secret"); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if _, err := session.CreditAdmin(ctx, 0); !IsValidation(err) {
			t.Errorf("CreditAdmin(0) error = %v, want ValidationError", err)
		}
	})
}

func Test_Session_CopyTitle(t *testing.T) {
	session, _, _ := newTestSession(t)
	ctx := context.Background()

	if err := session.Register(ctx, "alice", "secret"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	label, err := session.CopyTitle("starter")
	if err != nil {
		t.Fatalf("CopyTitle(starter) error = %v", err)
	}
	if label != "[STARTER]" {
		t.Errorf("label = %q, want [STARTER]", label)
	}

	if _, err := session.CopyTitle("premium"); !errors.Is(err, economy.ErrNotOwned) {
		t.Errorf("CopyTitle(unowned) error = %v, want ErrNotOwned", err)
	}
	if _, err := session.CopyTitle("nope"); !errors.Is(err, economy.ErrUnknownUnlock) {
		t.Errorf("CopyTitle(unknown) error = %v, want ErrUnknownUnlock", err)
	}
}

func Test_Session_ChatLabelFrozen(t *testing.T) {
	session, _, _ := newTestSession(t)
	ctx := context.Background()

	if err := session.Register(ctx, "alice", "secret"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	first, err := session.SendMessage(ctx, "before upgrade")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if first.DisplayedAuthor != "[STARTER] alice" {
		t.Errorf("DisplayedAuthor = %q, want [STARTER] alice", first.DisplayedAuthor)
	}

	if _, err := session.Purchase(ctx, "premium"); err != nil {
		t.Fatalf("Purchase() error = %v", err)
	}
	second, err := session.SendMessage(ctx, "after upgrade")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if second.DisplayedAuthor != "[PREMIUM] alice" {
		t.Errorf("DisplayedAuthor = %q, want [PREMIUM] alice", second.DisplayedAuthor)
	}

	// The earlier entry keeps its original label.
	for _, entry := range session.chat.Entries() {
		if entry.ID == first.ID && entry.DisplayedAuthor != "[STARTER] alice" {
			t.Errorf("first entry label rewritten to %q", entry.DisplayedAuthor)
		}
	}
}

func Test_Session_InsufficientFunds(t *testing.T) {
	session, _, _ := newTestSession(t)
	ctx := context.Background()

	if err := session.Register(ctx, "alice", "secret"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := session.Purchase(ctx, "deluxe"); !economy.IsInsufficientFunds(err) {
		t.Errorf("Purchase() error = %v, want InsufficientFundsError", err)
	}

	snapshot, _ := session.Snapshot()
	if snapshot.Balance != 100 {
		t.Errorf("Balance = %d after rejected purchase, want 100", snapshot.Balance)
	}
	if snapshot.Owns("deluxe") {
		t.Error("Owns(deluxe) = true after rejected purchase")
	}
}

func Test_Session_LoginSettlesBalanceObjectives(t *testing.T) {
	session, store, _ := newTestSession(t)
	ctx := context.Background()

	if err := session.Register(ctx, "alice", "secret"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := session.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	// Raise the persisted balance past both wealth targets while the
	// account is offline.
	account, err := store.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	account.Balance = 250
	if err := store.Save(ctx, account); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := session.Login(ctx, "alice", "secret"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	snapshot, _ := session.Snapshot()
	if !snapshot.Objective("saver").Completed {
		t.Error("saver not completed at login")
	}
	if !snapshot.Objective("tycoon").Completed {
		t.Error("tycoon not completed at login")
	}
	// 250 + 30 + 100 from the chained rewards.
	if snapshot.Balance != 380 {
		t.Errorf("Balance = %d, want 380", snapshot.Balance)
	}
}

func Test_Session_LogoutStopsTicks(t *testing.T) {
	cat := testCatalog(t)
	store := repositories.NewMemoryStore()
	recorder := NewRecorder()
	ledger := economy.NewLedger(cat)
	tracker := NewTracker(cat, ledger, recorder)
	session := NewSessionManager(store, cat, ledger, tracker, NewChatFeed(), recorder, 100, 10*time.Millisecond)
	ctx := context.Background()

	if err := session.Register(ctx, "alice", "secret"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	if err := session.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	saved, err := store.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if saved.ElapsedSeconds == 0 {
		t.Error("ElapsedSeconds = 0, want ticks recorded before logout")
	}

	time.Sleep(100 * time.Millisecond)
	after, err := store.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if after.ElapsedSeconds != saved.ElapsedSeconds {
		t.Errorf("ElapsedSeconds advanced after logout: %d -> %d", saved.ElapsedSeconds, after.ElapsedSeconds)
	}
}
