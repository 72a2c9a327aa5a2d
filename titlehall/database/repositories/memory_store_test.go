package repositories

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/chickentitle/titlehall/titlehall/database/models"
)

func sampleAccount() *models.Account {
	completedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &models.Account{
		Name:           "alice",
		Credential:     "secret",
		Balance:        150,
		OwnedUnlocks:   []string{"starter", "premium"},
		ActiveUnlock:   "premium",
		ElapsedSeconds: 60,
		MessagesSent:   4,
		Objectives: map[string]*models.ObjectiveState{
			"presence": {TemplateID: "presence", CurrentProgress: 60, Completed: true, CompletedAt: &completedAt},
			"chatter":  {TemplateID: "chatter", CurrentProgress: 4},
		},
	}
}

func Test_MemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	original := sampleAccount()
	if err := store.Save(ctx, original); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(original, loaded) {
		t.Errorf("round trip mismatch:\nsaved  %+v\nloaded %+v", original, loaded)
	}
}

func Test_MemoryStore_Isolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, sampleAccount()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, _ := store.Load(ctx, "alice")
	loaded.Balance = 9999
	loaded.Objectives["chatter"].CurrentProgress = 9999

	reloaded, _ := store.Load(ctx, "alice")
	if reloaded.Balance != 150 {
		t.Errorf("Balance = %d, store shares state with caller", reloaded.Balance)
	}
	if reloaded.Objectives["chatter"].CurrentProgress != 4 {
		t.Error("objective state shared between store and caller")
	}
}

func Test_MemoryStore_NotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Load(context.Background(), "nobody")
	if !IsNotFound(err) {
		t.Errorf("Load() error = %v, want NotFoundError", err)
	}
}

func Test_MemoryStore_Exists(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	exists, err := store.Exists(ctx, "alice")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Error("Exists() = true for missing account")
	}

	if err := store.Save(ctx, sampleAccount()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	exists, _ = store.Exists(ctx, "alice")
	if !exists {
		t.Error("Exists() = false after Save")
	}
}

func Test_MemoryStore_SaveReplaces(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := sampleAccount()
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	second := sampleAccount()
	second.Balance = 75
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, _ := store.Load(ctx, "alice")
	if loaded.Balance != 75 {
		t.Errorf("Balance = %d, want replacement snapshot's 75", loaded.Balance)
	}
}
