package services

import (
	"testing"
	"time"

	"github.com/chickentitle/titlehall/titlehall/catalog"
	"github.com/chickentitle/titlehall/titlehall/database/repositories"
	"github.com/chickentitle/titlehall/titlehall/economy"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		[]catalog.Unlock{
			{ID: "starter", DisplayName: "[STARTER]", Price: 0, Rarity: catalog.RarityCommon},
			{ID: "premium", DisplayName: "[PREMIUM]", Price: 100, Rarity: catalog.RarityRare},
			{ID: "deluxe", DisplayName: "[DELUXE]", Price: 250, Rarity: catalog.RarityEpic},
		},
		[]catalog.ObjectiveTemplate{
			{ID: "presence", DisplayName: "Presence", Kind: catalog.KindElapsedTime, Target: 60, Reward: 50},
			{ID: "chatter", DisplayName: "Chatter", Kind: catalog.KindMessagesSent, Target: 3, Reward: 10},
			{ID: "collector", DisplayName: "Collector", Kind: catalog.KindUnlocksPurchased, Target: 3, Reward: 25},
			{ID: "saver", DisplayName: "Saver", Kind: catalog.KindBalanceReached, Target: 200, Reward: 30},
			{ID: "tycoon", DisplayName: "Tycoon", Kind: catalog.KindBalanceReached, Target: 230, Reward: 100},
		},
	)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	return c
}

func newTestTracker(t *testing.T) (*Tracker, *catalog.Catalog, *Recorder) {
	t.Helper()
	cat := testCatalog(t)
	recorder := NewRecorder()
	tracker := NewTracker(cat, economy.NewLedger(cat), recorder)
	return tracker, cat, recorder
}

// newTestSession returns a manager whose ticker effectively never
// fires; tests drive time explicitly through handleTick.
func newTestSession(t *testing.T) (*SessionManager, *repositories.MemoryStore, *Recorder) {
	t.Helper()
	cat := testCatalog(t)
	store := repositories.NewMemoryStore()
	recorder := NewRecorder()
	ledger := economy.NewLedger(cat)
	tracker := NewTracker(cat, ledger, recorder)
	session := NewSessionManager(store, cat, ledger, tracker, NewChatFeed(), recorder, 100, time.Hour)
	return session, store, recorder
}
