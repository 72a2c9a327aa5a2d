package services

import (
	"fmt"
	"time"

	"github.com/chickentitle/titlehall/titlehall/catalog"
	"github.com/chickentitle/titlehall/titlehall/database/models"
	"github.com/chickentitle/titlehall/titlehall/economy"
)

// Tracker turns gameplay signals into objective progress and pays out
// rewards. Every handler mutates the account synchronously: when a
// handler returns, all progress updates and reward credits it caused
// are visible on the account. Completion is one-way and pays exactly
// once, guarded by the per-objective Completed flag.
//
// Since rewards raise the balance, every handler that can credit ends
// by re-evaluating balance objectives until no further completion
// fires, so reward money counts toward wealth goals immediately.
type Tracker struct {
	catalog  *catalog.Catalog
	ledger   *economy.Ledger
	notifier Notifier
}

func NewTracker(cat *catalog.Catalog, ledger *economy.Ledger, notifier Notifier) *Tracker {
	return &Tracker{
		catalog:  cat,
		ledger:   ledger,
		notifier: notifier,
	}
}

// OnTick advances presence time by one second and updates time objectives.
func (t *Tracker) OnTick(account *models.Account) []CompletionInfo {
	account.ElapsedSeconds++
	completed := t.advance(account, catalog.KindElapsedTime, account.ElapsedSeconds)
	return t.settleBalance(account, completed)
}

// OnMessageSent records one sent chat message and updates chat objectives.
func (t *Tracker) OnMessageSent(account *models.Account) []CompletionInfo {
	account.MessagesSent++
	completed := t.advance(account, catalog.KindMessagesSent, account.MessagesSent)
	return t.settleBalance(account, completed)
}

// OnUnlockPurchased updates purchase-count objectives from the
// ownership count the ledger reported, then re-evaluates balance
// objectives, which also picks up the price debit.
func (t *Tracker) OnUnlockPurchased(account *models.Account, ownedCount int) []CompletionInfo {
	completed := t.advance(account, catalog.KindUnlocksPurchased, int64(ownedCount))
	return t.settleBalance(account, completed)
}

// OnBalanceObserved re-evaluates balance objectives against the current
// balance. Called after any balance mutation outside the other
// handlers, such as admin credits, and at login for objectives the
// persisted balance already satisfies.
func (t *Tracker) OnBalanceObserved(account *models.Account) []CompletionInfo {
	return t.settleBalance(account, nil)
}

// advance writes the metric value into every non-completed objective of
// the given kind, clamped to the target, and completes those that
// reached it. Completed entries are never touched again.
func (t *Tracker) advance(account *models.Account, kind string, metric int64) []CompletionInfo {
	var completed []CompletionInfo
	for _, tpl := range t.catalog.Objectives() {
		if tpl.Kind != kind {
			continue
		}
		state := account.Objectives[tpl.ID]
		if state == nil {
			state = &models.ObjectiveState{TemplateID: tpl.ID}
			account.Objectives[tpl.ID] = state
		}
		if state.Completed {
			continue
		}

		progress := metric
		if progress > tpl.Target {
			progress = tpl.Target
		}
		if progress < 0 {
			progress = 0
		}
		state.CurrentProgress = progress

		if progress >= tpl.Target {
			completed = append(completed, t.complete(account, tpl, state))
		}
	}
	return completed
}

func (t *Tracker) complete(account *models.Account, tpl catalog.ObjectiveTemplate, state *models.ObjectiveState) CompletionInfo {
	now := time.Now()
	state.Completed = true
	state.CompletedAt = &now
	// Reward payout is part of the same transition as the flag flip, so
	// no interleaving can pay twice or complete without paying.
	_ = t.ledger.Credit(account, tpl.Reward)

	info := CompletionInfo{
		ObjectiveID: tpl.ID,
		DisplayName: tpl.DisplayName,
		Reward:      tpl.Reward,
	}
	t.notifier.Notify(Notification{
		Kind:      NotifyInfo,
		Title:     "Quest completed",
		Detail:    fmt.Sprintf("%s rewarded %d coins", tpl.DisplayName, tpl.Reward),
		Objective: &info,
	})
	return info
}

// settleBalance folds balance objectives to a fixpoint: each pass
// evaluates them against the current balance, and since completing one
// credits its reward, passes repeat until no new completion fires.
// Terminates because each pass either completes at least one of the
// finitely many objectives or stops.
func (t *Tracker) settleBalance(account *models.Account, completed []CompletionInfo) []CompletionInfo {
	for {
		more := t.advance(account, catalog.KindBalanceReached, account.Balance)
		completed = append(completed, more...)
		if len(more) == 0 {
			return completed
		}
	}
}
