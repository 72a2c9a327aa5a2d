package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ObjectiveState is the per-account progress of one catalog objective.
// Once Completed flips true the entry is frozen: progress stays
// clamped at the target and the reward has been credited exactly once.
type ObjectiveState struct {
	TemplateID      string     `json:"template_id"`
	CurrentProgress int64      `json:"current_progress"`
	Completed       bool       `json:"completed"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:a"`

	ID         int64  `bun:"id,pk,autoincrement" json:"-"`
	Name       string `bun:"name,notnull,unique" json:"name"`
	Credential string `bun:"credential,notnull" json:"-"`

	Balance      int64    `bun:"balance,notnull,default:0" json:"balance"`
	OwnedUnlocks []string `bun:"owned_unlocks,type:jsonb" json:"owned_unlocks"`
	ActiveUnlock string   `bun:"active_unlock" json:"active_unlock"`

	ElapsedSeconds int64 `bun:"elapsed_seconds,notnull,default:0" json:"elapsed_seconds"`
	MessagesSent   int64 `bun:"messages_sent,notnull,default:0" json:"messages_sent"`
	Privileged     bool  `bun:"privileged,notnull,default:false" json:"privileged"`

	Objectives map[string]*ObjectiveState `bun:"objectives,type:jsonb" json:"objectives"`

	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// Owns reports whether the account owns the given unlock.
func (a *Account) Owns(unlockID string) bool {
	for _, id := range a.OwnedUnlocks {
		if id == unlockID {
			return true
		}
	}
	return false
}

// Objective returns the state for the given template, or nil.
func (a *Account) Objective(templateID string) *ObjectiveState {
	return a.Objectives[templateID]
}

// Clone returns a deep copy. Used by the memory store and by
// snapshots handed to renderers, so callers can never alias live
// session state.
func (a *Account) Clone() *Account {
	cp := *a
	cp.OwnedUnlocks = append([]string(nil), a.OwnedUnlocks...)
	cp.Objectives = make(map[string]*ObjectiveState, len(a.Objectives))
	for id, st := range a.Objectives {
		stCopy := *st
		if st.CompletedAt != nil {
			t := *st.CompletedAt
			stCopy.CompletedAt = &t
		}
		cp.Objectives[id] = &stCopy
	}
	return &cp
}
