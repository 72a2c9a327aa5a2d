package catalog

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Rarity constants
const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// Objective kind constants
const (
	KindElapsedTime      = "elapsed_time"
	KindMessagesSent     = "messages_sent"
	KindUnlocksPurchased = "unlocks_purchased"
	KindBalanceReached   = "balance_reached"
)

// Unlock is a purchasable cosmetic title. Immutable after load.
type Unlock struct {
	ID          string `toml:"id" json:"id"`
	DisplayName string `toml:"display_name" json:"display_name"`
	Price       int64  `toml:"price" json:"price"`
	Rarity      string `toml:"rarity" json:"rarity"`
	Description string `toml:"description" json:"description"`
}

// ObjectiveTemplate is a tracked goal definition. Immutable after load.
type ObjectiveTemplate struct {
	ID          string `toml:"id" json:"id"`
	DisplayName string `toml:"display_name" json:"display_name"`
	Description string `toml:"description" json:"description"`
	Kind        string `toml:"kind" json:"kind"`
	Target      int64  `toml:"target" json:"target"`
	Reward      int64  `toml:"reward" json:"reward"`
}

// Catalog holds the fixed reference data the whole process runs on.
// Built once at startup and never mutated afterwards.
type Catalog struct {
	unlocks    []Unlock
	objectives []ObjectiveTemplate

	unlockByID    map[string]*Unlock
	objectiveByID map[string]*ObjectiveTemplate
	defaultUnlock string
}

type catalogFile struct {
	Unlocks    []Unlock            `toml:"unlocks"`
	Objectives []ObjectiveTemplate `toml:"objectives"`
}

// New builds a catalog from explicit slices, validating the invariants
// the rest of the system relies on.
func New(unlocks []Unlock, objectives []ObjectiveTemplate) (*Catalog, error) {
	c := &Catalog{
		unlocks:       unlocks,
		objectives:    objectives,
		unlockByID:    make(map[string]*Unlock, len(unlocks)),
		objectiveByID: make(map[string]*ObjectiveTemplate, len(objectives)),
	}

	for i := range c.unlocks {
		u := &c.unlocks[i]
		if u.ID == "" {
			return nil, fmt.Errorf("unlock %d: missing id", i)
		}
		if _, dup := c.unlockByID[u.ID]; dup {
			return nil, fmt.Errorf("unlock %q: duplicate id", u.ID)
		}
		if u.Price < 0 {
			return nil, fmt.Errorf("unlock %q: negative price %d", u.ID, u.Price)
		}
		switch u.Rarity {
		case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		default:
			return nil, fmt.Errorf("unlock %q: unknown rarity %q", u.ID, u.Rarity)
		}
		if u.Price == 0 {
			if c.defaultUnlock != "" {
				return nil, fmt.Errorf("unlock %q: second zero-price unlock (default is %q)", u.ID, c.defaultUnlock)
			}
			c.defaultUnlock = u.ID
		}
		c.unlockByID[u.ID] = u
	}
	if c.defaultUnlock == "" {
		return nil, fmt.Errorf("catalog has no zero-price default unlock")
	}

	for i := range c.objectives {
		o := &c.objectives[i]
		if o.ID == "" {
			return nil, fmt.Errorf("objective %d: missing id", i)
		}
		if _, dup := c.objectiveByID[o.ID]; dup {
			return nil, fmt.Errorf("objective %q: duplicate id", o.ID)
		}
		switch o.Kind {
		case KindElapsedTime, KindMessagesSent, KindUnlocksPurchased, KindBalanceReached:
		default:
			return nil, fmt.Errorf("objective %q: unknown kind %q", o.ID, o.Kind)
		}
		if o.Target <= 0 {
			return nil, fmt.Errorf("objective %q: non-positive target %d", o.ID, o.Target)
		}
		if o.Reward <= 0 {
			return nil, fmt.Errorf("objective %q: non-positive reward %d", o.ID, o.Reward)
		}
		c.objectiveByID[o.ID] = o
	}

	return c, nil
}

// Load reads a full catalog from a TOML file, replacing the builtin.
func Load(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer file.Close()

	var cf catalogFile
	if err := toml.NewDecoder(file).Decode(&cf); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	return New(cf.Unlocks, cf.Objectives)
}

// Unlock returns the unlock with the given id, or nil.
func (c *Catalog) Unlock(id string) *Unlock {
	return c.unlockByID[id]
}

// Objective returns the objective template with the given id, or nil.
func (c *Catalog) Objective(id string) *ObjectiveTemplate {
	return c.objectiveByID[id]
}

// Unlocks returns all unlocks in catalog order.
func (c *Catalog) Unlocks() []Unlock {
	return c.unlocks
}

// Objectives returns all objective templates in catalog order.
func (c *Catalog) Objectives() []ObjectiveTemplate {
	return c.objectives
}

// DefaultUnlockID returns the id of the zero-price unlock every account owns.
func (c *Catalog) DefaultUnlockID() string {
	return c.defaultUnlock
}
