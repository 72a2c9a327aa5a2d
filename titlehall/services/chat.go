package services

import (
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/chickentitle/titlehall/titlehall/config"
	"github.com/chickentitle/titlehall/titlehall/database/models"
)

// ChatFeed is the append-only message log. Entries keep the author
// label that was active when the message was sent: activating a new
// title later never rewrites history.
type ChatFeed struct {
	mu      sync.RWMutex
	entries []models.ChatEntry
	limit   int
	lastID  snowflake.ID
}

// NewChatFeed creates a feed seeded with the system welcome message.
func NewChatFeed() *ChatFeed {
	feed := &ChatFeed{limit: config.ChatFeedLimit}
	feed.Append("system", "System", "Welcome to the chat! Complete quests to earn coins and buy titles.")
	return feed
}

// Append adds an entry and returns it. displayedAuthor is the frozen
// label, already derived from the author's active title at send time.
func (f *ChatFeed) Append(author, displayedAuthor, body string) models.ChatEntry {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := snowflake.New(time.Now())
	// Snowflakes have millisecond resolution; bump to keep ids strictly
	// increasing when two messages land in the same millisecond.
	if id <= f.lastID {
		id = f.lastID + 1
	}
	f.lastID = id

	entry := models.ChatEntry{
		ID:              id,
		Author:          author,
		DisplayedAuthor: displayedAuthor,
		Body:            body,
		SentAt:          time.Now(),
	}
	f.entries = append(f.entries, entry)
	if len(f.entries) > f.limit {
		f.entries = f.entries[len(f.entries)-f.limit:]
	}
	return entry
}

// Entries returns a copy of the feed in send order.
func (f *ChatFeed) Entries() []models.ChatEntry {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]models.ChatEntry(nil), f.entries...)
}

// EntriesSince returns entries with ids strictly greater than afterID,
// for incremental polling.
func (f *ChatFeed) EntriesSince(afterID snowflake.ID) []models.ChatEntry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var out []models.ChatEntry
	for _, entry := range f.entries {
		if entry.ID > afterID {
			out = append(out, entry)
		}
	}
	return out
}

// Len returns the number of retained entries.
func (f *ChatFeed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entries)
}
