package models

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// ChatEntry is one message in the shared feed. DisplayedAuthor is
// frozen at send time; activating a different title later never
// rewrites history.
type ChatEntry struct {
	ID              snowflake.ID `json:"id"`
	Author          string       `json:"author"`
	DisplayedAuthor string       `json:"displayed_author"`
	Body            string       `json:"body"`
	SentAt          time.Time    `json:"sent_at"`
}
