package services

import (
	"fmt"
	"testing"
)

func Test_ChatFeed_Welcome(t *testing.T) {
	feed := NewChatFeed()

	entries := feed.Entries()
	if len(entries) != 1 {
		t.Fatalf("new feed has %d entries, want 1", len(entries))
	}
	if entries[0].Author != "system" {
		t.Errorf("welcome author = %q, want system", entries[0].Author)
	}
}

func Test_ChatFeed_OrderAndIDs(t *testing.T) {
	feed := NewChatFeed()

	for i := 0; i < 20; i++ {
		feed.Append("alice", "[STARTER] alice", fmt.Sprintf("message %d", i))
	}

	entries := feed.Entries()
	if len(entries) != 21 {
		t.Fatalf("len(entries) = %d, want 21", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].ID <= entries[i-1].ID {
			t.Fatalf("ids not strictly increasing at %d: %d <= %d", i, entries[i].ID, entries[i-1].ID)
		}
	}
}

func Test_ChatFeed_FrozenAuthorLabel(t *testing.T) {
	feed := NewChatFeed()

	first := feed.Append("alice", "[STARTER] alice", "hello")
	feed.Append("alice", "[PREMIUM] alice", "upgraded")

	entries := feed.Entries()
	for _, entry := range entries {
		if entry.ID == first.ID && entry.DisplayedAuthor != "[STARTER] alice" {
			t.Errorf("first entry label = %q, want frozen [STARTER] alice", entry.DisplayedAuthor)
		}
	}
}

func Test_ChatFeed_EntriesSince(t *testing.T) {
	feed := NewChatFeed()

	a := feed.Append("alice", "alice", "one")
	b := feed.Append("alice", "alice", "two")

	since := feed.EntriesSince(a.ID)
	if len(since) != 1 || since[0].ID != b.ID {
		t.Errorf("EntriesSince() = %v, want just the second entry", since)
	}
	if got := feed.EntriesSince(b.ID); len(got) != 0 {
		t.Errorf("EntriesSince(latest) = %v, want empty", got)
	}
}

func Test_ChatFeed_Cap(t *testing.T) {
	feed := &ChatFeed{limit: 3}

	for i := 0; i < 5; i++ {
		feed.Append("alice", "alice", fmt.Sprintf("message %d", i))
	}

	entries := feed.Entries()
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	if entries[0].Body != "message 2" {
		t.Errorf("oldest retained = %q, want message 2", entries[0].Body)
	}
}

func Test_ChatFeed_EntriesIsCopy(t *testing.T) {
	feed := NewChatFeed()
	feed.Append("alice", "alice", "original")

	entries := feed.Entries()
	entries[1].Body = "mutated"

	if feed.Entries()[1].Body != "original" {
		t.Error("mutating the returned slice changed the feed")
	}
}
