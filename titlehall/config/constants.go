package config

import "time"

// Application-wide constants organized by domain

// Economy constants
const (
	// Currency granted to every freshly registered account.
	StartingGrant = 100

	// Account name that receives administrative privileges at creation.
	PrivilegedAccountName = "admin"
)

// Signal scheduling constants
const (
	// Interval of the elapsed-time signal while a session is bound.
	TickInterval = 1 * time.Second

	// How often the bound account is flushed in the background.
	DefaultAutosaveInterval = 30 * time.Second
)

// Database and performance constants
const (
	DefaultQueryTimeout = 30 * time.Second
	NetworkDialTimeout  = 5 * time.Second

	// Account read cache
	AccountCacheSize = 1024
)

// Chat constants
const (
	// Entries kept in the in-memory feed before the oldest are dropped.
	ChatFeedLimit = 500

	MaxChatBodyLength = 2000
)
