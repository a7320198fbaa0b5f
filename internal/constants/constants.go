package constants

// Context keys set by middleware
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyTask      = "task"
)

// Validation bounds
const (
	MinNameLength        = 2
	MaxNameLength        = 50
	MinPasswordLength    = 6
	MinTitleLength       = 3
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

// Pagination
const (
	MinPage         = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Dashboard
const (
	DefaultRecentLimit = 10
	MaxRecentLimit     = 50
)

// BcryptCost is the default password hashing work factor.
const BcryptCost = 10
