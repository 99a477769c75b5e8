package tasks

import "time"

// Task Types
const (
	// TaskTypeOffersRefresh recomputes stored offer statuses from dates.
	TaskTypeOffersRefresh = "offers:refresh"
	// TaskTypeTokensCleanup purges expired and revoked refresh tokens.
	TaskTypeTokensCleanup = "tokens:cleanup"
	// TaskTypeContactNotify notifies staff about a new contact message.
	TaskTypeContactNotify = "contact:notify"
)

// Task Queues
const (
	QueueCritical = "critical" // For time-sensitive tasks like contact notifications
	QueueDefault  = "default"  // For regular tasks
	QueueLow      = "low"      // For background tasks like cleanup
)

// Task Priorities (1-10, higher is more important)
const (
	PriorityCritical = 10
	PriorityNormal   = 5
	PriorityLow      = 3
)

// Task Timeouts
const (
	TimeoutShort  = 1 * time.Minute
	TimeoutMedium = 5 * time.Minute
)

// Task Retry Settings
const (
	RetryMax     = 5
	RetryDefault = 3
)
