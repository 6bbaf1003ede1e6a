package broker

type EventType string

const (
	// Standardized event types in format: <resource>.<action>
	UserCreated  EventType = "user.created"
	UserLoggedIn EventType = "user.logged_in"

	TaskCreated EventType = "task.created"
	TaskUpdated EventType = "task.updated"
	TaskDeleted EventType = "task.deleted"
)
