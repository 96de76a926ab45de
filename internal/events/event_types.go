package events

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIssueCreated  EventType = "issue_created"
	EventIssueUpdated  EventType = "issue_updated"
	EventIssueResolved EventType = "issue_resolved"
	EventIssueDeleted  EventType = "issue_deleted"
	EventUserPromoted  EventType = "user_promoted"
	EventUserDeleted   EventType = "user_deleted"
)

// Event represents a domain event emitted by services. ActorID is the
// id of the user whose request caused the event.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// IssueCreatedPayload payload.
type IssueCreatedPayload struct {
	IssueID string           `json:"issue_id"`
	OwnerID string           `json:"owner_id"`
	Type    domain.IssueType `json:"type"`
	Title   string           `json:"title"`
}

// IssueUpdatedPayload lists the fields a patch changed.
type IssueUpdatedPayload struct {
	IssueID string   `json:"issue_id"`
	Fields  []string `json:"fields"`
}

// IssueResolvedPayload payload.
type IssueResolvedPayload struct {
	IssueID string `json:"issue_id"`
}

// IssueDeletedPayload payload.
type IssueDeletedPayload struct {
	IssueID string `json:"issue_id"`
	OwnerID string `json:"owner_id"`
}

// UserPromotedPayload payload.
type UserPromotedPayload struct {
	UserID string `json:"user_id"`
}

// UserDeletedPayload payload. IssueCount is the number of issues
// removed by the cascade.
type UserDeletedPayload struct {
	UserID     string `json:"user_id"`
	IssueCount int    `json:"issue_count"`
}
