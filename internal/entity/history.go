package entity

import (
	"context"
	"time"
)

// History entry kinds.
const (
	HistoryTypeAction = "action"
	HistoryTypeNote   = "note"

	ActionTypeEmail    = "Email"
	ActionTypeWhatsApp = "WhatsApp"
)

// HistoryEntry is an immutable audit record of something that happened to a
// lead. UserID is nil when the action had no acting user; it is never the
// empty string (the users FK rejects it).
type HistoryEntry struct {
	ID         string    `json:"id"`
	LeadID     string    `json:"lead_id"`
	Type       string    `json:"type"` // action, note
	ActionType string    `json:"action_type,omitempty"`
	Note       string    `json:"note"`
	UserID     *string   `json:"user_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type HistoryRepositoryInterface interface {
	CreateHistoryEntry(ctx context.Context, leadID, entryType, actionType, note string, userID *string) error
	CreateNote(ctx context.Context, leadID, content string, userID *string) error
	ListByLead(ctx context.Context, leadID string) ([]*HistoryEntry, error)
}
