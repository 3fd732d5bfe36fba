package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/kelechv1/edulead-crm/internal/entity"
)

type HistoryRepository struct {
	DB *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{DB: db}
}

// CreateHistoryEntry appends one audit row. userID is stored as NULL when nil
// or blank; lead_history.user_id carries a FK that rejects empty strings.
func (r *HistoryRepository) CreateHistoryEntry(ctx context.Context, leadID, entryType, actionType, note string, userID *string) error {
	query := `
		INSERT INTO lead_history (lead_id, type, action_type, note, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		leadID,
		entryType,
		nullString(actionType),
		note,
		normalizedUserID(userID),
	)

	return err
}

func (r *HistoryRepository) CreateNote(ctx context.Context, leadID, content string, userID *string) error {
	query := `
		INSERT INTO lead_history (lead_id, type, note, user_id, created_at)
		VALUES ($1, 'note', $2, $3, NOW())
	`

	_, err := r.DB.ExecContext(ctx, query, leadID, content, normalizedUserID(userID))
	return err
}

func (r *HistoryRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.HistoryEntry, error) {
	query := `
		SELECT id, lead_id, type, COALESCE(action_type, ''), note, user_id, created_at
		FROM lead_history
		WHERE lead_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*entity.HistoryEntry
	for rows.Next() {
		var entry entity.HistoryEntry
		var userID sql.NullString
		if err := rows.Scan(
			&entry.ID,
			&entry.LeadID,
			&entry.Type,
			&entry.ActionType,
			&entry.Note,
			&userID,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		if userID.Valid {
			entry.UserID = &userID.String
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// Second line of defense behind the use case: a blank pointer still becomes
// NULL at the SQL boundary.
func normalizedUserID(userID *string) *string {
	if userID == nil || strings.TrimSpace(*userID) == "" {
		return nil
	}
	return userID
}
