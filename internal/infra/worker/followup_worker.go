package worker

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/kelechv1/edulead-crm/internal/infra/http/middleware"
)

// FollowupWorker flags leads that sat in NEW with no history activity for the
// stale window, adding one followup-due note per lead. The note itself counts
// as activity, so a flagged lead is not flagged again until the window passes.
type FollowupWorker struct {
	db           *sql.DB
	staleWindow  time.Duration
	tickInterval time.Duration
}

func NewFollowupWorker(db *sql.DB) *FollowupWorker {
	return &FollowupWorker{
		db:           db,
		staleWindow:  72 * time.Hour,
		tickInterval: 1 * time.Hour,
	}
}

func (w *FollowupWorker) Start(ctx context.Context) {
	log.Println("🕒 Followup Worker started (72h stale window)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.flagStaleLeads(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Followup Worker stopped")
			return
		case <-ticker.C:
			w.flagStaleLeads(ctx)
		}
	}
}

func (w *FollowupWorker) flagStaleLeads(ctx context.Context) {
	query := `
		INSERT INTO lead_history (lead_id, type, note, created_at)
		SELECT l.id, 'note', 'followup due: no activity for 3 days', NOW()
		FROM leads l
		WHERE l.stage = 'NEW'
		  AND l.created_at < NOW() - INTERVAL '72 hours'
		  AND NOT EXISTS (
			SELECT 1 FROM lead_history h
			WHERE h.lead_id = l.id
			  AND h.created_at > NOW() - INTERVAL '72 hours'
		  )
		RETURNING lead_id
	`

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Followup: failed to flag stale leads: %v", err)
		return
	}
	defer rows.Close()

	flagged := 0
	for rows.Next() {
		var leadID string
		if err := rows.Scan(&leadID); err != nil {
			log.Printf("⚠️ Followup: failed to scan flagged lead: %v", err)
			continue
		}

		middleware.RecordStaleLeadFlagged()
		log.Printf("⏱️ Followup due: lead=%s", leadID)
		flagged++
	}

	if flagged > 0 {
		log.Printf("✅ %d lead(s) flagged for followup", flagged)
	}
}
