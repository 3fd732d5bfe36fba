package database

import (
	"context"
	"database/sql"

	"github.com/kelechv1/edulead-crm/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (email, name, phone, school_name, address, stage, updated_at)
		VALUES ($1, $2, $3, $4, $5, 'NEW', NOW())
		ON CONFLICT (email)
		DO UPDATE SET
			name = COALESCE(EXCLUDED.name, leads.name),
			phone = COALESCE(EXCLUDED.phone, leads.phone),
			school_name = COALESCE(EXCLUDED.school_name, leads.school_name),
			address = COALESCE(EXCLUDED.address, leads.address),
			updated_at = NOW()
		RETURNING id, stage, created_at, updated_at
	`

	err := r.DB.QueryRowContext(
		ctx,
		query,
		lead.Email,
		nullString(lead.Name),
		nullString(lead.Phone),
		nullString(lead.SchoolName),
		nullString(lead.Address),
	).Scan(
		&lead.ID,
		&lead.Stage,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)

	return err
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `
		SELECT id, COALESCE(name, ''), COALESCE(email, ''), COALESCE(phone, ''),
		       COALESCE(school_name, ''), COALESCE(address, ''), stage, created_at, updated_at
		FROM leads
		WHERE id = $1
	`

	var lead entity.Lead
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.SchoolName,
		&lead.Address,
		&lead.Stage,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &lead, nil
}

func (r *LeadRepository) UpdateStage(ctx context.Context, id, stage string) error {
	query := `
		UPDATE leads
		SET stage = $2, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.DB.ExecContext(ctx, query, id, stage)
	return err
}

func (r *LeadRepository) ListByStage(ctx context.Context, stage string) ([]*entity.Lead, error) {
	query := `
		SELECT id, COALESCE(name, ''), COALESCE(email, ''), COALESCE(phone, ''),
		       COALESCE(school_name, ''), COALESCE(address, ''), stage, created_at, updated_at
		FROM leads
		WHERE stage = $1
		ORDER BY created_at
	`

	rows, err := r.DB.QueryContext(ctx, query, stage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		var lead entity.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.Name,
			&lead.Email,
			&lead.Phone,
			&lead.SchoolName,
			&lead.Address,
			&lead.Stage,
			&lead.CreatedAt,
			&lead.UpdatedAt,
		); err != nil {
			return nil, err
		}
		leads = append(leads, &lead)
	}

	return leads, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
