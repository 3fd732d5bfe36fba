package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/kelechv1/edulead-crm/internal/entity"
)

type TemplateRepository struct {
	DB *sql.DB
}

func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{DB: db}
}

func (r *TemplateRepository) Create(ctx context.Context, tpl *entity.MessageTemplate) error {
	if tpl.ID == "" {
		tpl.ID = uuid.New().String()
	}
	tpl.CreatedAt = time.Now()

	query := `
		INSERT INTO message_templates (id, name, subject, email_html, whatsapp_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		tpl.ID,
		tpl.Name,
		nullString(tpl.Subject),
		nullString(tpl.EmailHTML),
		nullString(tpl.WhatsAppText),
		tpl.CreatedAt,
	)

	return err
}

func (r *TemplateRepository) FindByID(ctx context.Context, id string) (*entity.MessageTemplate, error) {
	query := `
		SELECT id, name, COALESCE(subject, ''), COALESCE(email_html, ''),
		       COALESCE(whatsapp_text, ''), created_at
		FROM message_templates
		WHERE id = $1
	`

	var tpl entity.MessageTemplate
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&tpl.ID,
		&tpl.Name,
		&tpl.Subject,
		&tpl.EmailHTML,
		&tpl.WhatsAppText,
		&tpl.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &tpl, nil
}

func (r *TemplateRepository) List(ctx context.Context) ([]*entity.MessageTemplate, error) {
	query := `
		SELECT id, name, COALESCE(subject, ''), COALESCE(email_html, ''),
		       COALESCE(whatsapp_text, ''), created_at
		FROM message_templates
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*entity.MessageTemplate
	for rows.Next() {
		var tpl entity.MessageTemplate
		if err := rows.Scan(
			&tpl.ID,
			&tpl.Name,
			&tpl.Subject,
			&tpl.EmailHTML,
			&tpl.WhatsAppText,
			&tpl.CreatedAt,
		); err != nil {
			return nil, err
		}
		templates = append(templates, &tpl)
	}

	return templates, rows.Err()
}
