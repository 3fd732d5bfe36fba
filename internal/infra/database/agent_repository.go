package database

import (
	"context"
	"database/sql"

	"github.com/kelechv1/edulead-crm/internal/entity"
)

type AgentRepository struct {
	DB *sql.DB
}

func NewAgentRepository(db *sql.DB) *AgentRepository {
	return &AgentRepository{DB: db}
}

func (r *AgentRepository) FindByID(ctx context.Context, id string) (*entity.Agent, error) {
	query := `
		SELECT id, name, COALESCE(email, ''), COALESCE(phone, '')
		FROM agents
		WHERE id = $1
	`

	var agent entity.Agent
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&agent.ID,
		&agent.Name,
		&agent.Email,
		&agent.Phone,
	)
	if err != nil {
		return nil, err
	}

	return &agent, nil
}
