package entity

import "context"

// Agent is the user responsible for following up with a lead.
type Agent struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type AgentRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*Agent, error)
}
