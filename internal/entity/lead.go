package entity

import (
	"context"
	"time"
)

// Pipeline stages a lead moves through.
const (
	StageNew           = "NEW"
	StageContacted     = "CONTACTED"
	StageDemoScheduled = "DEMO_SCHEDULED"
	StageWon           = "WON"
	StageLost          = "LOST"
)

type Lead struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	SchoolName string    `json:"school_name,omitempty"`
	Address    string    `json:"address,omitempty"`
	Stage      string    `json:"stage"` // NEW, CONTACTED, DEMO_SCHEDULED, WON, LOST
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type LeadRepositoryInterface interface {
	Upsert(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	UpdateStage(ctx context.Context, id, stage string) error
	ListByStage(ctx context.Context, stage string) ([]*Lead, error)
}
