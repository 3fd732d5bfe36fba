package entity

import (
	"context"
	"time"
)

// MessageTemplate holds the reusable bodies for the two outbound channels.
// An empty EmailHTML means "do not send email"; an empty WhatsAppText means
// "do not send WhatsApp". Both empty means the template dispatches nothing.
type MessageTemplate struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Subject      string    `json:"subject,omitempty"`
	EmailHTML    string    `json:"email_html,omitempty"`
	WhatsAppText string    `json:"whatsapp_text,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (t *MessageTemplate) HasEmail() bool {
	return t.EmailHTML != ""
}

func (t *MessageTemplate) HasWhatsApp() bool {
	return t.WhatsAppText != ""
}

type TemplateRepositoryInterface interface {
	Create(ctx context.Context, tpl *MessageTemplate) error
	FindByID(ctx context.Context, id string) (*MessageTemplate, error)
	List(ctx context.Context) ([]*MessageTemplate, error)
}
