package usecase

import (
	"context"

	"github.com/kelechv1/edulead-crm/internal/entity"
	"github.com/kelechv1/edulead-crm/internal/infra/integration/whatsapp"
	"github.com/kelechv1/edulead-crm/internal/infra/mail"
)

type EmailService interface {
	Send(msg mail.Message) error
}

// WhatsAppService reports delivery through a tagged result, never through an
// error return: transport and API failures land in SendResult.Error.
type WhatsAppService interface {
	Send(ctx context.Context, to, text, mediaURL string) whatsapp.SendResult
}

// HistoryRecorder is the persistence collaborator for the audit trail. Writes
// are independent; a failed write is an infrastructure fault, not a channel
// outcome.
type HistoryRecorder interface {
	CreateHistoryEntry(ctx context.Context, leadID, entryType, actionType, note string, userID *string) error
	CreateNote(ctx context.Context, leadID, content string, userID *string) error
}

// DispatchInput is everything one dispatch call consumes. Agent is optional.
// FromStage/ToStage trigger a transition note when both are set and differ.
type DispatchInput struct {
	Lead      *entity.Lead
	Agent     *entity.Agent
	Template  *entity.MessageTemplate
	UserID    string
	FromStage string
	ToStage   string

	Attachments []mail.Attachment
}
