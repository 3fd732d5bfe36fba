package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/kelechv1/edulead-crm/internal/entity"
	"github.com/kelechv1/edulead-crm/internal/infra/mail"
)

// ChannelOutcome is the tagged result of one channel attempt. Note carries the
// exact text persisted to the lead's history.
type ChannelOutcome struct {
	Channel string `json:"channel"`
	Success bool   `json:"success"`
	Note    string `json:"note"`
}

// DispatchReport summarizes one pipeline run. Outcomes holds one entry per
// channel actually attempted; skipped channels (missing recipient or missing
// template body) leave no trace.
type DispatchReport struct {
	StageNoted bool             `json:"stage_noted"`
	Outcomes   []ChannelOutcome `json:"outcomes"`
}

type DispatchMessageUseCase struct {
	Email    EmailService
	WhatsApp WhatsAppService
	History  HistoryRecorder
}

func NewDispatchMessageUseCase(email EmailService, whatsapp WhatsAppService, history HistoryRecorder) *DispatchMessageUseCase {
	return &DispatchMessageUseCase{
		Email:    email,
		WhatsApp: whatsapp,
		History:  history,
	}
}

// Execute runs the whole pipeline for one lead: optional stage-transition
// note, then the email attempt, then the WhatsApp attempt. The two channels
// are independent; a failure in one is recorded and never blocks the other.
// Only history writes return an error — channel failures come back inside the
// report.
func (uc *DispatchMessageUseCase) Execute(ctx context.Context, input DispatchInput) (*DispatchReport, error) {
	if errs := ValidateDispatchInput(input); len(errs) > 0 {
		return nil, &DomainError{
			Code:    "INVALID_DISPATCH",
			Message: joinValidationErrors(errs),
		}
	}

	userID := normalizeUserID(input.UserID)
	rctx := RenderContext{Lead: input.Lead, Agent: input.Agent}
	report := &DispatchReport{}

	// Transition note comes first and does not depend on channel eligibility:
	// a template with no bodies still gets its stage move recorded.
	if input.FromStage != "" && input.ToStage != "" && input.FromStage != input.ToStage {
		content := fmt.Sprintf("moved from %s stage to %s stage", input.FromStage, input.ToStage)
		if err := uc.History.CreateNote(ctx, input.Lead.ID, content, userID); err != nil {
			return nil, &TechnicalError{
				Code:    "HISTORY_WRITE_FAILED",
				Message: "failed to record stage transition: " + err.Error(),
			}
		}
		report.StageNoted = true
	}

	if input.Lead.Email != "" && input.Template.HasEmail() {
		outcome := uc.attemptEmail(rctx, input)
		if err := uc.History.CreateHistoryEntry(ctx, input.Lead.ID, entity.HistoryTypeAction, entity.ActionTypeEmail, outcome.Note, userID); err != nil {
			return nil, &TechnicalError{
				Code:    "HISTORY_WRITE_FAILED",
				Message: "failed to record email outcome: " + err.Error(),
			}
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	if input.Lead.Phone != "" && input.Template.HasWhatsApp() {
		outcome := uc.attemptWhatsApp(ctx, rctx, input)
		if err := uc.History.CreateHistoryEntry(ctx, input.Lead.ID, entity.HistoryTypeAction, entity.ActionTypeWhatsApp, outcome.Note, userID); err != nil {
			return nil, &TechnicalError{
				Code:    "HISTORY_WRITE_FAILED",
				Message: "failed to record whatsapp outcome: " + err.Error(),
			}
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	return report, nil
}

func (uc *DispatchMessageUseCase) attemptEmail(rctx RenderContext, input DispatchInput) ChannelOutcome {
	msg := mail.Message{
		To:          input.Lead.Email,
		Subject:     RenderTemplate(input.Template.Subject, rctx),
		HTML:        RenderTemplate(input.Template.EmailHTML, rctx),
		Attachments: input.Attachments,
	}

	if err := uc.Email.Send(msg); err != nil {
		return ChannelOutcome{
			Channel: entity.ActionTypeEmail,
			Note:    "Email failed: " + err.Error(),
		}
	}

	return ChannelOutcome{
		Channel: entity.ActionTypeEmail,
		Success: true,
		Note:    "Email sent successfully.",
	}
}

func (uc *DispatchMessageUseCase) attemptWhatsApp(ctx context.Context, rctx RenderContext, input DispatchInput) ChannelOutcome {
	text := RenderTemplate(input.Template.WhatsAppText, rctx)

	res := uc.WhatsApp.Send(ctx, input.Lead.Phone, text, "")
	if !res.Success {
		msg := res.Error
		if msg == "" {
			msg = "Unknown error"
		}
		return ChannelOutcome{
			Channel: entity.ActionTypeWhatsApp,
			Note:    "WhatsApp failed: " + msg,
		}
	}

	return ChannelOutcome{
		Channel: entity.ActionTypeWhatsApp,
		Success: true,
		Note:    "WhatsApp message sent successfully.",
	}
}

// normalizeUserID maps blank and whitespace-only user IDs to nil so the
// history rows never carry an empty-string FK reference.
func normalizeUserID(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
