package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kelechv1/edulead-crm/internal/entity"
	"github.com/kelechv1/edulead-crm/internal/infra/http/middleware"
	"github.com/kelechv1/edulead-crm/internal/usecase"
)

type DispatchHandler struct {
	dispatchUC   *usecase.DispatchMessageUseCase
	leadRepo     entity.LeadRepositoryInterface
	agentRepo    entity.AgentRepositoryInterface
	templateRepo entity.TemplateRepositoryInterface
}

func NewDispatchHandler(
	dispatchUC *usecase.DispatchMessageUseCase,
	leadRepo entity.LeadRepositoryInterface,
	agentRepo entity.AgentRepositoryInterface,
	templateRepo entity.TemplateRepositoryInterface,
) *DispatchHandler {
	return &DispatchHandler{
		dispatchUC:   dispatchUC,
		leadRepo:     leadRepo,
		agentRepo:    agentRepo,
		templateRepo: templateRepo,
	}
}

type DispatchRequest struct {
	TemplateID string `json:"template_id"`
	AgentID    string `json:"agent_id,omitempty"`
	UserID     string `json:"user_id,omitempty"`
	FromStage  string `json:"from_stage,omitempty"`
	ToStage    string `json:"to_stage,omitempty"`
}

type DispatchResponse struct {
	Success  bool                     `json:"success"`
	Message  string                   `json:"message,omitempty"`
	Outcomes []usecase.ChannelOutcome `json:"outcomes,omitempty"`
}

// Handle runs the pipeline synchronously for one lead. Channel failures are
// business outcomes visible in the lead's history, not HTTP errors; only
// lookup and history-write faults produce a non-2xx response.
func (h *DispatchHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	leadID := chi.URLParam(r, "leadId")

	var req DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, DispatchResponse{Success: false, Message: "Invalid JSON"})
		return
	}

	if req.TemplateID == "" {
		writeJSON(w, http.StatusBadRequest, DispatchResponse{Success: false, Message: "template_id is required"})
		return
	}

	lead, err := h.leadRepo.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, DispatchResponse{Success: false, Message: "Lead not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, DispatchResponse{Success: false, Message: "Failed to load lead"})
		return
	}

	tpl, err := h.templateRepo.FindByID(ctx, req.TemplateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, DispatchResponse{Success: false, Message: "Template not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, DispatchResponse{Success: false, Message: "Failed to load template"})
		return
	}

	var agent *entity.Agent
	if req.AgentID != "" {
		agent, err = h.agentRepo.FindByID(ctx, req.AgentID)
		if err != nil {
			log.Printf("⚠️ Dispatch: agent %s not found, continuing without agent context", req.AgentID)
			agent = nil
		}
	}

	report, err := h.dispatchUC.Execute(ctx, usecase.DispatchInput{
		Lead:      lead,
		Agent:     agent,
		Template:  tpl,
		UserID:    req.UserID,
		FromStage: req.FromStage,
		ToStage:   req.ToStage,
	})
	if err != nil {
		if usecase.IsDomainError(err) {
			writeJSON(w, http.StatusBadRequest, DispatchResponse{Success: false, Message: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, DispatchResponse{Success: false, Message: err.Error()})
		return
	}

	for _, outcome := range report.Outcomes {
		middleware.RecordDispatch(outcome.Channel, outcome.Success)
	}

	// The stage move on the lead itself rides along with the dispatch.
	if req.ToStage != "" && req.ToStage != lead.Stage {
		if err := h.leadRepo.UpdateStage(ctx, lead.ID, req.ToStage); err != nil {
			log.Printf("⚠️ Dispatch: failed to update stage for lead %s: %v", lead.ID, err)
		}
	}

	writeJSON(w, http.StatusAccepted, DispatchResponse{
		Success:  true,
		Outcomes: report.Outcomes,
	})
}
