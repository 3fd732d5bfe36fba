package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/kelechv1/edulead-crm/internal/entity"
	"github.com/kelechv1/edulead-crm/internal/infra/queue"
)

// BroadcastHandler fans one template out to every lead in a stage. Each lead
// becomes its own queued job so one bad lead never stalls the rest.
type BroadcastHandler struct {
	leadRepo entity.LeadRepositoryInterface
	producer queue.QueueProducerInterface
}

func NewBroadcastHandler(leadRepo entity.LeadRepositoryInterface, producer queue.QueueProducerInterface) *BroadcastHandler {
	return &BroadcastHandler{
		leadRepo: leadRepo,
		producer: producer,
	}
}

type BroadcastRequest struct {
	Stage      string `json:"stage"`
	TemplateID string `json:"template_id"`
	AgentID    string `json:"agent_id,omitempty"`
	UserID     string `json:"user_id,omitempty"`
}

type BroadcastResponse struct {
	Success bool   `json:"success"`
	Queued  int    `json:"queued"`
	Message string `json:"message,omitempty"`
}

func (h *BroadcastHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req BroadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, BroadcastResponse{Success: false, Message: "Invalid JSON"})
		return
	}

	if req.Stage == "" || req.TemplateID == "" {
		writeJSON(w, http.StatusBadRequest, BroadcastResponse{Success: false, Message: "stage and template_id are required"})
		return
	}

	leads, err := h.leadRepo.ListByStage(ctx, req.Stage)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, BroadcastResponse{Success: false, Message: "Failed to list leads"})
		return
	}

	queued := 0
	for _, lead := range leads {
		payload := queue.DispatchPayload{
			LeadID:     lead.ID,
			TemplateID: req.TemplateID,
			AgentID:    req.AgentID,
			UserID:     req.UserID,
		}
		if err := h.producer.PublishDispatch(ctx, payload); err != nil {
			writeJSON(w, http.StatusInternalServerError, BroadcastResponse{
				Success: false,
				Queued:  queued,
				Message: "Failed to enqueue dispatch: " + err.Error(),
			})
			return
		}
		queued++
	}

	writeJSON(w, http.StatusAccepted, BroadcastResponse{Success: true, Queued: queued})
}
