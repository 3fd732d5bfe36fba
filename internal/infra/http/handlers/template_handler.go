package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kelechv1/edulead-crm/internal/entity"
)

type TemplateHandler struct {
	templateRepo entity.TemplateRepositoryInterface
}

func NewTemplateHandler(templateRepo entity.TemplateRepositoryInterface) *TemplateHandler {
	return &TemplateHandler{templateRepo: templateRepo}
}

type CreateTemplateRequest struct {
	Name         string `json:"name"`
	Subject      string `json:"subject,omitempty"`
	EmailHTML    string `json:"email_html,omitempty"`
	WhatsAppText string `json:"whatsapp_text,omitempty"`
}

func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	tpl := &entity.MessageTemplate{
		Name:         req.Name,
		Subject:      req.Subject,
		EmailHTML:    req.EmailHTML,
		WhatsAppText: req.WhatsAppText,
	}

	if err := h.templateRepo.Create(r.Context(), tpl); err != nil {
		http.Error(w, "Failed to create template", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, tpl)
}

func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templateRepo.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to list templates", http.StatusInternalServerError)
		return
	}

	if templates == nil {
		templates = []*entity.MessageTemplate{}
	}

	writeJSON(w, http.StatusOK, templates)
}

func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "templateId")

	tpl, err := h.templateRepo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Template not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load template", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, tpl)
}
