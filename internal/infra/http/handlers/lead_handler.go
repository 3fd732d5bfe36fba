package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kelechv1/edulead-crm/internal/entity"
	"github.com/kelechv1/edulead-crm/internal/infra/http/middleware"
	"github.com/kelechv1/edulead-crm/internal/usecase"
)

type LeadHandler struct {
	leadRepo    entity.LeadRepositoryInterface
	historyRepo entity.HistoryRepositoryInterface
	rateLimiter *RateLimiter
}

func NewLeadHandler(leadRepo entity.LeadRepositoryInterface, historyRepo entity.HistoryRepositoryInterface) *LeadHandler {
	return &LeadHandler{
		leadRepo:    leadRepo,
		historyRepo: historyRepo,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min per IP
	}
}

type CaptureLeadResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

func (h *LeadHandler) CaptureLead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeJSON(w, http.StatusTooManyRequests, CaptureLeadResponse{
			Success: false,
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var req usecase.CaptureLeadInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{
			Success: false,
			Message: "Invalid JSON",
		})
		return
	}

	if errs := usecase.ValidateCaptureLeadInput(req); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{
			Success: false,
			Message: errs[0].Error(),
		})
		return
	}

	lead := &entity.Lead{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		SchoolName: req.SchoolName,
		Address:    req.Address,
	}

	if err := h.leadRepo.Upsert(ctx, lead); err != nil {
		writeJSON(w, http.StatusInternalServerError, CaptureLeadResponse{
			Success: false,
			Message: "Failed to capture lead",
		})
		return
	}

	middleware.RecordLeadCaptured()

	writeJSON(w, http.StatusOK, CaptureLeadResponse{
		Success: true,
		ID:      lead.ID,
	})
}

func (h *LeadHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadId")

	entries, err := h.historyRepo.ListByLead(r.Context(), leadID)
	if err != nil {
		http.Error(w, "Failed to load history", http.StatusInternalServerError)
		return
	}

	if entries == nil {
		entries = []*entity.HistoryEntry{}
	}

	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
