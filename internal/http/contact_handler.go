package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/PraveshYadav900/codenest-website/internal/domain"
	"github.com/PraveshYadav900/codenest-website/internal/service"
)

type ContactHandler struct {
	contacts service.ContactService
	timeout  time.Duration
}

func NewContactHandler(contacts service.ContactService, timeout time.Duration) *ContactHandler {
	return &ContactHandler{
		contacts: contacts,
		timeout:  timeout,
	}
}

type ContactRequestDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Company  string `json:"company,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Service  string `json:"service"`
	Budget   string `json:"budget,omitempty"`
	Timeline string `json:"timeline,omitempty"`
	Message  string `json:"message"`
}

type ContactResponseDTO struct {
	ID          int64     `json:"id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// POST /api/v1/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ContactRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	submission := &domain.ContactSubmission{
		Name:     req.Name,
		Email:    req.Email,
		Company:  req.Company,
		Phone:    req.Phone,
		Service:  req.Service,
		Budget:   req.Budget,
		Timeline: req.Timeline,
		Message:  req.Message,
	}

	if err := h.contacts.Submit(ctx, submission); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, ContactResponseDTO{
		ID:          submission.ID,
		SubmittedAt: submission.SubmittedAt,
	})
}
