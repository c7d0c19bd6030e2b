package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PraveshYadav900/codenest-website/internal/domain"
	"github.com/PraveshYadav900/codenest-website/internal/service"
)

type ContactServiceMock struct {
	err error
}

func (m *ContactServiceMock) Submit(_ context.Context, submission *domain.ContactSubmission) error {
	if m.err != nil {
		return m.err
	}
	submission.ID = 7
	submission.SubmittedAt = time.Now()
	return nil
}

func TestContactSubmit_Success(t *testing.T) {
	handler := NewContactHandler(&ContactServiceMock{}, 5*time.Second)

	body := `{"name":"Ravi","email":"ravi@example.com","service":"web-development","message":"Need a storefront"}`
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/contact", strings.NewReader(body))

	handler.Submit(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Errorf("expected %d, got %d", http.StatusCreated, recorder.Code)
	}

	var response ContactResponseDTO
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.ID != 7 {
		t.Errorf("expected id 7, got %d", response.ID)
	}
	if response.SubmittedAt.IsZero() {
		t.Error("expected submitted_at to be set")
	}
}

func TestContactSubmit_MissingField(t *testing.T) {
	handler := NewContactHandler(&ContactServiceMock{
		err: fmt.Errorf("%w: service", service.ErrValidation),
	}, 5*time.Second)

	body := `{"name":"Ravi","email":"ravi@example.com","message":"hello"}`
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/contact", strings.NewReader(body))

	handler.Submit(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestContactSubmit_InvalidJSON(t *testing.T) {
	handler := NewContactHandler(&ContactServiceMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/contact", strings.NewReader("not json"))

	handler.Submit(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}
