package service

import (
	"context"
	"fmt"

	"github.com/PraveshYadav900/codenest-website/internal/domain"
	"github.com/PraveshYadav900/codenest-website/internal/repository"
)

type ContactService interface {
	Submit(ctx context.Context, submission *domain.ContactSubmission) error
}

type ContactServiceImpl struct {
	repo repository.Store
}

func NewContactService(repo repository.Store) *ContactServiceImpl {
	return &ContactServiceImpl{repo: repo}
}

func (s *ContactServiceImpl) Submit(ctx context.Context, submission *domain.ContactSubmission) error {
	switch {
	case submission.Name == "":
		return fmt.Errorf("%w: name", ErrValidation)
	case submission.Email == "":
		return fmt.Errorf("%w: email", ErrValidation)
	case submission.Service == "":
		return fmt.Errorf("%w: service", ErrValidation)
	case submission.Message == "":
		return fmt.Errorf("%w: message", ErrValidation)
	}

	if err := s.repo.CreateContact(ctx, submission); err != nil {
		return fmt.Errorf("submit contact form: %w", err)
	}
	return nil
}
