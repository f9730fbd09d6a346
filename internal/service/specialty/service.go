package specialty

import (
	"context"
	"fmt"
	"strings"

	apperr "github.com/clinicore/clinicore/pkg/errors"

	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/internal/repository"
)

type Service interface {
	CreateSpecialty(ctx context.Context, form *model.SpecialtyForm) (*model.Specialty, error)
	DeleteSpecialty(ctx context.Context, id int64) error
	ListSpecialties(ctx context.Context) ([]*model.Specialty, error)
}

type service struct {
	repo repository.SpecialtyRepository
}

func NewService(repo repository.SpecialtyRepository) Service {
	return &service{repo: repo}
}

// CreateSpecialty stores names upper-cased so the unique constraint also
// catches case-variant duplicates.
func (s *service) CreateSpecialty(ctx context.Context, form *model.SpecialtyForm) (*model.Specialty, error) {
	name := strings.ToUpper(strings.TrimSpace(form.Name))
	if name == "" {
		return nil, apperr.Validation("specialty name is required", nil)
	}

	if existing, err := s.repo.GetByName(ctx, name); err == nil && existing != nil {
		return nil, apperr.Conflict("specialty already exists", nil)
	}

	specialty := &model.Specialty{Name: name}
	if err := s.repo.Create(ctx, specialty); err != nil {
		return nil, fmt.Errorf("failed to create specialty: %w", err)
	}
	return specialty, nil
}

// DeleteSpecialty is guarded: a specialty referenced by employees cannot be
// removed.
func (s *service) DeleteSpecialty(ctx context.Context, id int64) error {
	count, err := s.repo.CountEmployees(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check specialty usage: %w", err)
	}
	if count > 0 {
		return apperr.Conflict("specialty is in use by employees and cannot be deleted", nil)
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) ListSpecialties(ctx context.Context) ([]*model.Specialty, error) {
	return s.repo.List(ctx)
}
