package patient

import (
	"context"
	"fmt"
	"time"

	apperr "github.com/clinicore/clinicore/pkg/errors"

	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/internal/repository"
)

type Service interface {
	CreatePatient(ctx context.Context, form *model.PatientForm) (*model.Patient, error)
	GetPatient(ctx context.Context, id int64) (*model.Patient, error)
	UpdatePatient(ctx context.Context, id int64, form *model.PatientForm) (*model.Patient, error)
	DeletePatient(ctx context.Context, id int64) error
	ListPatients(ctx context.Context, filters model.PatientFilters, page model.Pagination) ([]*model.Patient, model.PageMeta, error)
	CountPatients(ctx context.Context) (int, error)
}

type service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) Service {
	return &service{repo: repo}
}

func (s *service) CreatePatient(ctx context.Context, form *model.PatientForm) (*model.Patient, error) {
	patient, err := s.fromForm(form)
	if err != nil {
		return nil, err
	}

	// Friendly duplicate check; the unique constraint closes the race.
	if existing, err := s.repo.GetByCPF(ctx, form.CPF); err == nil && existing != nil {
		return nil, apperr.Conflict("CPF already in use by another patient", nil)
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return patient, nil
}

func (s *service) GetPatient(ctx context.Context, id int64) (*model.Patient, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) UpdatePatient(ctx context.Context, id int64, form *model.PatientForm) (*model.Patient, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if form.CPF != existing.CPF {
		if other, err := s.repo.GetByCPF(ctx, form.CPF); err == nil && other != nil {
			return nil, apperr.Conflict("CPF already in use by another patient", nil)
		}
	}

	patient, err := s.fromForm(form)
	if err != nil {
		return nil, err
	}
	patient.ID = id

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return patient, nil
}

// DeletePatient is guarded: a patient with appointments on record cannot be
// removed (hard delete otherwise).
func (s *service) DeletePatient(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountAppointments(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check patient appointments: %w", err)
	}
	if count > 0 {
		return apperr.Conflict("patient has appointments and cannot be deleted", nil)
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) ListPatients(ctx context.Context, filters model.PatientFilters, page model.Pagination) ([]*model.Patient, model.PageMeta, error) {
	page = page.Normalize()

	total, err := s.repo.Count(ctx, filters)
	if err != nil {
		return nil, model.PageMeta{}, fmt.Errorf("failed to count patients: %w", err)
	}

	patients, err := s.repo.List(ctx, filters, page.Offset(), page.Size)
	if err != nil {
		return nil, model.PageMeta{}, fmt.Errorf("failed to list patients: %w", err)
	}

	return patients, model.NewPageMeta(page, total), nil
}

func (s *service) CountPatients(ctx context.Context) (int, error) {
	return s.repo.Count(ctx, model.PatientFilters{})
}

func (s *service) fromForm(form *model.PatientForm) (*model.Patient, error) {
	birthDate, err := time.Parse(model.DateLayout, form.BirthDate)
	if err != nil {
		return nil, apperr.Validation("birth date must be in YYYY-MM-DD format", err)
	}

	return &model.Patient{
		Name:      form.Name,
		CPF:       form.CPF,
		BirthDate: birthDate,
		Contact:   form.Contact,
		Address:   form.Address,
	}, nil
}
