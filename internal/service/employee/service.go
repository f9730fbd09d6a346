package employee

import (
	"context"
	"fmt"
	"time"

	apperr "github.com/clinicore/clinicore/pkg/errors"

	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/internal/repository"
)

type Service interface {
	CreateEmployee(ctx context.Context, form *model.EmployeeForm) (*model.Employee, error)
	GetEmployee(ctx context.Context, id int64) (*model.Employee, error)
	UpdateEmployee(ctx context.Context, id int64, form *model.EmployeeForm) (*model.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
	ListEmployees(ctx context.Context, page model.Pagination) ([]*model.Employee, model.PageMeta, error)
}

type service struct {
	repo repository.EmployeeRepository
}

func NewService(repo repository.EmployeeRepository) Service {
	return &service{repo: repo}
}

func (s *service) CreateEmployee(ctx context.Context, form *model.EmployeeForm) (*model.Employee, error) {
	employee, err := s.fromForm(form)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByCPF(ctx, form.CPF); err == nil && existing != nil {
		return nil, apperr.Conflict("CPF already in use by another employee", nil)
	}

	if err := s.repo.Create(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return employee, nil
}

func (s *service) GetEmployee(ctx context.Context, id int64) (*model.Employee, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) UpdateEmployee(ctx context.Context, id int64, form *model.EmployeeForm) (*model.Employee, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if form.CPF != existing.CPF {
		if other, err := s.repo.GetByCPF(ctx, form.CPF); err == nil && other != nil {
			return nil, apperr.Conflict("CPF already in use by another employee", nil)
		}
	}

	employee, err := s.fromForm(form)
	if err != nil {
		return nil, err
	}
	employee.ID = id

	if err := s.repo.Update(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return employee, nil
}

// DeleteEmployee is guarded: an employee with appointments on record cannot
// be removed.
func (s *service) DeleteEmployee(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountAppointments(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check employee appointments: %w", err)
	}
	if count > 0 {
		return apperr.Conflict("employee has appointments and cannot be deleted", nil)
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) ListEmployees(ctx context.Context, page model.Pagination) ([]*model.Employee, model.PageMeta, error) {
	page = page.Normalize()

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, model.PageMeta{}, fmt.Errorf("failed to count employees: %w", err)
	}

	employees, err := s.repo.List(ctx, page.Offset(), page.Size)
	if err != nil {
		return nil, model.PageMeta{}, fmt.Errorf("failed to list employees: %w", err)
	}

	return employees, model.NewPageMeta(page, total), nil
}

// fromForm builds the entity and keeps the role-dependent fields
// consistent: clinical roles carry CRM and specialty, administrative roles
// carry a department.
func (s *service) fromForm(form *model.EmployeeForm) (*model.Employee, error) {
	birthDate, err := time.Parse(model.DateLayout, form.BirthDate)
	if err != nil {
		return nil, apperr.Validation("birth date must be in YYYY-MM-DD format", err)
	}

	role := model.Role(form.Role)
	if !role.Valid() {
		return nil, apperr.Validation("invalid role", nil)
	}

	employee := &model.Employee{
		Name:      form.Name,
		CPF:       form.CPF,
		BirthDate: birthDate,
		Role:      role,
	}

	if role.Clinical() {
		if form.CRM == "" {
			return nil, apperr.Validation("license number is required for clinical roles", nil)
		}
		if form.SpecialtyID == nil {
			return nil, apperr.Validation("specialty is required for clinical roles", nil)
		}
		employee.CRM = form.CRM
		employee.SpecialtyID = form.SpecialtyID
	} else {
		if form.Department == "" {
			return nil, apperr.Validation("department is required for administrative roles", nil)
		}
		employee.Department = form.Department
	}

	return employee, nil
}
