package user

import (
	"context"
	"fmt"

	apperr "github.com/clinicore/clinicore/pkg/errors"
	"github.com/clinicore/clinicore/pkg/security"

	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/internal/repository"
)

type Service interface {
	CreateUser(ctx context.Context, form *model.UserForm) (*model.User, error)
	ToggleStatus(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	ListAvailableEmployees(ctx context.Context) ([]*model.Employee, error)
}

type service struct {
	repo         repository.UserRepository
	employeeRepo repository.EmployeeRepository
	hasher       security.PasswordHasher
}

func NewService(repo repository.UserRepository, employeeRepo repository.EmployeeRepository, hasher security.PasswordHasher) Service {
	return &service{
		repo:         repo,
		employeeRepo: employeeRepo,
		hasher:       hasher,
	}
}

// CreateUser attaches a login identity to an employee. An employee carries
// at most one account, and usernames are unique.
func (s *service) CreateUser(ctx context.Context, form *model.UserForm) (*model.User, error) {
	if _, err := s.employeeRepo.Get(ctx, form.EmployeeID); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByUsername(ctx, form.Username); err == nil && existing != nil {
		return nil, apperr.Conflict("username already taken", nil)
	}
	if existing, err := s.repo.GetByEmployee(ctx, form.EmployeeID); err == nil && existing != nil {
		return nil, apperr.Conflict("employee already has a user account", nil)
	}

	hash, err := s.hasher.Hash(form.Password)
	if err != nil {
		return nil, apperr.Validation("password must be at least 8 characters long", err)
	}

	user := &model.User{
		Username:     form.Username,
		PasswordHash: hash,
		IsActive:     true,
		EmployeeID:   form.EmployeeID,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *service) ToggleStatus(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user.IsActive = !user.IsActive
	if err := s.repo.SetActive(ctx, id, user.IsActive); err != nil {
		return nil, fmt.Errorf("failed to toggle user status: %w", err)
	}
	return user, nil
}

func (s *service) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.repo.List(ctx)
}

// ListAvailableEmployees returns employees without a user account, offered
// in the new-account form.
func (s *service) ListAvailableEmployees(ctx context.Context) ([]*model.Employee, error) {
	return s.employeeRepo.ListWithoutUser(ctx)
}
