package auth

import (
	"context"
	"errors"

	"github.com/clinicore/clinicore/pkg/auth"
	apperr "github.com/clinicore/clinicore/pkg/errors"
	"github.com/clinicore/clinicore/pkg/security"

	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/internal/repository"
)

var (
	ErrUnknownUser        = errors.New("user does not exist")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInactiveUser       = errors.New("user account is deactivated")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service interface {
	// Login verifies credentials and returns the signed session token.
	Login(ctx context.Context, username, password string) (string, *model.User, error)
	// ResolveUser loads the user behind a session token.
	ResolveUser(ctx context.Context, token string) (*model.User, error)
}

type service struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
	hasher   security.PasswordHasher
}

func NewService(userRepo repository.UserRepository, tokens *auth.TokenService, hasher security.PasswordHasher) Service {
	return &service{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
	}
}

func (s *service) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return "", nil, ErrUnknownUser
		}
		return "", nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidPassword
	}

	if !user.IsActive {
		return "", nil, ErrInactiveUser
	}

	token, err := s.tokens.Generate(user.Username)
	if err != nil {
		return "", nil, apperr.Internal(err)
	}
	return token, user, nil
}

// ResolveUser verifies the token and loads the matching user with its
// employee role. Any failure collapses to unauthorized; callers redirect to
// the login page regardless of cause.
func (s *service) ResolveUser(ctx context.Context, token string) (*model.User, error) {
	username, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperr.Unauthorized(err)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Unauthorized(err)
	}

	if !user.IsActive {
		return nil, apperr.Unauthorized(ErrInactiveUser)
	}
	return user, nil
}
