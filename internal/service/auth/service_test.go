package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/pkg/auth"
	apperr "github.com/clinicore/clinicore/pkg/errors"
	"github.com/clinicore/clinicore/pkg/security"
)

type fakeUserRepo struct {
	byUsername map[string]*model.User
}

func (r *fakeUserRepo) Create(context.Context, *model.User) error { return nil }
func (r *fakeUserRepo) Get(context.Context, int64) (*model.User, error) {
	return nil, apperr.NotFound("user", nil)
}
func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, apperr.NotFound("user", nil)
	}
	return u, nil
}
func (r *fakeUserRepo) GetByEmployee(context.Context, int64) (*model.User, error) {
	return nil, apperr.NotFound("user", nil)
}
func (r *fakeUserRepo) SetActive(context.Context, int64, bool) error { return nil }
func (r *fakeUserRepo) List(context.Context) ([]*model.User, error)  { return nil, nil }

func newTestService(t *testing.T) (Service, *fakeUserRepo) {
	t.Helper()
	hasher := security.NewBcryptHasher(4)
	hash, err := hasher.Hash("sup3r-s3cret")
	require.NoError(t, err)

	repo := &fakeUserRepo{byUsername: map[string]*model.User{
		"ana.souza": {
			ID:           1,
			Username:     "ana.souza",
			PasswordHash: hash,
			IsActive:     true,
			EmployeeID:   7,
			EmployeeRole: model.RoleDoctor,
		},
	}}
	tokens := auth.NewTokenService("test-secret", time.Hour)
	return NewService(repo, tokens, hasher), repo
}

func TestLoginIssuesToken(t *testing.T) {
	svc, _ := newTestService(t)

	token, user, err := svc.Login(context.Background(), "ana.souza", "sup3r-s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "ana.souza", user.Username)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Login(context.Background(), "nobody", "sup3r-s3cret")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Login(context.Background(), "ana.souza", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestLoginInactiveUser(t *testing.T) {
	svc, repo := newTestService(t)
	repo.byUsername["ana.souza"].IsActive = false

	_, _, err := svc.Login(context.Background(), "ana.souza", "sup3r-s3cret")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestResolveUserRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)

	token, _, err := svc.Login(context.Background(), "ana.souza", "sup3r-s3cret")
	require.NoError(t, err)

	user, err := svc.ResolveUser(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "ana.souza", user.Username)
	assert.Equal(t, model.RoleDoctor, user.EmployeeRole)
}

func TestResolveUserRejectsBadToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ResolveUser(context.Background(), "garbage")
	assert.Equal(t, apperr.ErrUnauthorized, apperr.Code(err))
}

func TestResolveUserRejectsDeactivated(t *testing.T) {
	svc, repo := newTestService(t)

	token, _, err := svc.Login(context.Background(), "ana.souza", "sup3r-s3cret")
	require.NoError(t, err)

	repo.byUsername["ana.souza"].IsActive = false
	_, err = svc.ResolveUser(context.Background(), token)
	assert.Equal(t, apperr.ErrUnauthorized, apperr.Code(err))
}
