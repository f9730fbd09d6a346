package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinicore/internal/model"
	apperr "github.com/clinicore/clinicore/pkg/errors"
	"github.com/clinicore/clinicore/pkg/security"
)

type fakeUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*model.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id int64) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperr.NotFound("user", nil)
	}
	return u, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperr.NotFound("user", nil)
}

func (r *fakeUserRepo) GetByEmployee(_ context.Context, employeeID int64) (*model.User, error) {
	for _, u := range r.users {
		if u.EmployeeID == employeeID {
			return u, nil
		}
	}
	return nil, apperr.NotFound("user", nil)
}

func (r *fakeUserRepo) SetActive(_ context.Context, id int64, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return apperr.NotFound("user", nil)
	}
	u.IsActive = active
	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*model.User, error) {
	out := []*model.User{}
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeEmployeeDir struct{ employees map[int64]*model.Employee }

func (r *fakeEmployeeDir) Create(context.Context, *model.Employee) error { return nil }
func (r *fakeEmployeeDir) Get(_ context.Context, id int64) (*model.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, apperr.NotFound("employee", nil)
	}
	return e, nil
}
func (r *fakeEmployeeDir) GetByCPF(context.Context, string) (*model.Employee, error) {
	return nil, apperr.NotFound("employee", nil)
}
func (r *fakeEmployeeDir) Update(context.Context, *model.Employee) error { return nil }
func (r *fakeEmployeeDir) Delete(context.Context, int64) error           { return nil }
func (r *fakeEmployeeDir) List(context.Context, int, int) ([]*model.Employee, error) {
	return nil, nil
}
func (r *fakeEmployeeDir) Count(context.Context) (int, error) { return 0, nil }
func (r *fakeEmployeeDir) ListWithoutUser(context.Context) ([]*model.Employee, error) {
	out := []*model.Employee{}
	for _, e := range r.employees {
		out = append(out, e)
	}
	return out, nil
}
func (r *fakeEmployeeDir) ListDoctors(context.Context) ([]*model.Employee, error) { return nil, nil }
func (r *fakeEmployeeDir) CountAppointments(context.Context, int64) (int, error)  { return 0, nil }

func newTestService() (Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	employees := &fakeEmployeeDir{employees: map[int64]*model.Employee{
		1: {ID: 1, Name: "Ana", Role: model.RoleDoctor},
		2: {ID: 2, Name: "Bia", Role: model.RoleReceptionist},
	}}
	return NewService(repo, employees, security.NewBcryptHasher(4)), repo
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc, repo := newTestService()

	u, err := svc.CreateUser(context.Background(), &model.UserForm{
		Username:   "ana.souza",
		Password:   "sup3r-s3cret",
		EmployeeID: 1,
	})
	require.NoError(t, err)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "sup3r-s3cret", u.PasswordHash)
	assert.NotEmpty(t, repo.users[u.ID].PasswordHash)
}

func TestCreateUserRejectsUnknownEmployee(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateUser(context.Background(), &model.UserForm{
		Username: "ghost", Password: "sup3r-s3cret", EmployeeID: 42,
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateUser(context.Background(), &model.UserForm{
		Username: "ana.souza", Password: "sup3r-s3cret", EmployeeID: 1,
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), &model.UserForm{
		Username: "ana.souza", Password: "sup3r-s3cret", EmployeeID: 2,
	})
	assert.True(t, apperr.IsConflict(err))
}

func TestCreateUserRejectsSecondAccountForEmployee(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateUser(context.Background(), &model.UserForm{
		Username: "ana.souza", Password: "sup3r-s3cret", EmployeeID: 1,
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), &model.UserForm{
		Username: "ana2", Password: "sup3r-s3cret", EmployeeID: 1,
	})
	assert.True(t, apperr.IsConflict(err))
}

func TestToggleStatus(t *testing.T) {
	svc, repo := newTestService()

	u, err := svc.CreateUser(context.Background(), &model.UserForm{
		Username: "ana.souza", Password: "sup3r-s3cret", EmployeeID: 1,
	})
	require.NoError(t, err)

	toggled, err := svc.ToggleStatus(context.Background(), u.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)
	assert.False(t, repo.users[u.ID].IsActive)

	toggled, err = svc.ToggleStatus(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)
}
