package patient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinicore/internal/model"
	apperr "github.com/clinicore/clinicore/pkg/errors"
)

type fakePatientRepo struct {
	patients     map[int64]*model.Patient
	nextID       int64
	appointments map[int64]int
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{
		patients:     map[int64]*model.Patient{},
		nextID:       1,
		appointments: map[int64]int{},
	}
}

func (r *fakePatientRepo) Create(_ context.Context, p *model.Patient) error {
	p.ID = r.nextID
	r.nextID++
	r.patients[p.ID] = p
	return nil
}

func (r *fakePatientRepo) Get(_ context.Context, id int64) (*model.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, apperr.NotFound("patient", nil)
	}
	return p, nil
}

func (r *fakePatientRepo) GetByCPF(_ context.Context, cpf string) (*model.Patient, error) {
	for _, p := range r.patients {
		if p.CPF == cpf {
			return p, nil
		}
	}
	return nil, apperr.NotFound("patient", nil)
}

func (r *fakePatientRepo) Update(_ context.Context, p *model.Patient) error {
	if _, ok := r.patients[p.ID]; !ok {
		return apperr.NotFound("patient", nil)
	}
	r.patients[p.ID] = p
	return nil
}

func (r *fakePatientRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.patients[id]; !ok {
		return apperr.NotFound("patient", nil)
	}
	delete(r.patients, id)
	return nil
}

func (r *fakePatientRepo) List(_ context.Context, _ model.PatientFilters, offset, limit int) ([]*model.Patient, error) {
	out := []*model.Patient{}
	for _, p := range r.patients {
		out = append(out, p)
	}
	if offset >= len(out) {
		return []*model.Patient{}, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (r *fakePatientRepo) ListAll(_ context.Context) ([]*model.Patient, error) {
	out := []*model.Patient{}
	for _, p := range r.patients {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePatientRepo) Count(_ context.Context, _ model.PatientFilters) (int, error) {
	return len(r.patients), nil
}

func (r *fakePatientRepo) CountAppointments(_ context.Context, patientID int64) (int, error) {
	return r.appointments[patientID], nil
}

func validForm() *model.PatientForm {
	return &model.PatientForm{
		Name:      "Maria Souza",
		CPF:       "123.456.789-00",
		BirthDate: "1990-05-12",
		Contact:   "11 99999-0000",
		Address:   "Rua A, 100",
	}
}

func TestCreatePatient(t *testing.T) {
	svc := NewService(newFakePatientRepo())

	p, err := svc.CreatePatient(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Maria Souza", p.Name)
	assert.Equal(t, time.Date(1990, 5, 12, 0, 0, 0, 0, time.UTC), p.BirthDate)
}

func TestCreatePatientRejectsDuplicateCPF(t *testing.T) {
	svc := NewService(newFakePatientRepo())

	_, err := svc.CreatePatient(context.Background(), validForm())
	require.NoError(t, err)

	dup := validForm()
	dup.Name = "Another Person"
	_, err = svc.CreatePatient(context.Background(), dup)
	assert.True(t, apperr.IsConflict(err))
}

func TestCreatePatientRejectsBadBirthDate(t *testing.T) {
	svc := NewService(newFakePatientRepo())

	form := validForm()
	form.BirthDate = "12/05/1990"
	_, err := svc.CreatePatient(context.Background(), form)
	assert.True(t, apperr.IsValidation(err))
}

func TestUpdatePatientKeepsOwnCPF(t *testing.T) {
	svc := NewService(newFakePatientRepo())

	p, err := svc.CreatePatient(context.Background(), validForm())
	require.NoError(t, err)

	form := validForm()
	form.Name = "Maria S. Souza"
	updated, err := svc.UpdatePatient(context.Background(), p.ID, form)
	require.NoError(t, err)
	assert.Equal(t, "Maria S. Souza", updated.Name)
}

func TestUpdatePatientRejectsTakenCPF(t *testing.T) {
	svc := NewService(newFakePatientRepo())

	_, err := svc.CreatePatient(context.Background(), validForm())
	require.NoError(t, err)

	second := validForm()
	second.CPF = "987.654.321-00"
	p2, err := svc.CreatePatient(context.Background(), second)
	require.NoError(t, err)

	form := validForm() // carries the first patient's CPF
	_, err = svc.UpdatePatient(context.Background(), p2.ID, form)
	assert.True(t, apperr.IsConflict(err))
}

func TestDeletePatientGuardedByAppointments(t *testing.T) {
	repo := newFakePatientRepo()
	svc := NewService(repo)

	p, err := svc.CreatePatient(context.Background(), validForm())
	require.NoError(t, err)

	repo.appointments[p.ID] = 2
	err = svc.DeletePatient(context.Background(), p.ID)
	assert.True(t, apperr.IsConflict(err))

	repo.appointments[p.ID] = 0
	require.NoError(t, svc.DeletePatient(context.Background(), p.ID))

	_, err = svc.GetPatient(context.Background(), p.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestListPatientsMeta(t *testing.T) {
	svc := NewService(newFakePatientRepo())

	for i := 0; i < 15; i++ {
		form := validForm()
		form.CPF = "123.456.789-" + string(rune('0'+i/10)) + string(rune('0'+i%10))
		_, err := svc.CreatePatient(context.Background(), form)
		require.NoError(t, err)
	}

	patients, meta, err := svc.ListPatients(context.Background(), model.PatientFilters{}, model.Pagination{Page: 2, Size: 10})
	require.NoError(t, err)
	assert.Len(t, patients, 5)
	assert.Equal(t, 15, meta.TotalCount)
	assert.Equal(t, 2, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}
