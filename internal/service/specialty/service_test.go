package specialty

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinicore/internal/model"
	apperr "github.com/clinicore/clinicore/pkg/errors"
)

type fakeSpecialtyRepo struct {
	specialties map[int64]*model.Specialty
	nextID      int64
	employees   map[int64]int
}

func newFakeSpecialtyRepo() *fakeSpecialtyRepo {
	return &fakeSpecialtyRepo{
		specialties: map[int64]*model.Specialty{},
		nextID:      1,
		employees:   map[int64]int{},
	}
}

func (r *fakeSpecialtyRepo) Create(_ context.Context, s *model.Specialty) error {
	s.ID = r.nextID
	r.nextID++
	r.specialties[s.ID] = s
	return nil
}

func (r *fakeSpecialtyRepo) Get(_ context.Context, id int64) (*model.Specialty, error) {
	s, ok := r.specialties[id]
	if !ok {
		return nil, apperr.NotFound("specialty", nil)
	}
	return s, nil
}

func (r *fakeSpecialtyRepo) GetByName(_ context.Context, name string) (*model.Specialty, error) {
	for _, s := range r.specialties {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, apperr.NotFound("specialty", nil)
}

func (r *fakeSpecialtyRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.specialties[id]; !ok {
		return apperr.NotFound("specialty", nil)
	}
	delete(r.specialties, id)
	return nil
}

func (r *fakeSpecialtyRepo) List(_ context.Context) ([]*model.Specialty, error) {
	out := []*model.Specialty{}
	for _, s := range r.specialties {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSpecialtyRepo) CountEmployees(_ context.Context, id int64) (int, error) {
	return r.employees[id], nil
}

func TestCreateSpecialtyUpperCasesName(t *testing.T) {
	svc := NewService(newFakeSpecialtyRepo())

	s, err := svc.CreateSpecialty(context.Background(), &model.SpecialtyForm{Name: "  cardiology "})
	require.NoError(t, err)
	assert.Equal(t, "CARDIOLOGY", s.Name)
}

func TestCreateSpecialtyRejectsCaseVariantDuplicate(t *testing.T) {
	svc := NewService(newFakeSpecialtyRepo())

	_, err := svc.CreateSpecialty(context.Background(), &model.SpecialtyForm{Name: "Cardiology"})
	require.NoError(t, err)

	_, err = svc.CreateSpecialty(context.Background(), &model.SpecialtyForm{Name: "CARDIOLOGY"})
	assert.True(t, apperr.IsConflict(err))
}

func TestCreateSpecialtyRejectsBlankName(t *testing.T) {
	svc := NewService(newFakeSpecialtyRepo())

	_, err := svc.CreateSpecialty(context.Background(), &model.SpecialtyForm{Name: "   "})
	assert.True(t, apperr.IsValidation(err))
}

func TestDeleteSpecialtyGuardedByEmployees(t *testing.T) {
	repo := newFakeSpecialtyRepo()
	svc := NewService(repo)

	s, err := svc.CreateSpecialty(context.Background(), &model.SpecialtyForm{Name: "Cardiology"})
	require.NoError(t, err)

	repo.employees[s.ID] = 2
	err = svc.DeleteSpecialty(context.Background(), s.ID)
	assert.True(t, apperr.IsConflict(err))

	repo.employees[s.ID] = 0
	assert.NoError(t, svc.DeleteSpecialty(context.Background(), s.ID))
}
