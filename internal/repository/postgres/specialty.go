package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	apperr "github.com/clinicore/clinicore/pkg/errors"

	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/internal/repository"
)

type specialtyRepository struct {
	db *sqlx.DB
}

func NewSpecialtyRepository(db *sqlx.DB) repository.SpecialtyRepository {
	return &specialtyRepository{db: db}
}

func (r *specialtyRepository) Create(ctx context.Context, specialty *model.Specialty) error {
	query := `INSERT INTO specialties (name) VALUES ($1) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query, specialty.Name).Scan(&specialty.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("specialty already exists", err)
		}
		return fmt.Errorf("failed to create specialty: %w", err)
	}
	return nil
}

func (r *specialtyRepository) Get(ctx context.Context, id int64) (*model.Specialty, error) {
	var specialty model.Specialty
	err := r.db.GetContext(ctx, &specialty, `SELECT id, name FROM specialties WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("specialty", err)
		}
		return nil, fmt.Errorf("failed to get specialty: %w", err)
	}
	return &specialty, nil
}

func (r *specialtyRepository) GetByName(ctx context.Context, name string) (*model.Specialty, error) {
	var specialty model.Specialty
	err := r.db.GetContext(ctx, &specialty, `SELECT id, name FROM specialties WHERE name = $1`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("specialty", err)
		}
		return nil, fmt.Errorf("failed to get specialty by name: %w", err)
	}
	return &specialty, nil
}

func (r *specialtyRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM specialties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete specialty: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.NotFound("specialty", nil)
	}
	return nil
}

func (r *specialtyRepository) List(ctx context.Context) ([]*model.Specialty, error) {
	specialties := []*model.Specialty{}
	err := r.db.SelectContext(ctx, &specialties, `SELECT id, name FROM specialties ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list specialties: %w", err)
	}
	return specialties, nil
}

func (r *specialtyRepository) CountEmployees(ctx context.Context, specialtyID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM employees WHERE specialty_id = $1`, specialtyID)
	if err != nil {
		return 0, fmt.Errorf("failed to count specialty employees: %w", err)
	}
	return count, nil
}
