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

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (name, cpf, birth_date, contact, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		patient.Name,
		patient.CPF,
		patient.BirthDate,
		patient.Contact,
		patient.Address,
	).Scan(&patient.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("CPF already in use by another patient", err)
		}
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	query := `SELECT id, name, cpf, birth_date, contact, address FROM patients WHERE id = $1`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("patient", err)
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) GetByCPF(ctx context.Context, cpf string) (*model.Patient, error) {
	query := `SELECT id, name, cpf, birth_date, contact, address FROM patients WHERE cpf = $1`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, cpf)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("patient", err)
		}
		return nil, fmt.Errorf("failed to get patient by cpf: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET name = $1, cpf = $2, birth_date = $3, contact = $4, address = $5
		WHERE id = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		patient.Name,
		patient.CPF,
		patient.BirthDate,
		patient.Contact,
		patient.Address,
		patient.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("CPF already in use by another patient", err)
		}
		return fmt.Errorf("failed to update patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.NotFound("patient", nil)
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.NotFound("patient", nil)
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context, filters model.PatientFilters, offset, limit int) ([]*model.Patient, error) {
	query := `
		SELECT id, name, cpf, birth_date, contact, address
		FROM patients
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR cpf LIKE '%' || $1 || '%')
		ORDER BY name
		OFFSET $2 LIMIT $3
	`
	patients := []*model.Patient{}
	err := r.db.SelectContext(ctx, &patients, query, filters.Search, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

// ListAll returns every patient ordered by name, for form dropdowns.
func (r *patientRepository) ListAll(ctx context.Context) ([]*model.Patient, error) {
	query := `
		SELECT id, name, cpf, birth_date, contact, address
		FROM patients
		ORDER BY name
	`
	patients := []*model.Patient{}
	if err := r.db.SelectContext(ctx, &patients, query); err != nil {
		return nil, fmt.Errorf("failed to list all patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Count(ctx context.Context, filters model.PatientFilters) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM patients
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR cpf LIKE '%' || $1 || '%')
	`
	var count int
	if err := r.db.GetContext(ctx, &count, query, filters.Search); err != nil {
		return 0, fmt.Errorf("failed to count patients: %w", err)
	}
	return count, nil
}

func (r *patientRepository) CountAppointments(ctx context.Context, patientID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM appointments WHERE patient_id = $1`, patientID)
	if err != nil {
		return 0, fmt.Errorf("failed to count patient appointments: %w", err)
	}
	return count, nil
}
