package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	apperr "github.com/clinicore/clinicore/pkg/errors"

	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/internal/repository"
)

type medicalRecordRepository struct {
	db *sqlx.DB
}

func NewMedicalRecordRepository(db *sqlx.DB) repository.MedicalRecordRepository {
	return &medicalRecordRepository{db: db}
}

const recordColumns = `
	m.id, m.appointment_id, m.chief_complaint, m.diagnosis, m.prescription,
	m.physical_exam, m.medical_certificate, m.icd_code, m.created_at,
	p.name AS patient_name, p.cpf AS patient_cpf,
	a.date AS appointment_date, e.name AS doctor_name
`

// CreateAndComplete inserts the record and marks its appointment completed
// in a single transaction so a failed insert never leaves the appointment
// closed.
func (r *medicalRecordRepository) CreateAndComplete(ctx context.Context, record *model.MedicalRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	record.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO medical_records (
			appointment_id, chief_complaint, diagnosis, prescription,
			physical_exam, medical_certificate, icd_code, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err = tx.QueryRowxContext(ctx, query,
		record.AppointmentID,
		record.ChiefComplaint,
		record.Diagnosis,
		record.Prescription,
		record.PhysicalExam,
		record.MedicalCertificate,
		record.ICDCode,
		record.CreatedAt,
	).Scan(&record.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("appointment already has a medical record", err)
		}
		return fmt.Errorf("failed to create medical record: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE appointments SET status = $1 WHERE id = $2`,
		model.AppointmentStatusCompleted, record.AppointmentID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete appointment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit medical record: %w", err)
	}
	return nil
}

func (r *medicalRecordRepository) Get(ctx context.Context, id int64) (*model.MedicalRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM medical_records m
		JOIN appointments a ON a.id = m.appointment_id
		JOIN patients p ON p.id = a.patient_id
		JOIN employees e ON e.id = a.doctor_id
		WHERE m.id = $1
	`
	var record model.MedicalRecord
	err := r.db.GetContext(ctx, &record, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("medical record", err)
		}
		return nil, fmt.Errorf("failed to get medical record: %w", err)
	}
	return &record, nil
}

func (r *medicalRecordRepository) ExistsForAppointment(ctx context.Context, appointmentID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM medical_records WHERE appointment_id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, appointmentID); err != nil {
		return false, fmt.Errorf("failed to check medical record existence: %w", err)
	}
	return exists, nil
}

// List searches across patient name and CPF and orders newest first.
func (r *medicalRecordRepository) List(ctx context.Context, search string, offset, limit int) ([]*model.MedicalRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM medical_records m
		JOIN appointments a ON a.id = m.appointment_id
		JOIN patients p ON p.id = a.patient_id
		JOIN employees e ON e.id = a.doctor_id
		WHERE ($1 = '' OR p.name ILIKE '%' || $1 || '%' OR p.cpf LIKE '%' || $1 || '%')
		ORDER BY m.created_at DESC
		OFFSET $2 LIMIT $3
	`
	records := []*model.MedicalRecord{}
	if err := r.db.SelectContext(ctx, &records, query, search, offset, limit); err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return records, nil
}

func (r *medicalRecordRepository) Count(ctx context.Context, search string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM medical_records m
		JOIN appointments a ON a.id = m.appointment_id
		JOIN patients p ON p.id = a.patient_id
		WHERE ($1 = '' OR p.name ILIKE '%' || $1 || '%' OR p.cpf LIKE '%' || $1 || '%')
	`
	var count int
	if err := r.db.GetContext(ctx, &count, query, search); err != nil {
		return 0, fmt.Errorf("failed to count medical records: %w", err)
	}
	return count, nil
}
