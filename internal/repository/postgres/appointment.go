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

type appointmentRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

const appointmentColumns = `
	a.id, a.patient_id, a.doctor_id, a.date, a.status, a.notes, a.cost,
	p.name AS patient_name, p.cpf AS patient_cpf, e.name AS doctor_name
`

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (patient_id, doctor_id, date, status, notes, cost)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.Date,
		appointment.Status,
		appointment.Notes,
		appointment.Cost,
	).Scan(&appointment.ID)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		JOIN employees e ON e.id = a.doctor_id
		WHERE a.id = $1
	`
	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE appointments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.NotFound("appointment", nil)
	}
	return nil
}

// List applies the doctor and day-prefix filters before pagination and
// orders by the date string ascending.
func (r *appointmentRepository) List(ctx context.Context, filters model.AppointmentFilters, offset, limit int) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		JOIN employees e ON e.id = a.doctor_id
		WHERE ($1 = 0 OR a.doctor_id = $1)
		  AND ($2 = '' OR a.date LIKE $2 || '%')
		ORDER BY a.date ASC
		OFFSET $3 LIMIT $4
	`
	appointments := []*model.Appointment{}
	err := r.db.SelectContext(ctx, &appointments, query, filters.DoctorID, filters.Date, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Count(ctx context.Context, filters model.AppointmentFilters) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM appointments a
		WHERE ($1 = 0 OR a.doctor_id = $1)
		  AND ($2 = '' OR a.date LIKE $2 || '%')
	`
	var count int
	if err := r.db.GetContext(ctx, &count, query, filters.DoctorID, filters.Date); err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

func (r *appointmentRepository) CountBetween(ctx context.Context, from, to string) (int, error) {
	query := `SELECT COUNT(*) FROM appointments WHERE date >= $1 AND date < $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, from, to); err != nil {
		return 0, fmt.Errorf("failed to count appointments in range: %w", err)
	}
	return count, nil
}

func (r *appointmentRepository) ListDayQueue(ctx context.Context, doctorID int64, dayPrefix string, statuses []model.AppointmentStatus) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		JOIN employees e ON e.id = a.doctor_id
		WHERE a.doctor_id = ?
		  AND a.date LIKE ? || '%'
		  AND a.status IN (?)
		ORDER BY a.date ASC
	`
	query, args, err := sqlx.In(query, doctorID, dayPrefix, statuses)
	if err != nil {
		return nil, fmt.Errorf("failed to build day queue query: %w", err)
	}
	query = r.db.Rebind(query)

	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list day queue: %w", err)
	}
	return appointments, nil
}
