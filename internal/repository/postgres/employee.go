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

type employeeRepository struct {
	db *sqlx.DB
}

func NewEmployeeRepository(db *sqlx.DB) repository.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	query := `
		INSERT INTO employees (name, cpf, birth_date, role, crm, specialty_id, department)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		employee.Name,
		employee.CPF,
		employee.BirthDate,
		employee.Role,
		employee.CRM,
		employee.SpecialtyID,
		employee.Department,
	).Scan(&employee.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("CPF already in use by another employee", err)
		}
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

func (r *employeeRepository) Get(ctx context.Context, id int64) (*model.Employee, error) {
	query := `
		SELECT e.id, e.name, e.cpf, e.birth_date, e.role, e.crm, e.specialty_id, e.department,
			   COALESCE(s.name, '') AS specialty_name
		FROM employees e
		LEFT JOIN specialties s ON s.id = e.specialty_id
		WHERE e.id = $1
	`
	var employee model.Employee
	err := r.db.GetContext(ctx, &employee, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("employee", err)
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return &employee, nil
}

func (r *employeeRepository) GetByCPF(ctx context.Context, cpf string) (*model.Employee, error) {
	query := `
		SELECT id, name, cpf, birth_date, role, crm, specialty_id, department
		FROM employees
		WHERE cpf = $1
	`
	var employee model.Employee
	err := r.db.GetContext(ctx, &employee, query, cpf)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("employee", err)
		}
		return nil, fmt.Errorf("failed to get employee by cpf: %w", err)
	}
	return &employee, nil
}

func (r *employeeRepository) Update(ctx context.Context, employee *model.Employee) error {
	query := `
		UPDATE employees
		SET name = $1, cpf = $2, birth_date = $3, role = $4, crm = $5, specialty_id = $6, department = $7
		WHERE id = $8
	`
	result, err := r.db.ExecContext(ctx, query,
		employee.Name,
		employee.CPF,
		employee.BirthDate,
		employee.Role,
		employee.CRM,
		employee.SpecialtyID,
		employee.Department,
		employee.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("CPF already in use by another employee", err)
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.NotFound("employee", nil)
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.NotFound("employee", nil)
	}
	return nil
}

func (r *employeeRepository) List(ctx context.Context, offset, limit int) ([]*model.Employee, error) {
	query := `
		SELECT e.id, e.name, e.cpf, e.birth_date, e.role, e.crm, e.specialty_id, e.department,
			   COALESCE(s.name, '') AS specialty_name
		FROM employees e
		LEFT JOIN specialties s ON s.id = e.specialty_id
		ORDER BY e.name
		OFFSET $1 LIMIT $2
	`
	employees := []*model.Employee{}
	if err := r.db.SelectContext(ctx, &employees, query, offset, limit); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (r *employeeRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM employees`); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return count, nil
}

// ListWithoutUser returns employees that have no user account yet.
func (r *employeeRepository) ListWithoutUser(ctx context.Context) ([]*model.Employee, error) {
	query := `
		SELECT e.id, e.name, e.cpf, e.birth_date, e.role, e.crm, e.specialty_id, e.department
		FROM employees e
		LEFT JOIN users u ON u.employee_id = e.id
		WHERE u.id IS NULL
		ORDER BY e.name
	`
	employees := []*model.Employee{}
	if err := r.db.SelectContext(ctx, &employees, query); err != nil {
		return nil, fmt.Errorf("failed to list employees without account: %w", err)
	}
	return employees, nil
}

// ListDoctors returns employees holding a clinical role, for the
// appointment form dropdowns.
func (r *employeeRepository) ListDoctors(ctx context.Context) ([]*model.Employee, error) {
	query := `
		SELECT e.id, e.name, e.cpf, e.birth_date, e.role, e.crm, e.specialty_id, e.department,
			   COALESCE(s.name, '') AS specialty_name
		FROM employees e
		LEFT JOIN specialties s ON s.id = e.specialty_id
		WHERE e.role IN ('doctor', 'nutritionist')
		ORDER BY e.name
	`
	employees := []*model.Employee{}
	if err := r.db.SelectContext(ctx, &employees, query); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return employees, nil
}

func (r *employeeRepository) CountAppointments(ctx context.Context, employeeID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM appointments WHERE doctor_id = $1`, employeeID)
	if err != nil {
		return 0, fmt.Errorf("failed to count employee appointments: %w", err)
	}
	return count, nil
}
