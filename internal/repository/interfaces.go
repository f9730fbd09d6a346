package repository

import (
	"context"

	"github.com/clinicore/clinicore/internal/model"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id int64) (*model.Patient, error)
	GetByCPF(ctx context.Context, cpf string) (*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters model.PatientFilters, offset, limit int) ([]*model.Patient, error)
	ListAll(ctx context.Context) ([]*model.Patient, error)
	Count(ctx context.Context, filters model.PatientFilters) (int, error)
	CountAppointments(ctx context.Context, patientID int64) (int, error)
}

type EmployeeRepository interface {
	Create(ctx context.Context, employee *model.Employee) error
	Get(ctx context.Context, id int64) (*model.Employee, error)
	GetByCPF(ctx context.Context, cpf string) (*model.Employee, error)
	Update(ctx context.Context, employee *model.Employee) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, offset, limit int) ([]*model.Employee, error)
	Count(ctx context.Context) (int, error)
	ListWithoutUser(ctx context.Context) ([]*model.Employee, error)
	// ListDoctors returns employees holding a clinical role.
	ListDoctors(ctx context.Context) ([]*model.Employee, error)
	CountAppointments(ctx context.Context, employeeID int64) (int, error)
}

type SpecialtyRepository interface {
	Create(ctx context.Context, specialty *model.Specialty) error
	Get(ctx context.Context, id int64) (*model.Specialty, error)
	GetByName(ctx context.Context, name string) (*model.Specialty, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*model.Specialty, error)
	CountEmployees(ctx context.Context, specialtyID int64) (int, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmployee(ctx context.Context, employeeID int64) (*model.User, error)
	SetActive(ctx context.Context, id int64, active bool) error
	List(ctx context.Context) ([]*model.User, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	Get(ctx context.Context, id int64) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters model.AppointmentFilters, offset, limit int) ([]*model.Appointment, error)
	Count(ctx context.Context, filters model.AppointmentFilters) (int, error)
	// CountBetween counts appointments whose date string falls in [from, to).
	CountBetween(ctx context.Context, from, to string) (int, error)
	// ListDayQueue returns a doctor's appointments for a day prefix, limited
	// to the given statuses, ordered by date.
	ListDayQueue(ctx context.Context, doctorID int64, dayPrefix string, statuses []model.AppointmentStatus) ([]*model.Appointment, error)
}

type MedicalRecordRepository interface {
	// CreateAndComplete inserts the record and marks its appointment
	// completed, in one transaction.
	CreateAndComplete(ctx context.Context, record *model.MedicalRecord) error
	Get(ctx context.Context, id int64) (*model.MedicalRecord, error)
	ExistsForAppointment(ctx context.Context, appointmentID int64) (bool, error)
	List(ctx context.Context, search string, offset, limit int) ([]*model.MedicalRecord, error)
	Count(ctx context.Context, search string) (int, error)
}
