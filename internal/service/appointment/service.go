package appointment

import (
	"context"
	"fmt"
	"time"

	apperr "github.com/clinicore/clinicore/pkg/errors"

	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/internal/repository"
)

type Service interface {
	CreateAppointment(ctx context.Context, form *model.AppointmentForm) (*model.Appointment, error)
	GetAppointment(ctx context.Context, id int64) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*model.Appointment, error)
	DeleteAppointment(ctx context.Context, id int64) error
	ListAppointments(ctx context.Context, filters model.AppointmentFilters, page model.Pagination) ([]*model.Appointment, model.PageMeta, error)
	CountToday(ctx context.Context) (int, error)
	// ListDoctors returns clinical employees, for the list filter dropdown.
	ListDoctors(ctx context.Context) ([]*model.Employee, error)
	// FormOptions returns the patients and doctors offered by the booking form.
	FormOptions(ctx context.Context) ([]*model.Patient, []*model.Employee, error)
}

type service struct {
	repo         repository.AppointmentRepository
	patientRepo  repository.PatientRepository
	employeeRepo repository.EmployeeRepository
	recordRepo   repository.MedicalRecordRepository
}

func NewService(
	repo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	employeeRepo repository.EmployeeRepository,
	recordRepo repository.MedicalRecordRepository,
) Service {
	return &service{
		repo:         repo,
		patientRepo:  patientRepo,
		employeeRepo: employeeRepo,
		recordRepo:   recordRepo,
	}
}

// CreateAppointment validates the patient and the doctor (the employee must
// hold a clinical role) and always starts the appointment at "scheduled".
func (s *service) CreateAppointment(ctx context.Context, form *model.AppointmentForm) (*model.Appointment, error) {
	if _, err := time.Parse(model.DateTimeLayout, form.Date); err != nil {
		// Browser datetime-local inputs omit seconds.
		if _, err := time.Parse("2006-01-02T15:04", form.Date); err != nil {
			return nil, apperr.Validation("date must be in YYYY-MM-DDTHH:MM:SS format", err)
		}
		form.Date += ":00"
	}

	if _, err := s.patientRepo.Get(ctx, form.PatientID); err != nil {
		return nil, err
	}

	doctor, err := s.employeeRepo.Get(ctx, form.DoctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.Role.Clinical() {
		return nil, apperr.Validation("selected employee is not a doctor", nil)
	}

	appointment := &model.Appointment{
		PatientID: form.PatientID,
		DoctorID:  form.DoctorID,
		Date:      form.Date,
		Status:    model.AppointmentStatusScheduled,
		Notes:     form.Notes,
		Cost:      form.Cost,
	}
	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return appointment, nil
}

func (s *service) GetAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

// UpdateStatus accepts any value in the valid status set regardless of the
// current state. Reception drives waiting/canceled through this endpoint
// from arbitrary states, so it is a membership check, not a transition
// guard.
func (s *service) UpdateStatus(ctx context.Context, id int64, status string) (*model.Appointment, error) {
	newStatus := model.AppointmentStatus(status)
	if !newStatus.Valid() {
		return nil, apperr.Validation("invalid status", nil)
	}

	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}
	appointment.Status = newStatus
	return appointment, nil
}

// DeleteAppointment is guarded: an appointment that already has a medical
// record cannot be removed.
func (s *service) DeleteAppointment(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	exists, err := s.recordRepo.ExistsForAppointment(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check appointment record: %w", err)
	}
	if exists {
		return apperr.Conflict("appointment has a medical record and cannot be deleted", nil)
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) ListAppointments(ctx context.Context, filters model.AppointmentFilters, page model.Pagination) ([]*model.Appointment, model.PageMeta, error) {
	page = page.Normalize()

	total, err := s.repo.Count(ctx, filters)
	if err != nil {
		return nil, model.PageMeta{}, fmt.Errorf("failed to count appointments: %w", err)
	}

	appointments, err := s.repo.List(ctx, filters, page.Offset(), page.Size)
	if err != nil {
		return nil, model.PageMeta{}, fmt.Errorf("failed to list appointments: %w", err)
	}

	return appointments, model.NewPageMeta(page, total), nil
}

func (s *service) ListDoctors(ctx context.Context) ([]*model.Employee, error) {
	return s.employeeRepo.ListDoctors(ctx)
}

func (s *service) FormOptions(ctx context.Context) ([]*model.Patient, []*model.Employee, error) {
	patients, err := s.patientRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list patients: %w", err)
	}
	doctors, err := s.employeeRepo.ListDoctors(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return patients, doctors, nil
}

// CountToday counts appointments whose date string falls within the current
// day, using the lexical ordering of the ISO strings.
func (s *service) CountToday(ctx context.Context) (int, error) {
	today := time.Now()
	from := today.Format(model.DateLayout) + "T00:00:00"
	to := today.AddDate(0, 0, 1).Format(model.DateLayout) + "T00:00:00"
	return s.repo.CountBetween(ctx, from, to)
}
