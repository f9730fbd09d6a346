package consultation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	apperr "github.com/clinicore/clinicore/pkg/errors"

	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/internal/repository"
)

// queueStatuses are the states shown on a doctor's daily board.
var queueStatuses = []model.AppointmentStatus{
	model.AppointmentStatusScheduled,
	model.AppointmentStatusWaiting,
	model.AppointmentStatusInProgress,
}

type Service interface {
	// TodayQueue lists the doctor's appointments for today that are still
	// open (scheduled, waiting or in progress).
	TodayQueue(ctx context.Context, doctorID int64) ([]*model.Appointment, error)
	// StartConsultation moves a scheduled/waiting appointment to
	// in_progress; completed and canceled appointments are rejected.
	StartConsultation(ctx context.Context, appointmentID int64) (*model.Appointment, error)
	// SaveRecord creates the medical record and completes the appointment.
	// An appointment carries at most one record.
	SaveRecord(ctx context.Context, appointmentID int64, form *model.MedicalRecordForm) (*model.MedicalRecord, error)
	// GetAppointment fetches the appointment backing an open consultation
	// form.
	GetAppointment(ctx context.Context, id int64) (*model.Appointment, error)
	GetRecord(ctx context.Context, id int64) (*model.MedicalRecord, error)
	History(ctx context.Context, search string, page model.Pagination) ([]*model.MedicalRecord, model.PageMeta, error)
}

type service struct {
	appointmentRepo repository.AppointmentRepository
	recordRepo      repository.MedicalRecordRepository
}

func NewService(appointmentRepo repository.AppointmentRepository, recordRepo repository.MedicalRecordRepository) Service {
	return &service{
		appointmentRepo: appointmentRepo,
		recordRepo:      recordRepo,
	}
}

func (s *service) TodayQueue(ctx context.Context, doctorID int64) ([]*model.Appointment, error) {
	today := time.Now().Format(model.DateLayout)
	return s.appointmentRepo.ListDayQueue(ctx, doctorID, today, queueStatuses)
}

func (s *service) StartConsultation(ctx context.Context, appointmentID int64) (*model.Appointment, error) {
	appointment, err := s.appointmentRepo.Get(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	switch {
	case appointment.Status == model.AppointmentStatusInProgress:
		// Re-opening the form for an ongoing consultation is fine.
		return appointment, nil
	case appointment.Status.Startable():
		if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, model.AppointmentStatusInProgress); err != nil {
			return nil, fmt.Errorf("failed to start consultation: %w", err)
		}
		appointment.Status = model.AppointmentStatusInProgress
		return appointment, nil
	default:
		return nil, apperr.Conflict(
			fmt.Sprintf("appointment is %s and cannot be started", appointment.Status), nil)
	}
}

func (s *service) SaveRecord(ctx context.Context, appointmentID int64, form *model.MedicalRecordForm) (*model.MedicalRecord, error) {
	if _, err := s.appointmentRepo.Get(ctx, appointmentID); err != nil {
		return nil, err
	}

	exists, err := s.recordRepo.ExistsForAppointment(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing record: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("appointment already has a medical record", nil)
	}

	prescription, err := json.Marshal(map[string]string{"text": form.Prescription})
	if err != nil {
		return nil, fmt.Errorf("failed to encode prescription: %w", err)
	}

	record := &model.MedicalRecord{
		AppointmentID:      appointmentID,
		ChiefComplaint:     form.ChiefComplaint,
		Diagnosis:          form.Diagnosis,
		Prescription:       prescription,
		PhysicalExam:       form.PhysicalExam,
		MedicalCertificate: form.MedicalCertificate,
		ICDCode:            form.ICDCode,
	}
	if err := s.recordRepo.CreateAndComplete(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *service) GetAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	return s.appointmentRepo.Get(ctx, id)
}

func (s *service) GetRecord(ctx context.Context, id int64) (*model.MedicalRecord, error) {
	return s.recordRepo.Get(ctx, id)
}

func (s *service) History(ctx context.Context, search string, page model.Pagination) ([]*model.MedicalRecord, model.PageMeta, error) {
	page = page.Normalize()

	total, err := s.recordRepo.Count(ctx, search)
	if err != nil {
		return nil, model.PageMeta{}, fmt.Errorf("failed to count medical records: %w", err)
	}

	records, err := s.recordRepo.List(ctx, search, page.Offset(), page.Size)
	if err != nil {
		return nil, model.PageMeta{}, fmt.Errorf("failed to list medical records: %w", err)
	}

	return records, model.NewPageMeta(page, total), nil
}
