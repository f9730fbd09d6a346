package model

type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusWaiting    AppointmentStatus = "waiting"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCanceled   AppointmentStatus = "canceled"
)

// AppointmentStatuses lists every valid status, in lifecycle order.
var AppointmentStatuses = []AppointmentStatus{
	AppointmentStatusScheduled,
	AppointmentStatusWaiting,
	AppointmentStatusInProgress,
	AppointmentStatusCompleted,
	AppointmentStatusCanceled,
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusWaiting,
		AppointmentStatusInProgress, AppointmentStatusCompleted,
		AppointmentStatusCanceled:
		return true
	}
	return false
}

// Startable reports whether a consultation may begin from this status.
// Completed and canceled appointments cannot be reopened.
func (s AppointmentStatus) Startable() bool {
	return s == AppointmentStatusScheduled || s == AppointmentStatusWaiting
}

type Appointment struct {
	ID        int64 `db:"id"`
	PatientID int64 `db:"patient_id"`
	DoctorID  int64 `db:"doctor_id"`
	// Date is an ISO-8601 string (YYYY-MM-DDTHH:MM:SS); lexical order is
	// chronological order.
	Date   string            `db:"date"`
	Status AppointmentStatus `db:"status"`
	Notes  string            `db:"notes"`
	Cost   float64           `db:"cost"`

	// Populated by list queries joining patients and employees.
	PatientName string `db:"patient_name"`
	PatientCPF  string `db:"patient_cpf"`
	DoctorName  string `db:"doctor_name"`
}

type AppointmentForm struct {
	PatientID int64   `form:"patient_id" validate:"required"`
	DoctorID  int64   `form:"doctor_id" validate:"required"`
	Date      string  `form:"date" validate:"required"`
	Notes     string  `form:"notes"`
	Cost      float64 `form:"cost"`
}

// AppointmentFilters narrows appointment listings before pagination.
type AppointmentFilters struct {
	DoctorID int64 `form:"doctor_id"`
	// Date filters by day prefix (YYYY-MM-DD).
	Date string `form:"date"`
}
