package model

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

type MedicalRecord struct {
	ID            int64 `db:"id"`
	AppointmentID int64 `db:"appointment_id"`

	ChiefComplaint string `db:"chief_complaint"`
	Diagnosis      string `db:"diagnosis"`
	// Prescription is a structured JSON payload.
	Prescription       types.JSONText `db:"prescription"`
	PhysicalExam       string         `db:"physical_exam"`
	MedicalCertificate string         `db:"medical_certificate"`
	// ICDCode is the CID/ICD-10 diagnostic classification code.
	ICDCode   string    `db:"icd_code"`
	CreatedAt time.Time `db:"created_at"`

	// Populated by history queries joining appointments and patients.
	PatientName     string `db:"patient_name"`
	PatientCPF      string `db:"patient_cpf"`
	AppointmentDate string `db:"appointment_date"`
	DoctorName      string `db:"doctor_name"`
}

type MedicalRecordForm struct {
	ChiefComplaint     string `form:"chief_complaint" validate:"required"`
	PhysicalExam       string `form:"physical_exam" validate:"required"`
	Diagnosis          string `form:"diagnosis" validate:"required"`
	Prescription       string `form:"prescription" validate:"required"`
	ICDCode            string `form:"icd_code" validate:"max=10"`
	MedicalCertificate string `form:"medical_certificate"`
}
