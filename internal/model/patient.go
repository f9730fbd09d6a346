package model

import "time"

type Patient struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CPF       string    `db:"cpf"`
	BirthDate time.Time `db:"birth_date"`
	Contact   string    `db:"contact"`
	Address   string    `db:"address"`
}

// PatientForm is the form-encoded payload for create and update.
type PatientForm struct {
	Name      string `form:"name" validate:"required"`
	CPF       string `form:"cpf" validate:"required,cpf"`
	BirthDate string `form:"birth_date" validate:"required"`
	Contact   string `form:"contact" validate:"required"`
	Address   string `form:"address"`
}

// PatientFilters narrows patient listings before pagination is applied.
type PatientFilters struct {
	// Search matches name or CPF as a substring.
	Search string `form:"search"`
}
