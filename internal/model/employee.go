package model

import "time"

type Role string

const (
	RoleDoctor       Role = "doctor"
	RoleNutritionist Role = "nutritionist"
	RoleReceptionist Role = "receptionist"
	RoleAdmin        Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleDoctor, RoleNutritionist, RoleReceptionist, RoleAdmin:
		return true
	}
	return false
}

// Clinical reports whether the role carries a medical license and a
// specialty; administrative roles carry a department instead.
func (r Role) Clinical() bool {
	return r == RoleDoctor || r == RoleNutritionist
}

type Employee struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CPF       string    `db:"cpf"`
	BirthDate time.Time `db:"birth_date"`
	Role      Role      `db:"role"`

	// Clinical-role fields
	CRM         string `db:"crm"`
	SpecialtyID *int64 `db:"specialty_id"`
	// Administrative-role field
	Department string `db:"department"`

	// Populated by list queries joining specialties.
	SpecialtyName string `db:"specialty_name"`
}

// EmployeeForm is the form-encoded payload for create and update. An empty
// EmployeeID means create.
type EmployeeForm struct {
	EmployeeID  int64  `form:"employee_id"`
	Name        string `form:"name" validate:"required"`
	CPF         string `form:"cpf" validate:"required,cpf"`
	BirthDate   string `form:"birth_date" validate:"required"`
	Role        string `form:"role" validate:"required,oneof=doctor nutritionist receptionist admin"`
	CRM         string `form:"crm"`
	SpecialtyID *int64 `form:"specialty_id"`
	Department  string `form:"department"`
}

// Clinical mirrors Role.Clinical for the typed-in role value.
func (f EmployeeForm) Clinical() bool {
	return Role(f.Role).Clinical()
}

// SpecialtySelected reports whether the form carries the given specialty,
// for pre-selecting the dropdown on edit.
func (f EmployeeForm) SpecialtySelected(id int64) bool {
	return f.SpecialtyID != nil && *f.SpecialtyID == id
}
