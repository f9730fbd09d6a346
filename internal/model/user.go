package model

// User is a login identity layered onto a staff Employee.
type User struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	IsActive     bool   `db:"is_active"`
	EmployeeID   int64  `db:"employee_id"`

	// Populated by queries joining employees.
	EmployeeName string `db:"employee_name"`
	EmployeeRole Role   `db:"employee_role"`
}

type UserForm struct {
	Username   string `form:"username" validate:"required,min=3,max=60"`
	Password   string `form:"password" validate:"required,min=8"`
	EmployeeID int64  `form:"employee_id" validate:"required"`
}

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}
