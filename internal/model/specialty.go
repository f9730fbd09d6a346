package model

type Specialty struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type SpecialtyForm struct {
	Name string `form:"name" validate:"required,max=120"`
}
