package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleForm struct {
	Name string `validate:"required"`
	CPF  string `validate:"required,cpf"`
	Role string `validate:"omitempty,oneof=doctor admin"`
}

func TestStructAccepts(t *testing.T) {
	v := New()

	err := v.Struct(&sampleForm{Name: "Maria", CPF: "123.456.789-00"})
	assert.NoError(t, err)
}

func TestStructReportsFirstViolation(t *testing.T) {
	v := New()

	err := v.Struct(&sampleForm{CPF: "123.456.789-00"})
	assert.EqualError(t, err, "Name is required")
}

func TestStructRejectsBadCPF(t *testing.T) {
	v := New()

	err := v.Struct(&sampleForm{Name: "Maria", CPF: "12.34"})
	assert.EqualError(t, err, "CPF must be a valid CPF")
}

func TestStructRejectsBadOneof(t *testing.T) {
	v := New()

	err := v.Struct(&sampleForm{Name: "Maria", CPF: "12345678900", Role: "janitor"})
	assert.EqualError(t, err, "Role must be one of: doctor admin")
}

func TestIsCPF(t *testing.T) {
	assert.True(t, IsCPF("123.456.789-00"))
	assert.True(t, IsCPF("12345678900"))
	assert.True(t, IsCPF("123456789-00"))
	assert.False(t, IsCPF("1234567890"))
	assert.False(t, IsCPF("abc.def.ghi-jk"))
	assert.False(t, IsCPF("123.456.789-001"))
}
