package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeAndMessage(t *testing.T) {
	err := NotFound("patient", nil)

	assert.Equal(t, ErrNotFound, Code(err))
	assert.Equal(t, "patient not found", Message(err))
	assert.True(t, IsNotFound(err))
}

func TestCodeSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("saving: %w", Conflict("CPF already registered", nil))

	assert.Equal(t, ErrConflict, Code(err))
	assert.Equal(t, "CPF already registered", Message(err))
	assert.True(t, IsConflict(err))
}

func TestUnknownErrorsCollapseToInternal(t *testing.T) {
	err := errors.New("driver: connection reset")

	assert.Equal(t, ErrInternal, Code(err))
	assert.Equal(t, "internal server error", Message(err))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("sql: no rows in result set")
	err := NotFound("employee", cause)

	assert.ErrorIs(t, err, cause)
}
