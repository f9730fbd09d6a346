package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatusValid(t *testing.T) {
	for _, s := range AppointmentStatuses {
		assert.True(t, s.Valid(), "status %s should be valid", s)
	}
	assert.False(t, AppointmentStatus("done").Valid())
	assert.False(t, AppointmentStatus("").Valid())
}

func TestAppointmentStatusStartable(t *testing.T) {
	assert.True(t, AppointmentStatusScheduled.Startable())
	assert.True(t, AppointmentStatusWaiting.Startable())
	assert.False(t, AppointmentStatusInProgress.Startable())
	assert.False(t, AppointmentStatusCompleted.Startable())
	assert.False(t, AppointmentStatusCanceled.Startable())
}

func TestRoleClinical(t *testing.T) {
	assert.True(t, RoleDoctor.Clinical())
	assert.True(t, RoleNutritionist.Clinical())
	assert.False(t, RoleReceptionist.Clinical())
	assert.False(t, RoleAdmin.Clinical())
}
