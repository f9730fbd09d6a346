package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/clinicore/clinicore/internal/service/appointment"
	"github.com/clinicore/clinicore/internal/service/patient"
)

// Handler serves the dashboard and the operational endpoints.
type Handler struct {
	patientSvc     patient.Service
	appointmentSvc appointment.Service
}

func NewHandler(patientSvc patient.Service, appointmentSvc appointment.Service) *Handler {
	return &Handler{
		patientSvc:     patientSvc,
		appointmentSvc: appointmentSvc,
	}
}

// Home renders the dashboard with the day's headline numbers.
func (h *Handler) Home(c *gin.Context) {
	patientCount, err := h.patientSvc.CountPatients(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to count patients for dashboard")
	}
	todayCount, err := h.appointmentSvc.CountToday(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to count today's appointments for dashboard")
	}

	Render(c, http.StatusOK, "home/dashboard", "home/index", gin.H{
		"PatientCount":     patientCount,
		"AppointmentCount": todayCount,
	})
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) MetricsHandler(c *gin.Context) {
	promhttp.Handler().ServeHTTP(c.Writer, c.Request)
}
