package appointment

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/clinicore/clinicore/internal/handler"
	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/internal/service/appointment"
	apperr "github.com/clinicore/clinicore/pkg/errors"
	"github.com/clinicore/clinicore/pkg/validator"
)

type Handler struct {
	service  appointment.Service
	validate *validator.Validator
}

func NewHandler(service appointment.Service, validate *validator.Validator) *Handler {
	return &Handler{service: service, validate: validate}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.List)
	r.GET("/new", h.NewForm)
	r.POST("/save", h.Create)
	r.POST("/:id/status", h.UpdateStatus)
	r.DELETE("/:id", h.Delete)
	r.GET("/count", h.Count)
}

func (h *Handler) List(c *gin.Context) {
	h.renderList(c, http.StatusOK, "", "")
}

func (h *Handler) NewForm(c *gin.Context) {
	patients, doctors, err := h.service.FormOptions(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load appointment form options")
	}
	handler.Render(c, http.StatusOK, "appointments/form", "appointments/form_page", gin.H{
		"Patients": patients,
		"Doctors":  doctors,
	})
}

func (h *Handler) Create(c *gin.Context) {
	var form model.AppointmentForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, http.StatusUnprocessableEntity, &form, "invalid form data")
		return
	}
	if err := h.validate.Struct(&form); err != nil {
		h.renderForm(c, http.StatusUnprocessableEntity, &form, err.Error())
		return
	}

	if _, err := h.service.CreateAppointment(c.Request.Context(), &form); err != nil {
		if apperr.Code(err) == apperr.ErrInternal {
			log.Error().Err(err).Msg("failed to create appointment")
		}
		h.renderForm(c, handler.ErrorStatus(err), &form, handler.ErrorMessage(err))
		return
	}

	h.renderList(c, http.StatusOK, "appointment scheduled successfully", "")
}

// UpdateStatus moves an appointment to the submitted status and refreshes
// the list so the row reflects the change.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		handler.RenderNotFound(c, "invalid appointment id", "/appointments", "the appointment list")
		return
	}

	status := c.PostForm("status")
	if status == "" {
		status = c.Query("status")
	}

	if _, err := h.service.UpdateStatus(c.Request.Context(), id, status); err != nil {
		if apperr.IsNotFound(err) {
			handler.RenderNotFound(c, "appointment "+c.Param("id")+" does not exist", "/appointments", "the appointment list")
			return
		}
		if apperr.Code(err) == apperr.ErrInternal {
			log.Error().Err(err).Int64("appointment_id", id).Msg("failed to update appointment status")
		}
		h.renderList(c, handler.ErrorStatus(err), "", handler.ErrorMessage(err))
		return
	}

	h.renderList(c, http.StatusOK, "appointment status updated", "")
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		handler.RenderNotFound(c, "invalid appointment id", "/appointments", "the appointment list")
		return
	}

	if err := h.service.DeleteAppointment(c.Request.Context(), id); err != nil {
		if apperr.IsNotFound(err) {
			handler.RenderNotFound(c, "appointment "+c.Param("id")+" does not exist", "/appointments", "the appointment list")
			return
		}
		if apperr.Code(err) == apperr.ErrInternal {
			log.Error().Err(err).Int64("appointment_id", id).Msg("failed to delete appointment")
		}
		h.renderList(c, handler.ErrorStatus(err), "", handler.ErrorMessage(err))
		return
	}

	h.renderList(c, http.StatusOK, "appointment deleted successfully", "")
}

func (h *Handler) Count(c *gin.Context) {
	count, err := h.service.CountToday(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to count today's appointments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count appointments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *Handler) renderList(c *gin.Context, status int, success, errMsg string) {
	var filters model.AppointmentFilters
	_ = c.ShouldBindQuery(&filters)
	var page model.Pagination
	_ = c.ShouldBindQuery(&page)

	appointments, meta, err := h.service.ListAppointments(c.Request.Context(), filters, page)
	if err != nil {
		log.Error().Err(err).Msg("failed to list appointments")
		status = http.StatusInternalServerError
		errMsg = "internal error while loading appointments"
	}

	doctors, err := h.service.ListDoctors(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list doctors for appointment filter")
	}

	handler.Render(c, status, "appointments/list", "appointments/list_page", gin.H{
		"Appointments": appointments,
		"Meta":         meta,
		"Doctors":      doctors,
		"Filters":      filters,
		"Statuses":     model.AppointmentStatuses,
		"Success":      success,
		"Error":        errMsg,
	})
}

func (h *Handler) renderForm(c *gin.Context, status int, form *model.AppointmentForm, errMsg string) {
	patients, doctors, err := h.service.FormOptions(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load appointment form options")
	}
	handler.Render(c, status, "appointments/form", "appointments/form_page", gin.H{
		"Form":     form,
		"Patients": patients,
		"Doctors":  doctors,
		"Error":    errMsg,
	})
}
