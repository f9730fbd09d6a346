package consultation

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/clinicore/clinicore/internal/handler"
	"github.com/clinicore/clinicore/internal/middleware"
	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/internal/service/consultation"
	apperr "github.com/clinicore/clinicore/pkg/errors"
	"github.com/clinicore/clinicore/pkg/validator"
)

type Handler struct {
	service  consultation.Service
	validate *validator.Validator
}

func NewHandler(service consultation.Service, validate *validator.Validator) *Handler {
	return &Handler{service: service, validate: validate}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.Queue)
	r.GET("/history", h.History)
	r.GET("/view/:id", h.View)
	r.GET("/start/:id", h.Start)
	r.POST("/save/:id", h.Save)
}

// Queue shows the logged-in doctor's appointments for today that still
// await or are undergoing consultation.
func (h *Handler) Queue(c *gin.Context) {
	h.renderQueue(c, http.StatusOK, "")
}

// Start opens the consultation form, moving the appointment to
// in_progress unless it is already there.
func (h *Handler) Start(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		handler.RenderNotFound(c, "invalid appointment id", "/consultations", "the consultation queue")
		return
	}

	appointment, err := h.service.StartConsultation(c.Request.Context(), id)
	if err != nil {
		if apperr.IsNotFound(err) {
			handler.RenderNotFound(c, "appointment "+c.Param("id")+" does not exist", "/consultations", "the consultation queue")
			return
		}
		if apperr.Code(err) == apperr.ErrInternal {
			log.Error().Err(err).Int64("appointment_id", id).Msg("failed to start consultation")
		}
		h.renderQueue(c, handler.ErrorStatus(err), handler.ErrorMessage(err))
		return
	}

	handler.Render(c, http.StatusOK, "consultations/form", "consultations/form_page", gin.H{
		"Appointment": appointment,
	})
}

// Save persists the medical record, completes the appointment and lands
// back on the queue. The pushed URL keeps the browser history consistent
// after the fragment swap.
func (h *Handler) Save(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		handler.RenderNotFound(c, "invalid appointment id", "/consultations", "the consultation queue")
		return
	}

	var form model.MedicalRecordForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, http.StatusUnprocessableEntity, id, &form, "invalid form data")
		return
	}
	if err := h.validate.Struct(&form); err != nil {
		h.renderForm(c, http.StatusUnprocessableEntity, id, &form, err.Error())
		return
	}

	if _, err := h.service.SaveRecord(c.Request.Context(), id, &form); err != nil {
		if apperr.IsNotFound(err) {
			handler.RenderNotFound(c, "appointment "+c.Param("id")+" does not exist", "/consultations", "the consultation queue")
			return
		}
		if apperr.Code(err) == apperr.ErrInternal {
			log.Error().Err(err).Int64("appointment_id", id).Msg("failed to save medical record")
		}
		h.renderForm(c, handler.ErrorStatus(err), id, &form, handler.ErrorMessage(err))
		return
	}

	if middleware.IsFragment(c) {
		c.Header(middleware.HeaderHXPushURL, "/consultations")
	}
	h.renderQueue(c, http.StatusOK, "")
}

// History lists saved records, newest first, searchable by patient name
// or CPF.
func (h *Handler) History(c *gin.Context) {
	var page model.Pagination
	_ = c.ShouldBindQuery(&page)
	search := c.Query("search")

	records, meta, err := h.service.History(c.Request.Context(), search, page)
	status := http.StatusOK
	errMsg := ""
	if err != nil {
		log.Error().Err(err).Msg("failed to list consultation history")
		status = http.StatusInternalServerError
		errMsg = "internal error while loading history"
	}

	handler.Render(c, status, "consultations/history", "consultations/history_page", gin.H{
		"Records": records,
		"Meta":    meta,
		"Search":  search,
		"Error":   errMsg,
	})
}

// View renders a single record read-only, as a modal fragment.
func (h *Handler) View(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		handler.RenderNotFound(c, "invalid record id", "/consultations/history", "the consultation history")
		return
	}

	record, err := h.service.GetRecord(c.Request.Context(), id)
	if err != nil {
		if apperr.IsNotFound(err) {
			handler.RenderNotFound(c, "record "+c.Param("id")+" does not exist", "/consultations/history", "the consultation history")
			return
		}
		log.Error().Err(err).Int64("record_id", id).Msg("failed to load medical record")
		handler.RenderNotFound(c, "record could not be loaded", "/consultations/history", "the consultation history")
		return
	}

	handler.Render(c, http.StatusOK, "consultations/view", "consultations/view_page", gin.H{
		"Record": record,
	})
}

func (h *Handler) renderQueue(c *gin.Context, status int, errMsg string) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.RedirectToLogin(c)
		return
	}

	queue, err := h.service.TodayQueue(c.Request.Context(), user.EmployeeID)
	if err != nil {
		log.Error().Err(err).Int64("doctor_id", user.EmployeeID).Msg("failed to load consultation queue")
		status = http.StatusInternalServerError
		errMsg = "internal error while loading the queue"
	}

	handler.Render(c, status, "consultations/queue", "consultations/queue_page", gin.H{
		"Queue": queue,
		"Error": errMsg,
	})
}

func (h *Handler) renderForm(c *gin.Context, status int, appointmentID int64, form *model.MedicalRecordForm, errMsg string) {
	appointment, err := h.service.GetAppointment(c.Request.Context(), appointmentID)
	if err != nil {
		handler.RenderNotFound(c, "appointment does not exist", "/consultations", "the consultation queue")
		return
	}

	handler.Render(c, status, "consultations/form", "consultations/form_page", gin.H{
		"Appointment": appointment,
		"Form":        form,
		"Error":       errMsg,
	})
}
