package patient

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/clinicore/clinicore/internal/handler"
	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/internal/service/patient"
	apperr "github.com/clinicore/clinicore/pkg/errors"
	"github.com/clinicore/clinicore/pkg/validator"
)

type Handler struct {
	service  patient.Service
	validate *validator.Validator
}

func NewHandler(service patient.Service, validate *validator.Validator) *Handler {
	return &Handler{service: service, validate: validate}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.List)
	r.GET("/new", h.NewForm)
	r.GET("/edit/:id", h.EditForm)
	r.POST("/save", h.Create)
	r.POST("/edit/:id", h.Update)
	r.DELETE("/:id", h.Delete)
	r.GET("/count", h.Count)
}

func (h *Handler) List(c *gin.Context) {
	h.renderList(c, http.StatusOK, "", "")
}

func (h *Handler) NewForm(c *gin.Context) {
	handler.Render(c, http.StatusOK, "patients/form", "patients/form_page", gin.H{})
}

func (h *Handler) EditForm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		handler.RenderNotFound(c, "invalid patient id", "/patients", "the patient list")
		return
	}

	p, err := h.service.GetPatient(c.Request.Context(), id)
	if err != nil {
		handler.RenderNotFound(c, "patient "+c.Param("id")+" does not exist", "/patients", "the patient list")
		return
	}

	form := model.PatientForm{
		Name:      p.Name,
		CPF:       p.CPF,
		BirthDate: p.BirthDate.Format(model.DateLayout),
		Contact:   p.Contact,
		Address:   p.Address,
	}
	handler.Render(c, http.StatusOK, "patients/form", "patients/form_page", gin.H{
		"Form":      form,
		"PatientID": p.ID,
	})
}

func (h *Handler) Create(c *gin.Context) {
	var form model.PatientForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, http.StatusUnprocessableEntity, &form, "invalid form data")
		return
	}
	if err := h.validate.Struct(&form); err != nil {
		h.renderForm(c, http.StatusUnprocessableEntity, &form, err.Error())
		return
	}

	if _, err := h.service.CreatePatient(c.Request.Context(), &form); err != nil {
		if apperr.Code(err) == apperr.ErrInternal {
			log.Error().Err(err).Msg("failed to create patient")
		}
		h.renderForm(c, handler.ErrorStatus(err), &form, handler.ErrorMessage(err))
		return
	}

	h.renderList(c, http.StatusOK, "patient created successfully", "")
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		handler.RenderNotFound(c, "invalid patient id", "/patients", "the patient list")
		return
	}

	var form model.PatientForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, http.StatusUnprocessableEntity, &form, "invalid form data")
		return
	}
	if err := h.validate.Struct(&form); err != nil {
		h.renderForm(c, http.StatusUnprocessableEntity, &form, err.Error())
		return
	}

	if _, err := h.service.UpdatePatient(c.Request.Context(), id, &form); err != nil {
		if apperr.IsNotFound(err) {
			handler.RenderNotFound(c, "patient "+c.Param("id")+" does not exist", "/patients", "the patient list")
			return
		}
		if apperr.Code(err) == apperr.ErrInternal {
			log.Error().Err(err).Int64("patient_id", id).Msg("failed to update patient")
		}
		handler.Render(c, handler.ErrorStatus(err), "patients/form", "patients/form_page", gin.H{
			"Form":      form,
			"PatientID": id,
			"Error":     handler.ErrorMessage(err),
		})
		return
	}

	h.renderList(c, http.StatusOK, "patient updated successfully", "")
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		handler.RenderNotFound(c, "invalid patient id", "/patients", "the patient list")
		return
	}

	if err := h.service.DeletePatient(c.Request.Context(), id); err != nil {
		if apperr.IsNotFound(err) {
			handler.RenderNotFound(c, "patient "+c.Param("id")+" does not exist", "/patients", "the patient list")
			return
		}
		if apperr.Code(err) == apperr.ErrInternal {
			log.Error().Err(err).Int64("patient_id", id).Msg("failed to delete patient")
		}
		h.renderList(c, handler.ErrorStatus(err), "", handler.ErrorMessage(err))
		return
	}

	h.renderList(c, http.StatusOK, "patient deleted successfully", "")
}

func (h *Handler) Count(c *gin.Context) {
	count, err := h.service.CountPatients(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to count patients")
		c.String(http.StatusInternalServerError, "0")
		return
	}
	c.String(http.StatusOK, strconv.Itoa(count))
}

// renderList re-queries the current page so mutation responses carry the
// refreshed listing.
func (h *Handler) renderList(c *gin.Context, status int, success, errMsg string) {
	var page model.Pagination
	_ = c.ShouldBindQuery(&page)
	var filters model.PatientFilters
	_ = c.ShouldBindQuery(&filters)

	patients, meta, err := h.service.ListPatients(c.Request.Context(), filters, page)
	if err != nil {
		log.Error().Err(err).Msg("failed to list patients")
		status = http.StatusInternalServerError
		errMsg = "internal error while loading patients"
	}

	handler.Render(c, status, "patients/list", "patients/list_page", gin.H{
		"Patients": patients,
		"Meta":     meta,
		"Search":   filters.Search,
		"Success":  success,
		"Error":    errMsg,
	})
}

func (h *Handler) renderForm(c *gin.Context, status int, form *model.PatientForm, errMsg string) {
	// Keep what the user typed.
	handler.Render(c, status, "patients/form", "patients/form_page", gin.H{
		"Form":  form,
		"Error": errMsg,
	})
}
