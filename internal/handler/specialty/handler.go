package specialty

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/clinicore/clinicore/internal/handler"
	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/internal/service/specialty"
	apperr "github.com/clinicore/clinicore/pkg/errors"
	"github.com/clinicore/clinicore/pkg/validator"
)

type Handler struct {
	service  specialty.Service
	validate *validator.Validator
}

func NewHandler(service specialty.Service, validate *validator.Validator) *Handler {
	return &Handler{service: service, validate: validate}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/manage", h.Manage)
	r.POST("", h.Create)
	r.DELETE("/delete/:id", h.Delete)
}

// Manage renders the combined create-form-plus-list management view.
func (h *Handler) Manage(c *gin.Context) {
	h.render(c, http.StatusOK, "", "")
}

func (h *Handler) Create(c *gin.Context) {
	var form model.SpecialtyForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusUnprocessableEntity, "", "invalid form data")
		return
	}
	if err := h.validate.Struct(&form); err != nil {
		h.render(c, http.StatusUnprocessableEntity, "", err.Error())
		return
	}

	if _, err := h.service.CreateSpecialty(c.Request.Context(), &form); err != nil {
		if apperr.Code(err) == apperr.ErrInternal {
			log.Error().Err(err).Msg("failed to create specialty")
		}
		h.render(c, handler.ErrorStatus(err), "", handler.ErrorMessage(err))
		return
	}

	h.render(c, http.StatusOK, "specialty created successfully", "")
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		handler.RenderNotFound(c, "invalid specialty id", "/specialties/manage", "the specialty list")
		return
	}

	if err := h.service.DeleteSpecialty(c.Request.Context(), id); err != nil {
		if apperr.IsNotFound(err) {
			handler.RenderNotFound(c, "specialty "+c.Param("id")+" does not exist", "/specialties/manage", "the specialty list")
			return
		}
		if apperr.Code(err) == apperr.ErrInternal {
			log.Error().Err(err).Int64("specialty_id", id).Msg("failed to delete specialty")
		}
		h.render(c, handler.ErrorStatus(err), "", handler.ErrorMessage(err))
		return
	}

	h.render(c, http.StatusOK, "specialty deleted successfully", "")
}

func (h *Handler) render(c *gin.Context, status int, success, errMsg string) {
	specialties, err := h.service.ListSpecialties(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list specialties")
		status = http.StatusInternalServerError
		errMsg = "internal error while loading specialties"
	}

	handler.Render(c, status, "specialties/manage", "specialties/manage_page", gin.H{
		"Specialties": specialties,
		"Success":     success,
		"Error":       errMsg,
	})
}
