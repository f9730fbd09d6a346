package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/clinicore/clinicore/internal/handler"
	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/internal/service/user"
	apperr "github.com/clinicore/clinicore/pkg/errors"
	"github.com/clinicore/clinicore/pkg/validator"
)

type Handler struct {
	service  user.Service
	validate *validator.Validator
}

func NewHandler(service user.Service, validate *validator.Validator) *Handler {
	return &Handler{service: service, validate: validate}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.List)
	r.POST("/save", h.Create)
	r.POST("/toggle-status/:id", h.ToggleStatus)
}

// List shows existing accounts plus the employees still without one,
// so the create form only offers valid candidates.
func (h *Handler) List(c *gin.Context) {
	h.renderList(c, http.StatusOK, "", "")
}

func (h *Handler) Create(c *gin.Context) {
	var form model.UserForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderList(c, http.StatusUnprocessableEntity, "", "invalid form data")
		return
	}
	if err := h.validate.Struct(&form); err != nil {
		h.renderList(c, http.StatusUnprocessableEntity, "", err.Error())
		return
	}

	if _, err := h.service.CreateUser(c.Request.Context(), &form); err != nil {
		if apperr.Code(err) == apperr.ErrInternal {
			log.Error().Err(err).Msg("failed to create user")
		}
		h.renderList(c, handler.ErrorStatus(err), "", handler.ErrorMessage(err))
		return
	}

	h.renderList(c, http.StatusOK, "user created successfully", "")
}

// ToggleStatus flips active/inactive and returns just the status badge
// so the row updates in place.
func (h *Handler) ToggleStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		handler.RenderNotFound(c, "invalid user id", "/users", "the user list")
		return
	}

	u, err := h.service.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		if apperr.IsNotFound(err) {
			handler.RenderNotFound(c, "user "+c.Param("id")+" does not exist", "/users", "the user list")
			return
		}
		log.Error().Err(err).Int64("user_id", id).Msg("failed to toggle user status")
		h.renderList(c, handler.ErrorStatus(err), "", handler.ErrorMessage(err))
		return
	}

	c.HTML(http.StatusOK, "users/status_badge", u)
}

func (h *Handler) renderList(c *gin.Context, status int, success, errMsg string) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")
		status = http.StatusInternalServerError
		errMsg = "internal error while loading users"
	}

	available, err := h.service.ListAvailableEmployees(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list available employees")
	}

	handler.Render(c, status, "users/list", "users/list_page", gin.H{
		"Users":     users,
		"Available": available,
		"Success":   success,
		"Error":     errMsg,
	})
}
