package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/clinicore/clinicore/internal/middleware"
	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/internal/service/auth"
	"github.com/clinicore/clinicore/pkg/validator"
)

// cookieMaxAge matches the token expiry: 8 hours.
const cookieMaxAge = 8 * 60 * 60

type Handler struct {
	service  auth.Service
	validate *validator.Validator
}

func NewHandler(service auth.Service, validate *validator.Validator) *Handler {
	return &Handler{service: service, validate: validate}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/auth")
	{
		group.GET("/login", h.LoginPage)
		group.POST("/login", h.Login)
		group.GET("/logout", h.Logout)
	}
}

func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "auth/login", gin.H{})
}

func (h *Handler) Login(c *gin.Context) {
	var form model.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderLoginError(c, "username and password are required")
		return
	}
	if err := h.validate.Struct(&form); err != nil {
		h.renderLoginError(c, err.Error())
		return
	}

	token, user, err := h.service.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUnknownUser):
			h.renderLoginError(c, "user does not exist")
		case errors.Is(err, auth.ErrInvalidPassword):
			h.renderLoginError(c, "invalid password")
		case errors.Is(err, auth.ErrInactiveUser):
			h.renderLoginError(c, "user account is deactivated")
		default:
			log.Error().Err(err).Str("username", form.Username).Msg("login failed")
			h.renderLoginError(c, "internal server error")
		}
		return
	}

	log.Info().Str("username", user.Username).Msg("user logged in")

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, "Bearer "+token, cookieMaxAge, "/", "", false, true)

	if middleware.IsFragment(c) {
		c.Header(middleware.HeaderHXRedirect, "/")
		c.Status(http.StatusOK)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, "", -1, "/", "", false, true)

	if middleware.IsFragment(c) {
		c.Header(middleware.HeaderHXRedirect, "/auth/login")
		c.Status(http.StatusOK)
		return
	}
	c.Redirect(http.StatusFound, "/auth/login")
}

func (h *Handler) renderLoginError(c *gin.Context, message string) {
	c.HTML(http.StatusOK, "auth/login", gin.H{"Error": message})
}
