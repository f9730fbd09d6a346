package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicore/clinicore/internal/middleware"
	apperr "github.com/clinicore/clinicore/pkg/errors"
)

// Render picks the fragment or full-page template based on the
// request-origin header and injects the current user for the shared layout.
func Render(c *gin.Context, status int, fragment, full string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if user, ok := middleware.CurrentUser(c); ok {
		data["User"] = user
	}

	name := full
	if middleware.IsFragment(c) {
		name = fragment
	}
	c.HTML(status, name, data)
}

// RenderNotFound renders the dedicated not-found view carrying a link back
// to the listing the request came from.
func RenderNotFound(c *gin.Context, message, returnPoint, returnPage string) {
	Render(c, http.StatusNotFound, "components/not_found", "components/not_found_page", gin.H{
		"Message":     message,
		"ReturnPoint": returnPoint,
		"ReturnPage":  returnPage,
	})
}

// ErrorMessage maps an error to the inline message shown on a re-rendered
// form. Unexpected errors collapse to a generic internal message.
func ErrorMessage(err error) string {
	switch apperr.Code(err) {
	case apperr.ErrValidation, apperr.ErrConflict, apperr.ErrNotFound:
		return apperr.Message(err)
	default:
		return "internal error while saving data"
	}
}

// ErrorStatus maps an error to the HTTP status used when re-rendering.
func ErrorStatus(err error) int {
	switch apperr.Code(err) {
	case apperr.ErrValidation:
		return http.StatusUnprocessableEntity
	case apperr.ErrConflict:
		return http.StatusConflict
	case apperr.ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
