package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clinicore/clinicore/internal/model"
	"github.com/clinicore/clinicore/internal/service/auth"
)

const (
	// CookieName carries the session token; the value keeps the historical
	// "Bearer " prefix.
	CookieName = "access_token"

	ContextUser = "current_user"

	// HeaderHXRequest flags a fragment request: the client wants partial
	// HTML for an in-place DOM update, and plain HTTP redirects would load
	// the target inside the swapped element. HX-Redirect / HX-Retarget
	// steer the client instead.
	HeaderHXRequest  = "HX-Request"
	HeaderHXRedirect = "HX-Redirect"
	HeaderHXRetarget = "HX-Retarget"
	HeaderHXPushURL  = "HX-Push-Url"

	loginPath = "/auth/login"
)

// IsFragment reports whether the request came from the partial-refresh UI.
func IsFragment(c *gin.Context) bool {
	return c.GetHeader(HeaderHXRequest) != ""
}

// RedirectToLogin issues the redirect appropriate for the request origin:
// a real 302 for plain navigation, an HX-Redirect header for fragments.
func RedirectToLogin(c *gin.Context) {
	if IsFragment(c) {
		c.Header(HeaderHXRedirect, loginPath)
		c.Status(http.StatusOK)
		return
	}
	c.Redirect(http.StatusFound, loginPath)
}

type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate resolves the identity behind the session cookie and stores
// it in the request context. Missing cookie, bad token and unknown user all
// collapse into the same redirect-to-login.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			RedirectToLogin(c)
			c.Abort()
			return
		}
		token = strings.TrimPrefix(token, "Bearer ")

		user, err := m.authService.ResolveUser(c.Request.Context(), token)
		if err != nil {
			RedirectToLogin(c)
			c.Abort()
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// RequireRoles admits the request when the resolved user's role is in the
// allowed set. Admin always passes. Must run after Authenticate.
func (m *AuthMiddleware) RequireRoles(roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			RedirectToLogin(c)
			c.Abort()
			return
		}

		if user.EmployeeRole == model.RoleAdmin || allowed[user.EmployeeRole] {
			c.Next()
			return
		}

		if IsFragment(c) {
			// Retarget so the denial replaces the main content instead of
			// whatever element triggered the request.
			c.Header(HeaderHXRetarget, "#main-content")
			c.HTML(http.StatusForbidden, "components/access_denied", gin.H{
				"User": user,
			})
		} else {
			c.HTML(http.StatusForbidden, "components/access_denied_page", gin.H{
				"User": user,
			})
		}
		c.Abort()
	}
}

// CurrentUser returns the identity set by Authenticate.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, exists := c.Get(ContextUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok
}
