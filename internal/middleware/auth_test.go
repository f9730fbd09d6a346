package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinicore/internal/model"
	apperr "github.com/clinicore/clinicore/pkg/errors"
)

type fakeAuthService struct {
	users map[string]*model.User
}

func (s *fakeAuthService) Login(context.Context, string, string) (string, *model.User, error) {
	return "", nil, nil
}

func (s *fakeAuthService) ResolveUser(_ context.Context, token string) (*model.User, error) {
	u, ok := s.users[token]
	if !ok {
		return nil, apperr.Unauthorized(nil)
	}
	return u, nil
}

func newTestRouter(t *testing.T, role model.Role) (*gin.Engine, *AuthMiddleware) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.LoadHTMLGlob("../../web/templates/*/*.html")

	auth := NewAuthMiddleware(&fakeAuthService{users: map[string]*model.User{
		"good-token": {
			ID:           1,
			Username:     "ana.souza",
			IsActive:     true,
			EmployeeName: "Ana Souza",
			EmployeeRole: role,
		},
	}})
	return engine, auth
}

func TestAuthenticateRedirectsWithoutCookie(t *testing.T) {
	engine, auth := newTestRouter(t, model.RoleDoctor)
	engine.GET("/private", auth.Authenticate(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
}

func TestAuthenticateRedirectsFragmentViaHeader(t *testing.T) {
	engine, auth := newTestRouter(t, model.RoleDoctor)
	engine.GET("/private", auth.Authenticate(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set(HeaderHXRequest, "true")
	engine.ServeHTTP(w, req)

	// Fragments get a client-side redirect header, not a 302.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get(HeaderHXRedirect))
}

func TestAuthenticateSetsCurrentUser(t *testing.T) {
	engine, auth := newTestRouter(t, model.RoleDoctor)
	engine.GET("/private", auth.Authenticate(), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		require.True(t, ok)
		c.String(http.StatusOK, user.Username)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "Bearer good-token"})
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ana.souza", w.Body.String())
}

func TestAuthenticateRejectsBadToken(t *testing.T) {
	engine, auth := newTestRouter(t, model.RoleDoctor)
	engine.GET("/private", auth.Authenticate(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "Bearer expired-token"})
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
}

func TestRequireRolesAllowsListedRole(t *testing.T) {
	engine, auth := newTestRouter(t, model.RoleReceptionist)
	engine.GET("/patients", auth.Authenticate(), auth.RequireRoles(model.RoleReceptionist), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "Bearer good-token"})
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesAdminOverride(t *testing.T) {
	engine, auth := newTestRouter(t, model.RoleAdmin)
	engine.GET("/patients", auth.Authenticate(), auth.RequireRoles(model.RoleReceptionist), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "Bearer good-token"})
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesDeniesOtherRole(t *testing.T) {
	engine, auth := newTestRouter(t, model.RoleDoctor)
	engine.GET("/patients", auth.Authenticate(), auth.RequireRoles(model.RoleReceptionist), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "Bearer good-token"})
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied")
}

func TestRequireRolesDeniedFragmentRetargets(t *testing.T) {
	engine, auth := newTestRouter(t, model.RoleDoctor)
	engine.GET("/patients", auth.Authenticate(), auth.RequireRoles(model.RoleReceptionist), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	req.Header.Set(HeaderHXRequest, "true")
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "Bearer good-token"})
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "#main-content", w.Header().Get(HeaderHXRetarget))
}
