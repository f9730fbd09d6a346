package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/clinicore/clinicore/internal/handler"
	"github.com/clinicore/clinicore/internal/middleware"
	"github.com/clinicore/clinicore/internal/model"
)

// Handler is anything that can hang its routes off a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine        *gin.Engine
	auth          *middleware.AuthMiddleware
	authH         Handler
	patientH      Handler
	employeeH     Handler
	specialtyH    Handler
	userH         Handler
	appointmentH  Handler
	consultationH Handler
	h             *handler.Handler
	metrics       *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type Config struct {
	RateLimit     middleware.RateLimiterConfig
	CORS          middleware.CORSConfig
	TemplateGlob  string
	StaticDir     string
	MetricsPrefix string
}

func New(
	auth *middleware.AuthMiddleware,
	authH Handler,
	patientH Handler,
	employeeH Handler,
	specialtyH Handler,
	userH Handler,
	appointmentH Handler,
	consultationH Handler,
	h *handler.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.LoadHTMLGlob(config.TemplateGlob)
	engine.Static("/static", config.StaticDir)

	r := &Router{
		engine:        engine,
		auth:          auth,
		authH:         authH,
		patientH:      patientH,
		employeeH:     employeeH,
		specialtyH:    specialtyH,
		userH:         userH,
		appointmentH:  appointmentH,
		consultationH: consultationH,
		h:             h,
		metrics:       initRouterMetrics(config.MetricsPrefix),
	}

	engine.Use(
		middleware.Recovery(),
		middleware.Logger(),
		middleware.RequestID(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: 30 * time.Second}),
		middleware.CORS(config.CORS),
	)

	rateLimiter := middleware.NewRateLimiter(config.RateLimit)
	engine.Use(rateLimiter.RateLimit())

	return r
}

// Setup wires every route group. RequireRoles carries an implicit admin
// override, so only the non-admin roles of each group are listed.
func (r *Router) Setup() {
	r.engine.GET("/healthz", r.h.LivenessCheck)
	r.engine.GET("/metrics", r.h.MetricsHandler)

	r.authH.RegisterRoutes(r.engine.Group(""))

	protected := r.engine.Group("")
	protected.Use(r.auth.Authenticate())

	protected.GET("/", r.h.Home)

	patients := protected.Group("/patients")
	patients.Use(r.auth.RequireRoles(model.RoleReceptionist))
	r.patientH.RegisterRoutes(patients)

	employees := protected.Group("/employees")
	employees.Use(r.auth.RequireRoles())
	r.employeeH.RegisterRoutes(employees)

	specialties := protected.Group("/specialties")
	specialties.Use(r.auth.RequireRoles())
	r.specialtyH.RegisterRoutes(specialties)

	users := protected.Group("/users")
	users.Use(r.auth.RequireRoles())
	r.userH.RegisterRoutes(users)

	appointments := protected.Group("/appointments")
	appointments.Use(r.auth.RequireRoles(model.RoleReceptionist, model.RoleDoctor, model.RoleNutritionist))
	r.appointmentH.RegisterRoutes(appointments)

	consultations := protected.Group("/consultations")
	consultations.Use(r.auth.RequireRoles(model.RoleDoctor, model.RoleNutritionist))
	r.consultationH.RegisterRoutes(consultations)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	m := &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
	prometheus.MustRegister(m.requestDuration, m.requestTotal, m.errorTotal)
	return m
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
