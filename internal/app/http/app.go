package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"photostudio/internal/config"
	mw "photostudio/internal/middleware"
	httprouters "photostudio/internal/transport/http"

	"github.com/arl/statsviz"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "photostudio/docs"
)

const envProd = "prod"

type Server struct {
	log     *slog.Logger
	e       *echo.Echo
	m       *http.ServeMux
	routers *httprouters.Routers
	cfg     config.HTTPConfig
	auth    config.AuthConfig
	env     string
	limiter *mw.Limiter
	uploads string
}

type Options struct {
	Env  string
	HTTP config.HTTPConfig
	Auth config.AuthConfig
	// ContactLimiter guards the public contact form. Nil disables limiting.
	ContactLimiter *mw.Limiter
	// UploadsDir is served at /uploads when set.
	UploadsDir string
}

func New(log *slog.Logger, opts Options, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Validator = httprouters.NewValidator()
	e.HTTPErrorHandler = httprouters.NewHTTPErrorHandler(log)

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: opts.HTTP.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			)

			return nil
		},
	}))

	e.Use(mw.PrometheusMetrics)

	mux := http.NewServeMux()
	if opts.Env != envProd {
		if err := statsviz.Register(mux); err != nil {
			log.Warn("statsviz not registered", slog.String("error", err.Error()))
		}
	}

	return &Server{
		log:     log,
		e:       e,
		m:       mux,
		routers: routers,
		cfg:     opts.HTTP,
		auth:    opts.Auth,
		env:     opts.Env,
		limiter: opts.ContactLimiter,
		uploads: opts.UploadsDir,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) MustRun() {
	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "httpapp.Server.Start"

	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)

	s.e.Server.ReadTimeout = s.cfg.Timeout
	s.e.Server.WriteTimeout = s.cfg.Timeout
	s.e.Server.IdleTimeout = s.cfg.IdleTimeout

	s.log.Info("http server started", slog.String("op", op), slog.String("addr", addr))

	if err := s.e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	const op = "httpapp.Server.Stop"

	s.log.Info("stopping http server", slog.String("op", op))

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.e.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s: could not shutdown server gracefully: %w", op, err)
	}

	return nil
}

func (s *Server) BuildRouters() {
	r := s.routers

	s.e.GET("/healthz", r.Healthz)
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.e.GET("/swagger/*", echoSwagger.WrapHandler)

	if s.env != envProd {
		debug := s.e.Group("/debug")
		{
			debug.GET("/statsviz/", echo.WrapHandler(s.m))
			debug.GET("/statsviz/*", echo.WrapHandler(s.m))
		}
	}

	if s.uploads != "" {
		s.e.Static("/uploads", s.uploads)
	}

	admin := []echo.MiddlewareFunc{mw.AdminAuth(s.auth.AdminSecret), mw.RequireRole("admin")}
	client := mw.ClientAuth(s.auth.ClientSecret)

	contactLimit := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	if s.limiter != nil {
		contactLimit = s.limiter.Middleware
	}

	api := s.e.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/admin/login", r.AdminLogin)
			auth.POST("/client/login", r.ClientLogin)
			auth.GET("/admin/me", r.AdminMe, admin...)
			auth.GET("/client/me", r.ClientMe, client)
		}

		api.GET("/about", r.GetAbout)
		api.PUT("/about", r.UpdateAbout, admin...)

		api.GET("/services", r.ListServices)
		api.POST("/services", r.CreateService, admin...)
		api.PUT("/services/reorder", r.ReorderServices, admin...)
		api.PUT("/services/:id", r.UpdateService, admin...)
		api.DELETE("/services/:id", r.DeleteService, admin...)

		api.GET("/faqs", r.ListFAQs)
		api.POST("/faqs", r.CreateFAQ, admin...)
		api.PUT("/faqs/:id", r.UpdateFAQ, admin...)
		api.DELETE("/faqs/:id", r.DeleteFAQ, admin...)

		api.GET("/portfolio", r.ListPortfolio)
		api.POST("/portfolio", r.CreatePortfolioItem, admin...)
		api.PUT("/portfolio/:id", r.UpdatePortfolioItem, admin...)
		api.DELETE("/portfolio/:id", r.DeletePortfolioItem, admin...)

		api.GET("/posts", r.ListPublishedPosts)
		api.GET("/posts/:slug", r.GetPublishedPost)
		api.POST("/posts", r.CreatePost, admin...)
		api.PUT("/posts/:id", r.UpdatePost, admin...)
		api.PATCH("/posts/:id/publish", r.PublishPost, admin...)
		api.DELETE("/posts/:id", r.DeletePost, admin...)

		api.POST("/messages", r.SubmitMessage, contactLimit)
		api.GET("/messages", r.ListMessages, admin...)
		api.PATCH("/messages/:id/read", r.MarkMessageRead, admin...)
		api.DELETE("/messages/:id", r.DeleteMessage, admin...)

		api.GET("/admin/posts", r.ListAllPosts, admin...)
		api.GET("/admin/posts/:id", r.GetPost, admin...)

		api.POST("/clients", r.CreateClient, admin...)
		api.GET("/clients", r.ListClients, admin...)
		api.GET("/clients/:id", r.GetClient, admin...)
		api.DELETE("/clients/:id", r.DeleteClient, admin...)

		api.POST("/galleries", r.CreateGallery, admin...)
		api.GET("/galleries", r.ListGalleries, admin...)
		api.GET("/galleries/:id", r.GetGallery, admin...)
		api.PUT("/galleries/:id/images", r.UpdateGalleryImages, admin...)
		api.PATCH("/galleries/:id/read", r.MarkGalleryRead, admin...)
		api.DELETE("/galleries/:id", r.DeleteGallery, admin...)

		api.GET("/dashboard", r.GetDashboard, admin...)
		api.POST("/uploads", r.UploadImage, admin...)

		api.GET("/client/galleries", r.ClientGalleries, client)
		api.GET("/client/galleries/:id", r.ClientGallery, client)
		api.POST("/client/selections", r.SubmitSelection, client)
	}
}
