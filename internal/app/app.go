package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpapp "photostudio/internal/app/http"
	"photostudio/internal/config"
	"photostudio/internal/lib/logger/sl"
	mw "photostudio/internal/middleware"
	"photostudio/internal/repository"
	"photostudio/internal/services/auth"
	"photostudio/internal/services/blog"
	"photostudio/internal/services/client"
	"photostudio/internal/services/content"
	"photostudio/internal/services/dashboard"
	"photostudio/internal/services/email"
	"photostudio/internal/services/gallery"
	"photostudio/internal/services/media"
	"photostudio/internal/services/message"
	"photostudio/internal/services/notification"
	filestorage "photostudio/internal/storage/filestorage"
	"photostudio/internal/storage/imagehost"
	"photostudio/internal/storage/postgresql"
	redisapp "photostudio/internal/storage/redis"
	httprouters "photostudio/internal/transport/http"

	"github.com/patrickmn/go-cache"
)

const contactScope = "contact"

type App struct {
	HTTPServer *httpapp.Server

	log        *slog.Logger
	storage    *postgresql.Storage
	redis      *redisapp.Client
	dispatcher *notification.Dispatcher
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	if err := postgresql.MigrateUp(cfg.DSN); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	storage, err := postgresql.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	repo := repository.NewRepository(storage.Pool())

	health := map[string]httprouters.HealthChecker{
		"postgres": storage,
	}

	var (
		rdb     *redisapp.Client
		limiter *mw.Limiter
	)
	if cfg.Redis.RedisAddr != "" {
		rdb = redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
		health["redis"] = httprouters.PingFunc(rdb.HealthCheck)
		limiter = mw.NewLimiter(
			log,
			repository.NewRedisRateLimitRepo(rdb, contactScope),
			contactScope,
			cfg.ContactLimit.Requests,
			cfg.ContactLimit.Window,
		)
	} else {
		log.Warn("redis is not configured, contact form is not rate limited")
	}

	authService := auth.New(log, repo.Admins, repo.Clients, cfg.Auth)

	if b := cfg.Auth.BootstrapAdmin; b.Email != "" && b.Password != "" {
		created, err := authService.EnsureAdmin(ctx, b.Email, b.Password, b.Name)
		if err != nil {
			storage.Stop()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if created {
			log.Info("bootstrap admin created", slog.String("email", b.Email))
		}
	}

	host, uploadsDir, err := newImageHost(cfg.ImageHost)
	if err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	mailer, err := email.New(log, cfg.SMTP)
	if err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !mailer.Enabled() {
		log.Warn("smtp is not configured, notifications are dropped")
	}

	dispatcher := notification.NewDispatcher(log, mailer, notification.DefaultTimeout)

	contentCache := cache.New(cfg.Cache.TTL, 2*cfg.Cache.TTL)

	routers := httprouters.NewRouter(log, httprouters.Services{
		Auth:      authService,
		Clients:   client.NewClientService(log, repo.Clients),
		Galleries: gallery.NewGalleryService(log, repo.Galleries, repo.Clients, dispatcher),
		About:     content.NewAboutService(log, repo.About, contentCache),
		Offerings: content.NewOfferingService(log, repo.Services, contentCache),
		FAQs:      content.NewFAQService(log, repo.FAQs, contentCache),
		Portfolio: content.NewPortfolioService(log, repo.Portfolio, contentCache),
		Blog:      blog.NewBlogService(log, repo.Posts),
		Messages:  message.NewMessageService(log, repo.Messages, dispatcher),
		Dashboard: dashboard.NewDashboardService(log, repo.Dashboard, repo.Clients),
		Media:     media.NewMediaService(log, host, cfg.ImageHost.MaxSize),
		Health:    health,
	})

	server := httpapp.New(log, httpapp.Options{
		Env:            cfg.Env,
		HTTP:           cfg.HTTP,
		Auth:           cfg.Auth,
		ContactLimiter: limiter,
		UploadsDir:     uploadsDir,
	}, routers)
	server.BuildRouters()

	return &App{
		HTTPServer: server,
		log:        log,
		storage:    storage,
		redis:      rdb,
		dispatcher: dispatcher,
	}, nil
}

// newImageHost returns the configured upload target and, for the local
// driver, the directory that has to be served at /uploads.
func newImageHost(cfg config.ImageHostConfig) (media.ImageHost, string, error) {
	switch cfg.Driver {
	case "cloudinary":
		c, err := imagehost.NewCloudinary(cfg.CloudName, cfg.APIKey, cfg.APISecret, cfg.Folder, cfg.Branding)
		if err != nil {
			return nil, "", err
		}
		return c, "", nil
	case "local":
		fs, err := filestorage.NewLocalFileStorage(cfg.BaseDir, cfg.BaseURL)
		if err != nil {
			return nil, "", err
		}
		return fs, fs.GetBaseDir(), nil
	default:
		return nil, "", fmt.Errorf("%w: %q", config.ErrImageDriver, cfg.Driver)
	}
}

// Stop shuts the HTTP server down first so no new notifications are queued,
// then drains in-flight ones before closing the stores.
func (a *App) Stop(ctx context.Context) error {
	const op = "app.Stop"

	log := a.log.With(slog.String("op", op))

	var errs []error

	if err := a.HTTPServer.Stop(ctx); err != nil {
		errs = append(errs, err)
	}

	if err := a.dispatcher.Close(ctx); err != nil {
		log.Warn("notifications still in flight", sl.Err(err))
		errs = append(errs, err)
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	a.storage.Stop()

	log.Info("application stopped")

	return errors.Join(errs...)
}
