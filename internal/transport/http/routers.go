package http

import (
	"context"
	"io"
	"log/slog"

	"photostudio/internal/domain/models"
	"photostudio/internal/services/blog"
	"photostudio/internal/transport/http/dto/request"

	"github.com/google/uuid"
)

type AuthService interface {
	AdminLogin(ctx context.Context, email, password string) (string, models.Admin, error)
	ClientLogin(ctx context.Context, email, password string) (string, models.Client, error)
}

type ClientService interface {
	CreateClient(ctx context.Context, req request.ClientRequest) (models.Client, error)
	ListClients(ctx context.Context) ([]models.Client, error)
	GetClient(ctx context.Context, id uuid.UUID) (models.Client, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error
}

type GalleryService interface {
	CreateGallery(ctx context.Context, req request.GalleryRequest) (models.Gallery, error)
	ListGalleries(ctx context.Context, status string) ([]models.Gallery, error)
	GetGallery(ctx context.Context, id uuid.UUID) (models.Gallery, error)
	UpdateImages(ctx context.Context, id uuid.UUID, images []string) (models.Gallery, error)
	SetRead(ctx context.Context, id uuid.UUID, read bool) error
	DeleteGallery(ctx context.Context, id uuid.UUID) error
	ClientGalleries(ctx context.Context, clientID uuid.UUID) ([]models.ProofGallery, error)
	ClientGallery(ctx context.Context, clientID, galleryID uuid.UUID) (models.ProofGallery, error)
	SubmitSelection(ctx context.Context, clientID uuid.UUID, req request.SelectionRequest) (models.ProofGallery, error)
}

type AboutService interface {
	GetAbout(ctx context.Context) (models.About, error)
	UpdateAbout(ctx context.Context, req request.AboutRequest) (models.About, error)
}

type OfferingService interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	CreateService(ctx context.Context, req request.ServiceRequest) (models.Service, error)
	UpdateService(ctx context.Context, id uuid.UUID, req request.ServiceRequest) (models.Service, error)
	DeleteService(ctx context.Context, id uuid.UUID) error
	ReorderServices(ctx context.Context, ids []uuid.UUID) error
}

type FAQService interface {
	ListFAQs(ctx context.Context) ([]models.FAQ, error)
	CreateFAQ(ctx context.Context, req request.FAQRequest) (models.FAQ, error)
	UpdateFAQ(ctx context.Context, id uuid.UUID, req request.FAQRequest) (models.FAQ, error)
	DeleteFAQ(ctx context.Context, id uuid.UUID) error
}

type PortfolioService interface {
	ListPortfolio(ctx context.Context, category string) ([]models.PortfolioItem, error)
	CreatePortfolioItem(ctx context.Context, req request.PortfolioRequest) (models.PortfolioItem, error)
	UpdatePortfolioItem(ctx context.Context, id uuid.UUID, req request.PortfolioRequest) (models.PortfolioItem, error)
	DeletePortfolioItem(ctx context.Context, id uuid.UUID) error
}

type BlogService interface {
	CreatePost(ctx context.Context, req request.PostRequest) (models.Post, error)
	UpdatePost(ctx context.Context, id uuid.UUID, req request.PostRequest) (models.Post, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (models.Post, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
	GetPost(ctx context.Context, id uuid.UUID) (models.Post, error)
	PublishedPost(ctx context.Context, slug string) (models.Post, error)
	ListPosts(ctx context.Context, status string, page, perPage int) (blog.PostList, error)
}

type MessageService interface {
	Submit(ctx context.Context, req request.MessageRequest) (models.Message, error)
	ListMessages(ctx context.Context) ([]models.Message, error)
	SetRead(ctx context.Context, id uuid.UUID, read bool) error
	DeleteMessage(ctx context.Context, id uuid.UUID) error
}

type DashboardService interface {
	Summary(ctx context.Context) (models.Dashboard, error)
}

type MediaService interface {
	Upload(ctx context.Context, src io.Reader, filename, folder string, size int64) (string, error)
}

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Services bundles every dependency of the handlers.
type Services struct {
	Auth      AuthService
	Clients   ClientService
	Galleries GalleryService
	About     AboutService
	Offerings OfferingService
	FAQs      FAQService
	Portfolio PortfolioService
	Blog      BlogService
	Messages  MessageService
	Dashboard DashboardService
	Media     MediaService
	Health    map[string]HealthChecker
}

type Routers struct {
	log *slog.Logger
	Services
}

func NewRouter(log *slog.Logger, services Services) *Routers {
	return &Routers{
		log:      log,
		Services: services,
	}
}

// PingFunc adapts a function to HealthChecker.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}
