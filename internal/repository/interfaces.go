package repository

import (
	"context"
	"time"

	"photostudio/internal/domain/models"

	"github.com/google/uuid"
)

type AdminRepository interface {
	SaveAdmin(ctx context.Context, admin models.Admin) (uuid.UUID, error)
	AdminByEmail(ctx context.Context, email string) (models.Admin, error)
}

type ClientRepository interface {
	SaveClient(ctx context.Context, client models.Client) (models.Client, error)
	ClientByEmail(ctx context.Context, email string) (models.Client, error)
	ClientByID(ctx context.Context, id uuid.UUID) (models.Client, error)
	ListClients(ctx context.Context, limit int) ([]models.Client, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error
}

type GalleryRepository interface {
	CreateGallery(ctx context.Context, gallery models.Gallery) (models.Gallery, error)
	GalleryByID(ctx context.Context, id uuid.UUID) (models.Gallery, error)
	ListGalleries(ctx context.Context, filter GalleryFilter) ([]models.Gallery, error)
	UpdateImages(ctx context.Context, id uuid.UUID, images []string) error
	SetRead(ctx context.Context, id uuid.UUID, read bool) error
	DeleteGallery(ctx context.Context, id uuid.UUID) error
	SubmitSelection(ctx context.Context, id uuid.UUID, photoIDs []string, check func(models.Gallery) error) (models.Gallery, error)
}

type AboutRepository interface {
	GetAbout(ctx context.Context) (models.About, error)
	UpdateAbout(ctx context.Context, about models.About) error
}

type ServiceRepository interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	CreateService(ctx context.Context, s models.Service) (models.Service, error)
	UpdateService(ctx context.Context, s models.Service) (models.Service, error)
	DeleteService(ctx context.Context, id uuid.UUID) error
	ReorderServices(ctx context.Context, ids []uuid.UUID) error
}

type FAQRepository interface {
	ListFAQs(ctx context.Context) ([]models.FAQ, error)
	CreateFAQ(ctx context.Context, f models.FAQ) (models.FAQ, error)
	UpdateFAQ(ctx context.Context, f models.FAQ) (models.FAQ, error)
	DeleteFAQ(ctx context.Context, id uuid.UUID) error
}

type PortfolioRepository interface {
	ListPortfolio(ctx context.Context, category string) ([]models.PortfolioItem, error)
	CreatePortfolioItem(ctx context.Context, p models.PortfolioItem) (models.PortfolioItem, error)
	UpdatePortfolioItem(ctx context.Context, p models.PortfolioItem) (models.PortfolioItem, error)
	DeletePortfolioItem(ctx context.Context, id uuid.UUID) error
}

type MessageRepository interface {
	SaveMessage(ctx context.Context, m models.Message) (models.Message, error)
	ListMessages(ctx context.Context) ([]models.Message, error)
	SetRead(ctx context.Context, id uuid.UUID, read bool) error
	DeleteMessage(ctx context.Context, id uuid.UUID) error
}

type PostRepository interface {
	SavePost(ctx context.Context, p models.Post) (models.Post, error)
	UpdatePost(ctx context.Context, p models.Post) (models.Post, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) (models.Post, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
	PostByID(ctx context.Context, id uuid.UUID) (models.Post, error)
	PublishedPostBySlug(ctx context.Context, slug string) (models.Post, error)
	ListPosts(ctx context.Context, status string, page, perPage int) ([]models.Post, int, error)
}

type DashboardRepository interface {
	Counts(ctx context.Context) (models.DashboardCounts, models.GalleryStatusCounts, error)
	LatestUnreadMessage(ctx context.Context) (*models.Message, error)
	LatestUnreadSelection(ctx context.Context) (*models.Gallery, error)
}

type RateLimitRepository interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}
