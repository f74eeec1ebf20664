// Package content serves the public marketing collections: the about page,
// offered services, FAQs and the portfolio. Reads go through an in-process
// cache; every write of a collection drops its cache key.
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"photostudio/internal/domain/models"
	"photostudio/internal/lib/logger/sl"
	"photostudio/internal/repository"
	"photostudio/internal/services"
	"photostudio/internal/storage"
	"photostudio/internal/transport/http/dto/request"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	keyAbout     = "about"
	keyServices  = "services"
	keyFAQs      = "faqs"
	keyPortfolio = "portfolio"
)

const (
	DefaultServiceImage = "/images/services/default.jpg"
	DefaultServicePrice = "Contact for pricing"
)

// cached returns the value under key, loading and storing it on a miss.
func cached[T any](c *cache.Cache, key string, load func() (T, error)) (T, error) {
	if c != nil {
		if v, ok := c.Get(key); ok {
			return v.(T), nil
		}
	}

	v, err := load()
	if err != nil {
		return v, err
	}

	if c != nil {
		c.SetDefault(key, v)
	}

	return v, nil
}

func invalidate(c *cache.Cache, key string) {
	if c != nil {
		c.Delete(key)
	}
}

func mapErr(log *slog.Logger, op string, err error, msg string) error {
	if !errors.Is(err, storage.ErrNotFound) {
		log.Error(msg, sl.Err(err))
	}
	return fmt.Errorf("%s: %w", op, services.FromStorage(err))
}

type AboutService struct {
	log   *slog.Logger
	repo  repository.AboutRepository
	cache *cache.Cache
}

func NewAboutService(log *slog.Logger, repo repository.AboutRepository, c *cache.Cache) *AboutService {
	return &AboutService{log: log, repo: repo, cache: c}
}

func (s *AboutService) GetAbout(ctx context.Context) (models.About, error) {
	const op = "service.AboutService.GetAbout"

	about, err := cached(s.cache, keyAbout, func() (models.About, error) {
		return s.repo.GetAbout(ctx)
	})
	if err != nil {
		return models.About{}, mapErr(s.log.With(slog.String("op", op)), op, err, "failed to load about")
	}

	return about, nil
}

func (s *AboutService) UpdateAbout(ctx context.Context, req request.AboutRequest) (models.About, error) {
	const op = "service.AboutService.UpdateAbout"

	log := s.log.With(slog.String("op", op))

	err := s.repo.UpdateAbout(ctx, models.About{
		Paragraphs: req.Paragraphs,
		ProfileImage: models.ProfileImage{
			Src: req.ProfileImage.Src,
			Alt: req.ProfileImage.Alt,
		},
		Stats: models.AboutStats{
			Sessions: req.Stats.Sessions,
			Weddings: req.Stats.Weddings,
			Families: req.Stats.Families,
		},
	})
	if err != nil {
		return models.About{}, mapErr(log, op, err, "failed to update about")
	}

	invalidate(s.cache, keyAbout)
	log.Info("about content updated")

	return s.GetAbout(ctx)
}

// OfferingService manages the studio's offered services.
type OfferingService struct {
	log   *slog.Logger
	repo  repository.ServiceRepository
	cache *cache.Cache
}

func NewOfferingService(log *slog.Logger, repo repository.ServiceRepository, c *cache.Cache) *OfferingService {
	return &OfferingService{log: log, repo: repo, cache: c}
}

// ListServices returns services in display order with missing optional
// fields filled with display defaults.
func (s *OfferingService) ListServices(ctx context.Context) ([]models.Service, error) {
	const op = "service.OfferingService.ListServices"

	list, err := cached(s.cache, keyServices, func() ([]models.Service, error) {
		return s.repo.ListServices(ctx)
	})
	if err != nil {
		s.log.Error("failed to list services", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.Service, len(list))
	for i, svc := range list {
		out[i] = withDefaults(svc)
	}

	return out, nil
}

func withDefaults(s models.Service) models.Service {
	if s.ImageURL == "" {
		s.ImageURL = DefaultServiceImage
	}
	if s.Alt == "" {
		s.Alt = s.Title
	}
	if s.Features == nil {
		s.Features = []string{}
	}
	if s.Price == "" {
		s.Price = DefaultServicePrice
	}
	return s
}

func serviceFromRequest(req request.ServiceRequest) models.Service {
	return models.Service{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Alt:         req.Alt,
		Features:    req.Features,
		Price:       req.Price,
	}
}

func (s *OfferingService) CreateService(ctx context.Context, req request.ServiceRequest) (models.Service, error) {
	const op = "service.OfferingService.CreateService"

	log := s.log.With(slog.String("op", op))

	created, err := s.repo.CreateService(ctx, serviceFromRequest(req))
	if err != nil {
		return models.Service{}, mapErr(log, op, err, "failed to create service")
	}

	invalidate(s.cache, keyServices)
	log.Info("service created", slog.String("id", created.ID.String()))

	return created, nil
}

func (s *OfferingService) UpdateService(ctx context.Context, id uuid.UUID, req request.ServiceRequest) (models.Service, error) {
	const op = "service.OfferingService.UpdateService"

	log := s.log.With(slog.String("op", op), slog.String("id", id.String()))

	svc := serviceFromRequest(req)
	svc.ID = id

	updated, err := s.repo.UpdateService(ctx, svc)
	if err != nil {
		return models.Service{}, mapErr(log, op, err, "failed to update service")
	}

	invalidate(s.cache, keyServices)

	return updated, nil
}

func (s *OfferingService) DeleteService(ctx context.Context, id uuid.UUID) error {
	const op = "service.OfferingService.DeleteService"

	log := s.log.With(slog.String("op", op), slog.String("id", id.String()))

	if err := s.repo.DeleteService(ctx, id); err != nil {
		return mapErr(log, op, err, "failed to delete service")
	}

	invalidate(s.cache, keyServices)
	log.Info("service deleted")

	return nil
}

// ReorderServices sets each service's rank to its index in ids. Unknown ids
// abort the whole reorder.
func (s *OfferingService) ReorderServices(ctx context.Context, ids []uuid.UUID) error {
	const op = "service.OfferingService.ReorderServices"

	log := s.log.With(slog.String("op", op), slog.Int("count", len(ids)))

	if err := s.repo.ReorderServices(ctx, ids); err != nil {
		return mapErr(log, op, err, "failed to reorder services")
	}

	invalidate(s.cache, keyServices)
	log.Info("services reordered")

	return nil
}

type FAQService struct {
	log   *slog.Logger
	repo  repository.FAQRepository
	cache *cache.Cache
}

func NewFAQService(log *slog.Logger, repo repository.FAQRepository, c *cache.Cache) *FAQService {
	return &FAQService{log: log, repo: repo, cache: c}
}

func (s *FAQService) ListFAQs(ctx context.Context) ([]models.FAQ, error) {
	const op = "service.FAQService.ListFAQs"

	list, err := cached(s.cache, keyFAQs, func() ([]models.FAQ, error) {
		return s.repo.ListFAQs(ctx)
	})
	if err != nil {
		s.log.Error("failed to list faqs", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.FAQ, len(list))
	copy(out, list)

	return out, nil
}

func (s *FAQService) CreateFAQ(ctx context.Context, req request.FAQRequest) (models.FAQ, error) {
	const op = "service.FAQService.CreateFAQ"

	log := s.log.With(slog.String("op", op))

	created, err := s.repo.CreateFAQ(ctx, models.FAQ{Question: req.Question, Answer: req.Answer, Order: req.Order})
	if err != nil {
		return models.FAQ{}, mapErr(log, op, err, "failed to create faq")
	}

	invalidate(s.cache, keyFAQs)

	return created, nil
}

func (s *FAQService) UpdateFAQ(ctx context.Context, id uuid.UUID, req request.FAQRequest) (models.FAQ, error) {
	const op = "service.FAQService.UpdateFAQ"

	log := s.log.With(slog.String("op", op), slog.String("id", id.String()))

	updated, err := s.repo.UpdateFAQ(ctx, models.FAQ{ID: id, Question: req.Question, Answer: req.Answer, Order: req.Order})
	if err != nil {
		return models.FAQ{}, mapErr(log, op, err, "failed to update faq")
	}

	invalidate(s.cache, keyFAQs)

	return updated, nil
}

func (s *FAQService) DeleteFAQ(ctx context.Context, id uuid.UUID) error {
	const op = "service.FAQService.DeleteFAQ"

	log := s.log.With(slog.String("op", op), slog.String("id", id.String()))

	if err := s.repo.DeleteFAQ(ctx, id); err != nil {
		return mapErr(log, op, err, "failed to delete faq")
	}

	invalidate(s.cache, keyFAQs)

	return nil
}

type PortfolioService struct {
	log   *slog.Logger
	repo  repository.PortfolioRepository
	cache *cache.Cache
}

func NewPortfolioService(log *slog.Logger, repo repository.PortfolioRepository, c *cache.Cache) *PortfolioService {
	return &PortfolioService{log: log, repo: repo, cache: c}
}

// ListPortfolio returns portfolio items, optionally of one category. The
// whole collection is cached and filtered in memory.
func (s *PortfolioService) ListPortfolio(ctx context.Context, category string) ([]models.PortfolioItem, error) {
	const op = "service.PortfolioService.ListPortfolio"

	all, err := cached(s.cache, keyPortfolio, func() ([]models.PortfolioItem, error) {
		return s.repo.ListPortfolio(ctx, "")
	})
	if err != nil {
		s.log.Error("failed to list portfolio", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.PortfolioItem, 0, len(all))
	for _, item := range all {
		if category == "" || item.Category == category {
			out = append(out, item)
		}
	}

	return out, nil
}

func portfolioFromRequest(req request.PortfolioRequest) models.PortfolioItem {
	return models.PortfolioItem{
		Title:    req.Title,
		Category: req.Category,
		ImageURL: req.ImageURL,
		Alt:      req.Alt,
		Order:    req.Order,
	}
}

func (s *PortfolioService) CreatePortfolioItem(ctx context.Context, req request.PortfolioRequest) (models.PortfolioItem, error) {
	const op = "service.PortfolioService.CreatePortfolioItem"

	log := s.log.With(slog.String("op", op))

	created, err := s.repo.CreatePortfolioItem(ctx, portfolioFromRequest(req))
	if err != nil {
		return models.PortfolioItem{}, mapErr(log, op, err, "failed to create portfolio item")
	}

	invalidate(s.cache, keyPortfolio)

	return created, nil
}

func (s *PortfolioService) UpdatePortfolioItem(ctx context.Context, id uuid.UUID, req request.PortfolioRequest) (models.PortfolioItem, error) {
	const op = "service.PortfolioService.UpdatePortfolioItem"

	log := s.log.With(slog.String("op", op), slog.String("id", id.String()))

	item := portfolioFromRequest(req)
	item.ID = id

	updated, err := s.repo.UpdatePortfolioItem(ctx, item)
	if err != nil {
		return models.PortfolioItem{}, mapErr(log, op, err, "failed to update portfolio item")
	}

	invalidate(s.cache, keyPortfolio)

	return updated, nil
}

func (s *PortfolioService) DeletePortfolioItem(ctx context.Context, id uuid.UUID) error {
	const op = "service.PortfolioService.DeletePortfolioItem"

	log := s.log.With(slog.String("op", op), slog.String("id", id.String()))

	if err := s.repo.DeletePortfolioItem(ctx, id); err != nil {
		return mapErr(log, op, err, "failed to delete portfolio item")
	}

	invalidate(s.cache, keyPortfolio)

	return nil
}
