package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"photostudio/internal/domain/models"
	"photostudio/internal/lib/logger/sl"
	"photostudio/internal/repository"
)

const recentClients = 3

type DashboardService struct {
	log     *slog.Logger
	repo    repository.DashboardRepository
	clients repository.ClientRepository
}

func NewDashboardService(log *slog.Logger, repo repository.DashboardRepository, clients repository.ClientRepository) *DashboardService {
	return &DashboardService{log: log, repo: repo, clients: clients}
}

// Summary aggregates counts and the latest unread activity. It never writes.
func (s *DashboardService) Summary(ctx context.Context) (models.Dashboard, error) {
	const op = "service.DashboardService.Summary"

	log := s.log.With(slog.String("op", op))

	counts, status, err := s.repo.Counts(ctx)
	if err != nil {
		log.Error("failed to count", sl.Err(err))
		return models.Dashboard{}, fmt.Errorf("%s: %w", op, err)
	}

	msg, err := s.repo.LatestUnreadMessage(ctx)
	if err != nil {
		log.Error("failed to load latest message", sl.Err(err))
		return models.Dashboard{}, fmt.Errorf("%s: %w", op, err)
	}

	sel, err := s.repo.LatestUnreadSelection(ctx)
	if err != nil {
		log.Error("failed to load latest selection", sl.Err(err))
		return models.Dashboard{}, fmt.Errorf("%s: %w", op, err)
	}

	clients, err := s.clients.ListClients(ctx, recentClients)
	if err != nil {
		log.Error("failed to load recent clients", sl.Err(err))
		return models.Dashboard{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.Dashboard{
		Counts:          counts,
		GalleryStatus:   status,
		LatestMessage:   msg,
		LatestSelection: sel,
		RecentClients:   clients,
	}, nil
}
