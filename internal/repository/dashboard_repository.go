package repository

import (
	"context"
	"errors"
	"fmt"

	"photostudio/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// DashboardRepo answers the read-only aggregate queries of the admin dashboard.
type DashboardRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewDashboardRepo(db *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{db: db, sb: builder()}
}

func (r *DashboardRepo) Counts(ctx context.Context) (models.DashboardCounts, models.GalleryStatusCounts, error) {
	const op = "repository.DashboardRepo.Counts"

	query, args, err := r.sb.Select(
		"(SELECT COUNT(*) FROM clients)",
		"(SELECT COUNT(*) FROM portfolio_items)",
		"(SELECT COUNT(*) FROM posts)",
		"(SELECT COUNT(*) FROM galleries WHERE status = 'proofing')",
		"(SELECT COUNT(*) FROM galleries WHERE status = 'selection_complete' AND NOT is_read)",
	).ToSql()
	if err != nil {
		return models.DashboardCounts{}, models.GalleryStatusCounts{}, fmt.Errorf("%s: %w", op, err)
	}

	var (
		c models.DashboardCounts
		g models.GalleryStatusCounts
	)

	if err := r.db.QueryRow(ctx, query, args...).Scan(&c.Clients, &c.Portfolio, &c.Posts, &g.Proofing, &g.Unread); err != nil {
		return models.DashboardCounts{}, models.GalleryStatusCounts{}, fmt.Errorf("%s: %w", op, err)
	}

	return c, g, nil
}

// LatestUnreadMessage returns nil when every message has been read.
func (r *DashboardRepo) LatestUnreadMessage(ctx context.Context) (*models.Message, error) {
	const op = "repository.DashboardRepo.LatestUnreadMessage"

	query, args, err := r.sb.Select(messageColumns...).
		From("messages").
		Where(sq.Eq{"is_read": false}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m, err := scanMessage(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &m, nil
}

// LatestUnreadSelection returns the most recently completed gallery that has
// not been marked read, or nil.
func (r *DashboardRepo) LatestUnreadSelection(ctx context.Context) (*models.Gallery, error) {
	const op = "repository.DashboardRepo.LatestUnreadSelection"

	query, args, err := r.sb.Select(galleryColumns...).
		From("galleries g").
		Join("clients c ON c.id = g.client_id").
		Where(sq.Eq{"g.status": models.GalleryStatusSelectionComplete, "g.is_read": false}).
		OrderBy("g.selection_date DESC NULLS LAST").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	g, err := scanGallery(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &g, nil
}
