package repository

import (
	"context"
	"errors"
	"fmt"

	"photostudio/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Repository groups every Postgres-backed repository over one pool.
type Repository struct {
	Admins    *AdminRepo
	Clients   *ClientRepo
	Galleries *GalleryRepo
	About     *AboutRepo
	Services  *ServiceRepo
	FAQs      *FAQRepo
	Portfolio *PortfolioRepo
	Messages  *MessageRepo
	Posts     *PostRepo
	Dashboard *DashboardRepo
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		Admins:    NewAdminRepo(db),
		Clients:   NewClientRepo(db),
		Galleries: NewGalleryRepo(db),
		About:     NewAboutRepo(db),
		Services:  NewServiceRepo(db),
		FAQs:      NewFAQRepo(db),
		Portfolio: NewPortfolioRepo(db),
		Messages:  NewMessageRepo(db),
		Posts:     NewPostRepo(db),
		Dashboard: NewDashboardRepo(db),
	}
}

func builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// execOne runs a mutating statement and maps zero affected rows to storage.ErrNotFound.
func execOne(ctx context.Context, db *pgxpool.Pool, op string, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func notFound(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return fmt.Errorf("%s: %w", op, err)
}

func count(ctx context.Context, db *pgxpool.Pool, b sq.SelectBuilder) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}

	var n int
	if err := db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}

	return n, nil
}
