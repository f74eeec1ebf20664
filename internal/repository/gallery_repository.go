package repository

import (
	"context"
	"fmt"
	"time"

	"photostudio/internal/domain/models"
	"photostudio/internal/storage"
	"photostudio/internal/storage/postgresql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type GalleryRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewGalleryRepo(db *pgxpool.Pool) *GalleryRepo {
	return &GalleryRepo{db: db, sb: builder()}
}

// GalleryFilter narrows ListGalleries. Zero values match everything.
type GalleryFilter struct {
	Status   string
	ClientID uuid.UUID
}

var galleryColumns = []string{
	"g.id", "g.client_id", "c.name", "g.name", "g.images",
	"COALESCE(ARRAY(SELECT s.image_url FROM selections s WHERE s.gallery_id = g.id ORDER BY s.position), '{}')",
	"g.status", "g.created_at", "g.updated_at", "g.selection_date", "g.is_read",
}

func (r *GalleryRepo) selectGalleries() sq.SelectBuilder {
	return r.sb.Select(galleryColumns...).
		From("galleries g").
		Join("clients c ON c.id = g.client_id")
}

func scanGallery(row interface{ Scan(...any) error }) (models.Gallery, error) {
	var g models.Gallery
	err := row.Scan(
		&g.ID, &g.ClientID, &g.ClientName, &g.Name, &g.Images, &g.Selections,
		&g.Status, &g.CreatedAt, &g.UpdatedAt, &g.SelectionDate, &g.IsRead,
	)
	if g.Images == nil {
		g.Images = []string{}
	}
	if g.Selections == nil {
		g.Selections = []string{}
	}
	return g, err
}

// CreateGallery inserts a proofing gallery. An unknown client yields storage.ErrNotFound.
func (r *GalleryRepo) CreateGallery(ctx context.Context, gallery models.Gallery) (models.Gallery, error) {
	const op = "repository.GalleryRepo.CreateGallery"

	images := gallery.Images
	if images == nil {
		images = []string{}
	}

	query, args, err := r.sb.Insert("galleries").
		Columns("client_id", "name", "images", "status").
		Values(gallery.ClientID, gallery.Name, images, models.GalleryStatusProofing).
		Suffix("RETURNING id, status, created_at, updated_at, is_read").
		ToSql()
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	created := gallery
	created.Images = images
	created.Selections = []string{}

	err = r.db.QueryRow(ctx, query, args...).Scan(&created.ID, &created.Status, &created.CreatedAt, &created.UpdatedAt, &created.IsRead)
	if err != nil {
		if postgresql.IsForeignKeyViolation(err) {
			return models.Gallery{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (r *GalleryRepo) GalleryByID(ctx context.Context, id uuid.UUID) (models.Gallery, error) {
	const op = "repository.GalleryRepo.GalleryByID"

	query, args, err := r.selectGalleries().Where(sq.Eq{"g.id": id}).ToSql()
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	g, err := scanGallery(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Gallery{}, notFound(op, err)
	}

	return g, nil
}

func (r *GalleryRepo) ListGalleries(ctx context.Context, filter GalleryFilter) ([]models.Gallery, error) {
	const op = "repository.GalleryRepo.ListGalleries"

	b := r.selectGalleries().OrderBy("g.created_at DESC", "g.id")
	if filter.Status != "" {
		b = b.Where(sq.Eq{"g.status": filter.Status})
	}
	if filter.ClientID != uuid.Nil {
		b = b.Where(sq.Eq{"g.client_id": filter.ClientID})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	galleries := make([]models.Gallery, 0)
	for rows.Next() {
		g, err := scanGallery(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		galleries = append(galleries, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return galleries, nil
}

func (r *GalleryRepo) UpdateImages(ctx context.Context, id uuid.UUID, images []string) error {
	const op = "repository.GalleryRepo.UpdateImages"

	if images == nil {
		images = []string{}
	}

	return execOne(ctx, r.db, op, r.sb.Update("galleries").
		Set("images", images).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}))
}

func (r *GalleryRepo) SetRead(ctx context.Context, id uuid.UUID, read bool) error {
	const op = "repository.GalleryRepo.SetRead"

	return execOne(ctx, r.db, op, r.sb.Update("galleries").
		Set("is_read", read).
		Where(sq.Eq{"id": id}))
}

func (r *GalleryRepo) DeleteGallery(ctx context.Context, id uuid.UUID) error {
	const op = "repository.GalleryRepo.DeleteGallery"

	return execOne(ctx, r.db, op, r.sb.Delete("galleries").Where(sq.Eq{"id": id}))
}

// SubmitSelection locks the gallery row, lets check veto the submission,
// then replaces the selection rows and completes the gallery in one
// transaction. Readers never see a partially replaced selection.
func (r *GalleryRepo) SubmitSelection(
	ctx context.Context,
	id uuid.UUID,
	photoIDs []string,
	check func(models.Gallery) error,
) (models.Gallery, error) {
	const op = "repository.GalleryRepo.SubmitSelection"

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query, args, err := r.selectGalleries().
		Where(sq.Eq{"g.id": id}).
		Suffix("FOR UPDATE OF g").
		ToSql()
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	g, err := scanGallery(tx.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Gallery{}, notFound(op, err)
	}

	if err := check(g); err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err = r.sb.Delete("selections").Where(sq.Eq{"gallery_id": id}).ToSql()
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	if len(photoIDs) > 0 {
		ins := r.sb.Insert("selections").Columns("gallery_id", "image_url", "position")
		for i, url := range photoIDs {
			ins = ins.Values(id, url, i)
		}

		query, args, err = ins.Suffix("ON CONFLICT (gallery_id, image_url) DO NOTHING").ToSql()
		if err != nil {
			return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
		}

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	now := time.Now().UTC()

	query, args, err = r.sb.Update("galleries").
		Set("status", models.GalleryStatusSelectionComplete).
		Set("selection_date", now).
		Set("is_read", false).
		Set("updated_at", now).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	g.Selections = append([]string{}, photoIDs...)
	g.Status = models.GalleryStatusSelectionComplete
	g.SelectionDate = &now
	g.UpdatedAt = now
	g.IsRead = false

	return g, nil
}
