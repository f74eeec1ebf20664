package repository

import (
	"context"
	"fmt"

	"photostudio/internal/domain/models"
	"photostudio/internal/storage"
	"photostudio/internal/storage/postgresql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

type PostRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewPostRepo(db *pgxpool.Pool) *PostRepo {
	return &PostRepo{db: db, sb: builder()}
}

var postColumns = []string{
	"id", "title", "slug", "excerpt", "content", "cover_image",
	"status", "published_at", "created_at", "updated_at",
}

func scanPost(row interface{ Scan(...any) error }) (models.Post, error) {
	var p models.Post
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.CoverImage,
		&p.Status, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func slugConflict(op string, err error) error {
	if postgresql.IsUniqueViolation(err, "") {
		return fmt.Errorf("%s: %w", op, storage.ErrSlugExists)
	}

	return notFound(op, err)
}

func (r *PostRepo) SavePost(ctx context.Context, p models.Post) (models.Post, error) {
	const op = "repository.PostRepo.SavePost"

	query, args, err := r.sb.Insert("posts").
		Columns("title", "slug", "excerpt", "content", "cover_image", "status", "published_at").
		Values(p.Title, p.Slug, p.Excerpt, p.Content, p.CoverImage, p.Status, p.PublishedAt).
		Suffix("RETURNING " + joinColumns(postColumns)).
		ToSql()
	if err != nil {
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := scanPost(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Post{}, slugConflict(op, err)
	}

	return saved, nil
}

func (r *PostRepo) UpdatePost(ctx context.Context, p models.Post) (models.Post, error) {
	const op = "repository.PostRepo.UpdatePost"

	query, args, err := r.sb.Update("posts").
		Set("title", p.Title).
		Set("slug", p.Slug).
		Set("excerpt", p.Excerpt).
		Set("content", p.Content).
		Set("cover_image", p.CoverImage).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": p.ID}).
		Suffix("RETURNING " + joinColumns(postColumns)).
		ToSql()
	if err != nil {
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := scanPost(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Post{}, slugConflict(op, err)
	}

	return updated, nil
}

// SetStatus moves a post between draft and published. published_at is set
// on first publication and kept afterwards.
func (r *PostRepo) SetStatus(ctx context.Context, id uuid.UUID, status string) (models.Post, error) {
	const op = "repository.PostRepo.SetStatus"

	b := r.sb.Update("posts").
		Set("status", status).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(postColumns))
	if status == models.PostStatusPublished {
		b = b.Set("published_at", sq.Expr("COALESCE(published_at, NOW())"))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := scanPost(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Post{}, notFound(op, err)
	}

	return p, nil
}

func (r *PostRepo) DeletePost(ctx context.Context, id uuid.UUID) error {
	const op = "repository.PostRepo.DeletePost"

	return execOne(ctx, r.db, op, r.sb.Delete("posts").Where(sq.Eq{"id": id}))
}

func (r *PostRepo) PostByID(ctx context.Context, id uuid.UUID) (models.Post, error) {
	const op = "repository.PostRepo.PostByID"

	return r.one(ctx, op, sq.Eq{"id": id})
}

func (r *PostRepo) PublishedPostBySlug(ctx context.Context, slug string) (models.Post, error) {
	const op = "repository.PostRepo.PublishedPostBySlug"

	return r.one(ctx, op, sq.Eq{"slug": slug, "status": models.PostStatusPublished})
}

func (r *PostRepo) one(ctx context.Context, op string, where sq.Eq) (models.Post, error) {
	query, args, err := r.sb.Select(postColumns...).From("posts").Where(where).ToSql()
	if err != nil {
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := scanPost(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Post{}, notFound(op, err)
	}

	return p, nil
}

// ListPosts returns one page of posts and the total matching count.
// An empty status matches every post.
func (r *PostRepo) ListPosts(ctx context.Context, status string, page, perPage int) ([]models.Post, int, error) {
	const op = "repository.PostRepo.ListPosts"

	where := sq.Eq{}
	if status != "" {
		where["status"] = status
	}

	total, err := count(ctx, r.db, r.sb.Select("COUNT(*)").From("posts").Where(where))
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.sb.Select(postColumns...).
		From("posts").
		Where(where).
		OrderBy("COALESCE(published_at, created_at) DESC", "id").
		Limit(uint64(perPage)).
		Offset(uint64((page - 1) * perPage)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return posts, total, nil
}
