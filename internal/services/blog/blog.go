package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"photostudio/internal/domain/models"
	"photostudio/internal/lib/logger/sl"
	"photostudio/internal/repository"
	"photostudio/internal/services"
	"photostudio/internal/storage"
	"photostudio/internal/transport/http/dto/request"

	"github.com/google/uuid"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// PostList is one page of posts.
type PostList struct {
	Posts      []models.Post `json:"posts"`
	TotalCount int           `json:"totalCount"`
	Page       int           `json:"page"`
	PerPage    int           `json:"perPage"`
}

type BlogService struct {
	log  *slog.Logger
	repo repository.PostRepository
}

func NewBlogService(log *slog.Logger, repo repository.PostRepository) *BlogService {
	return &BlogService{log: log, repo: repo}
}

// CreatePost stores a new post. A slug derived from the title is made unique
// on conflict; an explicit slug that is already taken is a conflict.
func (s *BlogService) CreatePost(ctx context.Context, req request.PostRequest) (models.Post, error) {
	const op = "service.BlogService.CreatePost"

	log := s.log.With(slog.String("op", op))

	log.Info("creating post", slog.String("title", req.Title))

	post := models.Post{
		Title:      req.Title,
		Slug:       req.Slug,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Status:     req.Status,
	}

	derived := post.Slug == ""
	if derived {
		post.Slug = generateSlug(post.Title)
		log.Debug("generated slug", slog.String("slug", post.Slug))
	}
	if post.Slug == "" {
		return models.Post{}, fmt.Errorf("%s: %w", op, services.NewValidationError("slug", "cannot be derived from title"))
	}

	if post.Status == "" {
		post.Status = models.PostStatusDraft
	}
	if post.Status == models.PostStatusPublished {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	saved, err := s.repo.SavePost(ctx, post)
	if err != nil && derived && errors.Is(err, storage.ErrSlugExists) {
		log.Warn("slug conflict, generating unique slug", slog.String("slug", post.Slug))
		post.Slug = generateUniqueSlug(post.Slug)
		saved, err = s.repo.SavePost(ctx, post)
	}
	if err != nil {
		if !errors.Is(err, storage.ErrSlugExists) {
			log.Error("failed to create post", sl.Err(err))
		}
		return models.Post{}, fmt.Errorf("%s: %w", op, services.FromStorage(err))
	}

	log.Info("post created", slog.String("id", saved.ID.String()), slog.String("slug", saved.Slug))

	return saved, nil
}

// UpdatePost replaces the editable fields of a post. Status changes go
// through SetPublished.
func (s *BlogService) UpdatePost(ctx context.Context, id uuid.UUID, req request.PostRequest) (models.Post, error) {
	const op = "service.BlogService.UpdatePost"

	log := s.log.With(slog.String("op", op), slog.String("id", id.String()))

	slug := req.Slug
	if slug == "" {
		current, err := s.repo.PostByID(ctx, id)
		if err != nil {
			return models.Post{}, s.fail(log, op, err)
		}
		slug = current.Slug
	}

	updated, err := s.repo.UpdatePost(ctx, models.Post{
		ID:         id,
		Title:      req.Title,
		Slug:       slug,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		CoverImage: req.CoverImage,
	})
	if err != nil {
		return models.Post{}, s.fail(log, op, err)
	}

	if req.Status != "" && req.Status != updated.Status {
		return s.setStatus(ctx, log, op, id, req.Status)
	}

	return updated, nil
}

func (s *BlogService) SetPublished(ctx context.Context, id uuid.UUID, published bool) (models.Post, error) {
	const op = "service.BlogService.SetPublished"

	log := s.log.With(slog.String("op", op), slog.String("id", id.String()))

	status := models.PostStatusDraft
	if published {
		status = models.PostStatusPublished
	}

	return s.setStatus(ctx, log, op, id, status)
}

func (s *BlogService) setStatus(ctx context.Context, log *slog.Logger, op string, id uuid.UUID, status string) (models.Post, error) {
	post, err := s.repo.SetStatus(ctx, id, status)
	if err != nil {
		return models.Post{}, s.fail(log, op, err)
	}

	log.Info("post status changed", slog.String("status", status))

	return post, nil
}

func (s *BlogService) DeletePost(ctx context.Context, id uuid.UUID) error {
	const op = "service.BlogService.DeletePost"

	log := s.log.With(slog.String("op", op), slog.String("id", id.String()))

	if err := s.repo.DeletePost(ctx, id); err != nil {
		return s.fail(log, op, err)
	}

	log.Info("post deleted")

	return nil
}

func (s *BlogService) GetPost(ctx context.Context, id uuid.UUID) (models.Post, error) {
	const op = "service.BlogService.GetPost"

	post, err := s.repo.PostByID(ctx, id)
	if err != nil {
		return models.Post{}, s.fail(s.log.With(slog.String("op", op)), op, err)
	}

	return post, nil
}

// PublishedPost returns a published post by slug; drafts are not found.
func (s *BlogService) PublishedPost(ctx context.Context, slug string) (models.Post, error) {
	const op = "service.BlogService.PublishedPost"

	post, err := s.repo.PublishedPostBySlug(ctx, slug)
	if err != nil {
		return models.Post{}, s.fail(s.log.With(slog.String("op", op)), op, err)
	}

	return post, nil
}

// ListPosts returns one page of posts. Out of range paging values fall back
// to the first page of DefaultPerPage.
func (s *BlogService) ListPosts(ctx context.Context, status string, page, perPage int) (PostList, error) {
	const op = "service.BlogService.ListPosts"

	log := s.log.With(
		slog.String("op", op),
		slog.String("status", status),
		slog.Int("page", page),
		slog.Int("per_page", perPage),
	)

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > MaxPerPage {
		perPage = DefaultPerPage
	}

	posts, total, err := s.repo.ListPosts(ctx, status, page, perPage)
	if err != nil {
		log.Error("failed to list posts", sl.Err(err))
		return PostList{}, fmt.Errorf("%s: %w", op, err)
	}

	return PostList{
		Posts:      posts,
		TotalCount: total,
		Page:       page,
		PerPage:    perPage,
	}, nil
}

func (s *BlogService) fail(log *slog.Logger, op string, err error) error {
	if !errors.Is(err, storage.ErrNotFound) && !errors.Is(err, storage.ErrSlugExists) {
		log.Error("post operation failed", sl.Err(err))
	}
	return fmt.Errorf("%s: %w", op, services.FromStorage(err))
}

// generateSlug lowercases title, keeps letters and digits, and joins the
// remaining words with single dashes.
func generateSlug(title string) string {
	var b strings.Builder
	dash := false

	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

func generateUniqueSlug(base string) string {
	return fmt.Sprintf("%s-%d", base, time.Now().UnixNano())
}
