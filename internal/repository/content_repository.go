package repository

import (
	"context"
	"fmt"

	"photostudio/internal/domain/models"
	"photostudio/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"
)

const aboutID = 1

type AboutRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewAboutRepo(db *pgxpool.Pool) *AboutRepo {
	return &AboutRepo{db: db, sb: builder()}
}

func (r *AboutRepo) GetAbout(ctx context.Context) (models.About, error) {
	const op = "repository.AboutRepo.GetAbout"

	query, args, err := r.sb.Select(
		"paragraphs", "profile_image_src", "profile_image_alt",
		"stat_sessions", "stat_weddings", "stat_families", "updated_at",
	).From("about").Where(sq.Eq{"id": aboutID}).ToSql()
	if err != nil {
		return models.About{}, fmt.Errorf("%s: %w", op, err)
	}

	var a models.About
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&a.Paragraphs, &a.ProfileImage.Src, &a.ProfileImage.Alt,
		&a.Stats.Sessions, &a.Stats.Weddings, &a.Stats.Families, &a.UpdatedAt,
	)
	if err != nil {
		return models.About{}, notFound(op, err)
	}

	if a.Paragraphs == nil {
		a.Paragraphs = []string{}
	}

	return a, nil
}

func (r *AboutRepo) UpdateAbout(ctx context.Context, about models.About) error {
	const op = "repository.AboutRepo.UpdateAbout"

	return execOne(ctx, r.db, op, r.sb.Update("about").
		Set("paragraphs", about.Paragraphs).
		Set("profile_image_src", about.ProfileImage.Src).
		Set("profile_image_alt", about.ProfileImage.Alt).
		Set("stat_sessions", about.Stats.Sessions).
		Set("stat_weddings", about.Stats.Weddings).
		Set("stat_families", about.Stats.Families).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": aboutID}))
}

type ServiceRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewServiceRepo(db *pgxpool.Pool) *ServiceRepo {
	return &ServiceRepo{db: db, sb: builder()}
}

var serviceColumns = []string{"id", "title", "description", "image_url", "alt", "features", "price", "sort_order"}

func scanService(row interface{ Scan(...any) error }) (models.Service, error) {
	var s models.Service
	err := row.Scan(&s.ID, &s.Title, &s.Description, &s.ImageURL, &s.Alt, &s.Features, &s.Price, &s.Order)
	return s, err
}

func (r *ServiceRepo) ListServices(ctx context.Context) ([]models.Service, error) {
	const op = "repository.ServiceRepo.ListServices"

	query, args, err := r.sb.Select(serviceColumns...).
		From("services").
		OrderBy("sort_order", "title").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	services := make([]models.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		services = append(services, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return services, nil
}

// CreateService appends the service after the current last one.
func (r *ServiceRepo) CreateService(ctx context.Context, s models.Service) (models.Service, error) {
	const op = "repository.ServiceRepo.CreateService"

	query, args, err := r.sb.Insert("services").
		Columns("title", "description", "image_url", "alt", "features", "price", "sort_order").
		Values(s.Title, s.Description, s.ImageURL, s.Alt, s.Features, s.Price,
			sq.Expr("(SELECT COALESCE(MAX(sort_order) + 1, 0) FROM services)")).
		Suffix("RETURNING " + joinColumns(serviceColumns)).
		ToSql()
	if err != nil {
		return models.Service{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanService(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Service{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (r *ServiceRepo) UpdateService(ctx context.Context, s models.Service) (models.Service, error) {
	const op = "repository.ServiceRepo.UpdateService"

	query, args, err := r.sb.Update("services").
		Set("title", s.Title).
		Set("description", s.Description).
		Set("image_url", s.ImageURL).
		Set("alt", s.Alt).
		Set("features", s.Features).
		Set("price", s.Price).
		Where(sq.Eq{"id": s.ID}).
		Suffix("RETURNING " + joinColumns(serviceColumns)).
		ToSql()
	if err != nil {
		return models.Service{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := scanService(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Service{}, notFound(op, err)
	}

	return updated, nil
}

func (r *ServiceRepo) DeleteService(ctx context.Context, id uuid.UUID) error {
	const op = "repository.ServiceRepo.DeleteService"

	return execOne(ctx, r.db, op, r.sb.Delete("services").Where(sq.Eq{"id": id}))
}

// ReorderServices sets each service's rank to its index in ids. Either every
// rank is written or none is; an unknown id yields storage.ErrNotFound.
func (r *ServiceRepo) ReorderServices(ctx context.Context, ids []uuid.UUID) error {
	const op = "repository.ServiceRepo.ReorderServices"

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}

	query, args, err := r.sb.Select("COUNT(*)").
		From("services").
		Where(sq.Expr("id = ANY(?::uuid[])", pq.Array(strIDs))).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var found int
	if err := tx.QueryRow(ctx, query, args...).Scan(&found); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if found != len(ids) {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	for i, id := range ids {
		query, args, err := r.sb.Update("services").
			Set("sort_order", i).
			Where(sq.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

type FAQRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewFAQRepo(db *pgxpool.Pool) *FAQRepo {
	return &FAQRepo{db: db, sb: builder()}
}

var faqColumns = []string{"id", "question", "answer", "sort_order", "created_at"}

func scanFAQ(row interface{ Scan(...any) error }) (models.FAQ, error) {
	var f models.FAQ
	err := row.Scan(&f.ID, &f.Question, &f.Answer, &f.Order, &f.CreatedAt)
	return f, err
}

func (r *FAQRepo) ListFAQs(ctx context.Context) ([]models.FAQ, error) {
	const op = "repository.FAQRepo.ListFAQs"

	query, args, err := r.sb.Select(faqColumns...).From("faqs").OrderBy("sort_order", "created_at").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	faqs := make([]models.FAQ, 0)
	for rows.Next() {
		f, err := scanFAQ(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		faqs = append(faqs, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return faqs, nil
}

func (r *FAQRepo) CreateFAQ(ctx context.Context, f models.FAQ) (models.FAQ, error) {
	const op = "repository.FAQRepo.CreateFAQ"

	query, args, err := r.sb.Insert("faqs").
		Columns("question", "answer", "sort_order").
		Values(f.Question, f.Answer, f.Order).
		Suffix("RETURNING " + joinColumns(faqColumns)).
		ToSql()
	if err != nil {
		return models.FAQ{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanFAQ(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.FAQ{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (r *FAQRepo) UpdateFAQ(ctx context.Context, f models.FAQ) (models.FAQ, error) {
	const op = "repository.FAQRepo.UpdateFAQ"

	query, args, err := r.sb.Update("faqs").
		Set("question", f.Question).
		Set("answer", f.Answer).
		Set("sort_order", f.Order).
		Where(sq.Eq{"id": f.ID}).
		Suffix("RETURNING " + joinColumns(faqColumns)).
		ToSql()
	if err != nil {
		return models.FAQ{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := scanFAQ(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.FAQ{}, notFound(op, err)
	}

	return updated, nil
}

func (r *FAQRepo) DeleteFAQ(ctx context.Context, id uuid.UUID) error {
	const op = "repository.FAQRepo.DeleteFAQ"

	return execOne(ctx, r.db, op, r.sb.Delete("faqs").Where(sq.Eq{"id": id}))
}

type PortfolioRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewPortfolioRepo(db *pgxpool.Pool) *PortfolioRepo {
	return &PortfolioRepo{db: db, sb: builder()}
}

var portfolioColumns = []string{"id", "title", "category", "image_url", "alt", "sort_order", "created_at"}

func scanPortfolioItem(row interface{ Scan(...any) error }) (models.PortfolioItem, error) {
	var p models.PortfolioItem
	err := row.Scan(&p.ID, &p.Title, &p.Category, &p.ImageURL, &p.Alt, &p.Order, &p.CreatedAt)
	return p, err
}

func (r *PortfolioRepo) ListPortfolio(ctx context.Context, category string) ([]models.PortfolioItem, error) {
	const op = "repository.PortfolioRepo.ListPortfolio"

	b := r.sb.Select(portfolioColumns...).From("portfolio_items").OrderBy("sort_order", "created_at DESC")
	if category != "" {
		b = b.Where(sq.Eq{"category": category})
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

	items := make([]models.PortfolioItem, 0)
	for rows.Next() {
		p, err := scanPortfolioItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

func (r *PortfolioRepo) CreatePortfolioItem(ctx context.Context, p models.PortfolioItem) (models.PortfolioItem, error) {
	const op = "repository.PortfolioRepo.CreatePortfolioItem"

	query, args, err := r.sb.Insert("portfolio_items").
		Columns("title", "category", "image_url", "alt", "sort_order").
		Values(p.Title, p.Category, p.ImageURL, p.Alt, p.Order).
		Suffix("RETURNING " + joinColumns(portfolioColumns)).
		ToSql()
	if err != nil {
		return models.PortfolioItem{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanPortfolioItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.PortfolioItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (r *PortfolioRepo) UpdatePortfolioItem(ctx context.Context, p models.PortfolioItem) (models.PortfolioItem, error) {
	const op = "repository.PortfolioRepo.UpdatePortfolioItem"

	query, args, err := r.sb.Update("portfolio_items").
		Set("title", p.Title).
		Set("category", p.Category).
		Set("image_url", p.ImageURL).
		Set("alt", p.Alt).
		Set("sort_order", p.Order).
		Where(sq.Eq{"id": p.ID}).
		Suffix("RETURNING " + joinColumns(portfolioColumns)).
		ToSql()
	if err != nil {
		return models.PortfolioItem{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := scanPortfolioItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.PortfolioItem{}, notFound(op, err)
	}

	return updated, nil
}

func (r *PortfolioRepo) DeletePortfolioItem(ctx context.Context, id uuid.UUID) error {
	const op = "repository.PortfolioRepo.DeletePortfolioItem"

	return execOne(ctx, r.db, op, r.sb.Delete("portfolio_items").Where(sq.Eq{"id": id}))
}

type MessageRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewMessageRepo(db *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{db: db, sb: builder()}
}

var messageColumns = []string{"id", "name", "email", "phone", "service", "message", "created_at", "is_read"}

func scanMessage(row interface{ Scan(...any) error }) (models.Message, error) {
	var m models.Message
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Service, &m.Message, &m.CreatedAt, &m.IsRead)
	return m, err
}

func (r *MessageRepo) SaveMessage(ctx context.Context, m models.Message) (models.Message, error) {
	const op = "repository.MessageRepo.SaveMessage"

	query, args, err := r.sb.Insert("messages").
		Columns("name", "email", "phone", "service", "message").
		Values(m.Name, m.Email, m.Phone, m.Service, m.Message).
		Suffix("RETURNING " + joinColumns(messageColumns)).
		ToSql()
	if err != nil {
		return models.Message{}, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := scanMessage(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Message{}, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

func (r *MessageRepo) ListMessages(ctx context.Context) ([]models.Message, error) {
	const op = "repository.MessageRepo.ListMessages"

	query, args, err := r.sb.Select(messageColumns...).From("messages").OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return messages, nil
}

func (r *MessageRepo) SetRead(ctx context.Context, id uuid.UUID, read bool) error {
	const op = "repository.MessageRepo.SetRead"

	return execOne(ctx, r.db, op, r.sb.Update("messages").Set("is_read", read).Where(sq.Eq{"id": id}))
}

func (r *MessageRepo) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	const op = "repository.MessageRepo.DeleteMessage"

	return execOne(ctx, r.db, op, r.sb.Delete("messages").Where(sq.Eq{"id": id}))
}
