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

type AdminRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewAdminRepo(db *pgxpool.Pool) *AdminRepo {
	return &AdminRepo{db: db, sb: builder()}
}

func (r *AdminRepo) SaveAdmin(ctx context.Context, admin models.Admin) (uuid.UUID, error) {
	const op = "repository.AdminRepo.SaveAdmin"

	query, args, err := r.sb.Insert("admins").
		Columns("email", "password_hash", "name", "role").
		Values(admin.Email, admin.PassHash, admin.Name, models.RoleAdmin).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if postgresql.IsUniqueViolation(err, "") {
			return uuid.Nil, fmt.Errorf("%s: %w", op, storage.ErrEmailExists)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *AdminRepo) AdminByEmail(ctx context.Context, email string) (models.Admin, error) {
	const op = "repository.AdminRepo.AdminByEmail"

	query, args, err := r.sb.Select("id", "email", "password_hash", "name", "role", "created_at").
		From("admins").
		Where(sq.Eq{"lower(email)": normalizeEmail(email)}).
		ToSql()
	if err != nil {
		return models.Admin{}, fmt.Errorf("%s: %w", op, err)
	}

	var a models.Admin
	err = r.db.QueryRow(ctx, query, args...).Scan(&a.ID, &a.Email, &a.PassHash, &a.Name, &a.Role, &a.CreatedAt)
	if err != nil {
		return models.Admin{}, notFound(op, err)
	}

	return a, nil
}

type ClientRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewClientRepo(db *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{db: db, sb: builder()}
}

var clientColumns = []string{"id", "name", "email", "password_hash", "phone", "created_at"}

func scanClient(row interface{ Scan(...any) error }) (models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.PassHash, &c.Phone, &c.CreatedAt)
	return c, err
}

func (r *ClientRepo) SaveClient(ctx context.Context, client models.Client) (models.Client, error) {
	const op = "repository.ClientRepo.SaveClient"

	query, args, err := r.sb.Insert("clients").
		Columns("name", "email", "password_hash", "phone").
		Values(client.Name, client.Email, client.PassHash, client.Phone).
		Suffix("RETURNING " + joinColumns(clientColumns)).
		ToSql()
	if err != nil {
		return models.Client{}, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := scanClient(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if postgresql.IsUniqueViolation(err, "") {
			return models.Client{}, fmt.Errorf("%s: %w", op, storage.ErrEmailExists)
		}
		return models.Client{}, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

func (r *ClientRepo) ClientByEmail(ctx context.Context, email string) (models.Client, error) {
	const op = "repository.ClientRepo.ClientByEmail"

	return r.one(ctx, op, sq.Eq{"lower(email)": normalizeEmail(email)})
}

func (r *ClientRepo) ClientByID(ctx context.Context, id uuid.UUID) (models.Client, error) {
	const op = "repository.ClientRepo.ClientByID"

	return r.one(ctx, op, sq.Eq{"id": id})
}

func (r *ClientRepo) one(ctx context.Context, op string, where sq.Eq) (models.Client, error) {
	query, args, err := r.sb.Select(clientColumns...).From("clients").Where(where).ToSql()
	if err != nil {
		return models.Client{}, fmt.Errorf("%s: %w", op, err)
	}

	c, err := scanClient(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Client{}, notFound(op, err)
	}

	return c, nil
}

// ListClients returns clients newest first. limit <= 0 means no limit.
func (r *ClientRepo) ListClients(ctx context.Context, limit int) ([]models.Client, error) {
	const op = "repository.ClientRepo.ListClients"

	b := r.sb.Select(clientColumns...).From("clients").OrderBy("created_at DESC", "id")
	if limit > 0 {
		b = b.Limit(uint64(limit))
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

	clients := make([]models.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return clients, nil
}

func (r *ClientRepo) DeleteClient(ctx context.Context, id uuid.UUID) error {
	const op = "repository.ClientRepo.DeleteClient"

	return execOne(ctx, r.db, op, r.sb.Delete("clients").Where(sq.Eq{"id": id}))
}
