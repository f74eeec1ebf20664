package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"photostudio/internal/config"
	"photostudio/internal/domain/models"
	"photostudio/internal/lib/jwt"
	"photostudio/internal/lib/logger/sl"
	"photostudio/internal/services"
	"photostudio/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Auth issues tokens for the two credential domains. Admin and client
// tokens are signed with different secrets, so neither is accepted by the
// other domain's gate.
type Auth struct {
	log     *slog.Logger
	admins  AdminStore
	clients ClientProvider
	cfg     config.AuthConfig
}

type AdminStore interface {
	SaveAdmin(ctx context.Context, admin models.Admin) (uuid.UUID, error)
	AdminByEmail(ctx context.Context, email string) (models.Admin, error)
}

type ClientProvider interface {
	ClientByEmail(ctx context.Context, email string) (models.Client, error)
}

func New(log *slog.Logger, admins AdminStore, clients ClientProvider, cfg config.AuthConfig) *Auth {
	return &Auth{
		log:     log,
		admins:  admins,
		clients: clients,
		cfg:     cfg,
	}
}

func (a *Auth) AdminLogin(ctx context.Context, email, password string) (string, models.Admin, error) {
	const op = "auth.Auth.AdminLogin"

	log := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	log.Info("attempting to login admin")

	admin, err := a.admins.AdminByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Warn("admin not found")

			return "", models.Admin{}, fmt.Errorf("%s: %w", op, services.ErrInvalidCredentials)
		}
		log.Error("failed to get admin", sl.Err(err))

		return "", models.Admin{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(admin.PassHash, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))

		return "", models.Admin{}, fmt.Errorf("%s: %w", op, services.ErrInvalidCredentials)
	}

	if admin.Role == "" {
		admin.Role = models.RoleAdmin
	}

	token, err := jwt.NewAdminToken(admin, a.cfg.AdminSecret, a.cfg.AdminTokenTTL)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))

		return "", models.Admin{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("admin logged in successfully")

	return token, admin, nil
}

func (a *Auth) ClientLogin(ctx context.Context, email, password string) (string, models.Client, error) {
	const op = "auth.Auth.ClientLogin"

	log := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	log.Info("attempting to login client")

	client, err := a.clients.ClientByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Warn("client not found")

			return "", models.Client{}, fmt.Errorf("%s: %w", op, services.ErrInvalidCredentials)
		}
		log.Error("failed to get client", sl.Err(err))

		return "", models.Client{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(client.PassHash, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))

		return "", models.Client{}, fmt.Errorf("%s: %w", op, services.ErrInvalidCredentials)
	}

	token, err := jwt.NewClientToken(client, a.cfg.ClientSecret, a.cfg.ClientTokenTTL)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))

		return "", models.Client{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("client logged in successfully")

	return token, client, nil
}

// RegisterAdmin stores a new admin with a bcrypt hash of password.
func (a *Auth) RegisterAdmin(ctx context.Context, email, password, name string) (uuid.UUID, error) {
	const op = "auth.Auth.RegisterAdmin"

	log := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	if email == "" || password == "" {
		return uuid.Nil, fmt.Errorf("%s: %w", op, services.NewValidationError("email", "email and password are required"))
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := a.admins.SaveAdmin(ctx, models.Admin{
		Email:    normalizeEmail(email),
		PassHash: passHash,
		Name:     name,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, storage.ErrEmailExists) {
			log.Warn("admin already exists")
		} else {
			log.Error("failed to save admin", sl.Err(err))
		}

		return uuid.Nil, fmt.Errorf("%s: %w", op, services.FromStorage(err))
	}

	log.Info("admin registered", slog.String("id", id.String()))

	return id, nil
}

// EnsureAdmin creates the bootstrap admin unless one with that email exists.
// It reports whether a row was created.
func (a *Auth) EnsureAdmin(ctx context.Context, email, password, name string) (bool, error) {
	const op = "auth.Auth.EnsureAdmin"

	if email == "" {
		return false, nil
	}

	_, err := a.admins.AdminByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := a.RegisterAdmin(ctx, email, password, name); err != nil {
		if errors.Is(err, services.ErrConflict) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
