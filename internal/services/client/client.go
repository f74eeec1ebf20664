package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"photostudio/internal/domain/models"
	"photostudio/internal/lib/logger/sl"
	"photostudio/internal/repository"
	"photostudio/internal/services"
	"photostudio/internal/storage"
	"photostudio/internal/transport/http/dto/request"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type ClientService struct {
	log  *slog.Logger
	repo repository.ClientRepository
	cost int
}

func NewClientService(log *slog.Logger, repo repository.ClientRepository) *ClientService {
	return &ClientService{
		log:  log,
		repo: repo,
		cost: bcrypt.DefaultCost,
	}
}

// CreateClient stores a client account; the password is kept only as a bcrypt hash.
func (s *ClientService) CreateClient(ctx context.Context, req request.ClientRequest) (models.Client, error) {
	const op = "service.ClientService.CreateClient"

	email := strings.ToLower(strings.TrimSpace(req.Email))

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	log.Info("creating client")

	passHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))
		return models.Client{}, fmt.Errorf("%s: %w", op, err)
	}

	client, err := s.repo.SaveClient(ctx, models.Client{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		PassHash: passHash,
		Phone:    req.Phone,
	})
	if err != nil {
		if errors.Is(err, storage.ErrEmailExists) {
			log.Warn("client already exists")
		} else {
			log.Error("failed to save client", sl.Err(err))
		}
		return models.Client{}, fmt.Errorf("%s: %w", op, services.FromStorage(err))
	}

	log.Info("client created", slog.String("id", client.ID.String()))

	return client, nil
}

func (s *ClientService) ListClients(ctx context.Context) ([]models.Client, error) {
	const op = "service.ClientService.ListClients"

	clients, err := s.repo.ListClients(ctx, 0)
	if err != nil {
		s.log.Error("failed to list clients", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return clients, nil
}

func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (models.Client, error) {
	const op = "service.ClientService.GetClient"

	client, err := s.repo.ClientByID(ctx, id)
	if err != nil {
		return models.Client{}, fmt.Errorf("%s: %w", op, services.FromStorage(err))
	}

	return client, nil
}

// DeleteClient removes the client together with its galleries and selections.
func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	const op = "service.ClientService.DeleteClient"

	log := s.log.With(
		slog.String("op", op),
		slog.String("client_id", id.String()),
	)

	if err := s.repo.DeleteClient(ctx, id); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Error("failed to delete client", sl.Err(err))
		}
		return fmt.Errorf("%s: %w", op, services.FromStorage(err))
	}

	log.Info("client deleted")

	return nil
}
