package message

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
)

// ContactNotifier is told about every stored contact message. Implementations
// must not block the caller.
type ContactNotifier interface {
	NotifyContact(msg models.Message)
}

type MessageService struct {
	log      *slog.Logger
	repo     repository.MessageRepository
	notifier ContactNotifier
}

func NewMessageService(log *slog.Logger, repo repository.MessageRepository, notifier ContactNotifier) *MessageService {
	return &MessageService{log: log, repo: repo, notifier: notifier}
}

// Submit stores a contact form message as unread and dispatches one
// notification. Nothing is stored when the requested service is missing.
func (s *MessageService) Submit(ctx context.Context, req request.MessageRequest) (models.Message, error) {
	const op = "service.MessageService.Submit"

	log := s.log.With(slog.String("op", op))

	if strings.TrimSpace(req.Service) == "" {
		return models.Message{}, fmt.Errorf("%s: %w", op, services.NewValidationError("service", "is required"))
	}

	msg, err := s.repo.SaveMessage(ctx, models.Message{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Service: strings.TrimSpace(req.Service),
		Message: req.Message,
	})
	if err != nil {
		log.Error("failed to save message", sl.Err(err))
		return models.Message{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("contact message received", slog.String("id", msg.ID.String()), slog.String("service", msg.Service))

	if s.notifier != nil {
		s.notifier.NotifyContact(msg)
	}

	return msg, nil
}

func (s *MessageService) ListMessages(ctx context.Context) ([]models.Message, error) {
	const op = "service.MessageService.ListMessages"

	msgs, err := s.repo.ListMessages(ctx)
	if err != nil {
		s.log.Error("failed to list messages", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return msgs, nil
}

func (s *MessageService) SetRead(ctx context.Context, id uuid.UUID, read bool) error {
	const op = "service.MessageService.SetRead"

	if err := s.repo.SetRead(ctx, id, read); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Error("failed to update message", slog.String("op", op), sl.Err(err))
		}
		return fmt.Errorf("%s: %w", op, services.FromStorage(err))
	}

	return nil
}

func (s *MessageService) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	const op = "service.MessageService.DeleteMessage"

	if err := s.repo.DeleteMessage(ctx, id); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Error("failed to delete message", slog.String("op", op), sl.Err(err))
		}
		return fmt.Errorf("%s: %w", op, services.FromStorage(err))
	}

	return nil
}
