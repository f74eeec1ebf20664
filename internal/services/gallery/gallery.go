package gallery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"photostudio/internal/domain/models"
	"photostudio/internal/lib/logger/sl"
	"photostudio/internal/lib/watermark"
	"photostudio/internal/repository"
	"photostudio/internal/services"
	"photostudio/internal/storage"
	"photostudio/internal/transport/http/dto/request"

	"github.com/google/uuid"
)

// SelectionNotifier is told about every committed selection. Implementations
// must not block the caller.
type SelectionNotifier interface {
	NotifySelection(gallery models.Gallery)
}

type GalleryService struct {
	log       *slog.Logger
	galleries repository.GalleryRepository
	clients   repository.ClientRepository
	notifier  SelectionNotifier
}

func NewGalleryService(
	log *slog.Logger,
	galleries repository.GalleryRepository,
	clients repository.ClientRepository,
	notifier SelectionNotifier,
) *GalleryService {
	return &GalleryService{
		log:       log,
		galleries: galleries,
		clients:   clients,
		notifier:  notifier,
	}
}

func (s *GalleryService) CreateGallery(ctx context.Context, req request.GalleryRequest) (models.Gallery, error) {
	const op = "service.GalleryService.CreateGallery"

	log := s.log.With(
		slog.String("op", op),
		slog.String("client_id", req.ClientID.String()),
	)

	log.Info("creating gallery")

	client, err := s.clients.ClientByID(ctx, req.ClientID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Error("failed to load client", sl.Err(err))
		}
		return models.Gallery{}, fmt.Errorf("%s: %w", op, services.FromStorage(err))
	}

	images := req.Images
	if images == nil {
		images = []string{}
	}

	g, err := s.galleries.CreateGallery(ctx, models.Gallery{
		ClientID: client.ID,
		Name:     req.Name,
		Images:   images,
	})
	if err != nil {
		log.Error("failed to create gallery", sl.Err(err))
		return models.Gallery{}, fmt.Errorf("%s: %w", op, services.FromStorage(err))
	}

	g.ClientName = client.Name

	log.Info("gallery created", slog.String("id", g.ID.String()))

	return g, nil
}

// ListGalleries returns every gallery, optionally restricted to one status.
func (s *GalleryService) ListGalleries(ctx context.Context, status string) ([]models.Gallery, error) {
	const op = "service.GalleryService.ListGalleries"

	switch status {
	case "", models.GalleryStatusProofing, models.GalleryStatusSelectionComplete:
	default:
		return nil, fmt.Errorf("%s: %w", op, services.NewValidationError("status", "must be proofing or selection_complete"))
	}

	galleries, err := s.galleries.ListGalleries(ctx, repository.GalleryFilter{Status: status})
	if err != nil {
		s.log.Error("failed to list galleries", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return galleries, nil
}

func (s *GalleryService) GetGallery(ctx context.Context, id uuid.UUID) (models.Gallery, error) {
	const op = "service.GalleryService.GetGallery"

	g, err := s.galleries.GalleryByID(ctx, id)
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, services.FromStorage(err))
	}

	return g, nil
}

// UpdateImages replaces the image list in either workflow state.
func (s *GalleryService) UpdateImages(ctx context.Context, id uuid.UUID, images []string) (models.Gallery, error) {
	const op = "service.GalleryService.UpdateImages"

	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", id.String()),
	)

	if err := s.galleries.UpdateImages(ctx, id, images); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Error("failed to update images", sl.Err(err))
		}
		return models.Gallery{}, fmt.Errorf("%s: %w", op, services.FromStorage(err))
	}

	log.Info("gallery images updated", slog.Int("count", len(images)))

	return s.GetGallery(ctx, id)
}

func (s *GalleryService) SetRead(ctx context.Context, id uuid.UUID, read bool) error {
	const op = "service.GalleryService.SetRead"

	if err := s.galleries.SetRead(ctx, id, read); err != nil {
		return fmt.Errorf("%s: %w", op, services.FromStorage(err))
	}

	return nil
}

func (s *GalleryService) DeleteGallery(ctx context.Context, id uuid.UUID) error {
	const op = "service.GalleryService.DeleteGallery"

	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", id.String()),
	)

	if err := s.galleries.DeleteGallery(ctx, id); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Error("failed to delete gallery", sl.Err(err))
		}
		return fmt.Errorf("%s: %w", op, services.FromStorage(err))
	}

	log.Info("gallery deleted")

	return nil
}

// ClientGalleries returns the proofing view of every gallery owned by clientID.
func (s *GalleryService) ClientGalleries(ctx context.Context, clientID uuid.UUID) ([]models.ProofGallery, error) {
	const op = "service.GalleryService.ClientGalleries"

	galleries, err := s.galleries.ListGalleries(ctx, repository.GalleryFilter{ClientID: clientID})
	if err != nil {
		s.log.Error("failed to list client galleries", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.ProofGallery, 0, len(galleries))
	for _, g := range galleries {
		out = append(out, proofView(g))
	}

	return out, nil
}

// ClientGallery returns one gallery with watermarked images. A gallery of
// another client is reported as services.ErrForbidden.
func (s *GalleryService) ClientGallery(ctx context.Context, clientID, galleryID uuid.UUID) (models.ProofGallery, error) {
	const op = "service.GalleryService.ClientGallery"

	g, err := s.galleries.GalleryByID(ctx, galleryID)
	if err != nil {
		return models.ProofGallery{}, fmt.Errorf("%s: %w", op, services.FromStorage(err))
	}

	if g.ClientID != clientID {
		s.log.Warn("gallery access denied",
			slog.String("op", op),
			slog.String("gallery_id", galleryID.String()),
			slog.String("client_id", clientID.String()),
		)
		return models.ProofGallery{}, fmt.Errorf("%s: %w", op, services.ErrForbidden)
	}

	return proofView(g), nil
}

// SubmitSelection replaces the client's selection and completes the gallery.
// Ownership and photo membership are checked under the gallery row lock, so a
// rejected submission leaves the gallery untouched.
func (s *GalleryService) SubmitSelection(ctx context.Context, clientID uuid.UUID, req request.SelectionRequest) (models.ProofGallery, error) {
	const op = "service.GalleryService.SubmitSelection"

	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", req.GalleryID.String()),
		slog.String("client_id", clientID.String()),
	)

	photoIDs := dedupe(req.PhotoIDs)
	if len(photoIDs) == 0 {
		return models.ProofGallery{}, fmt.Errorf("%s: %w", op, services.NewValidationError("photoIds", "at least one photo is required"))
	}

	g, err := s.galleries.SubmitSelection(ctx, req.GalleryID, photoIDs, func(g models.Gallery) error {
		if g.ClientID != clientID {
			return services.ErrForbidden
		}

		for _, id := range photoIDs {
			if !g.HasImage(id) {
				return services.NewValidationError("photoIds", fmt.Sprintf("%q is not in this gallery", id))
			}
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			log.Warn("selection for foreign gallery rejected")
		case errors.Is(err, storage.ErrNotFound):
		default:
			var ve *services.ValidationError
			if !errors.As(err, &ve) {
				log.Error("failed to submit selection", sl.Err(err))
			}
		}
		return models.ProofGallery{}, fmt.Errorf("%s: %w", op, services.FromStorage(err))
	}

	log.Info("selection submitted", slog.Int("count", len(photoIDs)))

	if s.notifier != nil {
		s.notifier.NotifySelection(g)
	}

	return proofView(g), nil
}

func proofView(g models.Gallery) models.ProofGallery {
	selections := g.Selections
	if selections == nil {
		selections = []string{}
	}

	return models.ProofGallery{
		ID:            g.ID,
		Name:          g.Name,
		Images:        watermark.Proofs(g.Images, g.ClientName),
		Selections:    selections,
		Status:        g.Status,
		CreatedAt:     g.CreatedAt,
		SelectionDate: g.SelectionDate,
	}
}

// dedupe drops repeated ids, keeping the first occurrence.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
