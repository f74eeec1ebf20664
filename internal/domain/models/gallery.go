package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	GalleryStatusProofing          = "proofing"
	GalleryStatusSelectionComplete = "selection_complete"
)

type Gallery struct {
	ID            uuid.UUID  `json:"id"`
	ClientID      uuid.UUID  `json:"clientId"`
	ClientName    string     `json:"clientName,omitempty"`
	Name          string     `json:"name"`
	Images        []string   `json:"images"`
	Selections    []string   `json:"selections"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	SelectionDate *time.Time `json:"selectionDate,omitempty"`
	IsRead        bool       `json:"read"`
}

// HasImage reports whether url is one of the gallery images.
func (g Gallery) HasImage(url string) bool {
	for _, img := range g.Images {
		if img == url {
			return true
		}
	}

	return false
}

// ProofImage pairs an original image with its watermarked preview.
type ProofImage struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ProofGallery is the client-facing view of a gallery.
type ProofGallery struct {
	ID            uuid.UUID    `json:"id"`
	Name          string       `json:"name"`
	Images        []ProofImage `json:"images"`
	Selections    []string     `json:"selections"`
	Status        string       `json:"status"`
	CreatedAt     time.Time    `json:"createdAt"`
	SelectionDate *time.Time   `json:"selectionDate,omitempty"`
}
