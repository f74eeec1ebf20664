package request

import "github.com/google/uuid"

type ClientRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone" validate:"omitempty,max=50"`
}

type GalleryRequest struct {
	ClientID uuid.UUID `json:"clientId" validate:"required"`
	Name     string    `json:"name" validate:"required,max=200"`
	Images   []string  `json:"images" validate:"omitempty,dive,required"`
}

type GalleryImagesRequest struct {
	Images []string `json:"images" validate:"required,dive,required"`
}

type SelectionRequest struct {
	GalleryID uuid.UUID `json:"galleryId" validate:"required"`
	PhotoIDs  []string  `json:"photoIds" validate:"required,min=1,dive,required"`
}
