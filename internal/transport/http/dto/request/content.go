package request

import "github.com/google/uuid"

type AboutRequest struct {
	Paragraphs   []string            `json:"paragraphs" validate:"required,min=1,dive,required"`
	ProfileImage ProfileImageRequest `json:"profileImage"`
	Stats        AboutStatsRequest   `json:"stats"`
}

type ProfileImageRequest struct {
	Src string `json:"src" validate:"required"`
	Alt string `json:"alt"`
}

type AboutStatsRequest struct {
	Sessions int `json:"sessions" validate:"gte=0"`
	Weddings int `json:"weddings" validate:"gte=0"`
	Families int `json:"families" validate:"gte=0"`
}

type ServiceRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Alt         string   `json:"alt"`
	Features    []string `json:"features" validate:"omitempty,dive,required"`
	Price       string   `json:"price"`
}

type ReorderRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1,unique"`
}

type FAQRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
	Order    int    `json:"order" validate:"gte=0"`
}

type PortfolioRequest struct {
	Title    string `json:"title" validate:"required"`
	Category string `json:"category"`
	ImageURL string `json:"imageUrl" validate:"required"`
	Alt      string `json:"alt"`
	Order    int    `json:"order" validate:"gte=0"`
}

type MessageRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
	Service string `json:"service" validate:"required"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ReadRequest toggles the read flag of a message or gallery.
type ReadRequest struct {
	Read *bool `json:"read" validate:"required"`
}
