package models

import (
	"time"

	"github.com/google/uuid"
)

type ProfileImage struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type AboutStats struct {
	Sessions int `json:"sessions"`
	Weddings int `json:"weddings"`
	Families int `json:"families"`
}

type About struct {
	Paragraphs   []string     `json:"paragraphs"`
	ProfileImage ProfileImage `json:"profileImage"`
	Stats        AboutStats   `json:"stats"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Service is a photography offering shown on the services page.
type Service struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Alt         string    `json:"alt"`
	Features    []string  `json:"features"`
	Price       string    `json:"price"`
	Order       int       `json:"order"`
}

type FAQ struct {
	ID        uuid.UUID `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}

type PortfolioItem struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	ImageURL  string    `json:"imageUrl"`
	Alt       string    `json:"alt"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}

type Message struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Service   string    `json:"service"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	IsRead    bool      `json:"read"`
}
