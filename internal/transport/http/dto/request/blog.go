package request

type PostRequest struct {
	Title      string `json:"title" validate:"required,max=255"`
	Slug       string `json:"slug" validate:"omitempty,max=255"`
	Excerpt    string `json:"excerpt"`
	Content    string `json:"content" validate:"required"`
	CoverImage string `json:"coverImage"`
	Status     string `json:"status" validate:"omitempty,oneof=draft published"`
}

type PublishRequest struct {
	Published *bool `json:"published"`
}

type PostListQuery struct {
	Page    int    `query:"page" validate:"omitempty,min=1"`
	PerPage int    `query:"per_page" validate:"omitempty,min=1,max=100"`
	Status  string `query:"status" validate:"omitempty,oneof=draft published"`
}
