package models

type DashboardCounts struct {
	Clients   int `json:"clients"`
	Portfolio int `json:"portfolio"`
	Posts     int `json:"posts"`
}

type GalleryStatusCounts struct {
	Proofing int `json:"proofing"`
	Unread   int `json:"unread"`
}

type Dashboard struct {
	Counts          DashboardCounts     `json:"counts"`
	GalleryStatus   GalleryStatusCounts `json:"galleryStatus"`
	LatestMessage   *Message            `json:"latestMessage"`
	LatestSelection *Gallery            `json:"latestSelection"`
	RecentClients   []Client            `json:"recentClients"`
}
