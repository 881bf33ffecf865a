package model

import "time"

// Banner is an admin-managed promotional entry, shown in ascending Order.
type Banner struct {
	ID        string    `json:"id"`
	Title     string    `json:"title" validate:"required"`
	Subtitle  string    `json:"subtitle,omitempty"`
	Image     string    `json:"image" validate:"required"`
	Link      string    `json:"link,omitempty"`
	Order     int       `json:"order"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
