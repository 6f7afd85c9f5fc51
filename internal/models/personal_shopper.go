package models

import "time"

// PersonalShopper is the single "about the shopper" block shown on the landing page
type PersonalShopper struct {
	ID           int64     `json:"id" db:"id"`
	ImageURL     string    `json:"image_url" db:"image_url"`
	Title        string    `json:"title" db:"title"`
	Description1 string    `json:"description1" db:"description1"`
	Description2 string    `json:"description2" db:"description2"`
	Description3 string    `json:"description3" db:"description3"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
