package models

import "time"

type HeroSlide struct {
	ID          int64     `json:"id" db:"id"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
