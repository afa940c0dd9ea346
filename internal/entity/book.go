package entity

import "time"

// Book is a locally persisted shelf entry. Live metadata (description,
// subjects, resolved authors) comes from Open Library at view time; this
// row holds only what list pages need without a remote call.
type Book struct {
	ID        string    `json:"id"`
	WorkID    string    `json:"work_id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Year      *int      `json:"year,omitempty"`
	Genre     string    `json:"genre,omitempty"`
	CoverURL  string    `json:"cover_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
