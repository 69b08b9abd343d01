package entity

import "time"

// Announcement comunicado publicado por un administrador para los usuarios del cliente.
type Announcement struct {
	ID        string
	ClientID  string
	AuthorID  string
	Title     string
	Body      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
