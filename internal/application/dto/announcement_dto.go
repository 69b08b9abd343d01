package dto

import "time"

// CreateAnnouncementRequest alta de comunicado.
type CreateAnnouncementRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// AnnouncementResponse representación de un comunicado.
type AnnouncementResponse struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// AnnouncementListResponse listado de comunicados activos.
type AnnouncementListResponse struct {
	Items []AnnouncementResponse `json:"items"`
}
