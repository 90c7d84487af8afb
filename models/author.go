package models

import "time"

// Author is a writer profile shown on ebook listings.
type Author struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AuthorCreateRequest carries the scalar fields of the multipart author
// creation call. The thumbnail travels alongside it as an Upload.
type AuthorCreateRequest struct {
	Name        string
	Email       string
	Description string
}

// AuthorUpdateRequest is the JSON body of PUT /authors/{id}. The thumbnail
// cannot be changed through it.
type AuthorUpdateRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Description string `json:"description"`
}
