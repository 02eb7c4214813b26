package model

import "time"

// DocMeta is the metadata record for one collaborative document. Its ID is
// also the room name the relay uses for the document's sync channel.
type DocMeta struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateDocRequest struct {
	Title string `json:"title"`
}

type UpdateTitleRequest struct {
	Title string `json:"title"`
}
