package models

import "time"

// Category groups stock items for browsing and filtering. Deleting a
// category never cascades to its items; readers fall back to the
// UncategorizedLabel when the reference dangles.
type Category struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Color     string    `json:"color,omitempty" bson:"color,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
