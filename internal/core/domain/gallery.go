package domain

import "time"

// MaxPhotosPerAlbum caps how many photos a single album can hold.
const MaxPhotosPerAlbum = 50

// Album groups gallery photos and carries an optional cover image.
type Album struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Title         string    `json:"title" bson:"title"`
	Description   string    `json:"description,omitempty" bson:"description,omitempty"`
	CoverImageURL string    `json:"coverImageUrl,omitempty" bson:"cover_image_url,omitempty"`
	IsActive      bool      `json:"isActive" bson:"is_active"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

// Photo is a single gallery image inside an album.
type Photo struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	AlbumID   string    `json:"albumId" bson:"album_id"`
	ImageURL  string    `json:"imageUrl" bson:"image_url"`
	Caption   string    `json:"caption,omitempty" bson:"caption,omitempty"`
	Order     int       `json:"order" bson:"order"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
