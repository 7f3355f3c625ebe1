package ports

import (
	"context"

	"github.com/greenpact/consulting-api/internal/core/domain"
)

// AlbumRepository defines persistence for gallery albums.
type AlbumRepository interface {
	Create(ctx context.Context, album *domain.Album) (*domain.Album, error)
	FindByID(ctx context.Context, id string) (*domain.Album, error)
	// FindAll returns albums newest first; onlyActive restricts to albums
	// visible on the public gallery.
	FindAll(ctx context.Context, onlyActive bool) ([]domain.Album, error)
	Update(ctx context.Context, album *domain.Album) error
	Delete(ctx context.Context, id string) error
}

// PhotoRepository defines persistence for gallery photos.
type PhotoRepository interface {
	Insert(ctx context.Context, photos []domain.Photo) ([]domain.Photo, error)
	FindByID(ctx context.Context, id string) (*domain.Photo, error)
	// FindByAlbum returns the album's photos by order, then creation time.
	FindByAlbum(ctx context.Context, albumID string) ([]domain.Photo, error)
	CountByAlbum(ctx context.Context, albumID string) (int64, error)
	Update(ctx context.Context, photo *domain.Photo) error
	Delete(ctx context.Context, id string) error
}

// CreateAlbumInput carries the multipart fields of an album creation.
type CreateAlbumInput struct {
	Title       string
	Description string
	IsActive    *bool
	CoverImage  *FileUpload
}

// UpdateAlbumInput updates only the fields that are set. RemoveCover
// explicitly clears the cover image (and deletes the stored file).
type UpdateAlbumInput struct {
	Title       *string
	Description *string
	IsActive    *bool
	CoverImage  *FileUpload
	RemoveCover bool
}

// PhotoUpload is one gallery image plus its optional caption.
type PhotoUpload struct {
	File    FileUpload
	Caption string
}

// UpdatePhotoInput updates only the fields that are set.
type UpdatePhotoInput struct {
	Caption *string
	Order   *int
}

type GalleryService interface {
	ListAlbums(ctx context.Context, includeInactive bool) ([]domain.Album, error)
	GetAlbum(ctx context.Context, id string) (*domain.Album, error)
	CreateAlbum(ctx context.Context, input CreateAlbumInput) (*domain.Album, error)
	UpdateAlbum(ctx context.Context, id string, input UpdateAlbumInput) (*domain.Album, error)
	DeleteAlbum(ctx context.Context, id string) error

	// ListPhotos returns photos for an album; when publicOnly is set the
	// album must exist and be active.
	ListPhotos(ctx context.Context, albumID string, publicOnly bool) ([]domain.Photo, error)
	AddPhotos(ctx context.Context, albumID string, uploads []PhotoUpload) ([]domain.Photo, error)
	UpdatePhoto(ctx context.Context, id string, input UpdatePhotoInput) (*domain.Photo, error)
	DeletePhoto(ctx context.Context, id string) error
}
