package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/greenpact/consulting-api/internal/core/domain"
	"github.com/greenpact/consulting-api/internal/core/ports"
)

const (
	albumCoverDir   = "album_covers"
	galleryPhotoDir = "gallery_photos"
)

// GalleryService manages albums and the photos inside them, including the
// stored image files.
type GalleryService struct {
	albums ports.AlbumRepository
	photos ports.PhotoRepository
	files  ports.FileStore
	logger zerolog.Logger
}

func NewGalleryService(albums ports.AlbumRepository, photos ports.PhotoRepository, files ports.FileStore, logger zerolog.Logger) *GalleryService {
	return &GalleryService{albums: albums, photos: photos, files: files, logger: logger}
}

func (s *GalleryService) ListAlbums(ctx context.Context, includeInactive bool) ([]domain.Album, error) {
	return s.albums.FindAll(ctx, !includeInactive)
}

func (s *GalleryService) GetAlbum(ctx context.Context, id string) (*domain.Album, error) {
	return s.albums.FindByID(ctx, id)
}

func (s *GalleryService) CreateAlbum(ctx context.Context, input ports.CreateAlbumInput) (*domain.Album, error) {
	now := time.Now().UTC()
	album := &domain.Album{
		Title:       input.Title,
		Description: input.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.IsActive != nil {
		album.IsActive = *input.IsActive
	}

	if input.CoverImage != nil {
		stored, err := s.saveImage(ctx, albumCoverDir, *input.CoverImage, maxCoverSize)
		if err != nil {
			return nil, err
		}
		album.CoverImageURL = stored
	}

	created, err := s.albums.Create(ctx, album)
	if err != nil {
		if album.CoverImageURL != "" {
			_ = s.files.Delete(ctx, album.CoverImageURL)
		}
		return nil, err
	}

	s.logger.Info().Str("album_id", created.ID).Str("title", created.Title).Msg("album created")
	return created, nil
}

func (s *GalleryService) UpdateAlbum(ctx context.Context, id string, input ports.UpdateAlbumInput) (*domain.Album, error) {
	album, err := s.albums.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		album.Title = *input.Title
	}
	if input.Description != nil {
		album.Description = *input.Description
	}
	if input.IsActive != nil {
		album.IsActive = *input.IsActive
	}

	switch {
	case input.CoverImage != nil:
		stored, err := s.saveImage(ctx, albumCoverDir, *input.CoverImage, maxCoverSize)
		if err != nil {
			return nil, err
		}
		if album.CoverImageURL != "" {
			_ = s.files.Delete(ctx, album.CoverImageURL)
		}
		album.CoverImageURL = stored
	case input.RemoveCover:
		if album.CoverImageURL != "" {
			_ = s.files.Delete(ctx, album.CoverImageURL)
		}
		album.CoverImageURL = ""
	}

	album.UpdatedAt = time.Now().UTC()
	if err := s.albums.Update(ctx, album); err != nil {
		return nil, err
	}
	return album, nil
}

// DeleteAlbum removes the album, its cover file, and every photo in it
// together with the stored image files.
func (s *GalleryService) DeleteAlbum(ctx context.Context, id string) error {
	album, err := s.albums.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if album.CoverImageURL != "" {
		_ = s.files.Delete(ctx, album.CoverImageURL)
	}

	photos, err := s.photos.FindByAlbum(ctx, id)
	if err != nil {
		return err
	}
	for _, p := range photos {
		_ = s.files.Delete(ctx, p.ImageURL)
		if err := s.photos.Delete(ctx, p.ID); err != nil {
			return fmt.Errorf("delete photo %s: %w", p.ID, err)
		}
	}

	if err := s.albums.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("album_id", id).Int("photos", len(photos)).Msg("album deleted")
	return nil
}

func (s *GalleryService) ListPhotos(ctx context.Context, albumID string, publicOnly bool) ([]domain.Photo, error) {
	album, err := s.albums.FindByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if publicOnly && !album.IsActive {
		return nil, domain.ErrAlbumNotFound
	}
	return s.photos.FindByAlbum(ctx, albumID)
}

// AddPhotos uploads a batch of photos into an album. The album holds at most
// MaxPhotosPerAlbum photos total; a batch that would exceed the cap is
// rejected before anything is stored.
func (s *GalleryService) AddPhotos(ctx context.Context, albumID string, uploads []ports.PhotoUpload) ([]domain.Photo, error) {
	if _, err := s.albums.FindByID(ctx, albumID); err != nil {
		return nil, err
	}

	existing, err := s.photos.CountByAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if existing+int64(len(uploads)) > domain.MaxPhotosPerAlbum {
		return nil, domain.ErrAlbumFull
	}

	for _, u := range uploads {
		if err := checkUpload(u.File, maxPhotoSize, imageExtensions); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	photos := make([]domain.Photo, 0, len(uploads))
	for i, u := range uploads {
		stored, err := s.files.Save(ctx, galleryPhotoDir, storedName(u.File.Filename), u.File.Reader)
		if err != nil {
			return nil, fmt.Errorf("store photo: %w", err)
		}
		photos = append(photos, domain.Photo{
			AlbumID:   albumID,
			ImageURL:  stored,
			Caption:   strings.TrimSpace(u.Caption),
			Order:     int(existing) + i,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	saved, err := s.photos.Insert(ctx, photos)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("album_id", albumID).Int("count", len(saved)).Msg("photos uploaded")
	return saved, nil
}

func (s *GalleryService) UpdatePhoto(ctx context.Context, id string, input ports.UpdatePhotoInput) (*domain.Photo, error) {
	photo, err := s.photos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Caption != nil {
		photo.Caption = *input.Caption
	}
	if input.Order != nil {
		photo.Order = *input.Order
	}
	photo.UpdatedAt = time.Now().UTC()

	if err := s.photos.Update(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *GalleryService) DeletePhoto(ctx context.Context, id string) error {
	photo, err := s.photos.FindByID(ctx, id)
	if err != nil {
		return err
	}
	_ = s.files.Delete(ctx, photo.ImageURL)
	return s.photos.Delete(ctx, id)
}

func (s *GalleryService) saveImage(ctx context.Context, dir string, upload ports.FileUpload, maxSize int64) (string, error) {
	if err := checkUpload(upload, maxSize, imageExtensions); err != nil {
		return "", err
	}
	stored, err := s.files.Save(ctx, dir, storedName(upload.Filename), upload.Reader)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return stored, nil
}

// storedName returns a collision-free file name that keeps the original
// extension.
func storedName(original string) string {
	return uuid.NewString() + strings.ToLower(path.Ext(original))
}
