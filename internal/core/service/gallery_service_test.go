package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/greenpact/consulting-api/internal/core/domain"
	"github.com/greenpact/consulting-api/internal/core/ports"
)

type stubAlbumRepo struct {
	albums map[string]*domain.Album
	nextID int
}

func newStubAlbumRepo() *stubAlbumRepo {
	return &stubAlbumRepo{albums: make(map[string]*domain.Album)}
}

func (r *stubAlbumRepo) Create(_ context.Context, album *domain.Album) (*domain.Album, error) {
	for _, a := range r.albums {
		if a.Title == album.Title {
			return nil, domain.ErrAlbumTitleTaken
		}
	}
	r.nextID++
	clone := *album
	clone.ID = fmt.Sprintf("album-%d", r.nextID)
	r.albums[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubAlbumRepo) FindByID(_ context.Context, id string) (*domain.Album, error) {
	a, ok := r.albums[id]
	if !ok {
		return nil, domain.ErrAlbumNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAlbumRepo) FindAll(_ context.Context, onlyActive bool) ([]domain.Album, error) {
	var out []domain.Album
	for _, a := range r.albums {
		if onlyActive && !a.IsActive {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubAlbumRepo) Update(_ context.Context, album *domain.Album) error {
	if _, ok := r.albums[album.ID]; !ok {
		return domain.ErrAlbumNotFound
	}
	clone := *album
	r.albums[album.ID] = &clone
	return nil
}

func (r *stubAlbumRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.albums[id]; !ok {
		return domain.ErrAlbumNotFound
	}
	delete(r.albums, id)
	return nil
}

type stubPhotoRepo struct {
	photos map[string]*domain.Photo
	nextID int
}

func newStubPhotoRepo() *stubPhotoRepo {
	return &stubPhotoRepo{photos: make(map[string]*domain.Photo)}
}

func (r *stubPhotoRepo) Insert(_ context.Context, photos []domain.Photo) ([]domain.Photo, error) {
	out := make([]domain.Photo, 0, len(photos))
	for _, p := range photos {
		r.nextID++
		p.ID = fmt.Sprintf("photo-%d", r.nextID)
		clone := p
		r.photos[p.ID] = &clone
		out = append(out, p)
	}
	return out, nil
}

func (r *stubPhotoRepo) FindByID(_ context.Context, id string) (*domain.Photo, error) {
	p, ok := r.photos[id]
	if !ok {
		return nil, domain.ErrPhotoNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPhotoRepo) FindByAlbum(_ context.Context, albumID string) ([]domain.Photo, error) {
	var out []domain.Photo
	for _, p := range r.photos {
		if p.AlbumID == albumID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *stubPhotoRepo) CountByAlbum(_ context.Context, albumID string) (int64, error) {
	var n int64
	for _, p := range r.photos {
		if p.AlbumID == albumID {
			n++
		}
	}
	return n, nil
}

func (r *stubPhotoRepo) Update(_ context.Context, photo *domain.Photo) error {
	if _, ok := r.photos[photo.ID]; !ok {
		return domain.ErrPhotoNotFound
	}
	clone := *photo
	r.photos[photo.ID] = &clone
	return nil
}

func (r *stubPhotoRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.photos[id]; !ok {
		return domain.ErrPhotoNotFound
	}
	delete(r.photos, id)
	return nil
}

type galleryFixture struct {
	albums *stubAlbumRepo
	photos *stubPhotoRepo
	files  *fakeFileStore
	svc    *GalleryService
}

func newGalleryFixture() *galleryFixture {
	f := &galleryFixture{
		albums: newStubAlbumRepo(),
		photos: newStubPhotoRepo(),
		files:  newFakeFileStore(),
	}
	f.svc = NewGalleryService(f.albums, f.photos, f.files, zerolog.Nop())
	return f
}

func imageUpload(name, content string) ports.FileUpload {
	return ports.FileUpload{
		Filename: name,
		Size:     int64(len(content)),
		Reader:   strings.NewReader(content),
	}
}

func TestGalleryService_ListAlbums_PublicHidesInactive(t *testing.T) {
	f := newGalleryFixture()

	if _, err := f.svc.CreateAlbum(context.Background(), ports.CreateAlbumInput{Title: "Visible"}); err != nil {
		t.Fatalf("CreateAlbum: %v", err)
	}
	inactive := false
	if _, err := f.svc.CreateAlbum(context.Background(), ports.CreateAlbumInput{Title: "Hidden", IsActive: &inactive}); err != nil {
		t.Fatalf("CreateAlbum: %v", err)
	}

	public, err := f.svc.ListAlbums(context.Background(), false)
	if err != nil {
		t.Fatalf("ListAlbums: %v", err)
	}
	if len(public) != 1 || public[0].Title != "Visible" {
		t.Fatalf("expected only the active album, got %+v", public)
	}

	all, err := f.svc.ListAlbums(context.Background(), true)
	if err != nil {
		t.Fatalf("ListAlbums: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both albums for admins, got %d", len(all))
	}
}

func TestGalleryService_CreateAlbum_WithCover(t *testing.T) {
	f := newGalleryFixture()
	cover := imageUpload("cover.JPG", "jpeg-bytes")

	album, err := f.svc.CreateAlbum(context.Background(), ports.CreateAlbumInput{
		Title:      "Launch",
		CoverImage: &cover,
	})
	if err != nil {
		t.Fatalf("CreateAlbum: %v", err)
	}
	if album.CoverImageURL == "" {
		t.Fatalf("expected a cover image path")
	}
	if !strings.HasSuffix(album.CoverImageURL, ".jpg") {
		t.Fatalf("stored name should keep a lowercased extension, got %q", album.CoverImageURL)
	}
	if _, ok := f.files.saved[album.CoverImageURL]; !ok {
		t.Fatalf("cover file not stored")
	}
}

func TestGalleryService_CreateAlbum_RejectsBadCover(t *testing.T) {
	f := newGalleryFixture()
	cover := imageUpload("cover.pdf", "not an image")

	if _, err := f.svc.CreateAlbum(context.Background(), ports.CreateAlbumInput{
		Title:      "Bad",
		CoverImage: &cover,
	}); err != domain.ErrUnsupportedFileType {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
}

func TestGalleryService_UpdateAlbum_ReplaceAndRemoveCover(t *testing.T) {
	f := newGalleryFixture()
	first := imageUpload("a.png", "one")
	album, err := f.svc.CreateAlbum(context.Background(), ports.CreateAlbumInput{Title: "X", CoverImage: &first})
	if err != nil {
		t.Fatalf("CreateAlbum: %v", err)
	}
	oldPath := album.CoverImageURL

	second := imageUpload("b.png", "two")
	updated, err := f.svc.UpdateAlbum(context.Background(), album.ID, ports.UpdateAlbumInput{CoverImage: &second})
	if err != nil {
		t.Fatalf("UpdateAlbum: %v", err)
	}
	if updated.CoverImageURL == oldPath {
		t.Fatalf("expected a new cover path")
	}
	if _, ok := f.files.saved[oldPath]; ok {
		t.Fatalf("old cover file should be deleted")
	}

	updated, err = f.svc.UpdateAlbum(context.Background(), album.ID, ports.UpdateAlbumInput{RemoveCover: true})
	if err != nil {
		t.Fatalf("UpdateAlbum: %v", err)
	}
	if updated.CoverImageURL != "" {
		t.Fatalf("expected cover cleared, got %q", updated.CoverImageURL)
	}
	if len(f.files.saved) != 0 {
		t.Fatalf("expected no files left, got %v", f.files.saved)
	}
}

func TestGalleryService_AddPhotos_EnforcesCap(t *testing.T) {
	f := newGalleryFixture()
	album, err := f.svc.CreateAlbum(context.Background(), ports.CreateAlbumInput{Title: "Cap"})
	if err != nil {
		t.Fatalf("CreateAlbum: %v", err)
	}

	batch := make([]ports.PhotoUpload, domain.MaxPhotosPerAlbum)
	for i := range batch {
		batch[i] = ports.PhotoUpload{File: imageUpload(fmt.Sprintf("p%d.png", i), "px")}
	}
	saved, err := f.svc.AddPhotos(context.Background(), album.ID, batch)
	if err != nil {
		t.Fatalf("AddPhotos: %v", err)
	}
	if len(saved) != domain.MaxPhotosPerAlbum {
		t.Fatalf("expected %d photos, got %d", domain.MaxPhotosPerAlbum, len(saved))
	}

	_, err = f.svc.AddPhotos(context.Background(), album.ID, []ports.PhotoUpload{
		{File: imageUpload("extra.png", "px")},
	})
	if err != domain.ErrAlbumFull {
		t.Fatalf("expected ErrAlbumFull, got %v", err)
	}
}

func TestGalleryService_AddPhotos_OrderContinues(t *testing.T) {
	f := newGalleryFixture()
	album, err := f.svc.CreateAlbum(context.Background(), ports.CreateAlbumInput{Title: "Order"})
	if err != nil {
		t.Fatalf("CreateAlbum: %v", err)
	}

	if _, err := f.svc.AddPhotos(context.Background(), album.ID, []ports.PhotoUpload{
		{File: imageUpload("a.png", "a")},
		{File: imageUpload("b.png", "b")},
	}); err != nil {
		t.Fatalf("first batch: %v", err)
	}
	saved, err := f.svc.AddPhotos(context.Background(), album.ID, []ports.PhotoUpload{
		{File: imageUpload("c.png", "c"), Caption: "  third  "},
	})
	if err != nil {
		t.Fatalf("second batch: %v", err)
	}
	if saved[0].Order != 2 {
		t.Fatalf("expected order to continue at 2, got %d", saved[0].Order)
	}
	if saved[0].Caption != "third" {
		t.Fatalf("expected trimmed caption, got %q", saved[0].Caption)
	}
}

func TestGalleryService_ListPhotos_PublicRequiresActiveAlbum(t *testing.T) {
	f := newGalleryFixture()
	inactive := false
	album, err := f.svc.CreateAlbum(context.Background(), ports.CreateAlbumInput{Title: "Hidden", IsActive: &inactive})
	if err != nil {
		t.Fatalf("CreateAlbum: %v", err)
	}

	if _, err := f.svc.ListPhotos(context.Background(), album.ID, true); err != domain.ErrAlbumNotFound {
		t.Fatalf("expected ErrAlbumNotFound for public listing, got %v", err)
	}
	if _, err := f.svc.ListPhotos(context.Background(), album.ID, false); err != nil {
		t.Fatalf("admin listing should succeed, got %v", err)
	}
}

func TestGalleryService_DeleteAlbum_Cascades(t *testing.T) {
	f := newGalleryFixture()
	cover := imageUpload("cover.png", "cover")
	album, err := f.svc.CreateAlbum(context.Background(), ports.CreateAlbumInput{Title: "Gone", CoverImage: &cover})
	if err != nil {
		t.Fatalf("CreateAlbum: %v", err)
	}
	if _, err := f.svc.AddPhotos(context.Background(), album.ID, []ports.PhotoUpload{
		{File: imageUpload("a.png", "a")},
		{File: imageUpload("b.png", "b")},
	}); err != nil {
		t.Fatalf("AddPhotos: %v", err)
	}

	if err := f.svc.DeleteAlbum(context.Background(), album.ID); err != nil {
		t.Fatalf("DeleteAlbum: %v", err)
	}
	if len(f.photos.photos) != 0 {
		t.Fatalf("expected photos removed, %d remain", len(f.photos.photos))
	}
	if len(f.files.saved) != 0 {
		t.Fatalf("expected all files removed, got %v", f.files.saved)
	}
	if _, err := f.svc.GetAlbum(context.Background(), album.ID); err != domain.ErrAlbumNotFound {
		t.Fatalf("expected album gone, got %v", err)
	}
}

func TestGalleryService_DeletePhoto_RemovesFile(t *testing.T) {
	f := newGalleryFixture()
	album, err := f.svc.CreateAlbum(context.Background(), ports.CreateAlbumInput{Title: "One"})
	if err != nil {
		t.Fatalf("CreateAlbum: %v", err)
	}
	saved, err := f.svc.AddPhotos(context.Background(), album.ID, []ports.PhotoUpload{
		{File: imageUpload("a.png", "a")},
	})
	if err != nil {
		t.Fatalf("AddPhotos: %v", err)
	}

	if err := f.svc.DeletePhoto(context.Background(), saved[0].ID); err != nil {
		t.Fatalf("DeletePhoto: %v", err)
	}
	if _, ok := f.files.saved[saved[0].ImageURL]; ok {
		t.Fatalf("photo file should be deleted")
	}
}
