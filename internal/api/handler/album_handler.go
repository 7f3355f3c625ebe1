package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenpact/consulting-api/internal/api/metrics"
	"github.com/greenpact/consulting-api/internal/core/domain"
	"github.com/greenpact/consulting-api/internal/core/ports"
)

type AlbumHandler struct {
	gallery ports.GalleryService
}

func NewAlbumHandler(gallery ports.GalleryService) *AlbumHandler {
	return &AlbumHandler{gallery: gallery}
}

// List returns the public gallery: active albums, newest first.
func (h *AlbumHandler) List(c echo.Context) error {
	albums, err := h.gallery.ListAlbums(c.Request().Context(), false)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, albums)
}

// ListAll returns every album including inactive ones. Admin only.
func (h *AlbumHandler) ListAll(c echo.Context) error {
	albums, err := h.gallery.ListAlbums(c.Request().Context(), true)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, albums)
}

func (h *AlbumHandler) Get(c echo.Context) error {
	album, err := h.gallery.GetAlbum(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, album)
}

// Create makes a new album from a multipart form: title, description,
// isActive, and an optional coverImage file.
func (h *AlbumHandler) Create(c echo.Context) error {
	title := c.FormValue("title")
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	input := ports.CreateAlbumInput{
		Title:       title,
		Description: c.FormValue("description"),
	}
	if v := c.FormValue("isActive"); v != "" {
		active := v == "true"
		input.IsActive = &active
	}

	if fh, err := c.FormFile("coverImage"); err == nil {
		upload, f, err := formFileUpload(fh)
		if err != nil {
			return err
		}
		defer f.Close()
		input.CoverImage = &upload
	}

	album, err := h.gallery.CreateAlbum(c.Request().Context(), input)
	if err != nil {
		return err
	}
	if input.CoverImage != nil {
		metrics.UploadsTotal.WithLabelValues("album_cover").Inc()
	}
	return c.JSON(http.StatusCreated, album)
}

// Update patches album fields from a multipart form. Sending removeCover=true
// clears the cover; sending a new coverImage replaces it.
func (h *AlbumHandler) Update(c echo.Context) error {
	input := ports.UpdateAlbumInput{}

	if v := c.FormValue("title"); v != "" {
		input.Title = &v
	}
	if v := c.FormValue("description"); v != "" {
		input.Description = &v
	}
	if v := c.FormValue("isActive"); v != "" {
		active := v == "true"
		input.IsActive = &active
	}
	input.RemoveCover = c.FormValue("removeCover") == "true"

	if fh, err := c.FormFile("coverImage"); err == nil {
		upload, f, err := formFileUpload(fh)
		if err != nil {
			return err
		}
		defer f.Close()
		input.CoverImage = &upload
	}

	album, err := h.gallery.UpdateAlbum(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	if input.CoverImage != nil {
		metrics.UploadsTotal.WithLabelValues("album_cover").Inc()
	}
	return c.JSON(http.StatusOK, album)
}

// Delete removes the album, its cover file, and all photos in it.
func (h *AlbumHandler) Delete(c echo.Context) error {
	if err := h.gallery.DeleteAlbum(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "album deleted"})
}

// ListPhotos returns an album's photos. Public callers only see photos of
// active albums; admins see everything.
func (h *AlbumHandler) ListPhotos(c echo.Context) error {
	publicOnly := !isAdminRequest(c)
	photos, err := h.gallery.ListPhotos(c.Request().Context(), c.Param("albumId"), publicOnly)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, photos)
}

// AddPhotos uploads a batch of photos (multipart field "photos", optional
// parallel "captions" values) into an album. Admin only.
func (h *AlbumHandler) AddPhotos(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart form required")
	}

	files := form.File["photos"]
	if len(files) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one photo is required")
	}
	captions := form.Value["captions"]

	uploads := make([]ports.PhotoUpload, 0, len(files))
	for i, fh := range files {
		upload, f, err := formFileUpload(fh)
		if err != nil {
			return err
		}
		defer f.Close()

		pu := ports.PhotoUpload{File: upload}
		if i < len(captions) {
			pu.Caption = captions[i]
		}
		uploads = append(uploads, pu)
	}

	photos, err := h.gallery.AddPhotos(c.Request().Context(), c.Param("albumId"), uploads)
	if err != nil {
		return err
	}

	metrics.UploadsTotal.WithLabelValues("gallery_photo").Add(float64(len(photos)))
	return c.JSON(http.StatusCreated, photos)
}

// UpdatePhoto patches a photo's caption or ordering position.
func (h *AlbumHandler) UpdatePhoto(c echo.Context) error {
	var req struct {
		Caption *string `json:"caption"`
		Order   *int    `json:"order"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	photo, err := h.gallery.UpdatePhoto(c.Request().Context(), c.Param("id"), ports.UpdatePhotoInput{
		Caption: req.Caption,
		Order:   req.Order,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, photo)
}

func (h *AlbumHandler) DeletePhoto(c echo.Context) error {
	if err := h.gallery.DeletePhoto(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "photo deleted"})
}

// isAdminRequest reports whether the Auth middleware put an admin role in
// context. Routes open to the public use it to widen visibility for
// logged-in admins without forcing auth.
func isAdminRequest(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == domain.RoleAdmin
}
