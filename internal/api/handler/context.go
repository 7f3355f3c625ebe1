package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenpact/consulting-api/internal/core/ports"
)

// ctxUserID extracts the authenticated user's id injected by the Auth
// middleware. Presence proves the middleware ran; routes without it have no
// business calling this.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// formFileUpload opens a multipart file header as a ports.FileUpload. The
// caller owns the returned closer.
func formFileUpload(fh *multipart.FileHeader) (ports.FileUpload, multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return ports.FileUpload{}, nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable file upload")
	}
	return ports.FileUpload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Reader:   f,
	}, f, nil
}
