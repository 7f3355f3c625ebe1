package service

import (
	"path"
	"strings"

	"github.com/greenpact/consulting-api/internal/core/domain"
	"github.com/greenpact/consulting-api/internal/core/ports"
)

// Upload size limits, matching what the public site accepts.
const (
	maxAvatarSize = 2 << 20
	maxCoverSize  = 5 << 20
	maxPhotoSize  = 10 << 20
	maxCVSize     = 5 << 20
)

var imageExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".gif":  {},
}

var documentExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
}

// checkUpload validates an upload's extension and size before anything is
// written to the file store.
func checkUpload(u ports.FileUpload, maxSize int64, allowed map[string]struct{}) error {
	ext := strings.ToLower(path.Ext(u.Filename))
	if _, ok := allowed[ext]; !ok {
		return domain.ErrUnsupportedFileType
	}
	if u.Size > maxSize {
		return domain.ErrFileTooLarge
	}
	return nil
}
