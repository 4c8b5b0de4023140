package repositories

import (
	"crypto/rand"
	"encoding/hex"
	"path"

	"github.com/thanhvudev/furnimart/app/apperr"
	"github.com/thanhvudev/furnimart/pkg/storage"
)

const (
	categoryImageDir = "images/categories"
	productImageDir  = "images/products"

	// MaxImageSize caps uploads at 2 MB.
	MaxImageSize = 2 * 1024 * 1024
)

// allowedImageMIME is the upload allow-list. Anything else is rejected
// before a single byte reaches the disk.
var allowedImageMIME = map[string]string{
	"image/jpeg":    ".jpg",
	"image/jpg":     ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/svg+xml": ".svg",
}

// Upload carries a decoded multipart file from the controller layer.
type Upload struct {
	Filename string
	MIME     string
	Size     int64
	Content  []byte
}

// saveImage validates the upload and writes it to dir on disk under a
// random filename, so concurrent uploads can never collide. Returns the
// stored path recorded on the owning record.
func saveImage(disk storage.Disk, dir string, up *Upload) (string, error) {
	ext, ok := allowedImageMIME[up.MIME]
	if !ok || up.Size > MaxImageSize {
		return "", apperr.ValidationField("image", "Invalid image file type or size.")
	}

	name, err := randomImageName(ext)
	if err != nil {
		return "", err
	}

	stored := path.Join(dir, name)
	if err := disk.Put(stored, up.Content); err != nil {
		return "", err
	}
	return stored, nil
}

// deleteImage removes a stored image. Best-effort: a missing file is fine,
// the record delete must not fail because the asset is already gone.
func deleteImage(disk storage.Disk, stored string) {
	if stored == "" || disk.Missing(stored) {
		return
	}
	disk.Delete(stored) //nolint:errcheck
}

// randomImageName generates a 16-byte random hex filename.
func randomImageName(ext string) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b) + ext, nil
}
