package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxImageSize caps gallery uploads at 5MB.
const MaxImageSize = 5 * 1024 * 1024

// UploadDir is where locally stored images land; served under /uploads.
var UploadDir = "uploads"

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedImageMimes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ValidateImage checks size, extension and declared MIME type of an
// uploaded file.
func ValidateImage(file *multipart.FileHeader) error {
	if file.Size > MaxImageSize {
		return fmt.Errorf("image exceeds the 5MB size limit")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return fmt.Errorf("only image files are allowed")
	}
	mime := file.Header.Get("Content-Type")
	if mime != "" && !allowedImageMimes[mime] {
		return fmt.Errorf("only image files are allowed")
	}
	return nil
}

// SaveGalleryImage validates and stores an uploaded image, returning the URL
// to persist. When Cloudinary is configured the file goes there; otherwise
// it is written under UploadDir with a unique name and served statically.
func SaveGalleryImage(file *multipart.FileHeader) (string, error) {
	if err := ValidateImage(file); err != nil {
		return "", err
	}

	name := "gallery-" + uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))

	if CloudinaryConfigured() {
		src, err := file.Open()
		if err != nil {
			return "", err
		}
		defer src.Close()
		return UploadToCloudinary(src, name, "gallery")
	}

	if err := os.MkdirAll(UploadDir, 0o755); err != nil {
		return "", err
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(UploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}
