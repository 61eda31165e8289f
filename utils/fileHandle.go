package utils

import (
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"flms/config"

	"github.com/google/uuid"
)

// SaveUploadedFile stores an uploaded file under the configured upload dir
// in the given subdirectory, with a unique name, and returns the stored path.
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dir := filepath.Join(config.AppConfig.UploadDir, destDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	newFilename := uuid.NewString() + ext
	filePath := filepath.Join(dir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filePath, nil
}

// RemoveFile deletes a stored media file. Best effort: a missing file is not
// an error worth surfacing to callers tearing down catalog rows.
func RemoveFile(filePath string) {
	if filePath == "" {
		return
	}
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to remove file %s: %v", filePath, err)
	}
}

// GetFileURL maps a stored path to its public URL under the static root.
func GetFileURL(filePath string) string {
	if filePath == "" {
		return ""
	}
	p := filepath.ToSlash(filePath)
	if i := strings.Index(p, "public/"); i >= 0 {
		return "/" + p[i+len("public/"):]
	}
	return "/" + strings.TrimPrefix(p, "./")
}
