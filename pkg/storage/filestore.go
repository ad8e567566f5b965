package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore persists uploaded files and returns a path that can be served or
// stored on a record.
type FileStore interface {
	Save(file *multipart.FileHeader, subdir string) (string, error)
}

// LocalFileStore writes uploads under a base directory on the local disk.
type LocalFileStore struct {
	baseDir string
}

// NewLocalFileStore creates a LocalFileStore rooted at baseDir.
func NewLocalFileStore(baseDir string) *LocalFileStore {
	return &LocalFileStore{baseDir: baseDir}
}

// Save stores the uploaded file under baseDir/subdir with a generated name,
// keeping the original extension, and returns the relative path.
func (s *LocalFileStore) Save(file *multipart.FileHeader, subdir string) (string, error) {
	dir := filepath.Join(s.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory %s: %w", dir, err)
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	dst := filepath.Join(dir, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("opening uploaded file: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("creating file %s: %w", dst, err)
	}
	defer out.Close()

	if _, err = io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("writing file %s: %w", dst, err)
	}
	return filepath.Join(subdir, name), nil
}
