package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage persists uploaded photos (customer photos, ID proofs, equipment
// photos) behind an interface so the filesystem backend can later be swapped
// for an object store.
type Storage interface {
	// Save writes the upload under the given category and returns the
	// generated key.
	Save(category, filename string, reader io.Reader) (string, error)
	Open(key string) (io.ReadCloser, int64, error)
	Delete(key string) error
	// URL returns the public download URL for a stored key.
	URL(key string) string
}

type fileStorage struct {
	baseDir string
	baseURL string
}

func NewFileStorage(baseDir, baseURL string) (Storage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &fileStorage{baseDir: baseDir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save prefixes the filename with a UUID so concurrent uploads of the same
// filename can never collide.
func (s *fileStorage) Save(category, filename string, reader io.Reader) (string, error) {
	key := filepath.Join(category, uuid.NewString()+"_"+filepath.Base(filename))

	fullPath := filepath.Join(s.baseDir, key)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directories: %w", err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return filepath.ToSlash(key), nil
}

func (s *fileStorage) Open(key string) (io.ReadCloser, int64, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return nil, 0, err
	}
	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, 0, err
	}
	f, err := os.Open(fullPath)
	if err != nil {
		return nil, 0, err
	}
	return f, info.Size(), nil
}

func (s *fileStorage) Delete(key string) error {
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *fileStorage) URL(key string) string {
	return fmt.Sprintf("%s/api/v1/photos/%s", s.baseURL, key)
}

// resolve rejects keys that would escape the upload directory.
func (s *fileStorage) resolve(key string) (string, error) {
	fullPath := filepath.Join(s.baseDir, filepath.FromSlash(key))
	base, err := filepath.Abs(s.baseDir)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(fullPath)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(abs, base+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid storage key: %s", key)
	}
	return fullPath, nil
}
