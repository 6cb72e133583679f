package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileStorage_SaveOpenDelete(t *testing.T) {
	s, err := NewFileStorage(t.TempDir(), "http://localhost:8080")
	assert.NoError(t, err)

	key, err := s.Save("customers", "photo.jpg", strings.NewReader("jpeg-bytes"))
	assert.NoError(t, err)
	assert.Contains(t, key, "customers/")
	assert.Contains(t, key, "photo.jpg")

	rc, size, err := s.Open(key)
	assert.NoError(t, err)
	assert.Equal(t, int64(len("jpeg-bytes")), size)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "jpeg-bytes", string(data))

	assert.NoError(t, s.Delete(key))
	_, _, err = s.Open(key)
	assert.Error(t, err)
}

func TestFileStorage_UniqueKeys(t *testing.T) {
	s, err := NewFileStorage(t.TempDir(), "http://localhost:8080")
	assert.NoError(t, err)

	k1, err := s.Save("equipment", "photo.jpg", strings.NewReader("a"))
	assert.NoError(t, err)
	k2, err := s.Save("equipment", "photo.jpg", strings.NewReader("b"))
	assert.NoError(t, err)
	assert.NotEqual(t, k1, k2)
}

func TestFileStorage_RejectsTraversal(t *testing.T) {
	s, err := NewFileStorage(t.TempDir(), "http://localhost:8080")
	assert.NoError(t, err)

	_, _, err = s.Open("../etc/passwd")
	assert.Error(t, err)
	assert.Error(t, s.Delete("../../escape"))
}

func TestFileStorage_URL(t *testing.T) {
	s, err := NewFileStorage(t.TempDir(), "http://localhost:8080/")
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/v1/photos/customers/x.jpg", s.URL("customers/x.jpg"))
}
