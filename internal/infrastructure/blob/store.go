package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

var (
	ErrNotFound   = errors.New("blob not found")
	ErrInvalidKey = errors.New("invalid blob key")
)

// Store keeps uploaded files on an afero filesystem and hands out public URLs
// of the form {publicURL}/{key}.
type Store struct {
	fs        afero.Fs
	publicURL string
}

func NewStore(fs afero.Fs, publicURL string) *Store {
	publicURL = strings.TrimRight(strings.TrimSpace(publicURL), "/")
	if publicURL == "" {
		publicURL = "/blobs"
	}
	return &Store{fs: fs, publicURL: publicURL}
}

// NewDiskStore roots the store at dir, creating it when missing.
func NewDiskStore(dir, publicURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return NewStore(afero.NewBasePathFs(afero.NewOsFs(), dir), publicURL), nil
}

// NewKey builds a unique key that keeps the original extension.
func NewKey(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(prefix, uuid.NewString()+ext)
}

func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(path.Clean("/"+strings.TrimSpace(key)), "/")
	if key == "" || key == "." {
		return "", ErrInvalidKey
	}
	return key, nil
}

// Put writes r under key and returns its public URL.
func (s *Store) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	if dir := path.Dir(key); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}

	f, err := s.fs.Create(key)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(key)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = s.fs.Remove(key)
		return "", err
	}

	return s.publicURL + "/" + key, nil
}

// Open returns the blob stored under key.
func (s *Store) Open(key string) (afero.File, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	f, err := s.fs.Open(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// Delete removes the blob behind a URL returned by Put. Missing blobs are not
// an error.
func (s *Store) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := s.KeyFromURL(url)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(key); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) KeyFromURL(url string) (string, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(url), s.publicURL+"/")
	if !ok {
		return "", ErrInvalidKey
	}
	return cleanKey(rest)
}
