// Package storage keeps uploaded files on the local disk.
package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"movie-app/internal/apperr"

	"github.com/google/uuid"
)

const DefaultFolder = "default"

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type Upload struct {
	Name   string
	Reader io.Reader
}

type SavedFile struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

type LocalStorage struct {
	root      string
	urlPrefix string
}

// NewLocalStorage stores files under root; saved files are reachable at
// urlPrefix + "/" + folder + "/" + name.
func NewLocalStorage(root, urlPrefix string) *LocalStorage {
	return &LocalStorage{root: root, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

func (s *LocalStorage) Root() string { return s.root }

// Save writes every upload into folder, prefixing names with a random id.
// It is all or nothing: when one file fails, the files already written by
// this call are removed.
func (s *LocalStorage) Save(folder string, files []Upload) ([]SavedFile, error) {
	folder, err := cleanFolder(folder)
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(s.root, filepath.FromSlash(folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload folder: %w", err)
	}

	out := make([]SavedFile, 0, len(files))
	written := make([]string, 0, len(files))
	for _, f := range files {
		name := uuid.NewString() + "-" + sanitizeName(f.Name)
		dst := filepath.Join(dir, name)
		if err := writeFile(dst, f.Reader); err != nil {
			for _, p := range written {
				os.Remove(p)
			}
			return nil, err
		}
		written = append(written, dst)
		out = append(out, SavedFile{
			URL:  s.urlPrefix + "/" + folder + "/" + name,
			Name: name,
		})
	}
	return out, nil
}

func writeFile(dst string, r io.Reader) error {
	f, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(dst), err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return fmt.Errorf("write %s: %w", filepath.Base(dst), err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("close %s: %w", filepath.Base(dst), err)
	}
	return nil
}

// cleanFolder rejects folders that would leave the storage root.
func cleanFolder(folder string) (string, error) {
	folder = strings.TrimSpace(strings.ReplaceAll(folder, "\\", "/"))
	if folder == "" {
		return DefaultFolder, nil
	}
	cleaned := path.Clean("/" + folder)
	if cleaned != "/"+strings.Trim(folder, "/") || strings.Contains(folder, "..") {
		return "", fmt.Errorf("invalid folder %q: %w", folder, apperr.ErrValidation)
	}
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" {
		return DefaultFolder, nil
	}
	return cleaned, nil
}

func sanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeName.ReplaceAllString(name, "_")
	if name == "" || name == "." || name == "_" {
		return "file"
	}
	return name
}
