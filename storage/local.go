package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalDisk stores files under a root directory on the local filesystem and
// serves them under a base URL prefix.
type LocalDisk struct {
	Root    string
	BaseURL string
}

func NewLocalDisk(root, baseURL string) (*LocalDisk, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &LocalDisk{
		Root:    root,
		BaseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (d *LocalDisk) Put(_ context.Context, path string, r io.Reader) (string, error) {
	path = filepath.ToSlash(filepath.Clean(path))
	full := filepath.Join(d.Root, filepath.FromSlash(path))

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", fmt.Errorf("create folder: %w", err)
	}

	dst, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("write file: %w", err)
	}

	return path, nil
}

func (d *LocalDisk) URL(path string) string {
	return d.BaseURL + "/" + strings.TrimPrefix(path, "/")
}

func (d *LocalDisk) Delete(_ context.Context, path string) error {
	full := filepath.Join(d.Root, filepath.FromSlash(path))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (d *LocalDisk) PathFromURL(url string) string {
	prefix := d.BaseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}
