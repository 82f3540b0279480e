// Package storage abstracts the file backend behind a small Disk interface.
// Files are addressed by a logical path like media/images/<uuid>.jpg; URL
// maps a stored path to a public URL and PathFromURL inverts that mapping.
package storage

import (
	"context"
	"io"
)

type Disk interface {
	// Put writes the reader's content at the given path and returns the
	// stored path.
	Put(ctx context.Context, path string, r io.Reader) (string, error)
	// URL resolves a stored path to its public URL.
	URL(path string) string
	// Delete removes the file at the given path. Deleting a missing file is
	// not an error.
	Delete(ctx context.Context, path string) error
	// PathFromURL extracts the stored path from a URL previously returned by
	// URL. Returns "" when the URL does not belong to this disk.
	PathFromURL(url string) string
}
