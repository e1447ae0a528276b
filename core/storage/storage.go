package storage

import (
	"context"
	"io"
	"path"
	"strings"
)

// Storage persists downloaded content.
type Storage interface {
	// Put writes everything read from r to p, replacing any existing content,
	// and returns the number of bytes written.
	Put(ctx context.Context, p string, r io.Reader) (int64, error)
	// Exists reports whether p holds a file.
	Exists(ctx context.Context, p string) bool
	// Delete removes the file at p.
	Delete(ctx context.Context, p string) error
}

// Join builds a storage path from a directory and a file name.
// Backslashes are normalised so Windows-style directories behave the same.
func Join(dir, name string) string {
	dir = strings.ReplaceAll(dir, "\\", "/")
	if dir == "" {
		return name
	}
	return path.Join(dir, name)
}

// PathValidator is implemented by stores that can reject a path before any
// content is produced for it.
type PathValidator interface {
	ValidatePath(p string) error
}

// validatePath rejects empty paths.
func validatePath(p string) error {
	if strings.TrimSpace(p) == "" {
		return ErrInvalidPath
	}
	return nil
}

// validateConfinedPath also rejects paths that escape their root.
func validateConfinedPath(p string) error {
	if err := validatePath(p); err != nil {
		return err
	}
	for _, part := range strings.Split(strings.ReplaceAll(p, "\\", "/"), "/") {
		if part == ".." {
			return ErrInvalidPath
		}
	}
	return nil
}

// ValidateConfinedPath is exported for backends outside this package whose
// keys must stay under a root.
func ValidateConfinedPath(p string) error {
	return validateConfinedPath(p)
}
