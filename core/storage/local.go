package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/spf13/afero"
)

var (
	_ Storage       = (*Local)(nil)
	_ PathValidator = (*Local)(nil)
)

// Local writes files through an afero.Fs, the host filesystem by default.
type Local struct {
	fs       afero.Fs
	confined bool
	dirPerm  os.FileMode
	filePerm os.FileMode
}

// LocalOption configures Local.
type LocalOption func(*Local)

// WithFs replaces the underlying filesystem.
func WithFs(fs afero.Fs) LocalOption {
	return func(l *Local) {
		if fs != nil {
			l.fs = fs
		}
	}
}

// WithBasePath confines every path under root. Confined stores reject
// paths containing "..".
func WithBasePath(root string) LocalOption {
	return func(l *Local) {
		if root != "" {
			l.fs = afero.NewBasePathFs(l.fs, root)
			l.confined = true
		}
	}
}

// WithPermissions sets directory and file modes for created entries.
func WithPermissions(dir, file os.FileMode) LocalOption {
	return func(l *Local) {
		l.dirPerm = dir
		l.filePerm = file
	}
}

// NewLocal creates local storage. Options apply in order, so WithFs must
// precede WithBasePath when both are used.
func NewLocal(opts ...LocalOption) *Local {
	l := &Local{
		fs:       afero.NewOsFs(),
		dirPerm:  0o755,
		filePerm: 0o644,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Fs exposes the underlying filesystem.
func (l *Local) Fs() afero.Fs {
	return l.fs
}

// ValidatePath reports whether p can be written. Relative paths may climb
// out of the working directory unless the store has a base path.
func (l *Local) ValidatePath(p string) error {
	validate := validatePath
	if l.confined {
		validate = validateConfinedPath
	}
	if err := validate(p); err != nil {
		return fmt.Errorf("%w: %s", err, p)
	}
	return nil
}

// Put creates parent directories and streams r into p.
func (l *Local) Put(ctx context.Context, p string, r io.Reader) (int64, error) {
	if err := l.ValidatePath(p); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, classifyContextError(err, "write")
	}

	if dir := path.Dir(p); dir != "." && dir != "/" {
		if err := l.fs.MkdirAll(dir, l.dirPerm); err != nil {
			return 0, errors.Join(ErrFailedToCreateDir, err)
		}
	}

	f, err := l.fs.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, l.filePerm)
	if err != nil {
		return 0, errors.Join(ErrFailedToWrite, err)
	}

	n, err := io.Copy(f, &ctxReader{ctx: ctx, r: r})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return n, classifyContextError(ctxErr, "write")
		}
		return n, errors.Join(ErrFailedToWrite, err)
	}
	return n, nil
}

// Exists reports whether p is a regular file.
func (l *Local) Exists(_ context.Context, p string) bool {
	if l.ValidatePath(p) != nil {
		return false
	}
	info, err := l.fs.Stat(p)
	return err == nil && !info.IsDir()
}

// Delete removes the file at p.
func (l *Local) Delete(_ context.Context, p string) error {
	if err := l.ValidatePath(p); err != nil {
		return err
	}
	if err := l.fs.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, p)
		}
		return err
	}
	return nil
}

// ctxReader stops a copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func classifyContextError(err error, operation string) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s operation", ErrOperationTimeout, operation)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %s operation", ErrOperationCanceled, operation)
	default:
		return err
	}
}
