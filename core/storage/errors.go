package storage

import "errors"

var (
	ErrInvalidConfig      = errors.New("storage: invalid configuration")
	ErrInvalidPath        = errors.New("storage: invalid path")
	ErrFileNotFound       = errors.New("storage: file not found")
	ErrFailedToWrite      = errors.New("storage: failed to write file")
	ErrFileTooLarge       = errors.New("storage: file too large")
	ErrFailedToCreateDir  = errors.New("storage: failed to create directory")
	ErrBucketNotFound     = errors.New("storage: bucket not found")
	ErrAccessDenied       = errors.New("storage: access denied")
	ErrOperationTimeout   = errors.New("storage: operation timed out")
	ErrOperationCanceled  = errors.New("storage: operation canceled")
	ErrServiceUnavailable = errors.New("storage: service unavailable")
)
