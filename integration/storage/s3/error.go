package s3

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/smithy-go"

	"github.com/dmitrymomot/docuware/core/storage"
)

// errorClasses folds S3 error codes into the storage error a document sink
// reports. Typed SDK errors such as types.NoSuchKey and types.NotFound carry
// the same codes, so one entry covers both.
var errorClasses = map[string]error{
	"NoSuchKey":             storage.ErrFileNotFound,
	"NotFound":              storage.ErrFileNotFound,
	"NoSuchBucket":          storage.ErrBucketNotFound,
	"AccessDenied":          storage.ErrAccessDenied,
	"AllAccessDisabled":     storage.ErrAccessDenied,
	"InvalidAccessKeyId":    storage.ErrAccessDenied,
	"SignatureDoesNotMatch": storage.ErrAccessDenied,
	"ExpiredToken":          storage.ErrAccessDenied,
	"EntityTooLarge":        storage.ErrFileTooLarge,
	"RequestTimeout":        storage.ErrOperationTimeout,
	"SlowDown":              storage.ErrServiceUnavailable,
	"ServiceUnavailable":    storage.ErrServiceUnavailable,
	"InternalError":         storage.ErrServiceUnavailable,
}

// statusClasses is the fallback for responses without a known code,
// e.g. HEAD requests, which have no body.
var statusClasses = map[int]error{
	http.StatusNotFound:              storage.ErrFileNotFound,
	http.StatusForbidden:             storage.ErrAccessDenied,
	http.StatusRequestEntityTooLarge: storage.ErrFileTooLarge,
	http.StatusServiceUnavailable:    storage.ErrServiceUnavailable,
}

// classifyS3Error converts S3 errors to storage errors, keeping the
// original error in the chain.
func classifyS3Error(err error, operation string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s operation", storage.ErrOperationTimeout, operation)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %s operation", storage.ErrOperationCanceled, operation)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if class, ok := errorClasses[apiErr.ErrorCode()]; ok {
			return fmt.Errorf("%w: %s operation: %w", class, operation, err)
		}
	}

	var statusErr interface{ HTTPStatusCode() int }
	if errors.As(err, &statusErr) {
		if class, ok := statusClasses[statusErr.HTTPStatusCode()]; ok {
			return fmt.Errorf("%w: %s operation: %w", class, operation, err)
		}
	}

	if apiErr != nil {
		return fmt.Errorf("%s operation failed (code: %s): %w", operation, apiErr.ErrorCode(), err)
	}
	return fmt.Errorf("%s operation failed: %w", operation, err)
}
