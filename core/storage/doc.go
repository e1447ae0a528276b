// Package storage abstracts where downloaded documents are written.
//
// Storage is a minimal write-oriented interface: Put streams a reader into a
// path, creating or overwriting it. Local implements it on an afero.Fs so the
// same code writes to disk in production and to memory in tests;
// integration/storage/s3 implements it for S3-compatible buckets.
//
//	import "github.com/dmitrymomot/docuware/core/storage"
//
//	store := storage.NewLocal()
//	n, err := store.Put(ctx, "storage/app/docuware/42-20240305.pdf", body)
//
// Writes are not atomic: a reader that fails midway leaves a partial file.
package storage
