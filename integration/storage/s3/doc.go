// Package s3 implements storage.Storage on Amazon S3 and S3-compatible
// services (MinIO, Wasabi, DigitalOcean Spaces).
//
//	store, err := s3.New(ctx, s3.S3Config{
//		Bucket: "documents",
//		Region: "eu-central-1",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	dw, err := docuware.New(ctx, cfg, docuware.WithStorage(store))
//
// Downloaded documents are stored under the same path the local backend would
// use, with the leading slash dropped. Errors are classified into the storage
// package's sentinel errors; check them with errors.Is.
package s3
