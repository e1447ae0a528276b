package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrymomot/docuware/core/storage"
)

// Compile-time check that S3Storage implements storage.Storage interface
var (
	_ storage.Storage       = (*S3Storage)(nil)
	_ storage.PathValidator = (*S3Storage)(nil)
)

// S3Client defines the interface for S3 operations used by S3Storage.
type S3Client interface {
	PutObject(ctx context.Context, params *s3aws.PutObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3aws.HeadObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3aws.DeleteObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.DeleteObjectOutput, error)
}

// S3Storage writes downloaded documents to Amazon S3 or an S3-compatible service.
type S3Storage struct {
	client         S3Client
	bucket         string
	region         string
	endpoint       string        // Custom endpoint for S3-compatible services
	baseURL        string        // Custom CDN or public URL base (if provided)
	forcePathStyle bool          // Required for MinIO and some S3-compatible services
	contentType    string        // Content-Type stored with each object
	uploadTimeout  time.Duration // Optional timeout to prevent hanging uploads
}

// S3Config contains configuration for S3 storage.
type S3Config struct {
	Bucket         string `env:"DOCUWARE_S3_BUCKET"`
	Region         string `env:"DOCUWARE_S3_REGION"`
	AccessKeyID    string `env:"DOCUWARE_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"DOCUWARE_S3_SECRET_KEY"`
	Endpoint       string `env:"DOCUWARE_S3_ENDPOINT"`         // For S3-compatible services like MinIO, Wasabi
	BaseURL        string `env:"DOCUWARE_S3_BASE_URL"`         // Custom CDN or public URL base (auto-generated if empty)
	ForcePathStyle bool   `env:"DOCUWARE_S3_FORCE_PATH_STYLE"` // Required for MinIO and some S3-compatible services
}

// S3Option defines a function that configures S3Storage.
type S3Option func(*s3Options)

type s3Options struct {
	httpClient      *http.Client
	s3Client        S3Client
	s3ConfigOptions []func(*config.LoadOptions) error
	s3ClientOptions []func(*s3aws.Options)
	contentType     string
	uploadTimeout   time.Duration
}

// WithS3Client sets a custom pre-configured S3 client.
// Primarily used for testing with mocks.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Options) {
		o.s3Client = client
	}
}

// WithHTTPClient sets a custom HTTP client for S3 requests.
func WithHTTPClient(client *http.Client) S3Option {
	return func(o *s3Options) {
		o.httpClient = client
	}
}

// WithS3ConfigOption adds a custom AWS config option.
func WithS3ConfigOption(option func(*config.LoadOptions) error) S3Option {
	return func(o *s3Options) {
		o.s3ConfigOptions = append(o.s3ConfigOptions, option)
	}
}

// WithS3ClientOption adds a custom S3 client option.
func WithS3ClientOption(option func(*s3aws.Options)) S3Option {
	return func(o *s3Options) {
		o.s3ClientOptions = append(o.s3ClientOptions, option)
	}
}

// WithContentType overrides the Content-Type stored with uploaded objects.
// Defaults to application/pdf.
func WithContentType(ct string) S3Option {
	return func(o *s3Options) {
		o.contentType = ct
	}
}

// WithS3UploadTimeout sets the timeout for upload operations.
// If not set, relies on context deadline from caller.
func WithS3UploadTimeout(timeout time.Duration) S3Option {
	return func(o *s3Options) {
		o.uploadTimeout = timeout
	}
}

// New creates a new S3 storage instance.
func New(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, storage.ErrInvalidConfig
	}

	options := &s3Options{contentType: "application/pdf"}
	for _, opt := range opts {
		opt(options)
	}

	var client S3Client
	if options.s3Client != nil {
		client = options.s3Client
	} else {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}

		// Static credentials if provided, IAM roles/env vars otherwise
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}

		if options.httpClient != nil {
			awsOptions = append(awsOptions, config.WithHTTPClient(options.httpClient))
		}

		awsOptions = append(awsOptions, options.s3ConfigOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		client = s3aws.NewFromConfig(awsConfig, func(o *s3aws.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle

			for _, opt := range options.s3ClientOptions {
				opt(o)
			}
		})
	}

	return &S3Storage{
		client:         client,
		bucket:         cfg.Bucket,
		region:         cfg.Region,
		endpoint:       cfg.Endpoint,
		baseURL:        cfg.BaseURL,
		forcePathStyle: cfg.ForcePathStyle,
		contentType:    options.contentType,
		uploadTimeout:  options.uploadTimeout,
	}, nil
}

// objectKey turns a storage path into an S3 key.
func objectKey(p string) (string, error) {
	if err := storage.ValidateConfinedPath(p); err != nil {
		return "", fmt.Errorf("%w: %s", err, p)
	}
	key := strings.TrimPrefix(path.Clean(strings.ReplaceAll(p, "\\", "/")), "/")
	if key == "" || key == "." {
		return "", fmt.Errorf("%w: %s", storage.ErrInvalidPath, p)
	}
	return key, nil
}

// ValidatePath reports whether p maps to a usable object key. Keys are
// literal in S3, so ".." segments are rejected rather than resolved.
func (s *S3Storage) ValidatePath(p string) error {
	_, err := objectKey(p)
	return err
}

// Put uploads r under the key derived from p.
// The body is buffered because PutObject needs a seekable payload to sign.
func (s *S3Storage) Put(ctx context.Context, p string, r io.Reader) (int64, error) {
	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	key, err := objectKey(p)
	if err != nil {
		return 0, err
	}

	body, ok := r.(io.ReadSeeker)
	var size int64
	if !ok {
		buf, err := io.ReadAll(r)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", storage.ErrFailedToWrite, err)
		}
		body = bytes.NewReader(buf)
		size = int64(len(buf))
	} else {
		end, err := body.Seek(0, io.SeekEnd)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", storage.ErrFailedToWrite, err)
		}
		start, err := body.Seek(0, io.SeekStart)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", storage.ErrFailedToWrite, err)
		}
		size = end - start
	}

	_, err = s.client.PutObject(ctx, &s3aws.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(s.contentType),
	})
	if err != nil {
		return 0, classifyS3Error(err, "upload file")
	}

	return size, nil
}

// Delete removes a single object.
// Verifies existence first so a missing key reports storage.ErrFileNotFound.
func (s *S3Storage) Delete(ctx context.Context, p string) error {
	key, err := objectKey(p)
	if err != nil {
		return err
	}

	_, err = s.client.HeadObject(ctx, &s3aws.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return classifyS3Error(err, "check file")
	}

	_, err = s.client.DeleteObject(ctx, &s3aws.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return classifyS3Error(err, "delete file")
	}

	return nil
}

// Exists checks if an object exists in S3.
func (s *S3Storage) Exists(ctx context.Context, p string) bool {
	key, err := objectKey(p)
	if err != nil {
		return false
	}

	_, err = s.client.HeadObject(ctx, &s3aws.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err == nil
}

// URL returns the public URL for a stored path.
// - Custom BaseURL: uses the provided base URL
// - S3-compatible (with Endpoint): path-style or virtual-hosted-style based on ForcePathStyle
// - AWS S3: standard AWS URL format
func (s *S3Storage) URL(p string) string {
	key := strings.TrimPrefix(strings.ReplaceAll(p, "\\", "/"), "/")

	if s.baseURL != "" {
		return strings.TrimSuffix(s.baseURL, "/") + "/" + key
	}

	if s.endpoint != "" {
		endpoint := strings.TrimSuffix(s.endpoint, "/")
		protocol := "https://"
		if after, ok := strings.CutPrefix(endpoint, "http://"); ok {
			protocol = "http://"
			endpoint = after
		} else if after, ok := strings.CutPrefix(endpoint, "https://"); ok {
			endpoint = after
		}

		if s.forcePathStyle {
			return fmt.Sprintf("%s%s/%s/%s", protocol, endpoint, s.bucket, key)
		}
		return fmt.Sprintf("%s%s.%s/%s", protocol, s.bucket, endpoint, key)
	}

	if s.forcePathStyle {
		return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", s.region, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
