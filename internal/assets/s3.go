package assets

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// S3Source reads assets from an S3-compatible bucket (AWS S3, MinIO, Wasabi,
// DigitalOcean Spaces). Object keys follow projects/<slug>/assets/<path>.
type S3Source struct {
	client *minio.Client
	bucket string
}

// NewS3Source creates an S3-backed asset source.
func NewS3Source(endpoint, accessKey, secretKey, region, bucket string, useSSL bool) (*S3Source, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	log.Info().
		Str("endpoint", endpoint).
		Str("bucket", bucket).
		Bool("ssl", useSSL).
		Msg("S3-compatible asset source initialized")

	return &S3Source{client: client, bucket: bucket}, nil
}

// Read implements Source.
func (s3 *S3Source) Read(ctx context.Context, slug, sourcePath string) ([]byte, error) {
	normalized := NormalizePath(StripQueryAndHash(sourcePath))
	if normalized == "" {
		return nil, ErrNotFound
	}

	key := normalized
	if slug != "" && !hasProjectPrefix(normalized) {
		key = "projects/" + slug + "/assets/" + normalized
	}

	obj, err := s3.client.GetObject(ctx, s3.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset from S3: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, sourcePath)
		}
		return nil, fmt.Errorf("failed to read asset %s: %w", sourcePath, err)
	}
	return data, nil
}

func hasProjectPrefix(p string) bool {
	return len(p) > len("projects/") && p[:len("projects/")] == "projects/"
}
