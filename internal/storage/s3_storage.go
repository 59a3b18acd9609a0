package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// presignExpiry bounds how long a private image link stays valid.
const presignExpiry = 15 * time.Minute

// ImageURLResolver turns a stored product image key into a URL a browser can load.
type ImageURLResolver interface {
	ImageURL(ctx context.Context, key string) (string, error)
}

type S3Storage struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	baseURL string
	private bool
}

func NewS3Storage(region, bucket, accessKeyID, secretAccessKey, baseURL string, private bool) *S3Storage {
	var cfg aws.Config
	var err error

	// If credentials are provided, use them. Otherwise, use default credential chain
	if accessKeyID != "" && secretAccessKey != "" {
		cfg = aws.Config{
			Region: region,
			Credentials: credentials.NewStaticCredentialsProvider(
				accessKeyID,
				secretAccessKey,
				"",
			),
		}
	} else {
		cfg, err = config.LoadDefaultConfig(context.TODO(),
			config.WithRegion(region),
		)
		if err != nil {
			cfg = aws.Config{
				Region: region,
			}
		}
	}

	client := s3.NewFromConfig(cfg)

	return &S3Storage{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		baseURL: baseURL,
		private: private,
	}
}

// ImageURL returns a presigned GET URL for private buckets and the public
// object URL otherwise. An empty key resolves to an empty URL.
func (s *S3Storage) ImageURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	if s.private {
		req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		}, s3.WithPresignExpires(presignExpiry))
		if err != nil {
			return "", fmt.Errorf("failed to presign image %s: %w", key, err)
		}
		return req.URL, nil
	}

	return s.PublicURL(key), nil
}

// PublicURL builds the CloudFront/custom domain URL, or the S3 direct URL.
func (s *S3Storage) PublicURL(key string) string {
	if s.baseURL != "" {
		return fmt.Sprintf("%s/%s", s.baseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.client.Options().Region, key)
}

// StaticURLResolver serves images from a fixed prefix, e.g. a local /media path.
type StaticURLResolver struct {
	BaseURL string
}

func (r StaticURLResolver) ImageURL(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	if r.BaseURL == "" {
		return key, nil
	}
	return fmt.Sprintf("%s/%s", r.BaseURL, key), nil
}
