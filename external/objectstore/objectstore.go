package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/viper"
)

const photoPrefix = "photos/"

// S3Store uploads report photos to an S3-compatible bucket and hands back a
// durable public URL. Supabase storage and minio both speak this dialect,
// hence the custom endpoint support.
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3Store builds the client from storage.* configuration.
func NewS3Store(ctx context.Context) (*S3Store, error) {
	bucket := viper.GetString("storage.bucket")
	if bucket == "" {
		return nil, fmt.Errorf("storage.bucket is not configured")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(viper.GetString("storage.region")),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			viper.GetString("storage.access_key"),
			viper.GetString("storage.secret_key"),
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint := viper.GetString("storage.endpoint"); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(viper.GetString("storage.public_url"), "/"),
	}, nil
}

// Upload stores the photo bytes and returns the public URL and object path.
func (s *S3Store) Upload(ctx context.Context, name string, data []byte) (string, string, error) {
	key := photoPrefix + name

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", "", fmt.Errorf("put object %s: %w", key, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key), key, nil
}
