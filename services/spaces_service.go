package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/bikramkgupta/care-circle-journal/config"
)

// ObjectSigner issues time-limited signed URLs for the blob store. The media
// service depends on this interface so tests can stub the signer.
type ObjectSigner interface {
	PresignUpload(ctx context.Context, key, mimeType string, expires time.Duration) (string, error)
	PresignDownload(ctx context.Context, key string, expires time.Duration) (string, error)
}

// SpacesService signs against a DigitalOcean Spaces (S3-compatible) bucket.
type SpacesService struct {
	presigner *s3.PresignClient
	bucket    string
}

func isLocalEndpoint(endpoint string) bool {
	return strings.Contains(endpoint, "localhost") ||
		strings.Contains(endpoint, "127.0.0.1") ||
		strings.Contains(endpoint, "minio")
}

func NewSpacesService(ctx context.Context, cfg config.SpacesConfig) (*SpacesService, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load spaces config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		// Path-style addressing for local minio-style endpoints.
		o.UsePathStyle = isLocalEndpoint(cfg.Endpoint)
	})

	return &SpacesService{presigner: s3.NewPresignClient(client), bucket: cfg.Bucket}, nil
}

func (s *SpacesService) PresignUpload(ctx context.Context, key, mimeType string, expires time.Duration) (string, error) {
	out, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(mimeType),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("presign upload: %w", err)
	}
	return out.URL, nil
}

func (s *SpacesService) PresignDownload(ctx context.Context, key string, expires time.Duration) (string, error) {
	out, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return out.URL, nil
}
