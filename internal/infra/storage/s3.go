package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
)

// ImageStore guarda imagens já processadas e devolve a URL pública.
type ImageStore interface {
	Put(ctx context.Context, prefix string, data []byte) (string, error)
}

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Store struct {
	client    putObjectAPI
	bucket    string
	publicURL string
}

func NewS3Store(cfg config.S3Config) *S3Store {
	awsCfg := aws.Config{
		Region: cfg.Region,
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			// MinIO e compatíveis
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3Store{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (s *S3Store) Put(ctx context.Context, prefix string, data []byte) (string, error) {
	key := fmt.Sprintf("%s/%s%s", strings.Trim(prefix, "/"), uuid.NewString(), webpExtension)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(WebPMimeType),
		CacheControl: aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}

	return s.publicURL + "/" + key, nil
}
