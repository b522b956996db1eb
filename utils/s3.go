package utils

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Proof screenshots live in an S3-compatible bucket (AWS S3, R2, MinIO).
// S3_ENDPOINT is optional; leave it empty for real AWS.

func storageConfig(ctx context.Context) (aws.Config, error) {
	accessKey := os.Getenv("S3_ACCESS_KEY_ID")
	secretKey := os.Getenv("S3_SECRET_ACCESS_KEY")
	if accessKey == "" || secretKey == "" {
		return aws.Config{}, fmt.Errorf("S3_ACCESS_KEY_ID or S3_SECRET_ACCESS_KEY not set")
	}
	region := os.Getenv("S3_REGION")
	if region == "" {
		region = "auto"
	}
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load storage config: %w", err)
	}
	return cfg, nil
}

func storageClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := storageConfig(ctx)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if ep := os.Getenv("S3_ENDPOINT"); ep != "" {
			o.BaseEndpoint = aws.String(ep)
		}
	})
	return client, nil
}

func storageBucket() (string, error) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		return "", fmt.Errorf("S3_BUCKET not set")
	}
	return bucket, nil
}

// UploadProofObject stores a submission proof under the given object key.
// The call carries a bounded timeout; a slow store is a reportable error,
// not a hung request.
func UploadProofObject(ctx context.Context, objectKey string, file io.Reader) error {
	bucket, err := storageBucket()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := storageClient(ctx)
	if err != nil {
		return err
	}

	contentType := mime.TypeByExtension(path.Ext(objectKey))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(objectKey),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("proof upload failed: %w", err)
	}
	return nil
}

// SignedProofURL returns a presigned GET URL so admins can review a proof
// without the bucket being public.
func SignedProofURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	bucket, err := storageBucket()
	if err != nil {
		return "", err
	}
	client, err := storageClient(ctx)
	if err != nil {
		return "", err
	}
	presigner := s3.NewPresignClient(client)
	out, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("presign failed: %w", err)
	}
	return out.URL, nil
}
