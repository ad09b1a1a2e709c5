package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// GetObjectPresigner is the slice of the S3 presign client the
// attachment storage needs.
type GetObjectPresigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// AttachmentStorage issues time-limited download URLs for stored case
// documents. Uploads happen out of band; this service only reads.
type AttachmentStorage struct {
	presigner GetObjectPresigner
	bucket    string
	ttl       time.Duration
}

func NewAttachmentStorage(presigner GetObjectPresigner, bucket string, ttl time.Duration) *AttachmentStorage {
	return &AttachmentStorage{
		presigner: presigner,
		bucket:    bucket,
		ttl:       ttl,
	}
}

// SignedURL returns a presigned GET URL for the given storage path,
// valid for the configured TTL.
func (s *AttachmentStorage) SignedURL(ctx context.Context, storagePath string) (string, time.Duration, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storagePath),
	}, func(o *s3.PresignOptions) {
		o.Expires = s.ttl
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to presign attachment url: %w", err)
	}

	return req.URL, s.ttl, nil
}
