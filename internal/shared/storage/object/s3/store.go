package s3

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"resuralph/internal/shared/storage/object"
)

const uploadsPrefix = "uploads"

// Store implements object.Store using Amazon S3.
type Store struct {
	client *s3.Client
	bucket string
	region string
	now    func() time.Time
}

// New creates a new S3-backed object store.
func New(ctx context.Context, region, bucket string) (*Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Store{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
		now:    time.Now,
	}, nil
}

// Save uploads the PDF bytes under the user's namespace with a millisecond
// timestamp name and returns the key plus the public bucket URL.
func (s *Store) Save(ctx context.Context, userID string, data []byte) (object.SavedObject, error) {
	if err := ctx.Err(); err != nil {
		return object.SavedObject{}, err
	}

	key := fmt.Sprintf("%s/%s/%d.pdf", uploadsPrefix, userID, s.now().UnixMilli())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return object.SavedObject{}, fmt.Errorf("s3 put object bucket=%s key=%s: %w", s.bucket, key, err)
	}

	return object.SavedObject{
		Key: key,
		URL: fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key),
	}, nil
}

// Delete removes one object.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete object bucket=%s key=%s: %w", s.bucket, key, err)
	}
	return nil
}

// ClearUser batch-deletes every object under the user's prefix.
func (s *Store) ClearUser(ctx context.Context, userID string) error {
	prefix := fmt.Sprintf("%s/%s/", uploadsPrefix, userID)

	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return fmt.Errorf("s3 list objects bucket=%s prefix=%s: %w", s.bucket, prefix, err)
	}
	if len(out.Contents) == 0 {
		return nil
	}

	toDelete := make([]s3types.ObjectIdentifier, 0, len(out.Contents))
	for _, obj := range out.Contents {
		toDelete = append(toDelete, s3types.ObjectIdentifier{Key: obj.Key})
	}

	res, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &s3types.Delete{Objects: toDelete},
	})
	if err != nil {
		return fmt.Errorf("s3 delete objects bucket=%s prefix=%s: %w", s.bucket, prefix, err)
	}
	if len(res.Errors) > 0 {
		first := res.Errors[0]
		return fmt.Errorf("s3 delete objects bucket=%s prefix=%s: %d objects failed, first key=%s code=%s",
			s.bucket, prefix, len(res.Errors), aws.ToString(first.Key), aws.ToString(first.Code))
	}
	return nil
}

var _ object.Store = (*Store)(nil)
