package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store keeps one JSON object per slot in an S3 bucket, under an optional
// key prefix. Useful when the API runs on a host with no durable disk.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// S3Options holds the credentials and location for an S3-backed store
type S3Options struct {
	Region          string
	Bucket          string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
}

// NewS3Store builds an S3 client from static credentials and wraps it.
// Pass the client explicitly with NewS3StoreWithClient in tests.
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKeyID,
			opts.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return NewS3StoreWithClient(client, opts.Bucket, opts.Prefix), nil
}

// NewS3StoreWithClient wraps an existing S3 client
func NewS3StoreWithClient(client *s3.Client, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3Store) key(slot string) string {
	if s.prefix == "" {
		return slot + ".json"
	}
	return s.prefix + "/" + slot + ".json"
}

// Get fetches the slot's object, returning ErrSlotNotFound for missing keys
func (s *S3Store) Get(ctx context.Context, slot string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(slot)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to read slot %s from S3: %w", slot, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s body: %w", slot, err)
	}
	return data, nil
}

// Put overwrites the slot's object
func (s *S3Store) Put(ctx context.Context, slot string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(slot)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to write slot %s to S3: %w", slot, err)
	}
	return nil
}

// Delete removes the slot's object. S3 treats deleting a missing key as
// success, which matches the slot-store contract.
func (s *S3Store) Delete(ctx context.Context, slot string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(slot)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete slot %s from S3: %w", slot, err)
	}
	return nil
}
