package fsxs3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3FileSystem implements fsx.FileSystem on an S3 bucket under a key prefix.
type S3FileSystem struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3FileSystem creates an S3-backed file system.
func NewS3FileSystem(client *s3.Client, bucket, prefix string) *S3FileSystem {
	return &S3FileSystem{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (fs *S3FileSystem) key(path string) string {
	path = strings.TrimPrefix(path, "/")
	if fs.prefix == "" {
		return path
	}
	return fs.prefix + "/" + path
}

// ReadFile downloads an object.
func (fs *S3FileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	out, err := fs.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(fs.key(path)),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3 object %s: %w", fs.key(path), err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3 object %s: %w", fs.key(path), err)
	}
	return data, nil
}

// WriteFile uploads an object.
func (fs *S3FileSystem) WriteFile(ctx context.Context, path string, data []byte) error {
	_, err := fs.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(fs.key(path)),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("put s3 object %s: %w", fs.key(path), err)
	}
	return nil
}
