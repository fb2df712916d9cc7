package media

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API 是 S3Storage 用到的客户端方法
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Storage 将图片上传到 S3 bucket
type S3Storage struct {
	client        S3API
	bucket        string
	prefix        string
	publicBaseURL string
}

// NewS3Storage 使用默认凭证链构造 S3Storage。
// publicBaseURL 为空时使用 bucket 的虚拟主机地址。
func NewS3Storage(ctx context.Context, region, bucket, publicBaseURL string) (*S3Storage, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return NewS3StorageWithClient(s3.NewFromConfig(cfg), bucket, publicBaseURL), nil
}

// NewS3StorageWithClient 使用已有客户端构造 S3Storage
func NewS3StorageWithClient(client S3API, bucket, publicBaseURL string) *S3Storage {
	return &S3Storage{client: client, bucket: bucket, prefix: "uploads/", publicBaseURL: publicBaseURL}
}

// Save implements Storage.
func (s *S3Storage) Save(ctx context.Context, name string, img Image) (string, error) {
	key := s.prefix + name
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(img.Data),
		ContentType:  aws.String(img.ContentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("put s3 object %s: %w", key, err)
	}
	return joinURL(s.publicBaseURL, key), nil
}
