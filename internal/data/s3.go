package data

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/henryforrest/The-Cube-Game/internal/conf"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-kratos/kratos/v2/log"
)

const (
	uploadRetries  = 3
	retryBackoff   = time.Second
	uploadTimeout  = 30 * time.Second
	presignExpires = 24 * time.Hour
)

type S3Bucket struct {
	client *s3.Client
	bucket string
	logger *log.Helper
}

func NewS3Bucket(c *conf.Data, logger log.Logger) (*S3Bucket, func(), error) {
	l := log.NewHelper(logger)

	if c.S3 == nil {
		return nil, nil, fmt.Errorf("s3 config is nil")
	}

	configOptions := []func(*config.LoadOptions) error{
		config.WithRegion(c.S3.Region),
		config.WithCredentialsProvider(aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     c.S3.AccessKeyId,
				SecretAccessKey: c.S3.SecretAccessKey,
			}, nil
		})),
	}

	if c.S3.Endpoint != "" {
		configOptions = append(configOptions, config.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL:               c.S3.Endpoint,
					HostnameImmutable: true,
					Source:            aws.EndpointSourceCustom,
				}, nil
			}),
		))
		l.Infof("Using custom S3 endpoint: %s", c.S3.Endpoint)
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), configOptions...)
	if err != nil {
		l.Errorf("failed loading AWS config: %v", err)
		return nil, nil, err
	}

	cleanup := func() {
		l.Info("S3 uploader closed")
	}

	return &S3Bucket{
		client: s3.NewFromConfig(cfg),
		bucket: c.S3.Bucket,
		logger: l,
	}, cleanup, nil
}

// UploadBytes 上传快照字节，成功后返回带签名的下载链接
func (r *dataRepo) UploadBytes(ctx context.Context, bucket, key, contentType string, data []byte) (string, error) {
	s := r.data.s3Bucket
	if bucket == "" {
		bucket = s.bucket
	}

	var lastErr error
	for i := 0; i < uploadRetries; i++ {
		if i > 0 {
			time.Sleep(retryBackoff * time.Duration(i))
			s.logger.Infof("Retry upload %d/%d: %s", i, uploadRetries-1, key)
		}

		url, err := s.putOnce(ctx, bucket, key, contentType, data)
		if err != nil {
			lastErr = err
			s.logger.Warnf("Upload attempt %d/%d failed: %v", i+1, uploadRetries, err)
			continue
		}

		s.logger.Infof("S3 upload success: bucket=%s, key=%s", bucket, key)
		return url, nil
	}

	return "", fmt.Errorf("upload failed after %d attempts: %w", uploadRetries, lastErr)
}

func (s *S3Bucket) putOnce(ctx context.Context, bucket, key, contentType string, data []byte) (string, error) {
	uploadCtx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	if _, err := s.client.PutObject(uploadCtx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        bytes.NewReader(data),
	}); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	presigned, err := s3.NewPresignClient(s.client).PresignGetObject(
		uploadCtx,
		&s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		},
		s3.WithPresignExpires(presignExpires),
	)
	if err != nil {
		return "", fmt.Errorf("presign GET: %w", err)
	}
	return presigned.URL, nil
}
