package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"mds-registry-api/config"
	"mds-registry-api/internal/application/ports"
	"mds-registry-api/internal/domain/errs"
	"mds-registry-api/internal/infrastructure/blob"
)

const keyPrefix = "uploads"

type api interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Client stores blobs in one bucket and serves them through short-lived
// presigned GET URLs.
type Client struct {
	logger     *zap.Logger
	client     api
	presign    *s3.PresignClient
	bucket     string
	presignTTL time.Duration
}

var _ ports.BlobStore = (*Client)(nil)

func New(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.S3,
) (*Client, error) {
	if cfg.BucketUploads == "" {
		return nil, errors.New("s3 bucket is not configured")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			// S3-compatible stores (MinIO and friends) need path-style addressing.
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info("s3 blob store ready",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.BucketUploads),
	)

	return &Client{
		logger:     logger,
		client:     client,
		presign:    s3.NewPresignClient(client),
		bucket:     cfg.BucketUploads,
		presignTTL: cfg.PresignTTL,
	}, nil
}

func (c *Client) Put(ctx context.Context, filename string, body io.Reader, size int64, contentType string) error {
	if err := blob.ValidName(filename); err != nil {
		return err
	}

	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key(filename)),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return errs.Storage("s3 put object", err)
	}

	return nil
}

// Locate checks the object exists before handing out a presigned URL for it.
func (c *Client) Locate(ctx context.Context, filename string) (ports.Location, error) {
	if err := blob.ValidName(filename); err != nil {
		return ports.Location{}, err
	}

	_, err := c.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key(filename)),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return ports.Location{}, errs.ErrNotFound
		}
		return ports.Location{}, errs.Storage("s3 head object", err)
	}

	req, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(c.bucket),
		Key:                        aws.String(key(filename)),
		ResponseContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", filename)),
	}, s3.WithPresignExpires(c.presignTTL))
	if err != nil {
		return ports.Location{}, errs.Storage("s3 presign get", err)
	}

	return ports.Location{URL: req.URL}, nil
}

func (c *Client) Delete(ctx context.Context, filename string) error {
	if err := blob.ValidName(filename); err != nil {
		return err
	}

	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key(filename)),
	})
	if err != nil {
		return errs.Storage("s3 delete object", err)
	}

	return nil
}

func (c *Client) GetBucket() string { return c.bucket }

func key(filename string) string { return path.Join(keyPrefix, filename) }
