package source

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
	"github.com/vnykmshr/seqflow/pkg/streaming/stream"
)

// S3Config configures an S3 object listing source.
type S3Config struct {
	Client s3.ListObjectsV2APIClient
	Bucket string
	Prefix string

	// PageSize is the MaxKeys of each ListObjectsV2 call. Zero uses the service
	// default of 1000.
	PageSize int32

	// Limiter, when set, is waited on before every ListObjectsV2 call.
	Limiter Waiter
}

// S3ClientConfig locates an S3 or S3-compatible service.
type S3ClientConfig struct {
	Region         string
	Endpoint       string // custom endpoint such as MinIO; implies path-style URLs
	AccessKey      string // static credentials; empty uses the default AWS chain
	SecretKey      string
	ForcePathStyle bool
}

// NewS3Client builds an S3 client from cfg and the default AWS configuration chain.
func NewS3Client(ctx context.Context, cfg S3ClientConfig) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, sferrors.NewOperationError(module, "LoadAWSConfig", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
		if cfg.ForcePathStyle {
			o.UsePathStyle = true
		}
	}), nil
}

// S3Objects returns a stream of the objects in bucket whose key starts with prefix,
// in key order. Pages are listed while the terminal pulls.
func S3Objects(client s3.ListObjectsV2APIClient, bucket, prefix string) (stream.Stream[types.Object], error) {
	return S3ObjectsWithConfig(S3Config{Client: client, Bucket: bucket, Prefix: prefix})
}

// S3ObjectsWithConfig is S3Objects with an explicit configuration.
func S3ObjectsWithConfig(cfg S3Config) (stream.Stream[types.Object], error) {
	if err := validation.ValidateNotNil(module, "client", cfg.Client); err != nil {
		return nil, err
	}
	if err := validation.ValidateNotEmpty(module, "bucket", cfg.Bucket); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegative(module, "page_size", cfg.PageSize); err != nil {
		return nil, err
	}

	return stream.Deferred(func(context.Context) (stream.Source[types.Object], error) {
		input := &s3.ListObjectsV2Input{
			Bucket: aws.String(cfg.Bucket),
			Prefix: aws.String(cfg.Prefix),
		}
		if cfg.PageSize > 0 {
			input.MaxKeys = aws.Int32(cfg.PageSize)
		}
		return &s3Source{
			bucket:  cfg.Bucket,
			pages:   s3.NewListObjectsV2Paginator(cfg.Client, input),
			limiter: cfg.Limiter,
		}, nil
	}), nil
}

type s3Source struct {
	bucket  string
	pages   *s3.ListObjectsV2Paginator
	limiter Waiter
	page    []types.Object
}

func (s *s3Source) Next(ctx context.Context) (types.Object, bool, error) {
	for len(s.page) == 0 {
		if !s.pages.HasMorePages() {
			return types.Object{}, false, nil
		}
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return types.Object{}, false, err
			}
		}
		out, err := s.pages.NextPage(ctx)
		if err != nil {
			return types.Object{}, false, sferrors.NewIOError(module, "ListObjectsV2", s.bucket, err)
		}
		s.page = out.Contents
	}
	obj := s.page[0]
	s.page = s.page[1:]
	return obj, true, nil
}

func (s *s3Source) Close() error { return nil }
