package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"bdc/internal/config"
)

// S3 stores objects as <bucket>/<name> keys inside one S3 bucket. It also talks
// to S3-compatible services when Endpoint is set.
type S3 struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3(ctx context.Context, c config.S3Config) (*S3, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(c.Region)}
	if c.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
		o.UsePathStyle = c.PathStyle
	})

	public := strings.TrimRight(c.PublicURL, "/")
	if public == "" {
		public = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.Bucket, c.Region)
	}
	return &S3{client: client, bucket: c.Bucket, publicURL: public}, nil
}

func (s *S3) key(bucket, name string) (string, error) {
	if err := checkName(bucket, name); err != nil {
		return "", err
	}
	return bucket + "/" + name, nil
}

// putInput is a conditional write: S3 answers 412 instead of replacing an
// existing key.
func (s *S3) putInput(key, contentType string, body io.Reader) *s3.PutObjectInput {
	return &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=3600"),
		IfNoneMatch:  aws.String("*"),
	}
}

func (s *S3) Put(ctx context.Context, bucket, name, contentType string, body io.Reader) error {
	k, err := s.key(bucket, name)
	if err != nil {
		return err
	}
	if _, err = s.client.PutObject(ctx, s.putInput(k, contentType, body)); err != nil {
		if isPreconditionFailed(err) {
			return fmt.Errorf("s3 put %s: %w", k, ErrExists)
		}
		return fmt.Errorf("s3 put %s: %w", k, err)
	}
	return nil
}

// isPreconditionFailed matches the API error S3 returns for a failed If-None-Match.
func isPreconditionFailed(err error) bool {
	var apiErr interface{ ErrorCode() string }
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed"
}

func (s *S3) Delete(ctx context.Context, bucket, name string) error {
	k, err := s.key(bucket, name)
	if err != nil {
		return err
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(k),
	}); err != nil {
		return fmt.Errorf("s3 delete %s: %w", k, err)
	}
	return nil
}

func (s *S3) List(ctx context.Context, bucket string) ([]Object, error) {
	if !KnownBucket(bucket) {
		return nil, ErrBadName
	}
	prefix := bucket + "/"
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})

	out := []Object{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3 list %s: %w", prefix, err)
		}
		for _, o := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(o.Key), prefix)
			if name == "" || strings.Contains(name, "/") {
				continue
			}
			out = append(out, Object{
				Bucket:     bucket,
				Name:       name,
				Size:       aws.ToInt64(o.Size),
				ModifiedAt: aws.ToTime(o.LastModified),
				URL:        s.PublicURL(bucket, name),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModifiedAt.After(out[j].ModifiedAt) })
	return out, nil
}

func (s *S3) PublicURL(bucket, name string) string {
	return s.publicURL + "/" + bucket + "/" + name
}
