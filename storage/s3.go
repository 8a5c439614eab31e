package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/igreja-site/cms-backend/config"
	"github.com/igreja-site/cms-backend/errs"
	"github.com/rs/zerolog/log"
)

const cacheForever = "public, max-age=31536000, immutable"

// objectAPI is the part of the S3 client used here.
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Client stores uploaded media in an S3 compatible bucket (AWS, Supabase
// Storage, MinIO) and hands out public URLs for it.
type Client struct {
	api        objectAPI
	bucket     string
	prefix     string
	publicBase string
}

// NewFromConfig builds the client from S3_* settings. Static keys are used
// when present, otherwise the default AWS credential chain.
func NewFromConfig(ctx context.Context, c map[string]string) (*Client, error) {
	bucket := config.GetString(c, "S3_BUCKET", "")
	if bucket == "" {
		return nil, fmt.Errorf("missing S3_BUCKET")
	}
	region := config.GetString(c, "S3_REGION", "us-east-1")
	endpoint := config.GetString(c, "S3_ENDPOINT", "")
	pathStyle := config.GetBool(c, "S3_FORCE_PATH_STYLE", endpoint != "")

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if key := config.GetString(c, "S3_ACCESS_KEY_ID", ""); key != "" {
		secret := config.GetString(c, "S3_SECRET_ACCESS_KEY", "")
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(key, secret, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = pathStyle
	})

	publicBase := config.GetString(c, "S3_PUBLIC_BASE_URL", "")
	if publicBase == "" {
		if endpoint != "" {
			publicBase = strings.TrimRight(endpoint, "/") + "/" + bucket
		} else {
			publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
		}
	}

	log.Info().Str("bucket", bucket).Str("region", region).Bool("pathStyle", pathStyle).Msg("object storage configured")
	return newClient(api, bucket, config.GetString(c, "S3_PREFIX", ""), publicBase), nil
}

func newClient(api objectAPI, bucket, prefix, publicBase string) *Client {
	return &Client{
		api:        api,
		bucket:     bucket,
		prefix:     strings.Trim(prefix, "/"),
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

// Key places name under the configured prefix.
func (c *Client) Key(name string) string {
	name = strings.TrimLeft(name, "/")
	if c.prefix == "" {
		return name
	}
	return c.prefix + "/" + name
}

// Put uploads data under key and returns its public URL. Keys are never
// reused, so objects are served with an immutable cache policy.
func (c *Client) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String(cacheForever),
	})
	if err != nil {
		return "", errs.NewStorageUploadError(key, err)
	}
	return c.PublicURL(key), nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (c *Client) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return c.publicBase + "/" + key
}

// KeyFromURL returns the object key of a URL produced by PublicURL.
func (c *Client) KeyFromURL(publicURL string) (string, bool) {
	base := c.publicBase + "/"
	if !strings.HasPrefix(publicURL, base) {
		return "", false
	}
	key := strings.TrimPrefix(publicURL, base)
	return key, key != ""
}
