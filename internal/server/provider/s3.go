package provider

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/filebot/internal/filex"
)

// seams for testing the AWS SDK wiring
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Options configures the S3-compatible backend.
type S3Options struct {
	RootUser     string
	RootPassword string
	Bucket       string
	Region       string
	BaseEndpoint string
	// StagingDir receives the spool file used to hash content before the
	// object key is known.
	StagingDir string
}

// S3Client stores content in an S3-compatible bucket (e.g. MinIO), keyed by
// the SHA-256 of the payload, which doubles as the content-address. The
// per-user bearer token is accepted as opaque and not used for addressing.
// QueryUsage sums the whole bucket, so the live quota strategy over this
// backend only makes sense for single-tenant deployments.
type S3Client struct {
	opts   S3Options
	client *s3.Client
}

// NewS3Client constructs the backend and ensures the staging directory.
func NewS3Client(ctx context.Context, opts S3Options) (*S3Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.RootUser,
			opts.RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(opts.BaseEndpoint)
		o.UsePathStyle = true
	})

	dir, err := filex.EnsureDir(opts.StagingDir)
	if err != nil {
		return nil, err
	}
	opts.StagingDir = dir

	return &S3Client{opts: opts, client: client}, nil
}

func (c *S3Client) Transfer(ctx context.Context, token string, name string, src io.Reader, size int64) (string, error) {
	// Spool through a staging file while hashing: the object key is the
	// content hash, so it is only known after the payload is read.
	tmp, err := os.CreateTemp(c.opts.StagingDir, "stage-"+filex.SanitizeFileName(name)+"-*")
	if err != nil {
		return "", fmt.Errorf("create staging file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	h := sha256.New()
	written, err := io.Copy(io.MultiWriter(tmp, h), src)
	if err != nil {
		return "", fmt.Errorf("stage content: %w", err)
	}
	if written != size {
		return "", fmt.Errorf("size mismatch: declared %d bytes, read %d", size, written)
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind staging file: %w", err)
	}

	cid := hex.EncodeToString(h.Sum(nil))
	key := "blobs/" + cid

	_, err = c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.opts.Bucket),
		Key:           aws.String(key),
		Body:          tmp,
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return cid, nil
}

func (c *S3Client) QueryUsage(ctx context.Context, token string) (int64, error) {
	var total int64

	p := s3.NewListObjectsV2Paginator(c.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.opts.Bucket),
		Prefix: aws.String("blobs/"),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return 0, fmt.Errorf("list objects: %w", err)
		}
		for _, obj := range page.Contents {
			if obj.Size != nil {
				total += *obj.Size
			}
		}
	}

	return total, nil
}
