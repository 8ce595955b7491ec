// Package s3 provides a blobstore.Store implementation backed by Amazon S3.
//
// Snapshot reads are sequential streams, so Open issues a single GetObject.
// Download uses the AWS transfer manager for parallel ranged downloads, which
// blobstore.CachingStore picks up automatically.
package s3

import (
	"context"
	"errors"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hupe1980/slicedist/blobstore"
)

// Client is the subset of the S3 API the store uses.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Store implements blobstore.Store for S3.
type Store struct {
	client Client
	bucket string
	prefix string
}

// NewStore creates a new S3 blob store.
// rootPrefix is prepended to all keys (e.g. "snapshots/").
func NewStore(client Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

// New creates a Store using the default AWS configuration chain
// (environment, shared config files, instance metadata).
func New(ctx context.Context, bucket string, optFns ...func(*Options)) (*Store, error) {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts.configOptions()...)
	if err != nil {
		return nil, err
	}

	return NewStore(s3.NewFromConfig(cfg), bucket, opts.Prefix), nil
}

// Options configures New.
type Options struct {
	// Prefix is prepended to all keys.
	Prefix string
	// Region overrides the region from the default configuration chain.
	Region string
}

func (o Options) configOptions() []func(*awsconfig.LoadOptions) error {
	var fns []func(*awsconfig.LoadOptions) error
	if o.Region != "" {
		fns = append(fns, awsconfig.WithRegion(o.Region))
	}
	return fns
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open opens a blob for a streaming read.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)

	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, blobstore.ErrNotFound
		}
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}

	size := int64(-1)
	if resp.ContentLength != nil {
		size = *resp.ContentLength
	}

	return &s3Blob{body: resp.Body, size: size}, nil
}

// Download copies the whole blob to w using the transfer manager.
// Implements blobstore.Downloader.
func (s *Store) Download(ctx context.Context, name string, w io.WriterAt) (int64, error) {
	downloader := manager.NewDownloader(s.client)

	n, err := downloader.Download(ctx, w, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return 0, blobstore.ErrNotFound
		}
		return 0, err
	}
	return n, nil
}

type s3Blob struct {
	body io.ReadCloser
	size int64
}

func (b *s3Blob) Read(p []byte) (int, error) { return b.body.Read(p) }

func (b *s3Blob) Close() error { return b.body.Close() }

func (b *s3Blob) Size() int64 { return b.size }
