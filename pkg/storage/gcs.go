package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/talentosprecato/Mari/pkg/lifecycle"
)

// bucketStore keeps each key as an object in a Google Cloud Storage bucket.
type bucketStore struct {
	client *gcs.Client
	bucket string
	prefix string
	logger *slog.Logger
}

func newGCS(ctx context.Context, cfg *GCSConfig, logger *slog.Logger) (System, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}

	return &bucketStore{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		logger: logger,
	}, nil
}

func (b *bucketStore) Start(lc *lifecycle.Coordinator) error {
	b.logger.Info("starting storage system", "bucket", b.bucket, "prefix", b.prefix)

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := b.client.Close(); err != nil {
			b.logger.Error("gcs client close failed", "error", err)
		}
	})
	return nil
}

func (b *bucketStore) Store(ctx context.Context, key string, data []byte) error {
	obj, err := b.object(key)
	if err != nil {
		return err
	}

	w := obj.NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close object writer: %w", err)
	}
	return nil
}

func (b *bucketStore) Retrieve(ctx context.Context, key string) ([]byte, error) {
	obj, err := b.object(key)
	if err != nil {
		return nil, err
	}

	r, err := obj.NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open object: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read object: %w", err)
	}
	return data, nil
}

func (b *bucketStore) Delete(ctx context.Context, key string) error {
	obj, err := b.object(key)
	if err != nil {
		return err
	}

	if err := obj.Delete(ctx); err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

func (b *bucketStore) Validate(ctx context.Context, key string) (bool, error) {
	obj, err := b.object(key)
	if err != nil {
		return false, err
	}

	if _, err := obj.Attrs(ctx); err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("object attrs: %w", err)
	}
	return true, nil
}

func (b *bucketStore) List(ctx context.Context, prefix string) ([]string, error) {
	root := joinPrefix(b.prefix, "")
	it := b.client.Bucket(b.bucket).Objects(ctx, &gcs.Query{Prefix: root + prefix})

	var keys []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		keys = append(keys, strings.TrimPrefix(attrs.Name, root))
	}
	return keys, nil
}

func (b *bucketStore) object(key string) (*gcs.ObjectHandle, error) {
	cleaned, err := CleanKey(key)
	if err != nil {
		return nil, err
	}
	return b.client.Bucket(b.bucket).Object(joinPrefix(b.prefix, cleaned)), nil
}
