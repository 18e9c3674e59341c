package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
)

// Archive writes JSON documents (reconciled orders, read results) under a
// key prefix. The bucket is created on first use.
type Archive struct {
	client Client
	bucket string
	region string
	prefix string
	now    func() time.Time

	mu    sync.Mutex
	ready bool
}

// NewArchive creates an archive on client for the configured bucket and prefix.
func NewArchive(client Client, cfg Config) *Archive {
	return &Archive{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		prefix: cfg.ArchivePrefix,
		now:    time.Now,
	}
}

// Put stores doc as JSON under <prefix>/<kind>/<id>/<timestamp>.json and
// returns the object key.
func (a *Archive) Put(ctx context.Context, kind, id string, doc any) (string, error) {
	if err := a.ensureBucket(ctx); err != nil {
		return "", err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s %s: %w", kind, id, err)
	}

	key := path.Join(a.prefix, kind, id, a.now().UTC().Format("20060102T150405.000Z")+".json")
	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(raw), int64(len(raw)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", key, err)
	}
	return key, nil
}

// Get reads an archived document back.
func (a *Archive) Get(ctx context.Context, key string) (map[string]any, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer obj.Close()

	raw, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return doc, nil
}

// History lists the archived keys of one consignment, oldest first.
func (a *Archive) History(ctx context.Context, kind, id string) ([]string, error) {
	prefix := path.Join(a.prefix, kind, id) + "/"

	var keys []string
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (a *Archive) ensureBucket(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ready {
		return nil
	}

	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", a.bucket, err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{Region: a.region}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
		}
	}
	a.ready = true
	return nil
}
