package storage

import (
	"bytes"
	"context"
	"net/http"

	"newshound/newshound/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOClient stores crawled photos in an object bucket, keyed by their
// content address. Identical bytes always map to the same key, so the
// put is idempotent and a shared photo is stored once per crawl corpus.
type MinIOClient struct {
	client *minio.Client
	bucket string
}

func NewMinIOClient(cfg config.Config) (*MinIOClient, error) {
	// Use insecure for local (no HTTPS)
	bucket := cfg.MinIOBucket
	client, err := minio.New(
		cfg.MinIOEndpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
			Secure: false,
		},
	)
	if err != nil {
		return nil, err
	}
	// Create bucket if not exists
	exists, err := client.BucketExists(context.Background(), bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &MinIOClient{client: client, bucket: bucket}, nil
}

// PutBlobIfAbsent writes data under name unless an object with that
// content address already exists. Returns true when this call stored
// the blob.
func (m *MinIOClient) PutBlobIfAbsent(ctx context.Context, name string, data []byte) (bool, error) {
	_, err := m.client.StatObject(ctx, m.bucket, name, minio.StatObjectOptions{})
	if err == nil {
		return false, nil
	}
	if resp := minio.ToErrorResponse(err); resp.Code != "NoSuchKey" {
		return false, err
	}
	_, err = m.client.PutObject(ctx, m.bucket, name,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: http.DetectContentType(data)})
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetBlob fetches a stored photo by content address.
func (m *MinIOClient) GetBlob(ctx context.Context, name string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(obj); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
