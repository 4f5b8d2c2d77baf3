package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"streammusic/config"
	"streammusic/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const objectPrefix = "audio/"

// Mirror copies uploaded audio into a MinIO bucket. The local directory
// stays the source of truth for streaming.
type Mirror struct {
	client *minio.Client
	bucket string
	region string
}

// NewMirror connects to MinIO and makes sure the bucket exists.
func NewMirror(ctx context.Context, cfg *config.Config) (*Mirror, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	m := &Mirror{client: client, bucket: cfg.MinioBucket, region: cfg.MinioRegion}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, m.bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", m.bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: m.region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", m.bucket, err)
		}
		logger.Info("created bucket", logger.String("bucket", m.bucket))
	}
	return m, nil
}

// ObjectName maps a stored file name onto its object key.
func ObjectName(name string) string {
	return objectPrefix + filepath.Base(name)
}

// Put uploads the file at path under the object key for name.
func (m *Mirror) Put(ctx context.Context, name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}

	_, err = m.client.PutObject(ctx, m.bucket, ObjectName(name), f, info.Size(), minio.PutObjectOptions{
		ContentType: ContentType(name),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", ObjectName(name), err)
	}
	return nil
}

func (m *Mirror) Remove(ctx context.Context, name string) error {
	err := m.client.RemoveObject(ctx, m.bucket, ObjectName(name), minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("remove %s: %w", ObjectName(name), err)
	}
	return nil
}

// SyncResult counts what Sync did.
type SyncResult struct {
	Uploaded int
	Skipped  int
	Failed   int
}

// Sync uploads every local file whose object is missing or differs in size.
func (m *Mirror) Sync(ctx context.Context, local *Local) (SyncResult, error) {
	var res SyncResult

	remote := make(map[string]int64)
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Prefix: objectPrefix, Recursive: true}) {
		if obj.Err != nil {
			return res, fmt.Errorf("list objects: %w", obj.Err)
		}
		remote[obj.Key] = obj.Size
	}

	names, err := local.List()
	if err != nil {
		return res, err
	}
	for _, name := range names {
		info, err := os.Stat(local.Path(name))
		if err != nil {
			res.Failed++
			continue
		}
		if size, ok := remote[ObjectName(name)]; ok && size == info.Size() {
			res.Skipped++
			continue
		}
		if err := m.Put(ctx, name, local.Path(name)); err != nil {
			logger.Warn("mirror upload failed", logger.String("file", name), logger.ErrorField(err))
			res.Failed++
			continue
		}
		res.Uploaded++
	}
	return res, nil
}

// ContentType guesses the MIME type of an audio file from its extension.
func ContentType(name string) string {
	switch filepath.Ext(name) {
	case ".mp3":
		return "audio/mpeg"
	case ".m4a":
		return "audio/mp4"
	case ".flac":
		return "audio/flac"
	case ".ogg":
		return "audio/ogg"
	case ".wav":
		return "audio/wav"
	}
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}
