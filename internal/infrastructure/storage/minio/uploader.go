package minio

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/minio/minio-go/v7"
)

// Uploader stores blobs content-addressed (sha256 object names) in a bucket
// and returns addresses under the configured public base.
type Uploader struct {
	minioClient *minio.Client
	cfg         UploaderConfig
}

func NewUploader(minioClient *minio.Client, cfg UploaderConfig) *Uploader {
	return &Uploader{
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (u *Uploader) Upload(ctx context.Context, body io.Reader, size int64, _ string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(u.cfg.Timeout)*time.Millisecond)
	defer cancel()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read blob: %w", err)
	}
	if len(data) == 0 {
		return "", errors.New("read error: empty blob")
	}
	if size != -1 && int64(len(data)) != size {
		return "", fmt.Errorf("blob size mismatch: read %d bytes, expected %d", len(data), size)
	}

	sum := sha256.Sum256(data)
	objectName := hex.EncodeToString(sum[:])
	detectedMIME := mimetype.Detect(data).String()

	if _, err := u.minioClient.PutObject(ctx, u.cfg.Bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: detectedMIME}); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return fmt.Sprintf("%s/%s", u.cfg.PublicBase, objectName), nil
}
