package minio

import (
	"github.com/dezh-tech/immortal/pkg/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type ClientConfig struct {
	AccessKey string
	SecretKey string
	Endpoint  string `yaml:"endpoint"`
}

type UploaderConfig struct {
	Timeout int64  `yaml:"timeout_in_ms"`
	Bucket  string `yaml:"bucket"`

	// PublicBase is the externally reachable prefix objects are addressed
	// under (a gateway in front of the bucket).
	PublicBase string `yaml:"public_base"`
}

// New connects to an S3-compatible endpoint used as the durable storage
// backend when no IPFS node is available.
func New(cfg ClientConfig) (*minio.Client, error) {
	logger.Info("connecting to minio", "endpoint", cfg.Endpoint)

	return minio.New(cfg.Endpoint, &minio.Options{
		Creds:           credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:          false,
		TrailingHeaders: true,
	})
}
