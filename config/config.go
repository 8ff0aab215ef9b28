package config

import (
	"errors"
	"os"

	"github.com/dezh-tech/immortal/pkg/logger"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	walletRepo "momentchain/internal/domain/repository/wallet"
	"momentchain/internal/infrastructure/broker"
	"momentchain/internal/infrastructure/ledger"
	"momentchain/internal/infrastructure/source"
	"momentchain/internal/infrastructure/storage/ipfs"
	"momentchain/internal/infrastructure/storage/minio"
	"momentchain/internal/infrastructure/wallet"
)

// Storage backends for local-asset re-hosting.
const (
	StorageBackendIPFS  = "ipfs"
	StorageBackendMinIO = "minio"
)

type StorageConfig struct {
	Backend       string               `yaml:"backend"`
	IPFS          ipfs.Config          `yaml:"ipfs"`
	MinIOClient   minio.ClientConfig   `yaml:"minio_client"`
	MinIOUploader minio.UploaderConfig `yaml:"minio_uploader"`
}

type BrokerConfig struct {
	Enabled   bool                   `yaml:"enabled"`
	Client    broker.Config          `yaml:"client"`
	Publisher broker.PublisherConfig `yaml:"publisher"`
}

type MigrationConfig struct {
	ProfileBase string `yaml:"profile_base"`
	FaucetURL   string `yaml:"faucet_url"`
	SupportURL  string `yaml:"support_url"`
}

type ServerConfig struct {
	Address string `yaml:"address"`
}

// Config represents the configs used by services on system.
type Config struct {
	Environment  string             `yaml:"environment"`
	Source       source.Config      `yaml:"source"`
	Network      walletRepo.Network `yaml:"network"`
	WalletBridge wallet.Config      `yaml:"wallet_bridge"`
	Ledger       ledger.Config      `yaml:"ledger"`
	Storage      StorageConfig      `yaml:"storage"`
	Broker       BrokerConfig       `yaml:"broker"`
	Migration    MigrationConfig    `yaml:"migration"`
	Server       ServerConfig       `yaml:"server"`
	Logger       logger.Config      `yaml:"logger"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}
	defer file.Close()

	config := &Config{}

	decoder := yaml.NewDecoder(file)

	if err := decoder.Decode(config); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	if config.Environment != "prod" {
		if err := godotenv.Load(); err != nil {
			return nil, Error{
				reason: err.Error(),
			}
		}
	}

	config.Storage.MinIOClient.AccessKey = os.Getenv("MINIO_ROOT_USER")
	config.Storage.MinIOClient.SecretKey = os.Getenv("MINIO_ROOT_PASSWORD")
	config.Broker.Client.URI = os.Getenv("BROKER_URI")
	config.Ledger.Token = os.Getenv("LEDGER_TOKEN")

	if err := config.basicCheck(); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	return config, nil
}

// basicCheck validates the basic stuff in config.
func (c *Config) basicCheck() error {
	if c.Source.Path == "" {
		return errors.New("source.path is required")
	}
	if c.Network.ChainID <= 0 {
		return errors.New("network.chain_id is required")
	}
	if c.Ledger.URL == "" {
		return errors.New("ledger.url is required")
	}
	switch c.Storage.Backend {
	case "", StorageBackendIPFS, StorageBackendMinIO:
	default:
		return errors.New("storage.backend must be ipfs or minio")
	}

	return nil
}
