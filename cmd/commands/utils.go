package commands

import (
	"fmt"
	"os"

	"github.com/dezh-tech/immortal/pkg/logger"

	"momentchain/config"
	"momentchain/internal/application/usecase"
	"momentchain/internal/infrastructure/broker"
	"momentchain/internal/infrastructure/ledger"
	"momentchain/internal/infrastructure/source"
	"momentchain/internal/infrastructure/storage/ipfs"
	"momentchain/internal/infrastructure/storage/minio"
	"momentchain/internal/infrastructure/wallet"

	brokerRepo "momentchain/internal/domain/repository/broker"
	storageRepo "momentchain/internal/domain/repository/storage"
	walletRepo "momentchain/internal/domain/repository/wallet"
)

func ExitOnError(err error) {
	logger.Error("momentchain error", "err", err.Error())
	os.Exit(1)
}

func HandleHelp(_ []string) {
	fmt.Println(`momentchain - publish an exported moments timeline to the chain

usage:
  momentchain run <config.yml>                serve the browser workflow
  momentchain migrate <config.yml> [--remote] run one headless migration
  momentchain version                         print the version
  momentchain help                            this text`)
}

// buildMigrator wires the pipeline from config. A missing wallet bridge or
// storage backend leaves the corresponding collaborator nil; the pipeline
// reports those as precondition failures instead of crashing here.
func buildMigrator(cfg *config.Config) (*usecase.Migrator, func(), error) {
	cleanup := func() {}

	var uploader storageRepo.Uploader
	switch cfg.Storage.Backend {
	case config.StorageBackendIPFS:
		uploader = ipfs.NewUploader(cfg.Storage.IPFS)

	case config.StorageBackendMinIO:
		minioClient, err := minio.New(cfg.Storage.MinIOClient)
		if err != nil {
			return nil, cleanup, err
		}
		uploader = minio.NewUploader(minioClient, cfg.Storage.MinIOUploader)
	}

	var publisher brokerRepo.Publisher
	if cfg.Broker.Enabled {
		brokerClient, err := broker.NewClient(cfg.Broker.Client)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = func() { _ = brokerClient.Close() }
		publisher = broker.NewPublisher(brokerClient, cfg.Broker.Publisher)
	}

	// A typed nil must not leak into the interface: the pipeline's "no
	// wallet" check compares against a nil interface.
	var bridge walletRepo.Bridge
	if b := wallet.New(cfg.WalletBridge); b != nil {
		bridge = b
	}

	src := source.New(cfg.Source)
	migrator := usecase.NewMigrator(
		bridge,
		ledger.New(cfg.Ledger),
		uploader,
		publisher,
		src,
		usecase.NewPreparer(src.Exclusions()),
		usecase.MigratorOptions{
			Network:     cfg.Network,
			AssetDir:    cfg.Source.AssetDir,
			ProfileBase: cfg.Migration.ProfileBase,
			FaucetURL:   cfg.Migration.FaucetURL,
			SupportURL:  cfg.Migration.SupportURL,
		},
	)

	return migrator, cleanup, nil
}
