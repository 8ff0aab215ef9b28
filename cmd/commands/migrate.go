package commands

import (
	"context"
	"errors"

	"github.com/dezh-tech/immortal/pkg/logger"

	"momentchain"
	"momentchain/config"
)

// HandleMigrate runs one headless migration and exits. Local mode is the
// default; --remote publishes the original remote image URLs without
// re-hosting them.
func HandleMigrate(args []string) {
	if len(args) < 3 {
		ExitOnError(errors.New("at least 1 arguments expected\nuse help command for more information"))
	}

	useLocal := true
	for _, arg := range args[3:] {
		switch arg {
		case "--remote":
			useLocal = false
		case "--local":
			useLocal = true
		default:
			ExitOnError(errors.New("unknown flag " + arg))
		}
	}

	cfg, err := config.Load(args[2])
	if err != nil {
		ExitOnError(err)
	}

	logger.InitGlobalLogger(&cfg.Logger)

	logger.Info("running momentchain", "version", momentchain.StringVersion())

	migrator, cleanup, err := buildMigrator(cfg)
	if err != nil {
		ExitOnError(err)
	}
	defer cleanup()

	report, err := migrator.Run(context.Background(), useLocal)
	if err != nil {
		ExitOnError(err)
	}

	logger.Info("migration finished",
		"run_id", report.RunID,
		"character", report.CharacterID,
		"published", report.Published,
		"profile", report.ProfileURL)
}
