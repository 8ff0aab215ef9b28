package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/dezh-tech/immortal/pkg/logger"
	"github.com/labstack/echo/v4"

	"momentchain/internal/application/usecase"
	"momentchain/internal/application/usecase/abstraction"
	"momentchain/internal/domain/dto"
)

type MigrateHandler struct {
	migrator abstraction.Migrator
}

func NewMigrateHandler(migrator abstraction.Migrator) *MigrateHandler {
	return &MigrateHandler{migrator: migrator}
}

// Handle starts a migration run in the background and returns immediately;
// progress is polled via /status. A run already in flight yields 409.
func (h *MigrateHandler) Handle(c echo.Context) error {
	req := dto.MigrateRequest{UseLocal: true}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "malformed request body",
		})
	}

	runID, err := h.migrator.Start(context.Background(), req.UseLocal)
	if err != nil {
		if errors.Is(err, usecase.ErrRunInProgress) {
			return c.JSON(http.StatusConflict, map[string]string{
				"error": "a migration run is already in progress",
			})
		}
		logger.Error("failed to start migration run", "err", err)

		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to start migration run",
		})
	}

	return c.JSON(http.StatusAccepted, dto.MigrateResponse{RunID: runID})
}
