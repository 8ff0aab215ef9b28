package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"momentchain/internal/application/usecase/abstraction"
)

type StatusHandler struct {
	migrator abstraction.Migrator
}

func NewStatusHandler(migrator abstraction.Migrator) *StatusHandler {
	return &StatusHandler{migrator: migrator}
}

// Handle returns the current (or last) run's progress log and final report.
func (h *StatusHandler) Handle(c echo.Context) error {
	return c.JSON(http.StatusOK, h.migrator.Status())
}
