package handler

import (
	"net/http"

	"github.com/dezh-tech/immortal/pkg/logger"
	"github.com/labstack/echo/v4"

	"momentchain/internal/application/usecase"
	"momentchain/internal/application/usecase/abstraction"
	"momentchain/internal/domain/model"
)

type MomentsHandler struct {
	migrator abstraction.Migrator
}

func NewMomentsHandler(migrator abstraction.Migrator) *MomentsHandler {
	return &MomentsHandler{migrator: migrator}
}

type momentsResponse struct {
	Moments []model.Moment `json:"moments"`
	Account model.Account  `json:"account"`
}

// Handle returns the normalized export for display. Display order defaults
// to newest first; the publish order is unaffected.
func (h *MomentsHandler) Handle(c echo.Context) error {
	order := usecase.OrderDesc
	if c.QueryParam("order") == string(usecase.OrderAsc) {
		order = usecase.OrderAsc
	}
	useLocal := c.QueryParam("local") != "0"

	moments, account, err := h.migrator.Prepared(useLocal, order)
	if err != nil {
		logger.Error("failed to prepare moments", "err", err)

		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to load the moments export",
		})
	}

	return c.JSON(http.StatusOK, momentsResponse{Moments: moments, Account: account})
}
