package abstraction

import (
	"context"

	"momentchain/internal/application/usecase"
	"momentchain/internal/domain/dto"
	"momentchain/internal/domain/entity"
	"momentchain/internal/domain/model"
)

type Migrator interface {
	Run(ctx context.Context, useLocal bool) (*entity.RunReport, error)
	Start(ctx context.Context, useLocal bool) (string, error)
	Status() dto.RunStatus
	Prepared(useLocal bool, order usecase.Order) ([]model.Moment, model.Account, error)
}
