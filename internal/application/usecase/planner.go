package usecase

import (
	"encoding/json"
	"fmt"

	"momentchain/internal/domain/entity"
	"momentchain/internal/domain/model"
	"momentchain/pkg/utils"
)

const (
	// maxBatchPayloadBytes is the protocol limit on one publish call.
	maxBatchPayloadBytes = 128_000

	// sizeSafetyFactor covers encoding expansion a naive JSON length does
	// not see (metadata URIs, escaping, calldata overhead).
	sizeSafetyFactor = 3

	// Gas units observed per publish call and for one character creation,
	// in gwei.
	noteBatchGasGwei = 11_540_011
	characterGasGwei = 315_103
)

// PlanBatches derives how many publish calls the note list needs and how
// many notes each call carries. Pure and deterministic; must be recomputed
// whenever the note set or local/remote mode changes.
func PlanBatches(notes []model.Note) (entity.BatchPlan, error) {
	raw, err := json.Marshal(notes)
	if err != nil {
		return entity.BatchPlan{}, fmt.Errorf("estimate payload size: %w", err)
	}

	size := len(raw) * sizeSafetyFactor
	count := (size + maxBatchPayloadBytes - 1) / maxBatchPayloadBytes
	if count < 1 {
		count = 1
	}

	batchSize := (len(notes) + count - 1) / count
	if batchSize < 1 {
		batchSize = 1
	}

	// Re-derive the count from the final batch size so no trailing batch
	// comes out empty when a few oversized notes inflate the estimate.
	count = (len(notes) + batchSize - 1) / batchSize
	if count < 1 {
		count = 1
	}

	return entity.BatchPlan{Count: count, Size: batchSize}, nil
}

// EstimateFee budgets the run: one character creation plus one transaction
// per batch, in wei.
func EstimateFee(plan entity.BatchPlan) entity.FeeEstimate {
	gwei := int64(plan.Count)*noteBatchGasGwei + characterGasGwei

	return entity.FeeEstimate{Wei: utils.GweiToWei(gwei)}
}
