package entity

import "math/big"

// BatchPlan is the derived publishing plan: how many publish calls to make
// and how many notes go into each. Both values are at least 1 for any
// non-empty note list.
type BatchPlan struct {
	Count int `json:"count"`
	Size  int `json:"size"`
}

// FeeEstimate is the transaction budget for one full run, in wei.
type FeeEstimate struct {
	Wei *big.Int `json:"wei"`
}

// Covers reports whether the given balance (wei) is enough for the run.
func (f FeeEstimate) Covers(balance *big.Int) bool {
	return balance.Cmp(f.Wei) >= 0
}
