package dto

import "momentchain/internal/domain/entity"

// MigrateRequest is the POST /migrate body.
type MigrateRequest struct {
	UseLocal bool `json:"use_local"`
}

// MigrateResponse acknowledges an accepted run.
type MigrateResponse struct {
	RunID string `json:"run_id"`
}

// RunStatus is the GET /status body: the session's progress log plus the
// final report once the run finished.
type RunStatus struct {
	Running bool              `json:"running"`
	Events  []entity.Event    `json:"events"`
	Report  *entity.RunReport `json:"report,omitempty"`
}
