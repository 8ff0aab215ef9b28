package entity

// Stage identifies one step of the upload pipeline.
type Stage string

const (
	StageConnect  Stage = "connect"
	StageBalance  Stage = "balance"
	StageIdentity Stage = "identity"
	StageMedia    Stage = "media"
	StagePublish  Stage = "publish"
	StageComplete Stage = "complete"
)

// Status of a stage event.
type Status string

const (
	StatusStarted   Status = "started"
	StatusProgress  Status = "progress"
	StatusSucceeded Status = "succeeded"
	StatusWarning   Status = "warning"
	StatusFailed    Status = "failed"
)

// Event is one structured progress record emitted by a migration run. The
// run halts after the first failed event.
type Event struct {
	RunID  string `json:"run_id"`
	Stage  Stage  `json:"stage"`
	Status Status `json:"status"`
	Detail string `json:"detail"`
}

// RunReport summarizes a finished run.
type RunReport struct {
	RunID       string `json:"run_id"`
	Owner       string `json:"owner"`
	Handle      string `json:"handle"`
	CharacterID int64  `json:"character_id"`
	Published   int    `json:"published"`
	ProfileURL  string `json:"profile_url"`
}
