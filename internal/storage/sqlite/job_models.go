package sqlite

import "time"

// Job statuses
const (
	StatusQueued  = "queued"
	StatusRunning = "running"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// JobRecord represents one asynchronous minutes job
type JobRecord struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Status     string    `json:"status"`
	Progress   float64   `json:"progress"`
	Message    string    `json:"message"`
	Transcript string    `json:"transcript,omitempty"`
	Minutes    string    `json:"minutes,omitempty"`
	Documents  []string  `json:"documents"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
