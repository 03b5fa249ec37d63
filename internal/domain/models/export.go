package models

import "time"

type ExportStatus string

const (
	ExportPending ExportStatus = "pending"
	ExportDone    ExportStatus = "done"
	ExportFailed  ExportStatus = "failed"
)

// ExportJob is an account data export requested from settings.
type ExportJob struct {
	ID          string       `json:"id"`
	Client      string       `json:"client"`
	Status      ExportStatus `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
	Error       string       `json:"error,omitempty"`
	Payload     *User        `json:"payload,omitempty"`
}
