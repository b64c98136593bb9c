package server

import (
	"time"
)

// Build is one recorded run, successful or not.
type Build struct {
	ID        uint64    `json:"id"`
	Status    string    `gorm:"not_null" json:"status"`
	ExitCode  int       `json:"exitCode"`
	FileCount int       `json:"fileCount"`
	OutDir    string    `json:"outDir,omitempty"`
	Error     string    `json:"error,omitempty"`
	Duration  int64     `json:"duration"`
	StartedAt time.Time `json:"startedAt"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)
