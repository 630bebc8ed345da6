package domain

import "time"

// InsightRun records one generated narrative summary.
type InsightRun struct {
	ID           string
	Provider     string
	Model        string
	LogCount     int
	InputTokens  int
	OutputTokens int
	Summary      string
	CreatedAt    time.Time
}
