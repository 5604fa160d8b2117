package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunSummary is the archived outcome of one pipeline invocation.
type RunSummary struct {
	RunID        string
	StartedAt    time.Time
	FinishedAt   time.Time
	State        string
	RecordCount  int
	AveragePrice decimal.NullDecimal
	Error        string
}
