// Package domain defines the core types and interfaces for the billing service
package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Reason classifies a one-time billing event
type Reason string

// ReasonServerStatus bills a server-side status change (lock or unlock)
const ReasonServerStatus Reason = "SERVER_STATUS"

// Event is one one-time charge against a registrar
type Event struct {
	ID       string
	Reason   Reason
	TargetID string // fully qualified domain name at event time
	ClientID string
	Cost     decimal.Decimal
	Currency string

	// HistoryID links the charge to the audit entry that caused it
	HistoryID string

	EventTime   time.Time
	BillingTime time.Time
}

// Writer appends billing events; admin actions never produce one
type Writer interface {
	Append(ctx context.Context, e Event) (Event, error)
}
