// Package domain defines the core types and interfaces for the tlds service
package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// TLD is the registry configuration for a top level domain
type TLD struct {
	TLD                    string
	Currency               string
	ServerStatusChangeCost decimal.Decimal
}

// Repo abstracts TLD configuration storage
type Repo interface {
	// Get loads the configuration for a TLD
	Get(ctx context.Context, tld string) (TLD, error)
}
