// Package domain defines the core types and interfaces for the domains service
package domain

import (
	"sort"
	"time"
)

// Domain is the authoritative record of a registered domain name
// Statuses is the authoritative set of EPP status flags; lock state shown to
// users is always derived from these flags, never from the lock ledger alone
type Domain struct {
	RepoID           string
	FQDN             string
	TLD              string
	CurrentSponsorID string
	Statuses         []string
	CreationTime     time.Time
	DeletionTime     *time.Time
}

// HasAllStatuses reports whether every status in want is present
func (d Domain) HasAllStatuses(want []string) bool {
	set := statusSet(d.Statuses)
	for _, s := range want {
		if !set[s] {
			return false
		}
	}
	return true
}

// HasAnyStatus reports whether at least one status in want is present
func (d Domain) HasAnyStatus(want []string) bool {
	set := statusSet(d.Statuses)
	for _, s := range want {
		if set[s] {
			return true
		}
	}
	return false
}

// WithStatuses returns a copy of d carrying the union of its statuses and add
// union is idempotent so re-applying the same flags is a no-op
func (d Domain) WithStatuses(add []string) Domain {
	set := statusSet(d.Statuses)
	for _, s := range add {
		set[s] = true
	}
	d.Statuses = sortedKeys(set)
	return d
}

// WithoutStatuses returns a copy of d with remove taken out of its statuses
func (d Domain) WithoutStatuses(remove []string) Domain {
	set := statusSet(d.Statuses)
	for _, s := range remove {
		delete(set, s)
	}
	d.Statuses = sortedKeys(set)
	return d
}

func statusSet(in []string) map[string]bool {
	set := make(map[string]bool, len(in))
	for _, s := range in {
		set[s] = true
	}
	return set
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
