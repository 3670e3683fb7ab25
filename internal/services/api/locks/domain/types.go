// Package domain defines transport types for the registry lock API
package domain

import "time"

// Action names accepted by the request and verify endpoints
const (
	ActionLock   = "lock"
	ActionUnlock = "unlock"
)

// RequestInput asks for a new lock or unlock request on a domain
type RequestInput struct {
	ClientID                 string `json:"clientId"                 validate:"required"`
	FullyQualifiedDomainName string `json:"fullyQualifiedDomainName" validate:"required,fqdn"`
	Action                   string `json:"action"                   validate:"required,oneof=lock unlock"`

	// PocID identifies the registrar contact requesting the lock;
	// required for lock requests from non-admin callers
	PocID string `json:"pocId,omitempty"`
}

// RequestOutput echoes the issued request
// the verification code is returned to the caller because out-of-band
// delivery is handled by a separate system
type RequestOutput struct {
	FullyQualifiedDomainName string    `json:"fullyQualifiedDomainName"`
	Action                   string    `json:"action"`
	VerificationCode         string    `json:"verificationCode"`
	RequestedAt              time.Time `json:"requestedAt"`
}

// VerifyInput redeems a verification code
type VerifyInput struct {
	VerificationCode string `json:"verificationCode" validate:"required"`
	Action           string `json:"action"           validate:"required,oneof=lock unlock"`
}

// VerifyOutput reports the completed action
type VerifyOutput struct {
	FullyQualifiedDomainName string    `json:"fullyQualifiedDomainName"`
	Action                   string    `json:"action"`
	CompletedAt              time.Time `json:"completedAt"`
}

// Console response shapes for the GET endpoint

// StatusPayload is the top-level console response body
type StatusPayload struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Results []StatusResult `json:"results"`
}

// StatusResult is the per-registrar projection
type StatusResult struct {
	LockEnabledForContact bool       `json:"lockEnabledForContact"`
	Email                 string     `json:"email"`
	ClientID              string     `json:"clientId"`
	Locks                 []LockJSON `json:"locks"`
}

// LockJSON is one locked domain row
type LockJSON struct {
	FullyQualifiedDomainName string `json:"fullyQualifiedDomainName"`
	LockedTime               string `json:"lockedTime"`
	LockedBy                 string `json:"lockedBy"`
	UserCanUnlock            bool   `json:"userCanUnlock"`
}
