// Package domain defines the core types and interfaces for the registrars service
package domain

// Registrar is the owning party on whose behalf domains are locked
type Registrar struct {
	ClientID string
	Email    string

	// RegistryLockAllowed is the registrar-level opt-in for the lock workflow
	RegistryLockAllowed bool

	Contacts []Contact
}

// Contact is a registered point of contact for a registrar
// each contact is individually permitted (or not) to use registry lock
type Contact struct {
	EmailAddress        string
	Name                string
	RegistryLockAllowed bool
}

// ContactByEmail returns the contact with the given email, if any
func (r Registrar) ContactByEmail(email string) (Contact, bool) {
	for _, c := range r.Contacts {
		if c.EmailAddress == email {
			return c, true
		}
	}
	return Contact{}, false
}
