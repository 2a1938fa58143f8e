package domain

import "time"

// CapabilitySuperAdmin is the reserved policy key that bypasses all other
// capability checks.
const CapabilitySuperAdmin = "superAdmin"

// Named capabilities gating member-facing surfaces. New surfaces add keys
// here; existing policy documents simply lack them until granted.
const (
	CapabilityEvents    = "events"
	CapabilityScoring   = "scoring"
	CapabilityGallery   = "gallery"
	CapabilityCommunity = "community"
)

// PolicyDoc maps capability names to booleans. New capabilities are added by
// new keys; no schema migration required.
type PolicyDoc map[string]bool

// IsSuperAdmin reports whether the document carries the superadmin override.
func (p PolicyDoc) IsSuperAdmin() bool {
	return p[CapabilitySuperAdmin]
}

// Allows reports whether the named capability is granted, honoring the
// superadmin override first.
func (p PolicyDoc) Allows(name string) bool {
	if p.IsSuperAdmin() {
		return true
	}
	return p[name]
}

// Admin associates a member with a policy document. Absence of an admin row
// means no capabilities at all.
type Admin struct {
	ID        string
	MemberID  string
	Policy    PolicyDoc
	CreatedAt time.Time
	UpdatedAt time.Time
}
