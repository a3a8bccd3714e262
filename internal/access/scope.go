package access

import "github.com/google/uuid"

// Mode selects how a read is filtered
type Mode int

const (
	// ModeDirect keeps only rows that reference the caller directly.
	// Used when the caller is both tenant and manager, or neither.
	ModeDirect Mode = iota
	// ModeTenant keeps rows where the caller is the tenant party, or for
	// collections without a tenant column, rows on the caller's tenant properties.
	ModeTenant
	// ModeProperties keeps rows on properties the caller owns or administers.
	ModeProperties
)

func (m Mode) String() string {
	switch m {
	case ModeTenant:
		return "tenant"
	case ModeProperties:
		return "landlord"
	default:
		return "member"
	}
}

// Scope is the visibility filter handed to repositories
type Scope struct {
	Mode        Mode
	UserID      uuid.UUID
	PropertyIDs []uuid.UUID
}

// Visibility derives the read scope for the caller
func (p Principal) Visibility() Scope {
	tenant := p.IsTenant()
	manager := p.IsManager()

	switch {
	case tenant && !manager:
		return Scope{Mode: ModeTenant, UserID: p.UserID, PropertyIDs: p.TenantProperties()}
	case manager && !tenant:
		return Scope{Mode: ModeProperties, UserID: p.UserID, PropertyIDs: p.ManagedProperties()}
	default:
		return Scope{Mode: ModeDirect, UserID: p.UserID}
	}
}

// Empty reports a property-filtered scope with nothing to match, so the query can be skipped
func (s Scope) Empty() bool {
	return s.Mode == ModeProperties && len(s.PropertyIDs) == 0
}
