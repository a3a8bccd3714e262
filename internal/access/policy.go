// Package access decides what a caller may read and write. It is the one place
// where role assignments are interpreted; services ask it for a read Scope and
// for write decisions instead of branching on roles themselves.
package access

import (
	"github.com/google/uuid"

	"propertyhub/internal/model"
	"propertyhub/pkg/apperror"
)

// Operation names a write that needs a role on a specific property
type Operation string

const (
	OpViewProperty       Operation = "view_property"
	OpUpdateProperty     Operation = "update_property"
	OpManageUnits        Operation = "manage_units"
	OpManageRoles        Operation = "manage_roles"
	OpCreateMaintenance  Operation = "create_maintenance"
	OpUpdateMaintenance  Operation = "update_maintenance"
	OpCreatePayment      Operation = "create_payment"
	OpCreateReceipt      Operation = "create_receipt"
	OpUpdateReceipt      Operation = "update_receipt"
	OpCreateAnnouncement Operation = "create_announcement"
)

var denials = map[Operation]string{
	OpViewProperty:       "Access denied: no active role on this property",
	OpUpdateProperty:     "Access denied: only the landlord or an admin of this property can update it",
	OpManageUnits:        "Access denied: only the landlord or an admin of this property can manage units",
	OpManageRoles:        "Access denied: only the landlord or an admin of this property can manage roles",
	OpCreateMaintenance:  "Access denied: Only tenants can create maintenance requests for their property",
	OpUpdateMaintenance:  "Access denied: Only landlords can update maintenance requests",
	OpCreatePayment:      "Access denied: Only tenants can record payments for their property",
	OpCreateReceipt:      "Access denied: only the landlord or an admin of this property can issue receipts",
	OpUpdateReceipt:      "Access denied: only the landlord or an admin of this property can update receipts",
	OpCreateAnnouncement: "Access denied: Only landlords can create announcements for their property",
}

// Principal is the caller as seen by the policy: its role assignments and the
// properties it owns outright.
type Principal struct {
	UserID           uuid.UUID
	Assignments      []model.RoleAssignment
	OwnedPropertyIDs []uuid.UUID
}

// Owns reports whether the caller is the recorded owner of the property
func (p Principal) Owns(propertyID uuid.UUID) bool {
	for _, id := range p.OwnedPropertyIDs {
		if id == propertyID {
			return true
		}
	}
	return false
}

// HasRole reports an active assignment of one of roles on exactly propertyID
func (p Principal) HasRole(propertyID uuid.UUID, roles ...string) bool {
	for _, a := range p.Assignments {
		if !a.IsActive() || a.PropertyID != propertyID {
			continue
		}
		for _, r := range roles {
			if a.Role == r {
				return true
			}
		}
	}
	return false
}

// PropertiesWithRole returns the distinct properties where the caller holds an active role in roles
func (p Principal) PropertiesWithRole(roles ...string) []uuid.UUID {
	var ids []uuid.UUID
	seen := make(map[uuid.UUID]struct{})
	for _, a := range p.Assignments {
		if !a.IsActive() {
			continue
		}
		for _, r := range roles {
			if a.Role == r {
				if _, ok := seen[a.PropertyID]; !ok {
					seen[a.PropertyID] = struct{}{}
					ids = append(ids, a.PropertyID)
				}
				break
			}
		}
	}
	return ids
}

// TenantProperties is the set of properties where the caller is an active tenant
func (p Principal) TenantProperties() []uuid.UUID {
	return p.PropertiesWithRole(model.RoleTenant)
}

// ManagedProperties is owned ∪ active landlord ∪ active admin
func (p Principal) ManagedProperties() []uuid.UUID {
	ids := p.PropertiesWithRole(model.RoleLandlord, model.RoleAdmin)
	for _, owned := range p.OwnedPropertyIDs {
		if !contains(ids, owned) {
			ids = append(ids, owned)
		}
	}
	return ids
}

// VisibleProperties is every property the caller has any standing on
func (p Principal) VisibleProperties() []uuid.UUID {
	ids := p.PropertiesWithRole(model.RoleTenant, model.RoleLandlord, model.RoleAdmin, model.RoleMaintenance, model.RoleAccountant)
	for _, owned := range p.OwnedPropertyIDs {
		if !contains(ids, owned) {
			ids = append(ids, owned)
		}
	}
	return ids
}

// IsTenant reports an active tenant assignment anywhere
func (p Principal) IsTenant() bool {
	return len(p.TenantProperties()) > 0
}

// IsManager reports ownership or an active landlord/admin assignment anywhere
func (p Principal) IsManager() bool {
	return len(p.ManagedProperties()) > 0
}

// IsLandlordOf is ownership or an active landlord assignment on the property
func (p Principal) IsLandlordOf(propertyID uuid.UUID) bool {
	return p.Owns(propertyID) || p.HasRole(propertyID, model.RoleLandlord)
}

// CanManage is ownership or an active landlord/admin assignment on the property
func (p Principal) CanManage(propertyID uuid.UUID) bool {
	return p.Owns(propertyID) || p.HasRole(propertyID, model.RoleLandlord, model.RoleAdmin)
}

// Allowed answers Authorize without building an error
func (p Principal) Allowed(op Operation, propertyID uuid.UUID) bool {
	switch op {
	case OpCreateMaintenance, OpCreatePayment:
		return p.HasRole(propertyID, model.RoleTenant)
	case OpUpdateMaintenance, OpCreateAnnouncement:
		return p.IsLandlordOf(propertyID)
	case OpCreateReceipt, OpUpdateReceipt, OpUpdateProperty, OpManageUnits, OpManageRoles:
		return p.CanManage(propertyID)
	case OpViewProperty:
		return contains(p.VisibleProperties(), propertyID)
	default:
		return false
	}
}

// Authorize returns nil when op is permitted on propertyID, otherwise a Forbidden error
func (p Principal) Authorize(op Operation, propertyID uuid.UUID) error {
	if p.Allowed(op, propertyID) {
		return nil
	}
	msg, ok := denials[op]
	if !ok {
		msg = "Access denied"
	}
	return apperror.Forbidden(msg)
}

func contains(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
