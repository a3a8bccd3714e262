package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"propertyhub/internal/access"
)

// scopeColumns tells applyScope how a table references tenants, properties and
// the caller. Tenant is empty for tables without a tenant party.
type scopeColumns struct {
	Tenant   string
	Property string
	Direct   []string
}

// ListFilter is shared by the property-scoped collections
type ListFilter struct {
	Scope      access.Scope
	PropertyID *uuid.UUID
	TenantID   *uuid.UUID
	Status     string
	Limit      int
	Offset     int
}

func applyScope(db *gorm.DB, s access.Scope, cols scopeColumns) *gorm.DB {
	switch s.Mode {
	case access.ModeTenant:
		if cols.Tenant != "" {
			return db.Where(cols.Tenant+" = ?", s.UserID)
		}
		if len(s.PropertyIDs) == 0 {
			return db.Where("1 = 0")
		}
		return db.Where(cols.Property+" IN ?", s.PropertyIDs)
	case access.ModeProperties:
		if len(s.PropertyIDs) == 0 {
			return db.Where("1 = 0")
		}
		return db.Where(cols.Property+" IN ?", s.PropertyIDs)
	default:
		if len(cols.Direct) == 0 {
			return db.Where("1 = 0")
		}
		cond := db.Session(&gorm.Session{NewDB: true}).Where(cols.Direct[0]+" = ?", s.UserID)
		for _, col := range cols.Direct[1:] {
			cond = cond.Or(col+" = ?", s.UserID)
		}
		return db.Where(cond)
	}
}

func applyFilter(db *gorm.DB, f ListFilter, cols scopeColumns) *gorm.DB {
	db = applyScope(db, f.Scope, cols)
	if f.PropertyID != nil {
		db = db.Where(cols.Property+" = ?", *f.PropertyID)
	}
	if f.TenantID != nil && cols.Tenant != "" {
		db = db.Where(cols.Tenant+" = ?", *f.TenantID)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.Offset > 0 {
		db = db.Offset(f.Offset)
	}
	if f.Limit > 0 {
		db = db.Limit(f.Limit)
	}
	return db
}
