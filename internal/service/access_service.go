package service

import (
	"context"

	"github.com/google/uuid"

	"propertyhub/internal/access"
	"propertyhub/internal/model"
	"propertyhub/internal/repository"
	"propertyhub/pkg/apperror"
)

// AccessService loads the caller's standing so services can ask the policy
type AccessService interface {
	Principal(ctx context.Context, userID uuid.UUID) (access.Principal, error)
	// Landlords returns the owner and the active landlords of the property
	Landlords(ctx context.Context, property *model.Property) ([]uuid.UUID, error)
	Tenants(ctx context.Context, propertyID uuid.UUID) ([]uuid.UUID, error)
}

type accessService struct {
	roleRepo     repository.RoleRepository
	propertyRepo repository.PropertyRepository
}

func NewAccessService(roleRepo repository.RoleRepository, propertyRepo repository.PropertyRepository) AccessService {
	return &accessService{roleRepo: roleRepo, propertyRepo: propertyRepo}
}

func (s *accessService) Principal(ctx context.Context, userID uuid.UUID) (access.Principal, error) {
	assignments, err := s.roleRepo.ListByUser(ctx, userID)
	if err != nil {
		return access.Principal{}, apperror.Store(err)
	}
	owned, err := s.propertyRepo.OwnedIDs(ctx, userID)
	if err != nil {
		return access.Principal{}, apperror.Store(err)
	}
	return access.Principal{UserID: userID, Assignments: assignments, OwnedPropertyIDs: owned}, nil
}

func (s *accessService) Landlords(ctx context.Context, property *model.Property) ([]uuid.UUID, error) {
	ids, err := s.roleRepo.ActiveUserIDs(ctx, property.ID, model.RoleLandlord)
	if err != nil {
		return nil, apperror.Store(err)
	}
	for _, id := range ids {
		if id == property.OwnerID {
			return ids, nil
		}
	}
	return append([]uuid.UUID{property.OwnerID}, ids...), nil
}

func (s *accessService) Tenants(ctx context.Context, propertyID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := s.roleRepo.ActiveUserIDs(ctx, propertyID, model.RoleTenant)
	if err != nil {
		return nil, apperror.Store(err)
	}
	return ids, nil
}

// findProperty maps a missing row to 404 and anything else to a store error
func findProperty(ctx context.Context, repo repository.PropertyRepository, id uuid.UUID) (*model.Property, error) {
	p, err := repo.FindByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NotFound("Property not found")
		}
		return nil, apperror.Store(err)
	}
	return p, nil
}

// parseID turns a validated uuid string into a uuid; binding has already checked the format
func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.Validation(field + " must be a valid UUID")
	}
	return id, nil
}
