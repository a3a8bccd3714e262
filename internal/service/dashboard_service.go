package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"propertyhub/internal/access"
	"propertyhub/internal/model"
	"propertyhub/internal/repository"
	"propertyhub/pkg/apperror"
)

const (
	dashboardMaintenanceLimit  = 10
	dashboardPaymentLimit      = 10
	dashboardReceiptLimit      = 10
	dashboardAnnouncementLimit = 5
)

type PropertySummary struct {
	model.Property
	UnitCount int64 `json:"unit_count"`
}

// DashboardResponse is the aggregate home view. View is landlord, tenant or member
// and follows the same visibility rules as the individual collections.
type DashboardResponse struct {
	View          string                     `json:"view"`
	Properties    []PropertySummary          `json:"properties"`
	Tenancies     []model.RoleAssignment     `json:"tenancies,omitempty"`
	Maintenance   []model.MaintenanceRequest `json:"maintenance_requests"`
	Payments      []model.Payment            `json:"payments"`
	Receipts      []model.Receipt            `json:"receipts"`
	Announcements []model.Announcement       `json:"announcements"`
}

type DashboardService interface {
	Get(ctx context.Context, userID uuid.UUID, propertyID *uuid.UUID) (*DashboardResponse, error)
}

type dashboardService struct {
	propertyRepo     repository.PropertyRepository
	maintenanceRepo  repository.MaintenanceRepository
	paymentRepo      repository.PaymentRepository
	receiptRepo      repository.ReceiptRepository
	announcementRepo repository.AnnouncementRepository
	access           AccessService
	recorder         *Recorder
}

func NewDashboardService(
	propertyRepo repository.PropertyRepository,
	maintenanceRepo repository.MaintenanceRepository,
	paymentRepo repository.PaymentRepository,
	receiptRepo repository.ReceiptRepository,
	announcementRepo repository.AnnouncementRepository,
	accessService AccessService,
	recorder *Recorder,
) DashboardService {
	return &dashboardService{
		propertyRepo:     propertyRepo,
		maintenanceRepo:  maintenanceRepo,
		paymentRepo:      paymentRepo,
		receiptRepo:      receiptRepo,
		announcementRepo: announcementRepo,
		access:           accessService,
		recorder:         recorder,
	}
}

func (s *dashboardService) Get(ctx context.Context, userID uuid.UUID, propertyID *uuid.UUID) (*DashboardResponse, error) {
	principal, err := s.access.Principal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if propertyID != nil {
		if err := principal.Authorize(access.OpViewProperty, *propertyID); err != nil {
			return nil, err
		}
	}

	scope := principal.Visibility()
	res := &DashboardResponse{
		View:          scope.Mode.String(),
		Properties:    []PropertySummary{},
		Maintenance:   []model.MaintenanceRequest{},
		Payments:      []model.Payment{},
		Receipts:      []model.Receipt{},
		Announcements: []model.Announcement{},
	}
	if scope.Mode == access.ModeTenant {
		res.Tenancies = activeTenancies(principal, propertyID)
	}

	if !scope.Empty() {
		if err := s.load(ctx, scope, propertyID, res); err != nil {
			return nil, apperror.Store(err)
		}
	}

	s.recorder.Activity(ctx, userID, propertyID, model.ActionView, model.EntityDashboard,
		"Viewed "+res.View+" dashboard")
	return res, nil
}

// load fetches every collection concurrently; each goroutine owns one field of res
func (s *dashboardService) load(ctx context.Context, scope access.Scope, propertyID *uuid.UUID, res *DashboardResponse) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		properties, err := s.propertyRepo.List(gctx, scope, propertyID)
		if err != nil {
			return err
		}
		ids := make([]uuid.UUID, 0, len(properties))
		for _, p := range properties {
			ids = append(ids, p.ID)
		}
		counts, err := s.propertyRepo.CountUnits(gctx, ids)
		if err != nil {
			return err
		}
		for _, p := range properties {
			res.Properties = append(res.Properties, PropertySummary{Property: p, UnitCount: counts[p.ID]})
		}
		return nil
	})
	g.Go(func() error {
		rows, err := s.maintenanceRepo.List(gctx, repository.ListFilter{Scope: scope, PropertyID: propertyID, Limit: dashboardMaintenanceLimit})
		if err == nil {
			res.Maintenance = rows
		}
		return err
	})
	g.Go(func() error {
		rows, err := s.paymentRepo.List(gctx, repository.ListFilter{Scope: scope, PropertyID: propertyID, Limit: dashboardPaymentLimit})
		if err == nil {
			res.Payments = rows
		}
		return err
	})
	g.Go(func() error {
		rows, err := s.receiptRepo.List(gctx, repository.ListFilter{Scope: scope, PropertyID: propertyID, Limit: dashboardReceiptLimit})
		if err == nil {
			res.Receipts = rows
		}
		return err
	})
	g.Go(func() error {
		rows, err := s.announcementRepo.List(gctx, repository.ListFilter{Scope: scope, PropertyID: propertyID, Limit: dashboardAnnouncementLimit})
		if err == nil {
			res.Announcements = rows
		}
		return err
	})

	return g.Wait()
}

func activeTenancies(p access.Principal, propertyID *uuid.UUID) []model.RoleAssignment {
	out := []model.RoleAssignment{}
	for _, a := range p.Assignments {
		if !a.IsActive() || a.Role != model.RoleTenant {
			continue
		}
		if propertyID != nil && a.PropertyID != *propertyID {
			continue
		}
		out = append(out, a)
	}
	return out
}
