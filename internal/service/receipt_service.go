package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"propertyhub/internal/access"
	"propertyhub/internal/model"
	"propertyhub/internal/repository"
	"propertyhub/pkg/apperror"
)

// --- DTOs ---

type CreateReceiptRequest struct {
	TenantID      string           `json:"tenant_id" binding:"required,uuid"`
	PropertyID    string           `json:"property_id" binding:"required,uuid"`
	Amount        *decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Period        string           `json:"period" binding:"required,max=50"`
	ReceiptPDFURL string           `json:"receipt_pdf_url" binding:"omitempty,url"`
	Status        string           `json:"status" binding:"omitempty,max=20"`
}

type UpdateReceiptRequest struct {
	ID            string  `json:"id" binding:"required,uuid"`
	Status        *string `json:"status" binding:"omitempty,min=1,max=20"`
	ReceiptPDFURL *string `json:"receipt_pdf_url" binding:"omitempty,url"`
}

type ReceiptFilter struct {
	PropertyID *uuid.UUID
	TenantID   *uuid.UUID
}

// --- Interface ---

type ReceiptService interface {
	List(ctx context.Context, userID uuid.UUID, f ReceiptFilter) ([]model.Receipt, error)
	Create(ctx context.Context, userID uuid.UUID, req CreateReceiptRequest) (*model.Receipt, error)
	Update(ctx context.Context, userID uuid.UUID, req UpdateReceiptRequest) (*model.Receipt, error)
}

type receiptService struct {
	receiptRepo  repository.ReceiptRepository
	propertyRepo repository.PropertyRepository
	roleRepo     repository.RoleRepository
	txManager    repository.TransactionManager
	access       AccessService
	recorder     *Recorder
	now          func() time.Time
}

func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	propertyRepo repository.PropertyRepository,
	roleRepo repository.RoleRepository,
	txManager repository.TransactionManager,
	accessService AccessService,
	recorder *Recorder,
) ReceiptService {
	return &receiptService{
		receiptRepo:  receiptRepo,
		propertyRepo: propertyRepo,
		roleRepo:     roleRepo,
		txManager:    txManager,
		access:       accessService,
		recorder:     recorder,
		now:          time.Now,
	}
}

func (s *receiptService) List(ctx context.Context, userID uuid.UUID, f ReceiptFilter) ([]model.Receipt, error) {
	principal, err := s.access.Principal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if f.PropertyID != nil {
		if err := principal.Authorize(access.OpViewProperty, *f.PropertyID); err != nil {
			return nil, err
		}
	}

	receipts := []model.Receipt{}
	scope := principal.Visibility()
	if !scope.Empty() {
		receipts, err = s.receiptRepo.List(ctx, repository.ListFilter{
			Scope:      scope,
			PropertyID: f.PropertyID,
			TenantID:   f.TenantID,
		})
		if err != nil {
			return nil, apperror.Store(err)
		}
	}

	s.recorder.Activity(ctx, userID, f.PropertyID, model.ActionView, model.EntityReceipts,
		fmt.Sprintf("Viewed %d receipts", len(receipts)))
	return receipts, nil
}

// Create issues a receipt numbered from the property's counter. The counter bump and
// the insert share a transaction, so a failed insert does not burn a serial.
func (s *receiptService) Create(ctx context.Context, userID uuid.UUID, req CreateReceiptRequest) (*model.Receipt, error) {
	if req.Amount == nil || !req.Amount.IsPositive() {
		return nil, apperror.Validation("amount must be greater than 0")
	}
	tenantID, err := parseID("tenant_id", req.TenantID)
	if err != nil {
		return nil, err
	}
	propertyID, err := parseID("property_id", req.PropertyID)
	if err != nil {
		return nil, err
	}

	property, err := findProperty(ctx, s.propertyRepo, propertyID)
	if err != nil {
		return nil, err
	}

	principal, err := s.access.Principal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := principal.Authorize(access.OpCreateReceipt, property.ID); err != nil {
		return nil, err
	}

	tenancy, err := s.roleRepo.Find(ctx, tenantID, property.ID, model.RoleTenant)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, apperror.Store(err)
	}
	if tenancy == nil || !tenancy.IsActive() {
		return nil, apperror.Validation("tenant_id is not an active tenant of this property")
	}

	status := req.Status
	if status == "" {
		status = model.ReceiptPending
	}
	receipt := &model.Receipt{
		TenantID:      tenantID,
		PropertyID:    property.ID,
		Amount:        *req.Amount,
		Period:        req.Period,
		ApprovedBy:    userID,
		ApprovedAt:    s.now(),
		ReceiptPDFURL: req.ReceiptPDFURL,
		Status:        status,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		serial, err := s.propertyRepo.NextReceiptSerial(txCtx, property.ID)
		if err != nil {
			return err
		}
		receipt.ReceiptNo = model.FormatReceiptNo(property.ID, serial)
		return s.receiptRepo.Create(txCtx, receipt)
	})
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NotFound("Property not found")
		}
		return nil, apperror.Store(err)
	}

	s.recorder.Activity(ctx, userID, ref(property.ID), model.ActionCreate, model.EntityReceipts,
		fmt.Sprintf("Issued receipt %s for %s", receipt.ReceiptNo, receipt.Period))
	s.recorder.Notify(ctx, Notification{
		EventType:   model.EventReceiptIssued,
		Title:       "Receipt issued",
		Body:        fmt.Sprintf("Receipt %s for %s (%s) is available", receipt.ReceiptNo, receipt.Period, receipt.Amount.StringFixed(2)),
		ReferenceID: ref(receipt.ID),
	}, receipt.TenantID)
	return receipt, nil
}

func (s *receiptService) Update(ctx context.Context, userID uuid.UUID, req UpdateReceiptRequest) (*model.Receipt, error) {
	id, err := parseID("id", req.ID)
	if err != nil {
		return nil, err
	}

	receipt, err := s.receiptRepo.FindByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NotFound("Receipt not found")
		}
		return nil, apperror.Store(err)
	}

	principal, err := s.access.Principal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := principal.Authorize(access.OpUpdateReceipt, receipt.PropertyID); err != nil {
		return nil, err
	}

	if req.Status != nil {
		receipt.Status = *req.Status
	}
	if req.ReceiptPDFURL != nil {
		receipt.ReceiptPDFURL = *req.ReceiptPDFURL
	}
	if err := s.receiptRepo.Update(ctx, receipt); err != nil {
		return nil, apperror.Store(err)
	}

	s.recorder.Activity(ctx, userID, ref(receipt.PropertyID), model.ActionUpdate, model.EntityReceipts,
		fmt.Sprintf("Updated receipt %s", receipt.ReceiptNo))
	return receipt, nil
}
