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

type CreatePaymentRequest struct {
	PropertyID    string           `json:"property_id" binding:"required,uuid"`
	Amount        *decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Reference     string           `json:"reference" binding:"required,max=100"`
	PaymentMethod string           `json:"payment_method" binding:"required,max=50"`
}

type PaymentService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Payment, error)
	Create(ctx context.Context, userID uuid.UUID, req CreatePaymentRequest) (*model.Payment, error)
}

type paymentService struct {
	paymentRepo  repository.PaymentRepository
	propertyRepo repository.PropertyRepository
	access       AccessService
	recorder     *Recorder
	now          func() time.Time
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	propertyRepo repository.PropertyRepository,
	accessService AccessService,
	recorder *Recorder,
) PaymentService {
	return &paymentService{
		paymentRepo:  paymentRepo,
		propertyRepo: propertyRepo,
		access:       accessService,
		recorder:     recorder,
		now:          time.Now,
	}
}

func (s *paymentService) List(ctx context.Context, userID uuid.UUID) ([]model.Payment, error) {
	principal, err := s.access.Principal(ctx, userID)
	if err != nil {
		return nil, err
	}
	scope := principal.Visibility()
	if scope.Empty() {
		return []model.Payment{}, nil
	}
	payments, err := s.paymentRepo.List(ctx, repository.ListFilter{Scope: scope})
	if err != nil {
		return nil, apperror.Store(err)
	}
	return payments, nil
}

func (s *paymentService) Create(ctx context.Context, userID uuid.UUID, req CreatePaymentRequest) (*model.Payment, error) {
	if req.Amount == nil || !req.Amount.IsPositive() {
		return nil, apperror.Validation("amount must be greater than 0")
	}
	propertyID, err := parseID("property_id", req.PropertyID)
	if err != nil {
		return nil, err
	}

	principal, err := s.access.Principal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := principal.Authorize(access.OpCreatePayment, propertyID); err != nil {
		return nil, err
	}

	property, err := findProperty(ctx, s.propertyRepo, propertyID)
	if err != nil {
		return nil, err
	}

	payment := &model.Payment{
		TenantID:      userID,
		PropertyID:    property.ID,
		Amount:        *req.Amount,
		Reference:     req.Reference,
		PaymentMethod: req.PaymentMethod,
		Status:        model.PaymentPending,
		PaidAt:        s.now(),
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, apperror.Store(err)
	}

	s.recorder.Activity(ctx, userID, ref(property.ID), model.ActionCreate, model.EntityPayments,
		fmt.Sprintf("Recorded payment %s of %s", payment.Reference, payment.Amount.StringFixed(2)))

	landlords, err := s.access.Landlords(ctx, property)
	if err != nil {
		s.recorder.log.WithError(err).Warn("could not resolve landlords for payment notification")
	} else {
		s.recorder.Notify(ctx, Notification{
			EventType:   model.EventPaymentRecorded,
			Title:       "Payment recorded",
			Body:        fmt.Sprintf("Payment of %s recorded for %s", payment.Amount.StringFixed(2), property.Name),
			ReferenceID: ref(payment.ID),
		}, landlords...)
	}
	return payment, nil
}
