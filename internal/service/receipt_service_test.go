package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertyhub/internal/model"
	"propertyhub/pkg/apperror"
)

func amount(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func receiptFor(f fixture, period string) CreateReceiptRequest {
	return CreateReceiptRequest{
		TenantID:   f.tenant.ID.String(),
		PropertyID: f.property.ID.String(),
		Amount:     amount("1200.00"),
		Period:     period,
	}
}

func TestReceiptNumbersAreSequentialPerProperty(t *testing.T) {
	e := newEnv()
	f := e.fixture("harbour")
	ctx := context.Background()

	first, err := e.receipts.Create(ctx, f.landlord.ID, receiptFor(f, "2026-09"))
	require.NoError(t, err)
	second, err := e.receipts.Create(ctx, f.landlord.ID, receiptFor(f, "2026-10"))
	require.NoError(t, err)

	id := f.property.ID.String()
	suffix := strings.ToUpper(id[len(id)-8:])
	assert.Equal(t, fmt.Sprintf("RCP-%s-0001", suffix), first.ReceiptNo)
	assert.Equal(t, fmt.Sprintf("RCP-%s-0002", suffix), second.ReceiptNo)
	assert.Equal(t, model.ReceiptPending, first.Status)
	assert.Equal(t, f.landlord.ID, first.ApprovedBy)

	issued := e.store.notificationsFor(f.tenant.ID, model.EventReceiptIssued)
	assert.Len(t, issued, 2)
}

func TestReceiptCountersAreIndependent(t *testing.T) {
	e := newEnv()
	a := e.fixture("north")
	b := e.fixture("south")
	ctx := context.Background()

	_, err := e.receipts.Create(ctx, a.landlord.ID, receiptFor(a, "2026-09"))
	require.NoError(t, err)
	rb, err := e.receipts.Create(ctx, b.landlord.ID, receiptFor(b, "2026-09"))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(rb.ReceiptNo, "-0001"), rb.ReceiptNo)
}

func TestReceiptRequiresActiveTenant(t *testing.T) {
	e := newEnv()
	f := e.fixture("elm")
	stranger := e.store.addUser("stranger@example.com", model.AccountTenant)

	req := receiptFor(f, "2026-10")
	req.TenantID = stranger.ID.String()
	_, err := e.receipts.Create(context.Background(), f.landlord.ID, req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	assert.Equal(t, 0, e.store.mutations())
}

func TestReceiptRejectedForTenantCaller(t *testing.T) {
	e := newEnv()
	f := e.fixture("oak")

	_, err := e.receipts.Create(context.Background(), f.tenant.ID, receiptFor(f, "2026-10"))

	assert.True(t, errors.Is(err, apperror.ErrForbidden))
	assert.Zero(t, e.store.properties[f.property.ID].ReceiptSerialCounter)
}

func TestReceiptRejectsNonPositiveAmount(t *testing.T) {
	e := newEnv()
	f := e.fixture("pine")

	req := receiptFor(f, "2026-10")
	req.Amount = amount("0")
	_, err := e.receipts.Create(context.Background(), f.landlord.ID, req)
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	req.Amount = nil
	_, err = e.receipts.Create(context.Background(), f.landlord.ID, req)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestReceiptUnknownPropertyIsNotFound(t *testing.T) {
	e := newEnv()
	f := e.fixture("ash")

	req := receiptFor(f, "2026-10")
	req.PropertyID = uuid.NewString()
	_, err := e.receipts.Create(context.Background(), f.landlord.ID, req)

	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestReceiptListIsScopedForTenants(t *testing.T) {
	e := newEnv()
	f := e.fixture("birch")
	other := e.store.addUser("other-tenant@example.com", model.AccountTenant)
	e.store.assign(other.ID, f.property.ID, model.RoleTenant)
	ctx := context.Background()

	_, err := e.receipts.Create(ctx, f.landlord.ID, receiptFor(f, "2026-09"))
	require.NoError(t, err)
	req := receiptFor(f, "2026-09")
	req.TenantID = other.ID.String()
	_, err = e.receipts.Create(ctx, f.landlord.ID, req)
	require.NoError(t, err)

	mine, err := e.receipts.List(ctx, f.tenant.ID, ReceiptFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, f.tenant.ID, mine[0].TenantID)

	all, err := e.receipts.List(ctx, f.landlord.ID, ReceiptFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestReceiptUpdateChecksProperty(t *testing.T) {
	e := newEnv()
	f := e.fixture("cedar")
	g := e.fixture("maple")
	ctx := context.Background()

	rc, err := e.receipts.Create(ctx, f.landlord.ID, receiptFor(f, "2026-10"))
	require.NoError(t, err)

	paid := "paid"
	_, err = e.receipts.Update(ctx, g.landlord.ID, UpdateReceiptRequest{ID: rc.ID.String(), Status: &paid})
	assert.True(t, errors.Is(err, apperror.ErrForbidden))

	updated, err := e.receipts.Update(ctx, f.landlord.ID, UpdateReceiptRequest{ID: rc.ID.String(), Status: &paid})
	require.NoError(t, err)
	assert.Equal(t, "paid", updated.Status)
	assert.Equal(t, rc.ReceiptNo, updated.ReceiptNo)
}
