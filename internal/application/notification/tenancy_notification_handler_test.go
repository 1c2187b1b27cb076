package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/document"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/maintenance"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/notification"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSender struct {
	sent []*notification.Email
	err  error
}

func (s *recordingSender) Send(_ context.Context, email *notification.Email) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, email)
	return nil
}

type stubReceipts struct {
	enabled bool
	doc     *document.GeneratedDocument
	err     error
	calls   int
}

func (s *stubReceipts) ReceiptsEnabled() bool { return s.enabled }

func (s *stubReceipts) PaymentReceipt(_ context.Context, _, _ uuid.UUID) (*document.GeneratedDocument, error) {
	s.calls++
	return s.doc, s.err
}

type stubTenants map[uuid.UUID]*tenant.Tenant

func (s stubTenants) FindByID(_ context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	t, ok := s[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return t, nil
}

func newTenant(t *testing.T, email string) *tenant.Tenant {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tn, err := tenant.NewTenant(uuid.New(), tenant.Contact{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Phone:     "+256700000000",
	}, tenant.LeaseDetails{
		PropertyID: uuid.New(),
		UnitNumber: "1A",
		StartDate:  start,
		EndDate:    start.AddDate(1, 0, 0),
		RentAmount: decimal.NewFromInt(1200),
	})
	require.NoError(t, err)
	return tn
}

func TestTenancyNotificationHandler_EventTypes(t *testing.T) {
	h := NewTenancyNotificationHandler(&recordingSender{}, zap.NewNop())
	assert.ElementsMatch(t, []string{tenant.EventTypeTenancyCreated, tenant.EventTypeTenantPaymentRecorded}, h.EventTypes())
}

func TestTenancyNotificationHandler_Welcome(t *testing.T) {
	sender := &recordingSender{}
	h := NewTenancyNotificationHandler(sender, zap.NewNop())
	tn := newTenant(t, "ada@example.com")

	err := h.Handle(context.Background(), tenant.NewTenancyCreatedEvent(tn, "Kololo Heights"))
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"ada@example.com"}, sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Subject, "1A")
	assert.Contains(t, sender.sent[0].TextBody, "Kololo Heights")
	assert.Contains(t, sender.sent[0].TextBody, "1200.00")
}

func TestTenancyNotificationHandler_WelcomeWithoutEmail(t *testing.T) {
	sender := &recordingSender{}
	h := NewTenancyNotificationHandler(sender, zap.NewNop())
	tn := newTenant(t, "")

	require.NoError(t, h.Handle(context.Background(), tenant.NewTenancyCreatedEvent(tn, "Kololo Heights")))
	assert.Empty(t, sender.sent)
}

func TestTenancyNotificationHandler_SendFailure(t *testing.T) {
	sender := &recordingSender{err: errors.New("relay down")}
	h := NewTenancyNotificationHandler(sender, zap.NewNop())
	tn := newTenant(t, "ada@example.com")

	err := h.Handle(context.Background(), tenant.NewTenancyCreatedEvent(tn, ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relay down")
}

func TestTenancyNotificationHandler_PaymentWithReceipt(t *testing.T) {
	sender := &recordingSender{}
	receipts := &stubReceipts{enabled: true, doc: &document.GeneratedDocument{Data: []byte("%PDF-1.4")}}
	h := NewTenancyNotificationHandler(sender, zap.NewNop()).WithReceipts(receipts)
	tn := newTenant(t, "ada@example.com")
	entry, err := tn.RecordPayment(tenant.PaymentEntry{
		Amount: decimal.NewFromInt(1200),
		PaidAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Method: tenant.PaymentMethodMobileMoney,
		Status: tenant.PaymentStatusPaid,
	})
	require.NoError(t, err)

	require.NoError(t, h.Handle(context.Background(), tenant.NewTenantPaymentRecordedEvent(tn, *entry)))

	assert.Equal(t, 1, receipts.calls)
	require.Len(t, sender.sent, 1)
	require.Len(t, sender.sent[0].Attachments, 1)
	assert.Equal(t, "application/pdf", sender.sent[0].Attachments[0].ContentType)
	assert.Equal(t, []byte("%PDF-1.4"), sender.sent[0].Attachments[0].Data)
}

func TestTenancyNotificationHandler_PaymentReceiptFailureStillNotifies(t *testing.T) {
	sender := &recordingSender{}
	receipts := &stubReceipts{enabled: true, err: errors.New("chrome crashed")}
	h := NewTenancyNotificationHandler(sender, zap.NewNop()).WithReceipts(receipts)
	tn := newTenant(t, "ada@example.com")
	entry, err := tn.RecordPayment(tenant.PaymentEntry{
		Amount: decimal.NewFromInt(600),
		PaidAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Method: tenant.PaymentMethodCash,
		Status: tenant.PaymentStatusPaid,
	})
	require.NoError(t, err)

	require.NoError(t, h.Handle(context.Background(), tenant.NewTenantPaymentRecordedEvent(tn, *entry)))

	require.Len(t, sender.sent, 1)
	assert.Empty(t, sender.sent[0].Attachments)
}

func TestTenancyNotificationHandler_ReceiptsDisabled(t *testing.T) {
	sender := &recordingSender{}
	receipts := &stubReceipts{enabled: false}
	h := NewTenancyNotificationHandler(sender, zap.NewNop()).WithReceipts(receipts)
	tn := newTenant(t, "ada@example.com")
	entry, err := tn.RecordPayment(tenant.PaymentEntry{
		Amount: decimal.NewFromInt(600),
		PaidAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Method: tenant.PaymentMethodCash,
		Status: tenant.PaymentStatusPaid,
	})
	require.NoError(t, err)

	require.NoError(t, h.Handle(context.Background(), tenant.NewTenantPaymentRecordedEvent(tn, *entry)))

	assert.Zero(t, receipts.calls)
	require.Len(t, sender.sent, 1)
}

func TestMaintenanceNotificationHandler(t *testing.T) {
	tn := newTenant(t, "ada@example.com")
	sender := &recordingSender{}
	h := NewMaintenanceNotificationHandler(sender, stubTenants{tn.ID: tn}, zap.NewNop())

	req, err := maintenance.NewMaintenanceRequest(tn.OwnerID, tn.Lease.PropertyID, "1A", "Leaking tap", "Kitchen tap drips", maintenance.PriorityMedium)
	require.NoError(t, err)
	req.AssignTenant(tn.ID)
	require.NoError(t, req.Start())

	require.NoError(t, h.Handle(context.Background(), maintenance.NewMaintenanceStatusChangedEvent(req, maintenance.StatusOpen)))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"ada@example.com"}, sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Subject, "in progress")
}

func TestMaintenanceNotificationHandler_NoTenant(t *testing.T) {
	sender := &recordingSender{}
	h := NewMaintenanceNotificationHandler(sender, stubTenants{}, zap.NewNop())

	req, err := maintenance.NewMaintenanceRequest(uuid.New(), uuid.New(), "1A", "Broken door", "", maintenance.PriorityHigh)
	require.NoError(t, err)
	require.NoError(t, h.Handle(context.Background(), maintenance.NewMaintenanceStatusChangedEvent(req, maintenance.StatusOpen)))

	req.AssignTenant(uuid.New())
	require.NoError(t, h.Handle(context.Background(), maintenance.NewMaintenanceStatusChangedEvent(req, maintenance.StatusOpen)))

	assert.Empty(t, sender.sent)
}
