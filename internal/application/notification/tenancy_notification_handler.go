// Package notification turns tenancy and maintenance events into emails.
package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/document"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/maintenance"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/notification"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReceiptGenerator renders the receipt PDF of a recorded payment
type ReceiptGenerator interface {
	ReceiptsEnabled() bool
	PaymentReceipt(ctx context.Context, tenantID, paymentID uuid.UUID) (*document.GeneratedDocument, error)
}

// TenancyNotificationHandler emails tenants when their tenancy starts and
// when a payment is recorded against it
type TenancyNotificationHandler struct {
	sender   notification.EmailSender
	receipts ReceiptGenerator
	logger   *zap.Logger
}

// NewTenancyNotificationHandler creates a new TenancyNotificationHandler
func NewTenancyNotificationHandler(sender notification.EmailSender, logger *zap.Logger) *TenancyNotificationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TenancyNotificationHandler{
		sender: sender,
		logger: logger,
	}
}

// WithReceipts attaches generated receipts to payment emails
func (h *TenancyNotificationHandler) WithReceipts(receipts ReceiptGenerator) *TenancyNotificationHandler {
	h.receipts = receipts
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *TenancyNotificationHandler) EventTypes() []string {
	return []string{
		tenant.EventTypeTenancyCreated,
		tenant.EventTypeTenantPaymentRecorded,
	}
}

// Handle implements shared.EventHandler
func (h *TenancyNotificationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *tenant.TenancyCreatedEvent:
		return h.welcome(ctx, e)
	case *tenant.TenantPaymentRecordedEvent:
		return h.paymentRecorded(ctx, e)
	default:
		h.logger.Warn("Unexpected event type for tenancy notifications",
			zap.String("event_type", event.EventType()))
		return nil
	}
}

func (h *TenancyNotificationHandler) welcome(ctx context.Context, e *tenant.TenancyCreatedEvent) error {
	if strings.TrimSpace(e.TenantEmail) == "" {
		h.logger.Debug("Tenant has no email, welcome notice skipped", zap.String("tenant_id", e.TenantID.String()))
		return nil
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Dear %s,\n\n", e.TenantName)
	fmt.Fprintf(&body, "Welcome to %s, unit %s.\n\n", propertyLabel(e.PropertyName), e.UnitNumber)
	fmt.Fprintf(&body, "Lease start: %s\n", e.StartDate.Format("2006-01-02"))
	fmt.Fprintf(&body, "Lease end:   %s\n", e.EndDate.Format("2006-01-02"))
	fmt.Fprintf(&body, "Monthly rent: %s\n", e.RentAmount.StringFixed(2))

	err := h.sender.Send(ctx, &notification.Email{
		To:       []string{e.TenantEmail},
		Subject:  fmt.Sprintf("Your lease for unit %s", e.UnitNumber),
		TextBody: body.String(),
	})
	if err != nil {
		return fmt.Errorf("send welcome notice: %w", err)
	}

	h.logger.Info("Welcome notice sent",
		zap.String("tenant_id", e.TenantID.String()),
		zap.String("unit_number", e.UnitNumber))
	return nil
}

func (h *TenancyNotificationHandler) paymentRecorded(ctx context.Context, e *tenant.TenantPaymentRecordedEvent) error {
	if strings.TrimSpace(e.TenantEmail) == "" {
		return nil
	}

	email := &notification.Email{
		To:      []string{e.TenantEmail},
		Subject: "Payment received",
		TextBody: fmt.Sprintf("Dear %s,\n\nWe recorded a payment of %s on %s (%s, %s).\n",
			e.TenantName, e.Amount.StringFixed(2), e.PaidAt.Format("2006-01-02"), e.Method, e.Status),
	}

	if h.receipts != nil && h.receipts.ReceiptsEnabled() {
		doc, err := h.receipts.PaymentReceipt(ctx, e.TenantID, e.PaymentID)
		if err != nil {
			// The notice still goes out without the attachment.
			h.logger.Warn("Payment receipt not generated",
				zap.String("tenant_id", e.TenantID.String()),
				zap.String("payment_id", e.PaymentID.String()),
				zap.Error(err))
		} else {
			email.Attachments = append(email.Attachments, notification.Attachment{
				Filename:    "receipt-" + e.PaymentID.String()[:8] + ".pdf",
				ContentType: storage.ContentTypePDF,
				Data:        doc.Data,
			})
		}
	}

	if err := h.sender.Send(ctx, email); err != nil {
		return fmt.Errorf("send payment notice: %w", err)
	}
	return nil
}

// TenantFinder loads a tenant by id
type TenantFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error)
}

// MaintenanceNotificationHandler tells the reporting tenant when their
// maintenance ticket changes status
type MaintenanceNotificationHandler struct {
	sender  notification.EmailSender
	tenants TenantFinder
	logger  *zap.Logger
}

// NewMaintenanceNotificationHandler creates a new MaintenanceNotificationHandler
func NewMaintenanceNotificationHandler(sender notification.EmailSender, tenants TenantFinder, logger *zap.Logger) *MaintenanceNotificationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaintenanceNotificationHandler{
		sender:  sender,
		tenants: tenants,
		logger:  logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *MaintenanceNotificationHandler) EventTypes() []string {
	return []string{maintenance.EventTypeMaintenanceStatusChanged}
}

// Handle implements shared.EventHandler
func (h *MaintenanceNotificationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*maintenance.MaintenanceStatusChangedEvent)
	if !ok || e.TenantID == nil {
		return nil
	}

	t, err := h.tenants.FindByID(ctx, *e.TenantID)
	if err != nil {
		// The tenant may have been deleted since the ticket was opened.
		h.logger.Debug("Ticket tenant not found, status notice skipped",
			zap.String("request_id", e.RequestID.String()),
			zap.Error(err))
		return nil
	}
	if strings.TrimSpace(t.Email) == "" {
		return nil
	}

	err = h.sender.Send(ctx, &notification.Email{
		To:      []string{t.Email},
		Subject: fmt.Sprintf("Maintenance request %q is now %s", e.Title, statusLabel(e.NewStatus)),
		TextBody: fmt.Sprintf("Dear %s,\n\nYour maintenance request %q changed from %s to %s.\n",
			t.FullName(), e.Title, statusLabel(e.OldStatus), statusLabel(e.NewStatus)),
	})
	if err != nil {
		return fmt.Errorf("send maintenance notice: %w", err)
	}
	return nil
}

func propertyLabel(name string) string {
	if name == "" {
		return "your new home"
	}
	return name
}

func statusLabel(s maintenance.Status) string {
	return strings.ReplaceAll(string(s), "_", " ")
}

var (
	_ shared.EventHandler = (*TenancyNotificationHandler)(nil)
	_ shared.EventHandler = (*MaintenanceNotificationHandler)(nil)
)
