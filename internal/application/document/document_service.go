// Package document generates and stores lease agreements and payment receipts.
package document

import (
	"context"
	"fmt"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/access"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/identity"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/property"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/printing"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrDocumentsDisabled is returned when PDF generation is switched off
var ErrDocumentsDisabled = shared.InvalidState("Document generation is disabled")

// Options controls document generation
type Options struct {
	Enabled         bool
	ReceiptsEnabled bool
	PaperSize       printing.PaperSize
	RenderTimeout   time.Duration
}

// GeneratedDocument describes a stored PDF
type GeneratedDocument struct {
	Key         string    `json:"path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	URL         string    `json:"url,omitempty"`
	PageCount   int       `json:"page_count"`
	GeneratedAt time.Time `json:"generated_at"`
	// Data holds the PDF bytes for callers that attach it to an email
	Data []byte `json:"-"`
}

// DocumentService renders tenancy documents and stores them
type DocumentService struct {
	tenants    tenant.TenantRepository
	properties property.PropertyRepository
	users      identity.UserRepository
	policy     access.Policy
	templates  *printing.DocumentTemplates
	renderer   printing.PDFRenderer
	store      storage.DocumentStore
	opts       Options
	logger     *zap.Logger
	now        func() time.Time
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	tenants tenant.TenantRepository,
	properties property.PropertyRepository,
	users identity.UserRepository,
	policy access.Policy,
	templates *printing.DocumentTemplates,
	renderer printing.PDFRenderer,
	store storage.DocumentStore,
	opts Options,
	logger *zap.Logger,
) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !opts.PaperSize.IsValid() {
		opts.PaperSize = printing.PaperSizeA4
	}
	return &DocumentService{
		tenants:    tenants,
		properties: properties,
		users:      users,
		policy:     policy,
		templates:  templates,
		renderer:   renderer,
		store:      store,
		opts:       opts,
		logger:     logger,
		now:        time.Now,
	}
}

// ReceiptsEnabled reports whether receipts are generated for new payments
func (s *DocumentService) ReceiptsEnabled() bool {
	return s.opts.Enabled && s.opts.ReceiptsEnabled
}

// LeaseAgreement renders the lease agreement of a tenant owned by callerID
func (s *DocumentService) LeaseAgreement(ctx context.Context, callerID, tenantID uuid.UUID) (*GeneratedDocument, error) {
	if !s.opts.Enabled {
		return nil, ErrDocumentsDisabled
	}
	t, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(callerID, t); err != nil {
		return nil, err
	}

	now := s.now()
	data := printing.LeaseAgreementData{
		AgreementNumber: "LA-" + shortID(t.ID),
		GeneratedAt:     now,
		OwnerName:       s.ownerName(ctx, t.OwnerID),
		TenantName:      t.FullName(),
		TenantEmail:     t.Email,
		TenantPhone:     t.Phone,
		UnitNumber:      t.Lease.UnitNumber,
		StartDate:       t.Lease.StartDate,
		EndDate:         t.Lease.EndDate,
		RentAmount:      t.Lease.RentAmount,
		SecurityDeposit: t.Lease.SecurityDeposit,
		Notes:           t.Notes,
	}
	s.fillProperty(ctx, t, &data.PropertyName, &data.PropertyAddress)

	html, err := s.templates.LeaseAgreement(data)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("leases/%s/%s/lease-%s.pdf", t.OwnerID, t.ID, now.UTC().Format("20060102T150405"))
	doc, err := s.renderAndStore(ctx, key, "Lease Agreement", html, now)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Lease agreement generated",
		zap.String("tenant_id", t.ID.String()),
		zap.String("owner_id", t.OwnerID.String()),
		zap.String("path", doc.Key),
		zap.Int64("size", doc.Size))
	return doc, nil
}

// PaymentReceipt renders the receipt of one recorded payment. It is called
// from event handlers after the payment committed, so it does not check
// ownership.
func (s *DocumentService) PaymentReceipt(ctx context.Context, tenantID, paymentID uuid.UUID) (*GeneratedDocument, error) {
	if !s.ReceiptsEnabled() {
		return nil, ErrDocumentsDisabled
	}
	t, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	var payment *tenant.PaymentEntry
	for i := range t.Payments {
		if t.Payments[i].ID == paymentID {
			payment = &t.Payments[i]
			break
		}
	}
	if payment == nil {
		return nil, shared.NotFound("Payment not found")
	}

	now := s.now()
	data := printing.PaymentReceiptData{
		ReceiptNumber: "R-" + shortID(payment.ID),
		GeneratedAt:   now,
		TenantName:    t.FullName(),
		UnitNumber:    t.Lease.UnitNumber,
		Amount:        payment.Amount,
		PaidAt:        payment.PaidAt,
		Method:        string(payment.Method),
		Status:        string(payment.Status),
		Reference:     payment.Reference,
		Notes:         payment.Notes,
		TotalPaid:     t.TotalPaid(),
	}
	var address string
	s.fillProperty(ctx, t, &data.PropertyName, &address)

	html, err := s.templates.PaymentReceipt(data)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("receipts/%s/%s/%s.pdf", t.OwnerID, t.ID, payment.ID)
	doc, err := s.renderAndStore(ctx, key, "Payment Receipt", html, now)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment receipt generated",
		zap.String("tenant_id", t.ID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.String("path", doc.Key))
	return doc, nil
}

func (s *DocumentService) renderAndStore(ctx context.Context, key, title, html string, now time.Time) (*GeneratedDocument, error) {
	result, err := s.renderer.Render(ctx, &printing.RenderRequest{
		HTML:       html,
		Title:      title,
		PaperSize:  s.opts.PaperSize,
		Margins:    printing.DefaultMargins(),
		FooterHTML: `<div style="font-size:8px;width:100%;text-align:center"><span class="pageNumber"></span> / <span class="totalPages"></span></div>`,
		Timeout:    s.opts.RenderTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", title, err)
	}

	obj, err := s.store.Put(ctx, key, result.PDFData, storage.ContentTypePDF)
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", title, err)
	}
	return &GeneratedDocument{
		Key:         obj.Key,
		Size:        obj.Size,
		ContentType: obj.ContentType,
		URL:         obj.URL,
		PageCount:   result.PageCount,
		GeneratedAt: now,
		Data:        result.PDFData,
	}, nil
}

// fillProperty copies property details onto the document. A missing
// property leaves the fields empty.
func (s *DocumentService) fillProperty(ctx context.Context, t *tenant.Tenant, name, address *string) {
	prop, err := s.properties.FindByID(ctx, t.Lease.PropertyID)
	if err != nil {
		s.logger.Warn("Lease property not loaded for document",
			zap.String("tenant_id", t.ID.String()),
			zap.String("property_id", t.Lease.PropertyID.String()),
			zap.Error(err))
		return
	}
	*name = prop.Name
	*address = prop.Address.FullAddress()
}

func (s *DocumentService) ownerName(ctx context.Context, ownerID uuid.UUID) string {
	if s.users == nil {
		return ""
	}
	u, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		s.logger.Warn("Owner not loaded for document", zap.String("owner_id", ownerID.String()), zap.Error(err))
		return ""
	}
	return u.GetDisplayNameOrUsername()
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
