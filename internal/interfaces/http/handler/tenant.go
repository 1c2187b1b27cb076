package handler

import (
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/document"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/tenancy"
	tenantapp "github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/tenant"
	"github.com/gin-gonic/gin"
)

// TenantHandler handles tenant, lease and payment endpoints
type TenantHandler struct {
	BaseHandler
	tenantService   *tenantapp.TenantService
	tenancyService  *tenancy.TenancyService
	documentService *document.DocumentService
}

// NewTenantHandler creates a new TenantHandler. documentService may be nil
// when document generation is not configured.
func NewTenantHandler(
	tenantService *tenantapp.TenantService,
	tenancyService *tenancy.TenancyService,
	documentService *document.DocumentService,
) *TenantHandler {
	return &TenantHandler{
		tenantService:   tenantService,
		tenancyService:  tenancyService,
		documentService: documentService,
	}
}

// Create godoc
// @ID           createTenant
// @Summary      Create a tenant
// @Description  Create a tenant and occupy the given unit in one step. The unit must exist and be vacant.
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        request body CreateTenantRequest true "Tenant and lease details"
// @Success      201 {object} APIResponse[tenantapp.TenantResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenants [post]
func (h *TenantHandler) Create(c *gin.Context) {
	ownerID, ok := h.callerID(c)
	if !ok {
		return
	}
	var req CreateTenantRequest
	if !h.BindJSON(c, &req) {
		return
	}

	t, err := h.tenancyService.CreateTenancy(c.Request.Context(), ownerID, req.toAppRequest().ToTenancyInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tenantapp.ToTenantResponse(t))
}

// List godoc
// @ID           listTenants
// @Summary      List tenants
// @Description  List the caller's tenants
// @Tags         tenants
// @Produce      json
// @Param        search      query    string  false  "Search by name or email"
// @Param        status      query    string  false  "Tenant status" Enums(active, inactive, eviction, moveout)
// @Param        property_id query    string  false  "Property ID" format(uuid)
// @Param        page        query    int     false  "Page number" default(1)
// @Param        page_size   query    int     false  "Page size" default(20) maximum(100)
// @Param        order_by    query    string  false  "Sort field" default(created_at)
// @Param        order_dir   query    string  false  "Sort direction" Enums(asc, desc) default(desc)
// @Success      200 {object} APIResponse[[]tenantapp.TenantListItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenants [get]
func (h *TenantHandler) List(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	var filter tenantapp.TenantListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	items, total, err := h.tenantService.List(c.Request.Context(), callerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// GetByID godoc
// @ID           getTenantById
// @Summary      Get tenant by ID
// @Description  Retrieve a tenant with lease terms and payment history
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Success      200 {object} APIResponse[tenantapp.TenantResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenants/{id} [get]
func (h *TenantHandler) GetByID(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "tenant")
	if !ok {
		return
	}

	t, err := h.tenantService.GetByID(c.Request.Context(), callerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, t)
}

// Update godoc
// @ID           updateTenant
// @Summary      Update a tenant
// @Description  Update contact details, notes or status. Moving out has its own endpoint.
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id      path string              true "Tenant ID" format(uuid)
// @Param        request body UpdateTenantRequest true "Fields to change"
// @Success      200 {object} APIResponse[tenantapp.TenantResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenants/{id} [put]
func (h *TenantHandler) Update(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "tenant")
	if !ok {
		return
	}
	var req UpdateTenantRequest
	if !h.BindJSON(c, &req) {
		return
	}

	t, err := h.tenantService.Update(c.Request.Context(), callerID, id, req.toAppRequest())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, t)
}

// Delete godoc
// @ID           deleteTenant
// @Summary      Delete a tenant
// @Description  Delete a tenant and release the unit it occupies
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Success      200 {object} APIResponse[tenantapp.TenancyEndedResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenants/{id} [delete]
func (h *TenantHandler) Delete(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "tenant")
	if !ok {
		return
	}

	result, err := h.tenancyService.DeleteTenancy(c.Request.Context(), id, callerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenantapp.ToTenancyEndedResponse(result, true))
}

// MoveOut godoc
// @ID           moveOutTenant
// @Summary      Move a tenant out
// @Description  Mark a tenant as moved out and release its unit. Payment history is kept.
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Success      200 {object} APIResponse[tenantapp.TenancyEndedResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenants/{id}/move-out [post]
func (h *TenantHandler) MoveOut(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "tenant")
	if !ok {
		return
	}

	result, err := h.tenancyService.MoveOut(c.Request.Context(), id, callerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenantapp.ToTenancyEndedResponse(result, false))
}

// ExtendLease godoc
// @ID           extendTenantLease
// @Summary      Extend a lease
// @Description  Move the lease end date forward and optionally change the rent
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id      path string             true "Tenant ID" format(uuid)
// @Param        request body ExtendLeaseRequest true "New lease terms"
// @Success      200 {object} APIResponse[tenantapp.TenantResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenants/{id}/extend-lease [post]
func (h *TenantHandler) ExtendLease(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "tenant")
	if !ok {
		return
	}
	var req ExtendLeaseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	t, err := h.tenantService.ExtendLease(c.Request.Context(), callerID, id, tenantapp.ExtendLeaseRequest{
		EndDate:    req.EndDate,
		RentAmount: req.RentAmount,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, t)
}

// RecordPayment godoc
// @ID           recordTenantPayment
// @Summary      Record a payment
// @Description  Append a payment to the tenant's history. A receipt is generated in the background when enabled.
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id      path string               true "Tenant ID" format(uuid)
// @Param        request body RecordPaymentRequest true "Payment details"
// @Success      201 {object} APIResponse[tenantapp.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenants/{id}/payments [post]
func (h *TenantHandler) RecordPayment(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "tenant")
	if !ok {
		return
	}
	var req RecordPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	payment, err := h.tenantService.RecordPayment(c.Request.Context(), callerID, id, req.toAppRequest())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, payment)
}

// ListPayments godoc
// @ID           listTenantPayments
// @Summary      List payments
// @Description  List a tenant's payments ordered by payment date
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Success      200 {object} APIResponse[[]tenantapp.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenants/{id}/payments [get]
func (h *TenantHandler) ListPayments(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "tenant")
	if !ok {
		return
	}

	payments, err := h.tenantService.ListPayments(c.Request.Context(), callerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payments)
}

// LeaseDocument godoc
// @ID           generateLeaseDocument
// @Summary      Generate the lease agreement
// @Description  Render the tenant's lease agreement to PDF and store it
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Success      200 {object} APIResponse[document.GeneratedDocument]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tenants/{id}/lease-document [get]
func (h *TenantHandler) LeaseDocument(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "tenant")
	if !ok {
		return
	}
	if h.documentService == nil {
		h.HandleError(c, document.ErrDocumentsDisabled)
		return
	}

	doc, err := h.documentService.LeaseAgreement(c.Request.Context(), callerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, doc)
}
