package handler

import (
	"time"

	maintenanceapp "github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/maintenance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MaintenanceHandler handles maintenance request endpoints
type MaintenanceHandler struct {
	BaseHandler
	maintenanceService *maintenanceapp.MaintenanceService
}

// NewMaintenanceHandler creates a new MaintenanceHandler
func NewMaintenanceHandler(maintenanceService *maintenanceapp.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceService: maintenanceService,
	}
}

// CreateMaintenanceRequest opens a maintenance ticket
type CreateMaintenanceRequest struct {
	PropertyID  uuid.UUID  `json:"property_id" binding:"required" format:"uuid"`
	Unit        string     `json:"unit" binding:"max=50" example:"2B"`
	TenantID    *uuid.UUID `json:"tenant_id" format:"uuid"`
	Title       string     `json:"title" binding:"required,notblank,max=200" example:"Leaking kitchen tap"`
	Description string     `json:"description" binding:"max=5000"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high emergency" example:"medium"`
}

// UpdateMaintenanceRequest edits a ticket's descriptive fields
type UpdateMaintenanceRequest struct {
	Title       string `json:"title" binding:"required,notblank,max=200"`
	Description string `json:"description" binding:"max=5000"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high emergency"`
}

// ScheduleMaintenanceRequest books a contractor appointment
type ScheduleMaintenanceRequest struct {
	AppointmentAt time.Time `json:"appointment_at" binding:"required" example:"2026-03-01T09:00:00Z"`
}

// ResolveMaintenanceRequest closes a ticket as fixed
type ResolveMaintenanceRequest struct {
	Notes string `json:"notes" binding:"max=5000" example:"Replaced washer"`
}

// CancelMaintenanceRequest closes a ticket without a fix
type CancelMaintenanceRequest struct {
	Reason string `json:"reason" binding:"max=5000" example:"Tenant fixed it"`
}

// Create godoc
// @ID           createMaintenanceRequest
// @Summary      Open a maintenance request
// @Description  Open a ticket on a property the caller owns, optionally for one unit and tenant
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Param        request body CreateMaintenanceRequest true "Ticket details"
// @Success      201 {object} APIResponse[maintenanceapp.RequestResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /maintenance-requests [post]
func (h *MaintenanceHandler) Create(c *gin.Context) {
	ownerID, ok := h.callerID(c)
	if !ok {
		return
	}
	var req CreateMaintenanceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	r, err := h.maintenanceService.Create(c.Request.Context(), ownerID, maintenanceapp.CreateRequestRequest{
		PropertyID:  req.PropertyID,
		Unit:        req.Unit,
		TenantID:    req.TenantID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, r)
}

// List godoc
// @ID           listMaintenanceRequests
// @Summary      List maintenance requests
// @Description  List the caller's maintenance tickets
// @Tags         maintenance
// @Produce      json
// @Param        search      query    string  false  "Search by title"
// @Param        status      query    string  false  "Status" Enums(open, scheduled, in_progress, resolved, cancelled)
// @Param        priority    query    string  false  "Priority" Enums(low, medium, high, emergency)
// @Param        property_id query    string  false  "Property ID" format(uuid)
// @Param        page        query    int     false  "Page number" default(1)
// @Param        page_size   query    int     false  "Page size" default(20) maximum(100)
// @Param        order_by    query    string  false  "Sort field" default(created_at)
// @Param        order_dir   query    string  false  "Sort direction" Enums(asc, desc) default(desc)
// @Success      200 {object} APIResponse[[]maintenanceapp.RequestResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /maintenance-requests [get]
func (h *MaintenanceHandler) List(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	var filter maintenanceapp.RequestListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	items, total, err := h.maintenanceService.List(c.Request.Context(), callerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// GetByID godoc
// @ID           getMaintenanceRequestById
// @Summary      Get a maintenance request
// @Tags         maintenance
// @Produce      json
// @Param        id path string true "Request ID" format(uuid)
// @Success      200 {object} APIResponse[maintenanceapp.RequestResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /maintenance-requests/{id} [get]
func (h *MaintenanceHandler) GetByID(c *gin.Context) {
	callerID, id, ok := h.ids(c)
	if !ok {
		return
	}

	r, err := h.maintenanceService.GetByID(c.Request.Context(), callerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, r)
}

// Update godoc
// @ID           updateMaintenanceRequest
// @Summary      Update a maintenance request
// @Description  Edit title, description and priority of a ticket that is not closed
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Param        id      path string                   true "Request ID" format(uuid)
// @Param        request body UpdateMaintenanceRequest true "Ticket details"
// @Success      200 {object} APIResponse[maintenanceapp.RequestResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /maintenance-requests/{id} [put]
func (h *MaintenanceHandler) Update(c *gin.Context) {
	callerID, id, ok := h.ids(c)
	if !ok {
		return
	}
	var req UpdateMaintenanceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	r, err := h.maintenanceService.Update(c.Request.Context(), callerID, id, maintenanceapp.UpdateRequestRequest{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, r)
}

// Schedule godoc
// @ID           scheduleMaintenanceRequest
// @Summary      Schedule an appointment
// @Description  Book or move the contractor appointment. The time must be in the future.
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Param        id      path string                     true "Request ID" format(uuid)
// @Param        request body ScheduleMaintenanceRequest true "Appointment"
// @Success      200 {object} APIResponse[maintenanceapp.RequestResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /maintenance-requests/{id}/schedule [post]
func (h *MaintenanceHandler) Schedule(c *gin.Context) {
	callerID, id, ok := h.ids(c)
	if !ok {
		return
	}
	var req ScheduleMaintenanceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	r, err := h.maintenanceService.Schedule(c.Request.Context(), callerID, id, maintenanceapp.ScheduleRequest{
		AppointmentAt: req.AppointmentAt,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, r)
}

// Start godoc
// @ID           startMaintenanceRequest
// @Summary      Start work
// @Tags         maintenance
// @Produce      json
// @Param        id path string true "Request ID" format(uuid)
// @Success      200 {object} APIResponse[maintenanceapp.RequestResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /maintenance-requests/{id}/start [post]
func (h *MaintenanceHandler) Start(c *gin.Context) {
	callerID, id, ok := h.ids(c)
	if !ok {
		return
	}

	r, err := h.maintenanceService.Start(c.Request.Context(), callerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, r)
}

// Resolve godoc
// @ID           resolveMaintenanceRequest
// @Summary      Resolve a maintenance request
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Param        id      path string                    true  "Request ID" format(uuid)
// @Param        request body ResolveMaintenanceRequest false "Resolution notes"
// @Success      200 {object} APIResponse[maintenanceapp.RequestResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /maintenance-requests/{id}/resolve [post]
func (h *MaintenanceHandler) Resolve(c *gin.Context) {
	callerID, id, ok := h.ids(c)
	if !ok {
		return
	}
	var req ResolveMaintenanceRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}

	r, err := h.maintenanceService.Resolve(c.Request.Context(), callerID, id, maintenanceapp.ResolveRequest{Notes: req.Notes})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, r)
}

// Cancel godoc
// @ID           cancelMaintenanceRequest
// @Summary      Cancel a maintenance request
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Param        id      path string                   true  "Request ID" format(uuid)
// @Param        request body CancelMaintenanceRequest false "Cancellation reason"
// @Success      200 {object} APIResponse[maintenanceapp.RequestResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /maintenance-requests/{id}/cancel [post]
func (h *MaintenanceHandler) Cancel(c *gin.Context) {
	callerID, id, ok := h.ids(c)
	if !ok {
		return
	}
	var req CancelMaintenanceRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}

	r, err := h.maintenanceService.Cancel(c.Request.Context(), callerID, id, maintenanceapp.CancelRequest{Reason: req.Reason})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, r)
}

// Delete godoc
// @ID           deleteMaintenanceRequest
// @Summary      Delete a maintenance request
// @Tags         maintenance
// @Produce      json
// @Param        id path string true "Request ID" format(uuid)
// @Success      200 {object} APIResponse[MessageData]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /maintenance-requests/{id} [delete]
func (h *MaintenanceHandler) Delete(c *gin.Context) {
	callerID, id, ok := h.ids(c)
	if !ok {
		return
	}

	if err := h.maintenanceService.Delete(c.Request.Context(), callerID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, MessageData{Message: "Maintenance request deleted"})
}

func (h *MaintenanceHandler) ids(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	callerID, ok := h.callerID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	id, ok := h.pathID(c, "id", "maintenance request")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return callerID, id, true
}

// bindOptionalJSON binds the body when one was sent
func (h *MaintenanceHandler) bindOptionalJSON(c *gin.Context, req any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	return h.BindJSON(c, req)
}
