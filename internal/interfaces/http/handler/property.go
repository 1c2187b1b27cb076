package handler

import (
	propertyapp "github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/property"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PropertyHandler handles property and unit endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *propertyapp.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService *propertyapp.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
	}
}

// AddressRequest is a postal address in request bodies
type AddressRequest struct {
	Street     string `json:"street" binding:"required,notblank,max=200" example:"12 Maple St"`
	City       string `json:"city" binding:"required,notblank,max=100" example:"Springfield"`
	State      string `json:"state" binding:"max=100" example:"IL"`
	PostalCode string `json:"postal_code" binding:"max=20" example:"62701"`
	Country    string `json:"country" binding:"max=100" example:"US"`
}

func (a AddressRequest) toDTO() valueobject.AddressDTO {
	return valueobject.AddressDTO{
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

// UnitRequest describes one rentable unit
type UnitRequest struct {
	UnitNumber string          `json:"unit_number" binding:"required,notblank,max=50" example:"2B"`
	Bedrooms   int             `json:"bedrooms" binding:"gte=0,lte=50" example:"2"`
	Bathrooms  decimal.Decimal `json:"bathrooms" swaggertype:"number" example:"1.5"`
	Rent       decimal.Decimal `json:"rent" swaggertype:"number" example:"1200"`
}

func (u UnitRequest) toInput() propertyapp.UnitInput {
	return propertyapp.UnitInput{
		UnitNumber: u.UnitNumber,
		Bedrooms:   u.Bedrooms,
		Bathrooms:  u.Bathrooms,
		Rent:       u.Rent,
	}
}

// CreatePropertyRequest represents a request to create a property
type CreatePropertyRequest struct {
	Name         string         `json:"name" binding:"required,notblank,max=200" example:"Maple Court"`
	Address      AddressRequest `json:"address" binding:"required"`
	PropertyType string         `json:"property_type" binding:"required,oneof=apartment house condo townhouse commercial" example:"apartment"`
	Description  string         `json:"description" binding:"max=2000"`
	Units        []UnitRequest  `json:"units" binding:"omitempty,max=500,dive"`
}

// UpdatePropertyRequest represents a request to update a property
type UpdatePropertyRequest struct {
	Name         string         `json:"name" binding:"required,notblank,max=200" example:"Maple Court"`
	Address      AddressRequest `json:"address" binding:"required"`
	PropertyType string         `json:"property_type" binding:"required,oneof=apartment house condo townhouse commercial" example:"apartment"`
	Description  string         `json:"description" binding:"max=2000"`
}

// UpdateUnitRequest changes a unit's layout or rent
type UpdateUnitRequest struct {
	Bedrooms  int             `json:"bedrooms" binding:"gte=0,lte=50" example:"3"`
	Bathrooms decimal.Decimal `json:"bathrooms" swaggertype:"number" example:"2"`
	Rent      decimal.Decimal `json:"rent" swaggertype:"number" example:"1350"`
}

// Create godoc
// @ID           createProperty
// @Summary      Create a property
// @Description  Create a property with its units. The caller becomes the owner.
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        request body CreatePropertyRequest true "Property details"
// @Success      201 {object} APIResponse[propertyapp.PropertyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	ownerID, ok := h.callerID(c)
	if !ok {
		return
	}
	var req CreatePropertyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	units := make([]propertyapp.UnitInput, 0, len(req.Units))
	for _, u := range req.Units {
		units = append(units, u.toInput())
	}

	p, err := h.propertyService.Create(c.Request.Context(), ownerID, propertyapp.CreatePropertyRequest{
		Name:         req.Name,
		Address:      req.Address.toDTO(),
		PropertyType: req.PropertyType,
		Description:  req.Description,
		Units:        units,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, p)
}

// List godoc
// @ID           listProperties
// @Summary      List properties
// @Description  List the caller's properties with occupancy counts
// @Tags         properties
// @Produce      json
// @Param        search        query    string  false  "Search by name or city"
// @Param        property_type query    string  false  "Property type" Enums(apartment, house, condo, townhouse, commercial)
// @Param        page          query    int     false  "Page number" default(1)
// @Param        page_size     query    int     false  "Page size" default(20) maximum(100)
// @Param        order_by      query    string  false  "Sort field" default(created_at)
// @Param        order_dir     query    string  false  "Sort direction" Enums(asc, desc) default(desc)
// @Success      200 {object} APIResponse[[]propertyapp.PropertyListItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /properties [get]
func (h *PropertyHandler) List(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	var filter propertyapp.PropertyListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	items, total, err := h.propertyService.List(c.Request.Context(), callerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// GetByID godoc
// @ID           getPropertyById
// @Summary      Get property by ID
// @Description  Retrieve a property and its units
// @Tags         properties
// @Produce      json
// @Param        id path string true "Property ID" format(uuid)
// @Success      200 {object} APIResponse[propertyapp.PropertyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /properties/{id} [get]
func (h *PropertyHandler) GetByID(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "property")
	if !ok {
		return
	}

	p, err := h.propertyService.GetByID(c.Request.Context(), callerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

// Update godoc
// @ID           updateProperty
// @Summary      Update a property
// @Description  Update a property's name, address, type and description
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id      path string                true "Property ID" format(uuid)
// @Param        request body UpdatePropertyRequest true "Property details"
// @Success      200 {object} APIResponse[propertyapp.PropertyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /properties/{id} [put]
func (h *PropertyHandler) Update(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "property")
	if !ok {
		return
	}
	var req UpdatePropertyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.propertyService.Update(c.Request.Context(), callerID, id, propertyapp.UpdatePropertyRequest{
		Name:         req.Name,
		Address:      req.Address.toDTO(),
		PropertyType: req.PropertyType,
		Description:  req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

// Delete godoc
// @ID           deleteProperty
// @Summary      Delete a property
// @Description  Delete a property that has no occupied units and no tenants
// @Tags         properties
// @Produce      json
// @Param        id path string true "Property ID" format(uuid)
// @Success      200 {object} APIResponse[MessageData]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /properties/{id} [delete]
func (h *PropertyHandler) Delete(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "property")
	if !ok {
		return
	}

	if err := h.propertyService.Delete(c.Request.Context(), callerID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, MessageData{Message: "Property deleted"})
}

// AddUnit godoc
// @ID           addPropertyUnit
// @Summary      Add a unit
// @Description  Add a vacant unit to a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id      path string      true "Property ID" format(uuid)
// @Param        request body UnitRequest true "Unit details"
// @Success      201 {object} APIResponse[propertyapp.PropertyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /properties/{id}/units [post]
func (h *PropertyHandler) AddUnit(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "property")
	if !ok {
		return
	}
	var req UnitRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.propertyService.AddUnit(c.Request.Context(), callerID, id, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, p)
}

// UpdateUnit godoc
// @ID           updatePropertyUnit
// @Summary      Update a unit
// @Description  Change a unit's bedrooms, bathrooms or rent
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id         path string            true "Property ID" format(uuid)
// @Param        unitNumber path string            true "Unit number"
// @Param        request    body UpdateUnitRequest true "Unit details"
// @Success      200 {object} APIResponse[propertyapp.PropertyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /properties/{id}/units/{unitNumber} [put]
func (h *PropertyHandler) UpdateUnit(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "property")
	if !ok {
		return
	}
	var req UpdateUnitRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.propertyService.UpdateUnit(c.Request.Context(), callerID, id, c.Param("unitNumber"), propertyapp.UpdateUnitRequest{
		Bedrooms:  req.Bedrooms,
		Bathrooms: req.Bathrooms,
		Rent:      req.Rent,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

// RemoveUnit godoc
// @ID           removePropertyUnit
// @Summary      Remove a unit
// @Description  Remove a vacant unit from a property
// @Tags         properties
// @Produce      json
// @Param        id         path string true "Property ID" format(uuid)
// @Param        unitNumber path string true "Unit number"
// @Success      200 {object} APIResponse[propertyapp.PropertyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /properties/{id}/units/{unitNumber} [delete]
func (h *PropertyHandler) RemoveUnit(c *gin.Context) {
	callerID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "property")
	if !ok {
		return
	}

	p, err := h.propertyService.RemoveUnit(c.Request.Context(), callerID, id, c.Param("unitNumber"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

func pageOrDefault(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func pageSizeOrDefault(size int) int {
	if size < 1 {
		return 20
	}
	return size
}
