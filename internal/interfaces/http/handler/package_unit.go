package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/stocktrack/backend/internal/application/catalog"
)

// PackageUnitHandler handles package unit API endpoints
type PackageUnitHandler struct {
	BaseHandler
	unitService *catalogapp.PackageUnitService
}

// NewPackageUnitHandler creates a new PackageUnitHandler
func NewPackageUnitHandler(unitService *catalogapp.PackageUnitService) *PackageUnitHandler {
	return &PackageUnitHandler{unitService: unitService}
}

// Create adds a package unit to a product
func (h *PackageUnitHandler) Create(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.CreatePackageUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	unit, err := h.unitService.Create(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, unit)
}

// Update updates a package unit
func (h *PackageUnitHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid unit ID")
		return
	}

	var req catalogapp.UpdatePackageUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	unit, err := h.unitService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, unit)
}

// List returns all package units of a product
func (h *PackageUnitHandler) List(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	units, err := h.unitService.List(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, units)
}

// Delete removes a package unit
func (h *PackageUnitHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid unit ID")
		return
	}

	if err := h.unitService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
