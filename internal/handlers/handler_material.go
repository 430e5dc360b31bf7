package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
	"github.com/SscSPs/zimmr_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// materialHandler handles HTTP requests for the material catalogue.
type materialHandler struct {
	materialService portssvc.MaterialSvcFacade
}

func registerMaterialRoutes(rg *gin.RouterGroup, materialService portssvc.MaterialSvcFacade) {
	h := &materialHandler{materialService: materialService}

	materials := rg.Group("/materials")
	{
		materials.POST("", h.createMaterial)
		materials.GET("", h.listMaterials)
		materials.GET("/:id", h.getMaterial)
		materials.PUT("/:id", h.updateMaterial)
		materials.DELETE("/:id", h.deactivateMaterial)
	}
}

// createMaterial godoc
// @Summary Create a material
// @Tags materials
// @Accept json
// @Produce json
// @Param material body dto.CreateMaterialRequest true "Material details"
// @Success 201 {object} dto.MaterialResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /materials [post]
func (h *materialHandler) createMaterial(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}
	material, err := h.materialService.CreateMaterial(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create material")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMaterialResponse(material))
}

// listMaterials godoc
// @Summary List materials
// @Tags materials
// @Produce json
// @Param craftsman_id query string false "Craftsman (admins only)"
// @Param search query string false "Matches name or description"
// @Param include_inactive query bool false "Include deactivated materials"
// @Param limit query int false "Limit" default(100)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListMaterialsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /materials [get]
func (h *materialHandler) listMaterials(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListMaterialsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}
	materials, err := h.materialService.ListMaterials(c.Request.Context(), params, userID)
	if err != nil {
		respondError(c, err, "Failed to list materials")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMaterialsResponse(materials))
}

// getMaterial godoc
// @Summary Get a material
// @Tags materials
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} dto.MaterialResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /materials/{id} [get]
func (h *materialHandler) getMaterial(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	material, err := h.materialService.GetMaterialByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve material")
		return
	}
	c.JSON(http.StatusOK, dto.ToMaterialResponse(material))
}

// updateMaterial godoc
// @Summary Update a material
// @Tags materials
// @Accept json
// @Produce json
// @Param id path string true "Material ID"
// @Param material body dto.UpdateMaterialRequest true "Fields to update"
// @Success 200 {object} dto.MaterialResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /materials/{id} [put]
func (h *materialHandler) updateMaterial(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}
	material, err := h.materialService.UpdateMaterial(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update material")
		return
	}
	c.JSON(http.StatusOK, dto.ToMaterialResponse(material))
}

// deactivateMaterial godoc
// @Summary Deactivate a material
// @Description Materials are never hard-deleted; past appointments keep referencing them
// @Tags materials
// @Param id path string true "Material ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /materials/{id} [delete]
func (h *materialHandler) deactivateMaterial(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.materialService.DeactivateMaterial(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to deactivate material")
		return
	}
	c.Status(http.StatusNoContent)
}
