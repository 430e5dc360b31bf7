package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
	"github.com/SscSPs/zimmr_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type craftsmanHandler struct {
	craftsmanService portssvc.CraftsmanSvcFacade
}

func registerCraftsmanRoutes(rg *gin.RouterGroup, craftsmanService portssvc.CraftsmanSvcFacade) {
	h := &craftsmanHandler{craftsmanService: craftsmanService}

	craftsmen := rg.Group("/craftsmen")
	{
		craftsmen.GET("/me", h.getOwnProfile)
		craftsmen.PUT("/me", h.updateOwnProfile)
		craftsmen.GET("/:id", h.getCraftsman)
	}
}

// getOwnProfile godoc
// @Summary Get own craftsman profile
// @Tags craftsmen
// @Produce json
// @Success 200 {object} dto.CraftsmanResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /craftsmen/me [get]
func (h *craftsmanHandler) getOwnProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	craftsman, err := h.craftsmanService.GetCraftsmanForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load craftsman profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToCraftsmanResponse(craftsman))
}

// updateOwnProfile godoc
// @Summary Update own craftsman profile
// @Tags craftsmen
// @Accept json
// @Produce json
// @Param profile body dto.UpdateCraftsmanRequest true "Profile fields"
// @Success 200 {object} dto.CraftsmanResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /craftsmen/me [put]
func (h *craftsmanHandler) updateOwnProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateCraftsmanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}
	craftsman, err := h.craftsmanService.UpdateCraftsmanForUser(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update craftsman profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToCraftsmanResponse(craftsman))
}

// getCraftsman godoc
// @Summary Get a craftsman profile
// @Tags craftsmen
// @Produce json
// @Param id path string true "Craftsman ID"
// @Success 200 {object} dto.CraftsmanResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /craftsmen/{id} [get]
func (h *craftsmanHandler) getCraftsman(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	craftsman, err := h.craftsmanService.GetCraftsmanByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to load craftsman profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToCraftsmanResponse(craftsman))
}
