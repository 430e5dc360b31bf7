package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
	"github.com/SscSPs/zimmr_backend/internal/dto"
	"github.com/SscSPs/zimmr_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// publicSpaceHandler serves the token-authenticated customer portal.
type publicSpaceHandler struct {
	spaceService portssvc.CustomerSpaceSvcFacade
}

func registerPublicSpaceRoutes(api *gin.RouterGroup, spaceService portssvc.CustomerSpaceSvcFacade, publicLimiter *limiter.Limiter) {
	h := &publicSpaceHandler{spaceService: spaceService}

	public := api.Group("/public/spaces", middleware.RateLimit(publicLimiter))
	{
		public.GET("/:token", h.getPortal)
		public.POST("/:token/appointments", h.requestAppointment)
	}
}

// getPortal godoc
// @Summary Customer portal
// @Description Returns the customer, their appointments and their non-draft invoices and quotes
// @Tags public
// @Produce json
// @Param token path string true "Portal access token"
// @Success 200 {object} dto.CustomerPortalResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /public/spaces/{token} [get]
func (h *publicSpaceHandler) getPortal(c *gin.Context) {
	portal, err := h.spaceService.GetPortal(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err, "Failed to load customer portal")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerPortalResponse(portal))
}

// requestAppointment godoc
// @Summary Request an appointment
// @Description Creates a pending appointment for the portal's customer and notifies the craftsman
// @Tags public
// @Accept json
// @Produce json
// @Param token path string true "Portal access token"
// @Param appointment body dto.PublicAppointmentRequest true "Requested appointment"
// @Success 201 {object} dto.PublicAppointmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /public/spaces/{token}/appointments [post]
func (h *publicSpaceHandler) requestAppointment(c *gin.Context) {
	var req dto.PublicAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	appt, err := h.spaceService.RequestAppointment(c.Request.Context(), c.Param("token"), req)
	if err != nil {
		respondError(c, err, "Failed to request appointment")
		return
	}
	c.JSON(http.StatusCreated, dto.PublicAppointmentResponse{
		AppointmentID:   appt.AppointmentID,
		ScheduledAt:     appt.ScheduledAt,
		DurationMinutes: appt.DurationMinutes,
		Location:        appt.Location,
		ServiceType:     appt.ServiceType,
		Status:          appt.Status,
		ApprovalStatus:  appt.ApprovalStatus,
	})
}
