package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
	"github.com/SscSPs/zimmr_backend/internal/dto"
	"github.com/SscSPs/zimmr_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// appointmentHandler handles HTTP requests related to appointments and their workflow.
type appointmentHandler struct {
	appointmentService portssvc.AppointmentSvcFacade
	invoiceService     portssvc.InvoiceSvcFacade
}

func registerAppointmentRoutes(rg *gin.RouterGroup, appointmentService portssvc.AppointmentSvcFacade, invoiceService portssvc.InvoiceSvcFacade) {
	h := &appointmentHandler{appointmentService: appointmentService, invoiceService: invoiceService}

	appointments := rg.Group("/appointments")
	{
		appointments.POST("", h.createAppointment)
		appointments.GET("", h.listAppointments)
		appointments.GET("/:id", h.getAppointment)
		appointments.PUT("/:id", h.updateAppointment)
		appointments.DELETE("/:id", h.deleteAppointment)

		appointments.PUT("/:id/approve", h.approveAppointment)
		appointments.PUT("/:id/reject", h.rejectAppointment)
		appointments.PUT("/:id/complete", h.completeAppointment)
		appointments.PUT("/:id/cancel", h.cancelAppointment)
		appointments.POST("/:id/invoice", h.createInvoiceFromAppointment)
	}
}

// createAppointment godoc
// @Summary Schedule an appointment
// @Description Appointments created by a craftsman start as approved
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointment body dto.CreateAppointmentRequest true "Appointment details"
// @Success 201 {object} dto.AppointmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /appointments [post]
func (h *appointmentHandler) createAppointment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	appt, err := h.appointmentService.CreateAppointment(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create appointment")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Appointment created",
		slog.String("appointment_id", appt.AppointmentID),
		slog.String("craftsman_id", appt.CraftsmanID))
	c.JSON(http.StatusCreated, dto.ToAppointmentResponse(appt))
}

// listAppointments godoc
// @Summary List appointments
// @Tags appointments
// @Produce json
// @Param craftsman_id query string false "Craftsman (admins only)"
// @Param customer_id query string false "Customer"
// @Param status query string false "scheduled, completed or cancelled"
// @Param approval_status query string false "pending, approved or rejected"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date, inclusive (YYYY-MM-DD)"
// @Param limit query int false "Limit" default(100)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListAppointmentsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /appointments [get]
func (h *appointmentHandler) listAppointments(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListAppointmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}

	appointments, err := h.appointmentService.ListAppointments(c.Request.Context(), params, userID)
	if err != nil {
		respondError(c, err, "Failed to list appointments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAppointmentsResponse(appointments))
}

// getAppointment godoc
// @Summary Get an appointment
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /appointments/{id} [get]
func (h *appointmentHandler) getAppointment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	appt, err := h.appointmentService.GetAppointmentByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve appointment")
		return
	}
	c.JSON(http.StatusOK, dto.ToAppointmentResponse(appt))
}

// updateAppointment godoc
// @Summary Update an appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param appointment body dto.UpdateAppointmentRequest true "Fields to update"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /appointments/{id} [put]
func (h *appointmentHandler) updateAppointment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}
	appt, err := h.appointmentService.UpdateAppointment(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update appointment")
		return
	}
	c.JSON(http.StatusOK, dto.ToAppointmentResponse(appt))
}

// deleteAppointment godoc
// @Summary Delete an appointment
// @Tags appointments
// @Param id path string true "Appointment ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /appointments/{id} [delete]
func (h *appointmentHandler) deleteAppointment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.appointmentService.DeleteAppointment(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete appointment")
		return
	}
	c.Status(http.StatusNoContent)
}

// approveAppointment godoc
// @Summary Approve a requested appointment
// @Description Notifies the customer by e-mail when they have an address
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /appointments/{id}/approve [put]
func (h *appointmentHandler) approveAppointment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	appt, err := h.appointmentService.ApproveAppointment(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to approve appointment")
		return
	}
	c.JSON(http.StatusOK, dto.ToAppointmentResponse(appt))
}

// rejectAppointment godoc
// @Summary Reject a requested appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param reason body dto.RejectAppointmentRequest false "Reason shown to the customer"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /appointments/{id}/reject [put]
func (h *appointmentHandler) rejectAppointment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.RejectAppointmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err, "request format")
			return
		}
	}
	appt, err := h.appointmentService.RejectAppointment(c.Request.Context(), c.Param("id"), req.Reason, userID)
	if err != nil {
		respondError(c, err, "Failed to reject appointment")
		return
	}
	c.JSON(http.StatusOK, dto.ToAppointmentResponse(appt))
}

// completeAppointment godoc
// @Summary Complete an appointment
// @Description Records the final price and the materials used
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param completion body dto.CompleteAppointmentRequest false "Final price and materials"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /appointments/{id}/complete [put]
func (h *appointmentHandler) completeAppointment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CompleteAppointmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err, "request format")
			return
		}
	}
	appt, err := h.appointmentService.CompleteAppointment(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to complete appointment")
		return
	}
	c.JSON(http.StatusOK, dto.ToAppointmentResponse(appt))
}

// cancelAppointment godoc
// @Summary Cancel an appointment
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /appointments/{id}/cancel [put]
func (h *appointmentHandler) cancelAppointment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	appt, err := h.appointmentService.CancelAppointment(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to cancel appointment")
		return
	}
	c.JSON(http.StatusOK, dto.ToAppointmentResponse(appt))
}

// createInvoiceFromAppointment godoc
// @Summary Invoice a completed appointment
// @Description Creates a pending invoice from the service price and the materials used
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /appointments/{id}/invoice [post]
func (h *appointmentHandler) createInvoiceFromAppointment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	invoice, err := h.invoiceService.CreateInvoiceFromAppointment(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to create invoice")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}
