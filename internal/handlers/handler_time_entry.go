package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
	"github.com/SscSPs/zimmr_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// timeEntryHandler handles HTTP requests for time tracking.
type timeEntryHandler struct {
	timeEntryService portssvc.TimeEntrySvcFacade
}

func registerTimeEntryRoutes(rg *gin.RouterGroup, timeEntryService portssvc.TimeEntrySvcFacade) {
	h := &timeEntryHandler{timeEntryService: timeEntryService}

	entries := rg.Group("/time-entries")
	{
		entries.POST("", h.createTimeEntry)
		entries.GET("", h.listTimeEntries)
		entries.GET("/:id", h.getTimeEntry)
		entries.PUT("/:id", h.updateTimeEntry)
		entries.DELETE("/:id", h.deleteTimeEntry)
	}
}

// createTimeEntry godoc
// @Summary Track time
// @Description Omit end_time to start a running timer; only one may run per craftsman
// @Tags time-entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateTimeEntryRequest true "Time entry"
// @Success 201 {object} dto.TimeEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /time-entries [post]
func (h *timeEntryHandler) createTimeEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}
	entry, err := h.timeEntryService.CreateTimeEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create time entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTimeEntryResponse(entry))
}

// listTimeEntries godoc
// @Summary List time entries
// @Description Newest first. Pass next_token from the previous page to continue.
// @Tags time-entries
// @Produce json
// @Param craftsman_id query string false "Craftsman (admins only)"
// @Param customer_id query string false "Customer"
// @Param appointment_id query string false "Appointment"
// @Param from query string false "Started on or after (YYYY-MM-DD)"
// @Param to query string false "Started on or before (YYYY-MM-DD)"
// @Param limit query int false "Limit" default(50)
// @Param next_token query string false "Pagination token"
// @Success 200 {object} dto.ListTimeEntriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /time-entries [get]
func (h *timeEntryHandler) listTimeEntries(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListTimeEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}
	entries, nextToken, err := h.timeEntryService.ListTimeEntries(c.Request.Context(), params, userID)
	if err != nil {
		respondError(c, err, "Failed to list time entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTimeEntriesResponse(entries, nextToken))
}

// getTimeEntry godoc
// @Summary Get a time entry
// @Tags time-entries
// @Produce json
// @Param id path string true "Time entry ID"
// @Success 200 {object} dto.TimeEntryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /time-entries/{id} [get]
func (h *timeEntryHandler) getTimeEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	entry, err := h.timeEntryService.GetTimeEntryByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve time entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry))
}

// updateTimeEntry godoc
// @Summary Update a time entry
// @Description Setting end_time stops a running timer
// @Tags time-entries
// @Accept json
// @Produce json
// @Param id path string true "Time entry ID"
// @Param entry body dto.UpdateTimeEntryRequest true "Fields to update"
// @Success 200 {object} dto.TimeEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /time-entries/{id} [put]
func (h *timeEntryHandler) updateTimeEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}
	entry, err := h.timeEntryService.UpdateTimeEntry(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update time entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry))
}

// deleteTimeEntry godoc
// @Summary Delete a time entry
// @Tags time-entries
// @Param id path string true "Time entry ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /time-entries/{id} [delete]
func (h *timeEntryHandler) deleteTimeEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.timeEntryService.DeleteTimeEntry(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete time entry")
		return
	}
	c.Status(http.StatusNoContent)
}
