package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
	"github.com/SscSPs/zimmr_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// reportingHandler serves business reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
	now              func() time.Time
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := &reportingHandler{reportingService: reportingService, now: time.Now}

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.getBusinessSummary)
	}
}

// getBusinessSummary godoc
// @Summary Business summary
// @Description Revenue, outstanding amounts, open quotes, appointment counts and tracked time for a date range
// @Tags reports
// @Produce json
// @Param craftsman_id query string false "Craftsman (admins only)"
// @Param from query string false "From date (YYYY-MM-DD), defaults to the first of the current month"
// @Param to query string false "To date, inclusive (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.BusinessSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getBusinessSummary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}

	today := h.now().UTC().Truncate(24 * time.Hour)
	from := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := today
	var err error
	if params.From != "" {
		if from, err = time.Parse(dateLayout, params.From); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid from date, expected YYYY-MM-DD"})
			return
		}
	}
	if params.To != "" {
		if to, err = time.Parse(dateLayout, params.To); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid to date, expected YYYY-MM-DD"})
			return
		}
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "to must not be before from"})
		return
	}

	summary, err := h.reportingService.GetBusinessSummary(c.Request.Context(), params.CraftsmanID, from, to.AddDate(0, 0, 1), userID)
	if err != nil {
		respondError(c, err, "Failed to build business summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToBusinessSummaryResponse(summary))
}
