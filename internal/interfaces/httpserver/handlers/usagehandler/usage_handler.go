package usagehandler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"friendbot/companion-api/internal/domain/tokenusage"
	"friendbot/companion-api/internal/interfaces/httpserver/middlewares"
	"friendbot/companion-api/internal/interfaces/httpserver/responses"
	"friendbot/companion-api/internal/utils/platformerrors"
)

// UsageHandler handles token usage reporting requests.
type UsageHandler struct {
	usageService *tokenusage.Service
}

func NewUsageHandler(usageService *tokenusage.Service) *UsageHandler {
	return &UsageHandler{usageService: usageService}
}

// GetMyUsage returns the caller's token usage summary for a date range.
func (h *UsageHandler) GetMyUsage(c *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		responses.HandleErrorWithStatus(c, http.StatusUnauthorized, platformerrors.NewError(
			c.Request.Context(),
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeUnauthorized,
			"missing principal",
			nil,
			"d6f1a8c3-9e4b-4d27-b5a0-c2e7f9d4b816",
		))
		return
	}

	startDate, endDate := parseDateRange(c)

	summary, err := h.usageService.GetMyUsage(c.Request.Context(), principal.UserID, startDate, endDate)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func parseDateRange(c *gin.Context) (time.Time, time.Time) {
	now := time.Now()
	endDate := now
	startDate := now.AddDate(0, 0, -30)

	if startStr := c.Query("start_date"); startStr != "" {
		if parsed, err := time.Parse("2006-01-02", startStr); err == nil {
			startDate = parsed
		}
	}

	if endStr := c.Query("end_date"); endStr != "" {
		if parsed, err := time.Parse("2006-01-02", endStr); err == nil {
			endDate = parsed.Add(24*time.Hour - time.Second)
		}
	}

	return startDate, endDate
}
