package responses

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"friendbot/companion-api/internal/infrastructure/logger"
	"friendbot/companion-api/internal/utils/platformerrors"
)

// ErrorDetail carries the machine-readable part of an error payload.
type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse is the envelope for every non-2xx response body.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// HandleError maps err onto an HTTP status derived from its error type
// and writes the JSON error envelope. Unknown errors become 500s with a
// generic message so internal detail never leaks to clients.
func HandleError(c *gin.Context, err error) {
	platformErr := platformerrors.GetPlatformError(err)
	if platformErr == nil {
		platformErr = platformerrors.AsError(c.Request.Context(), platformerrors.LayerHandler, err, "internal server error")
	}
	HandleErrorWithStatus(c, platformerrors.ErrorTypeToHTTPStatus(platformErr.Type), platformErr)
}

// HandleErrorWithStatus writes the error envelope with an explicit status.
func HandleErrorWithStatus(c *gin.Context, status int, err error) {
	log := logger.GetLogger()

	platformErr := platformerrors.GetPlatformError(err)
	if platformErr == nil {
		platformErr = platformerrors.AsError(c.Request.Context(), platformerrors.LayerHandler, err, "internal server error")
	}

	platformerrors.LogError(log, platformErr)

	message := platformErr.Message
	if status >= http.StatusInternalServerError {
		message = "internal server error"
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorDetail{
			Code:      errorTypeToCode(platformErr.Type),
			Message:   message,
			RequestID: platformErr.GetRequestID(),
		},
	})
}

func errorTypeToCode(errorType platformerrors.ErrorType) string {
	return strings.ToLower(string(errorType))
}
