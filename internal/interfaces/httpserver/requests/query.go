package requests

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"friendbot/companion-api/internal/domain/query"
	"friendbot/companion-api/internal/utils/platformerrors"
)

const maxPageSize = 100

// GetPaginationFromQuery parses optional limit/offset query parameters.
// The limit is clamped to maxPageSize to keep list endpoints bounded.
func GetPaginationFromQuery(c *gin.Context) (*query.Pagination, error) {
	pagination := &query.Pagination{}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return nil, platformerrors.NewError(c.Request.Context(), platformerrors.LayerHandler,
				platformerrors.ErrorTypeValidation, "invalid limit", err, "04aecd25-bd32-428b-864d-aeb7ecb06e53")
		}
		if limit > maxPageSize {
			limit = maxPageSize
		}
		pagination.Limit = &limit
	}

	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return nil, platformerrors.NewError(c.Request.Context(), platformerrors.LayerHandler,
				platformerrors.ErrorTypeValidation, "invalid offset", err, "a3e0ea22-afc6-45df-b686-a194868af415")
		}
		pagination.Offset = &offset
	}

	return pagination, nil
}
