package journalhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"friendbot/companion-api/internal/domain/journal"
	"friendbot/companion-api/internal/infrastructure/metrics"
	"friendbot/companion-api/internal/interfaces/httpserver/middlewares"
	"friendbot/companion-api/internal/interfaces/httpserver/requests"
	journalrequests "friendbot/companion-api/internal/interfaces/httpserver/requests/journal"
	"friendbot/companion-api/internal/interfaces/httpserver/responses"
	journalresponses "friendbot/companion-api/internal/interfaces/httpserver/responses/journal"
	"friendbot/companion-api/internal/utils/platformerrors"
)

const defaultSimilarLimit = 5

// JournalHandler handles journal entry requests.
type JournalHandler struct {
	journalService *journal.Service
	validate       *validator.Validate
}

func NewJournalHandler(journalService *journal.Service) *JournalHandler {
	return &JournalHandler{
		journalService: journalService,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
	}
}

func principalID(c *gin.Context) (uint, error) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		return 0, platformerrors.NewError(
			c.Request.Context(),
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeUnauthorized,
			"missing principal",
			nil,
			"8b1d4f7c-2a9e-4c53-b6d0-e5f8a2c9d361",
		)
	}
	return principal.UserID, nil
}

// Create stores a new journal entry for the caller.
func (h *JournalHandler) Create(c *gin.Context) {
	userID, err := principalID(c)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	var req journalrequests.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleError(c, platformerrors.NewError(
			c.Request.Context(),
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeValidation,
			"invalid journal payload",
			err,
			"5e8c2a9f-7b4d-4e16-a3c0-d9f6b1e4a728",
		))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		responses.HandleError(c, platformerrors.NewError(
			c.Request.Context(),
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeValidation,
			"invalid journal tags",
			err,
			"c7e3f9a2-1b85-4d60-94c3-e8a5d2f7b019",
		))
		return
	}

	entry, err := h.journalService.Create(c.Request.Context(), userID, journal.CreateInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	metrics.JournalsCreatedTotal.Inc()
	c.JSON(http.StatusCreated, journalresponses.NewJournalResponse(entry))
}

// Get returns one entry owned by the caller.
func (h *JournalHandler) Get(c *gin.Context) {
	userID, err := principalID(c)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	entry, err := h.journalService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, journalresponses.NewJournalResponse(entry))
}

// List returns the caller's entries, optionally filtered by keyword.
func (h *JournalHandler) List(c *gin.Context) {
	userID, err := principalID(c)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	pagination, err := requests.GetPaginationFromQuery(c)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	entries, total, err := h.journalService.List(c.Request.Context(), userID, c.Query("keyword"), c.Query("tag"), pagination)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, journalresponses.NewJournalListResponse(entries, total))
}

// Update applies partial mutations to one entry.
func (h *JournalHandler) Update(c *gin.Context) {
	userID, err := principalID(c)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	var req journalrequests.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleError(c, platformerrors.NewError(
			c.Request.Context(),
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeValidation,
			"invalid journal payload",
			err,
			"f3b7d1e9-4a2c-4857-b0e6-c5a9f2d8b164",
		))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		responses.HandleError(c, platformerrors.NewError(
			c.Request.Context(),
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeValidation,
			"invalid journal tags",
			err,
			"e1d8b4f6-3a29-4c75-b0d2-f5c7a9e3d148",
		))
		return
	}

	entry, err := h.journalService.Update(c.Request.Context(), userID, c.Param("id"), journal.UpdateInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, journalresponses.NewJournalResponse(entry))
}

// Delete removes one entry owned by the caller.
func (h *JournalHandler) Delete(c *gin.Context) {
	userID, err := principalID(c)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	if err := h.journalService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		responses.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Similar returns entries close in meaning to the given text.
func (h *JournalHandler) Similar(c *gin.Context) {
	userID, err := principalID(c)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	var req journalrequests.SimilarJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleError(c, platformerrors.NewError(
			c.Request.Context(),
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeValidation,
			"invalid similarity payload",
			err,
			"a9c4e7f1-6d8b-4f23-95a0-b3e6d1c8f542",
		))
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultSimilarLimit
	}

	entries, err := h.journalService.Similar(c.Request.Context(), userID, req.Text, limit)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, journalresponses.NewJournalListResponse(entries, int64(len(entries))))
}
