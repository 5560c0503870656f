package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/airrands/airrands-backend/internal/domain/dto"
	"github.com/airrands/airrands-backend/internal/middleware/auth"
	"github.com/airrands/airrands-backend/internal/usecase"
)

type VerificationHandler struct {
	verifications *usecase.VerificationService
	logger        *zap.Logger
}

func NewVerificationHandler(verifications *usecase.VerificationService, logger *zap.Logger) *VerificationHandler {
	return &VerificationHandler{
		verifications: verifications,
		logger:        logger,
	}
}

// Submit records a new identity document for admin review.
func (h *VerificationHandler) Submit(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req dto.SubmitVerificationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	verification, err := h.verifications.Submit(c.Request().Context(), user.UserID, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, verification)
}

// Get retrieves one verification record.
func (h *VerificationHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid verification id"})
	}

	verification, err := h.verifications.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, verification)
}

// ListPending returns the admin review queue.
func (h *VerificationHandler) ListPending(c echo.Context) error {
	limit, offset := pagination(c)
	verifications, err := h.verifications.ListPending(c.Request().Context(), limit, offset)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, verifications)
}

// Decide applies an admin approve/reject decision.
func (h *VerificationHandler) Decide(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid verification id"})
	}

	var req dto.DecisionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	verification, err := h.verifications.Decide(c.Request().Context(), id, req.Status, req.ReviewerNotes)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, verification)
}

// BulkDecide applies one decision to many verifications.
func (h *VerificationHandler) BulkDecide(c echo.Context) error {
	var req dto.BulkDecisionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	result := h.verifications.BulkDecide(c.Request().Context(), &req)
	return c.JSON(http.StatusOK, result)
}
