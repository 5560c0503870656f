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

type ErrandHandler struct {
	errands *usecase.ErrandService
	logger  *zap.Logger
}

func NewErrandHandler(errands *usecase.ErrandService, logger *zap.Logger) *ErrandHandler {
	return &ErrandHandler{
		errands: errands,
		logger:  logger,
	}
}

// Create posts a new errand and fans it out to online runners.
func (h *ErrandHandler) Create(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req dto.CreateErrandRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	errand, err := h.errands.Create(c.Request().Context(), user.UserID, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, errand)
}

// Get retrieves one errand.
func (h *ErrandHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid errand id"})
	}

	errand, err := h.errands.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if errand == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Errand not found"})
	}

	return c.JSON(http.StatusOK, errand)
}

// ListOpen returns errands awaiting a runner.
func (h *ErrandHandler) ListOpen(c echo.Context) error {
	limit, offset := pagination(c)
	errands, err := h.errands.ListOpen(c.Request().Context(), limit, offset)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, errands)
}
