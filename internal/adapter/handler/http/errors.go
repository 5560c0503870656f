package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/airrands/airrands-backend/internal/domain/errors"
)

// domainErrorStatus maps a typed domain error to the HTTP status it should
// produce. Unknown errors map to 500.
func domainErrorStatus(err error) int {
	switch e := err.(type) {
	case *domainErrors.PaymentError:
		switch e.Type {
		case domainErrors.ErrTypePaymentNotFound, domainErrors.ErrTypeOrderNotFound:
			return http.StatusNotFound
		case domainErrors.ErrTypePaymentAlreadyFinal, domainErrors.ErrTypeDuplicateReference, domainErrors.ErrTypeInvalidOrderStatus:
			return http.StatusConflict
		case domainErrors.ErrTypeInvalidDecision:
			return http.StatusBadRequest
		case domainErrors.ErrTypeGatewayFailed:
			return http.StatusBadGateway
		}
	case *domainErrors.VerificationError:
		switch e.Type {
		case domainErrors.ErrTypeVerificationNotFound:
			return http.StatusNotFound
		case domainErrors.ErrTypeVerificationAlreadyFinal:
			return http.StatusConflict
		case domainErrors.ErrTypeVerificationUserMissing:
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusInternalServerError
}

// respondError writes the standard error envelope for a failed operation.
func respondError(c echo.Context, logger *zap.Logger, err error) error {
	status := domainErrorStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("path", c.Request().URL.Path),
			zap.Error(err))
		return c.JSON(status, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}
