package handlers

import (
	"errors"

	apperrors "btcwallet/internal/errors"
	"btcwallet/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	codeInternal = "INTERNAL_ERROR"
	codeNotFound = "NOT_FOUND"
)

var statusByCode = map[string]int{
	apperrors.ErrUserNotFound.Code:              fiber.StatusNotFound,
	apperrors.ErrWalletNotFound.Code:            fiber.StatusNotFound,
	apperrors.ErrSourceWalletNotFound.Code:      fiber.StatusNotFound,
	apperrors.ErrDestinationWalletNotFound.Code: fiber.StatusNotFound,
	apperrors.ErrWalletLimitReached.Code:        fiber.StatusForbidden,
	apperrors.ErrIncorrectAPIKey.Code:           fiber.StatusForbidden,
	apperrors.ErrNotThisUsersWallet.Code:        fiber.StatusForbidden,
	apperrors.ErrNotEnoughAmount.Code:           fiber.StatusConflict,
	apperrors.ErrUnsupportedCurrency.Code:       fiber.StatusBadGateway,
	apperrors.ErrIncorrectAdminKey.Code:         fiber.StatusUnauthorized,
	apperrors.ErrInvalidAmount.Code:             fiber.StatusBadRequest,
	apperrors.ErrInvalidRequest.Code:            fiber.StatusBadRequest,
}

// ErrorFormatter turns service errors into HTTP responses. Domain errors get
// their fixed status and message; everything else is logged and hidden
// behind a 500.
type ErrorFormatter struct {
	log logrus.FieldLogger
}

func NewErrorFormatter(log logrus.FieldLogger) *ErrorFormatter {
	return &ErrorFormatter{log: log}
}

// StatusFor returns the HTTP status for a domain code.
func StatusFor(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

func (f *ErrorFormatter) Respond(c *fiber.Ctx, err error) error {
	if de, ok := apperrors.AsDomain(err); ok {
		status := StatusFor(de.Code)
		if status == fiber.StatusInternalServerError {
			f.log.WithField("code", de.Code).Error("unmapped domain error")
		}
		return utils.Error(c, status, de.Code, de.Message)
	}

	f.log.WithError(err).WithField("path", c.Path()).Error("internal error")
	return utils.Error(c, fiber.StatusInternalServerError, codeInternal, "internal server error")
}

// Handler is a fiber.ErrorHandler for errors that escape the handlers,
// such as unknown routes and recovered panics.
func (f *ErrorFormatter) Handler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := codeInternal
		switch {
		case fe.Code == fiber.StatusNotFound:
			code = codeNotFound
		case fe.Code < fiber.StatusInternalServerError:
			code = apperrors.ErrInvalidRequest.Code
		}
		return utils.Error(c, fe.Code, code, fe.Message)
	}
	return f.Respond(c, err)
}

func invalidRequest(c *fiber.Ctx, message string) error {
	return utils.Error(c, fiber.StatusBadRequest, apperrors.ErrInvalidRequest.Code, message)
}
