package handlers

import (
	"errors"

	"github.com/dmitrijs2005/leaseportal/internal/common"
	"github.com/dmitrijs2005/leaseportal/internal/server/http/presenter"
	"github.com/dmitrijs2005/leaseportal/internal/server/services"
	"github.com/dmitrijs2005/leaseportal/internal/server/sheet"
	"github.com/gofiber/fiber/v2"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrInvalidDomain),
		errors.Is(err, common.ErrPasswordMismatch),
		errors.Is(err, common.ErrInvalidFileName),
		errors.Is(err, common.ErrUnknownTopic):
		return fiber.StatusBadRequest
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, common.ErrNoRegisteredUsers),
		errors.Is(err, common.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, sheet.ErrMissingDocName):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func writeError(c *fiber.Ctx, portal *services.Portal, err error) error {
	return presenter.Error(c, statusFor(err), portal.Message(err))
}
