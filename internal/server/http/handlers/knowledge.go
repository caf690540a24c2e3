package handlers

import (
	"github.com/dmitrijs2005/leaseportal/internal/server/http/presenter"
	"github.com/dmitrijs2005/leaseportal/internal/server/services"
	"github.com/dmitrijs2005/leaseportal/internal/server/sheet"
	"github.com/gofiber/fiber/v2"
)

// PortalHandler serves the knowledge-base selector, the chatbot and the
// reference sheet.
type PortalHandler struct {
	portal    *services.Portal
	sheetPath string
}

func NewPortalHandler(portal *services.Portal, sheetPath string) *PortalHandler {
	return &PortalHandler{portal: portal, sheetPath: sheetPath}
}

type selectTopicRequest struct {
	Topic string `json:"topic"`
}

type chatRequest struct {
	Message string `json:"message"`
}

func (h *PortalHandler) Topics(c *fiber.Ctx) error {
	return presenter.JSON(c, fiber.StatusOK, presenter.TopicsResponse{Topics: h.portal.Topics()})
}

func (h *PortalHandler) SelectTopic(c *fiber.Ctx) error {
	var req selectTopicRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, fiber.StatusBadRequest, "invalid JSON payload")
	}

	msg, err := h.portal.SelectTopic(req.Topic)
	if err != nil {
		return writeError(c, h.portal, err)
	}
	return presenter.JSON(c, fiber.StatusOK, presenter.MessageResponse{Message: msg})
}

// Chat echoes the message. An empty message gets no reply.
func (h *PortalHandler) Chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, fiber.StatusBadRequest, "invalid JSON payload")
	}

	reply, ok := h.portal.Chat(req.Message)
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return presenter.JSON(c, fiber.StatusOK, presenter.ChatResponse{Reply: reply})
}

// Sheet returns the formatted reference spreadsheet.
func (h *PortalHandler) Sheet(c *fiber.Ctx) error {
	s, err := sheet.Load(h.sheetPath)
	if err != nil {
		if statusFor(err) == fiber.StatusNotFound {
			return presenter.Error(c, fiber.StatusNotFound, "no reference sheet configured")
		}
		return writeError(c, h.portal, err)
	}
	return presenter.JSON(c, fiber.StatusOK, s)
}
