package handlers

import (
	"fmt"

	"github.com/dmitrijs2005/leaseportal/internal/server/http/middleware"
	"github.com/dmitrijs2005/leaseportal/internal/server/http/presenter"
	"github.com/dmitrijs2005/leaseportal/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

type FileHandler struct {
	portal *services.Portal
}

func NewFileHandler(portal *services.Portal) *FileHandler {
	return &FileHandler{portal: portal}
}

// List returns the repository listing.
func (h *FileHandler) List(c *fiber.Ctx) error {
	names, err := h.portal.ListFiles(c.Context(), middleware.Session(c))
	if err != nil {
		return writeError(c, h.portal, err)
	}

	resp := presenter.FilesResponse{Files: names}
	if len(names) == 0 {
		resp.Message = services.MsgNoFiles
	}
	return presenter.JSON(c, fiber.StatusOK, resp)
}

// Upload stores the multipart field "file" under its original name.
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, fiber.StatusBadRequest, "file is required")
	}

	f, err := fh.Open()
	if err != nil {
		return presenter.Error(c, fiber.StatusBadRequest, "failed to open uploaded file")
	}
	defer f.Close()

	if err := h.portal.UploadFile(c.Context(), middleware.Session(c), fh.Filename, f, fh.Size); err != nil {
		return writeError(c, h.portal, err)
	}

	return presenter.JSON(c, fiber.StatusCreated, presenter.MessageResponse{
		Message: fmt.Sprintf(services.MsgUploadSucceededTmpl, fh.Filename),
	})
}
