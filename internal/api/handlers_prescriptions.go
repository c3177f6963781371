package api

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shamaiem10/Vytal/internal/services"
)

const prescriptionFileField = "file"

func (handler *Handler) UploadPrescription(c *fiber.Ctx) error {
	header, err := c.FormFile(prescriptionFileField)
	if err != nil || header == nil || strings.TrimSpace(header.Filename) == "" {
		return apiError(c, fiber.StatusBadRequest, "No file uploaded")
	}

	file, err := header.Open()
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "could not read uploaded file")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "could not read uploaded file")
	}

	medicines, err := handler.prescriptions.Ingest(c.UserContext(), services.PrescriptionUpload{
		Filename: header.Filename,
		Content:  content,
	})
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":       "Prescription processed successfully",
		"prescriptions": medicines,
	})
}

func (handler *Handler) ListPrescriptions(c *fiber.Ctx) error {
	prescriptions, err := handler.prescriptions.List(c.UserContext())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(prescriptions)
}
