package errors

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

func HandleError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	if te, ok := err.(*TaskError); ok {
		if te.Err != nil {
			log.Printf("Task error [%s]: %v", te.Code, te.Err)
		}

		var status int
		switch te.Code {
		case "not_found":
			status = fiber.StatusNotFound
		case "bad_upload", "invalid_selection":
			status = fiber.StatusBadRequest
		case "invalid_state":
			status = fiber.StatusConflict
		default:
			status = fiber.StatusInternalServerError
		}

		return c.Status(status).JSON(fiber.Map{
			"error":   te.Code,
			"message": te.Message,
		})
	}

	log.Printf("Unexpected error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "internal_error",
		"message": "Server error",
	})
}
