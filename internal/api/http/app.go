package http

import (
	"github.com/gofiber/fiber/v2"
)

// NewApp builds a fiber application with the shared error handler.
func NewApp(name string) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      name,
		ErrorHandler: ErrorHandler,
	})
}
