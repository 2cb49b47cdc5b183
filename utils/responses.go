package utils

import (
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Message sends a plain {message} body with the given status.
func Message(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
	})
}

// ValidationError sends the 400 body used by every validator:
// {message: "Validation failed: ...", errors: {field: reason}}.
func ValidationError(c *fiber.Ctx, errs map[string]string) error {
	msgs := make([]string, 0, len(errs))
	for _, field := range sortedKeys(errs) {
		msgs = append(msgs, errs[field])
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed: " + strings.Join(msgs, ", "),
		"errors":  errs,
	})
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
