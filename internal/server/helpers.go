package server

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that the helper already wrote the HTTP response
// and the handler should just return nil.
var errResponseWritten = errors.New("response already written")

// parseID parses a positive integer route parameter. On failure it writes a
// 404 with the given field/message pair (the legacy not-found shape for the
// resource) and returns errResponseWritten.
func parseID(c *fiber.Ctx, param, field, message string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		if werr := c.Status(fiber.StatusNotFound).JSON(fiber.Map{field: message}); werr != nil {
			return 0, werr
		}
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parsePagination reads limit/offset query params with sane bounds.
func parsePagination(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 20)
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// currentUserID reads the authenticated user id stored by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// splitSkills turns the comma-separated skills string into a trimmed list,
// dropping empty segments.
func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
