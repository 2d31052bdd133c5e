package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lumenworks/agency-service/internal/api/dto"
	"github.com/lumenworks/agency-service/internal/repository"
)

// All responses share the {success, message?, data?, error?} envelope; the
// error half is rendered by the error-handling middleware.

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func okMessage(c *fiber.Ctx, message string, data any) error {
	return c.JSON(fiber.Map{"success": true, "message": message, "data": data})
}

func created(c *fiber.Ctx, message string, data any) error {
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "message": message, "data": data})
}

func okList(c *fiber.Ctx, items any, pagination dto.Pagination) error {
	return c.JSON(fiber.Map{"success": true, "data": items, "pagination": pagination})
}

// parsePage reads page/limit query parameters. The limit is normalized
// through the same window the repositories apply, so offsets and the
// pagination envelope line up with the rows a capped query returns.
func parsePage(c *fiber.Ctx) (page, limit int) {
	page = parseInt(c.Query("page"), 1)
	limit = repository.PageSize(parseInt(c.Query("limit"), 10))
	return page, limit
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func parseBool(val string) *bool {
	switch strings.ToLower(val) {
	case "true", "1":
		b := true
		return &b
	case "false", "0":
		b := false
		return &b
	}
	return nil
}

func strPtr(val string) *string {
	if val == "" {
		return nil
	}
	return &val
}

func sortOrder(c *fiber.Ctx) (sortBy string, desc bool) {
	return c.Query("sortBy"), strings.ToLower(c.Query("sortOrder", "desc")) != "asc"
}
