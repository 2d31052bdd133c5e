package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func pagingProbeApp() *fiber.App {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		page, limit := parsePage(c)
		return c.JSON(fiber.Map{
			"page":   page,
			"limit":  limit,
			"offset": (page - 1) * limit,
		})
	})
	return app
}

func fetchPaging(t *testing.T, app *fiber.App, target string) (page, limit, offset int) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	if err != nil {
		t.Fatalf("request %s: %v", target, err)
	}
	defer resp.Body.Close()

	var body struct {
		Page   int `json:"page"`
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode %s: %v", target, err)
	}
	return body.Page, body.Limit, body.Offset
}

func TestParsePageDefaults(t *testing.T) {
	app := pagingProbeApp()

	page, limit, offset := fetchPaging(t, app, "/items")
	if page != 1 || limit != 10 || offset != 0 {
		t.Errorf("defaults = page %d limit %d offset %d, want 1/10/0", page, limit, offset)
	}
}

func TestParsePageClampsOversizedLimit(t *testing.T) {
	app := pagingProbeApp()

	_, limit, offset := fetchPaging(t, app, "/items?page=1&limit=500")
	if limit != 100 {
		t.Fatalf("limit = %d, want 100", limit)
	}
	if offset != 0 {
		t.Fatalf("offset = %d, want 0", offset)
	}

	// Page 2 must start right where page 1 ended, even when the caller asked
	// for more rows than the cap allows.
	_, limit2, offset2 := fetchPaging(t, app, "/items?page=2&limit=500")
	if limit2 != 100 {
		t.Fatalf("page 2 limit = %d, want 100", limit2)
	}
	if offset2 != offset+limit {
		t.Errorf("page 2 offset = %d, want %d (pages must be contiguous)", offset2, offset+limit)
	}
}

func TestParsePageInvalidValues(t *testing.T) {
	app := pagingProbeApp()

	page, limit, _ := fetchPaging(t, app, "/items?page=-3&limit=abc")
	if page != 1 {
		t.Errorf("page = %d, want 1 for a negative page", page)
	}
	if limit != 10 {
		t.Errorf("limit = %d, want 10 for a non-numeric limit", limit)
	}
}
