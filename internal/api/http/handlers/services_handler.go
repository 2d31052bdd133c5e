package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lumenworks/agency-service/internal/api/dto"
	"github.com/lumenworks/agency-service/internal/auth"
	"github.com/lumenworks/agency-service/internal/domain"
	"github.com/lumenworks/agency-service/internal/repository"
	"github.com/lumenworks/agency-service/internal/service"
	apperrors "github.com/lumenworks/agency-service/pkg/util"
)

// ServicesHandler exposes the public catalog and its admin management
// endpoints.
type ServicesHandler struct {
	service *service.CatalogService
}

// NewServicesHandler constructs handler.
func NewServicesHandler(catalogService *service.CatalogService) *ServicesHandler {
	return &ServicesHandler{service: catalogService}
}

// List GET /services. Public callers only see active entries; admins see
// everything and may filter on the visibility flags.
func (h *ServicesHandler) List(c *fiber.Ctx) error {
	filter, page, limit := parseServiceQuery(c)
	if principal, okAuth := auth.PrincipalFromContext(c); !okAuth || !principal.User.IsAdmin() {
		active := true
		filter.IsActive = &active
	}
	services, total, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ServiceSummary, 0, len(services))
	for i := range services {
		items = append(items, serviceSummary(&services[i]))
	}
	return okList(c, items, dto.NewPagination(page, limit, total))
}

// GetBySlug GET /services/:slug. Bumps the view counter.
func (h *ServicesHandler) GetBySlug(c *fiber.Ctx) error {
	svc, err := h.service.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return ok(c, serviceDetail(svc))
}

// Create POST /services.
func (h *ServicesHandler) Create(c *fiber.Ctx) error {
	principal := mustPrincipal(c)
	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" || req.Category == "" {
		return apperrors.NewValidationError("title and category required", nil)
	}

	svc, err := h.service.Create(c.UserContext(), serviceInput(req), principal.User.ID)
	if err != nil {
		return err
	}
	return created(c, "service created", serviceDetail(svc))
}

// Update PUT /services/:id.
func (h *ServicesHandler) Update(c *fiber.Ctx) error {
	principal := mustPrincipal(c)
	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" || req.Category == "" {
		return apperrors.NewValidationError("title and category required", nil)
	}

	svc, err := h.service.Update(c.UserContext(), c.Params("id"), serviceInput(req), principal.User.ID)
	if err != nil {
		return err
	}
	return okMessage(c, "service updated", serviceDetail(svc))
}

// ToggleActive PATCH /services/:id/toggle-active.
func (h *ServicesHandler) ToggleActive(c *fiber.Ctx) error {
	principal := mustPrincipal(c)
	svc, err := h.service.ToggleActive(c.UserContext(), c.Params("id"), principal.User.ID)
	if err != nil {
		return err
	}
	return okMessage(c, "visibility toggled", serviceSummary(svc))
}

// ToggleFeatured PATCH /services/:id/toggle-featured.
func (h *ServicesHandler) ToggleFeatured(c *fiber.Ctx) error {
	principal := mustPrincipal(c)
	svc, err := h.service.ToggleFeatured(c.UserContext(), c.Params("id"), principal.User.ID)
	if err != nil {
		return err
	}
	return okMessage(c, "featured flag toggled", serviceSummary(svc))
}

// SetDisplayOrder PATCH /services/:id/order.
func (h *ServicesHandler) SetDisplayOrder(c *fiber.Ctx) error {
	principal := mustPrincipal(c)
	var req dto.DisplayOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	svc, err := h.service.SetDisplayOrder(c.UserContext(), c.Params("id"), req.DisplayOrder, principal.User.ID)
	if err != nil {
		return err
	}
	return okMessage(c, "display order updated", serviceSummary(svc))
}

// Delete DELETE /services/:id.
func (h *ServicesHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return okMessage(c, "service deleted", nil)
}

// Stats GET /services/stats/overview.
func (h *ServicesHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return err
	}
	resp := dto.ServiceStatsResponse{
		Total:          stats.Total,
		ActiveCount:    stats.ActiveCount,
		FeaturedCount:  stats.FeaturedCount,
		TotalViews:     stats.TotalViews,
		TotalInquiries: stats.TotalInquiries,
	}
	for _, row := range stats.ByCategory {
		resp.ByCategory = append(resp.ByCategory, dto.BreakdownRow{Key: row.Category, Count: row.Count})
	}
	return ok(c, resp)
}

func parseServiceQuery(c *fiber.Ctx) (repository.ServiceFilter, int, int) {
	filter := repository.ServiceFilter{}
	if category := c.Query("category"); category != "" {
		cat := domain.ServiceCategory(category)
		filter.Category = &cat
	}
	filter.IsActive = parseBool(c.Query("is_active"))
	filter.IsFeatured = parseBool(c.Query("is_featured"))
	filter.SearchTerm = strPtr(c.Query("search"))
	filter.SortBy, filter.SortDesc = sortOrder(c)

	page, limit := parsePage(c)
	filter.Limit = limit
	filter.Offset = (page - 1) * limit
	return filter, page, limit
}

func serviceInput(req dto.ServiceRequest) service.ServiceInput {
	return service.ServiceInput{
		Title:            req.Title,
		Slug:             req.Slug,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Category:         req.Category,
		Icon:             req.Icon,
		Image:            req.Image,
		Features:         req.Features,
		Benefits:         req.Benefits,
		Pricing:          req.Pricing,
		Process:          req.Process,
		Technologies:     req.Technologies,
		FAQs:             req.FAQs,
		Testimonials:     req.Testimonials,
		RelatedServices:  req.RelatedServices,
		IsActive:         req.IsActive,
		IsFeatured:       req.IsFeatured,
		DisplayOrder:     req.DisplayOrder,
	}
}

func serviceSummary(svc *domain.Service) dto.ServiceSummary {
	return dto.ServiceSummary{
		ID:               svc.ID,
		Title:            svc.Title,
		Slug:             svc.Slug,
		ShortDescription: svc.ShortDescription,
		Category:         svc.Category,
		Icon:             svc.Icon,
		Image:            svc.Image,
		IsActive:         svc.IsActive,
		IsFeatured:       svc.IsFeatured,
		DisplayOrder:     svc.DisplayOrder,
		AverageRating:    svc.AverageRating(),
		Views:            svc.Views,
		Inquiries:        svc.Inquiries,
		CreatedAt:        svc.CreatedAt,
	}
}

func serviceDetail(svc *domain.Service) dto.ServiceDetailResponse {
	return dto.ServiceDetailResponse{
		ID:               svc.ID,
		Title:            svc.Title,
		Slug:             svc.Slug,
		ShortDescription: svc.ShortDescription,
		Description:      svc.Description,
		Category:         svc.Category,
		Icon:             svc.Icon,
		Image:            svc.Image,
		Features:         svc.Features,
		Benefits:         svc.Benefits,
		Pricing:          svc.Pricing,
		Process:          svc.Process,
		Technologies:     svc.Technologies,
		FAQs:             svc.FAQs,
		Testimonials:     svc.Testimonials,
		RelatedServices:  svc.RelatedServices,
		AverageRating:    svc.AverageRating(),
		IsActive:         svc.IsActive,
		IsFeatured:       svc.IsFeatured,
		DisplayOrder:     svc.DisplayOrder,
		Views:            svc.Views,
		Inquiries:        svc.Inquiries,
		CreatedAt:        svc.CreatedAt,
		UpdatedAt:        svc.UpdatedAt,
	}
}
