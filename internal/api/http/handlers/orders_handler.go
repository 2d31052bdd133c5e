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

// OrdersHandler exposes order placement and management endpoints.
type OrdersHandler struct {
	service *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{service: orderService}
}

// Place POST /orders. Auth is optional; an authenticated caller becomes the
// order's owner for later ownership checks.
func (h *OrdersHandler) Place(c *fiber.Ctx) error {
	var req dto.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ServiceID == "" || req.Package == "" {
		return apperrors.NewValidationError("service_id and package required", nil)
	}
	if strings.TrimSpace(req.Customer.Name) == "" || strings.TrimSpace(req.Customer.Email) == "" {
		return apperrors.NewValidationError("customer name and email required", nil)
	}

	input := service.OrderCreateInput{
		Customer:      req.Customer,
		ServiceID:     req.ServiceID,
		Package:       req.Package,
		Requirements:  req.Requirements,
		BasePrice:     req.BasePrice,
		Features:      req.Features,
		Discount:      req.Discount,
		Currency:      req.Currency,
		Timeline:      req.Timeline,
		Communication: req.Communication,
		Source:        req.Source,
		Tags:          req.Tags,
		Notes:         req.Notes,
	}
	if principal, okAuth := auth.PrincipalFromContext(c); okAuth && principal.User != nil {
		input.CreatedBy = &principal.User.ID
	}

	order, err := h.service.Place(c.UserContext(), input)
	if err != nil {
		return err
	}
	return created(c, "order placed", orderSummary(order))
}

// List GET /orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	filter, page, limit := parseOrderQuery(c)
	orders, total, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.OrderSummary, 0, len(orders))
	for i := range orders {
		items = append(items, orderSummary(&orders[i]))
	}
	return okList(c, items, dto.NewPagination(page, limit, total))
}

// ListMine GET /orders/user/me.
func (h *OrdersHandler) ListMine(c *fiber.Ctx) error {
	principal := mustPrincipal(c)
	page, limit := parsePage(c)
	orders, total, err := h.service.ListForUser(c.UserContext(), principal.User.ID, limit, (page-1)*limit)
	if err != nil {
		return err
	}
	items := make([]dto.OrderSummary, 0, len(orders))
	for i := range orders {
		items = append(items, orderSummary(&orders[i]))
	}
	return okList(c, items, dto.NewPagination(page, limit, total))
}

// Get GET /orders/:id.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	principal := mustPrincipal(c)
	detail, err := h.service.Get(c.UserContext(), callerFrom(principal), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, orderDetail(detail))
}

// AddMessage POST /orders/:id/messages.
func (h *OrdersHandler) AddMessage(c *fiber.Ctx) error {
	principal := mustPrincipal(c)
	var req dto.OrderMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Message) == "" {
		return apperrors.NewValidationError("message required", nil)
	}
	msg, err := h.service.AddMessage(c.UserContext(), callerFrom(principal), c.Params("id"), req.Message)
	if err != nil {
		return err
	}
	return created(c, "message added", orderMessageResponse(msg))
}

// Update PUT /orders/:id.
func (h *OrdersHandler) Update(c *fiber.Ctx) error {
	principal := mustPrincipal(c)
	var req dto.UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.OrderUpdateInput{
		Customer:      req.Customer,
		Package:       req.Package,
		Requirements:  req.Requirements,
		BasePrice:     req.BasePrice,
		Features:      req.Features,
		Discount:      req.Discount,
		Currency:      req.Currency,
		Timeline:      req.Timeline,
		Communication: req.Communication,
		Payment:       req.Payment,
		Tags:          req.Tags,
		Notes:         req.Notes,
	}
	order, err := h.service.Update(c.UserContext(), c.Params("id"), input, principal.User.ID)
	if err != nil {
		return err
	}
	return okMessage(c, "order updated", orderSummary(order))
}

// UpdateStatus PATCH /orders/:id/status.
func (h *OrdersHandler) UpdateStatus(c *fiber.Ctx) error {
	principal := mustPrincipal(c)
	var req dto.OrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	order, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), req.Status, principal.User.ID)
	if err != nil {
		return err
	}
	return okMessage(c, "status updated", orderSummary(order))
}

// Assign PATCH /orders/:id/assign.
func (h *OrdersHandler) Assign(c *fiber.Ctx) error {
	principal := mustPrincipal(c)
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" {
		return apperrors.NewValidationError("user_id required", nil)
	}
	order, err := h.service.Assign(c.UserContext(), c.Params("id"), req.UserID, principal.User.ID)
	if err != nil {
		return err
	}
	return okMessage(c, "order assigned", orderSummary(order))
}

// Delete DELETE /orders/:id.
func (h *OrdersHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return okMessage(c, "order deleted", nil)
}

// Stats GET /orders/stats/overview.
func (h *OrdersHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return err
	}
	resp := dto.OrderStatsResponse{
		Total:         stats.Total,
		TotalRevenue:  stats.TotalRevenue,
		AvgOrderValue: stats.AvgOrderValue,
	}
	for _, row := range stats.ByStatus {
		resp.ByStatus = append(resp.ByStatus, dto.BreakdownRow{Key: row.Key, Count: row.Count, Revenue: row.Revenue})
	}
	for _, row := range stats.ByPriority {
		resp.ByPriority = append(resp.ByPriority, dto.BreakdownRow{Key: row.Key, Count: row.Count, Revenue: row.Revenue})
	}
	for _, row := range stats.MonthlySeries {
		resp.MonthlySeries = append(resp.MonthlySeries, dto.MonthRow{
			Year:    row.Year,
			Month:   row.Month,
			Count:   row.Count,
			Revenue: row.Revenue,
		})
	}
	return ok(c, resp)
}

func parseOrderQuery(c *fiber.Ctx) (repository.OrderFilter, int, int) {
	filter := repository.OrderFilter{}
	if status := c.Query("status"); status != "" {
		s := domain.OrderStatus(status)
		filter.Status = &s
	}
	if priority := c.Query("priority"); priority != "" {
		p := domain.Priority(priority)
		filter.Priority = &p
	}
	filter.ServiceID = strPtr(c.Query("service_id"))
	filter.AssignedTo = strPtr(c.Query("assigned_to"))
	filter.SearchTerm = strPtr(c.Query("search"))
	filter.SortBy, filter.SortDesc = sortOrder(c)

	page, limit := parsePage(c)
	filter.Limit = limit
	filter.Offset = (page - 1) * limit
	return filter, page, limit
}

func callerFrom(principal *auth.Principal) service.Caller {
	return service.Caller{ID: principal.User.ID, Role: principal.Role}
}

func orderSummary(order *domain.Order) dto.OrderSummary {
	return dto.OrderSummary{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerName:    order.Customer.Name,
		CustomerEmail:   order.Customer.Email,
		ServiceTitle:    order.ServiceDetails.Title,
		Package:         order.Package,
		Status:          order.Status,
		Priority:        order.Priority,
		TotalPrice:      order.Pricing.TotalPrice,
		TotalPaid:       order.TotalPaid(),
		RemainingAmount: order.RemainingAmount(),
		Currency:        order.Pricing.Currency,
		AssignedTo:      order.AssignedTo,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func orderDetail(detail *service.OrderDetail) dto.OrderDetailResponse {
	order := detail.Order
	msgs := make([]dto.OrderMessageResponse, 0, len(detail.Messages))
	for i := range detail.Messages {
		msgs = append(msgs, orderMessageResponse(&detail.Messages[i]))
	}
	return dto.OrderDetailResponse{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		Customer:        order.Customer,
		ServiceID:       order.ServiceID,
		ServiceDetails:  order.ServiceDetails,
		Package:         order.Package,
		Requirements:    order.Requirements,
		Pricing:         order.Pricing,
		Status:          order.Status,
		Priority:        order.Priority,
		Timeline:        order.Timeline,
		Communication:   order.Communication,
		Files:           order.Files,
		Payment:         order.Payment,
		TotalPaid:       order.TotalPaid(),
		RemainingAmount: order.RemainingAmount(),
		AssignedTo:      order.AssignedTo,
		Source:          order.Source,
		Tags:            order.Tags,
		Notes:           order.Notes,
		Messages:        msgs,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func orderMessageResponse(msg *domain.OrderMessage) dto.OrderMessageResponse {
	return dto.OrderMessageResponse{
		ID:        msg.ID,
		Sender:    msg.Sender,
		Message:   msg.Message,
		Read:      msg.Read,
		CreatedAt: msg.CreatedAt,
	}
}
