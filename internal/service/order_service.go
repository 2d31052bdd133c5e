package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lumenworks/agency-service/internal/domain"
	"github.com/lumenworks/agency-service/internal/events"
	"github.com/lumenworks/agency-service/internal/persistence"
	"github.com/lumenworks/agency-service/internal/repository"
	apperrors "github.com/lumenworks/agency-service/pkg/util"
)

// Caller identifies who is invoking an order operation.
type Caller struct {
	ID   string
	Role domain.Role
}

// IsAdmin reports whether the caller may bypass ownership checks.
func (c Caller) IsAdmin() bool {
	return c.Role == domain.RoleAdmin
}

// OrderService coordinates order workflows.
type OrderService struct {
	orders     repository.OrderRepository
	messages   repository.OrderMessageRepository
	services   repository.ServiceRepository
	users      repository.UserRepository
	sequence   *persistence.OrderSequence
	dispatcher events.Dispatcher
	now        func() time.Time
}

// OrderDependencies bundles repositories for the order service.
type OrderDependencies struct {
	OrderRepo   repository.OrderRepository
	MessageRepo repository.OrderMessageRepository
	ServiceRepo repository.ServiceRepository
	UserRepo    repository.UserRepository
	Sequence    *persistence.OrderSequence
	Dispatcher  events.Dispatcher
	Now         func() time.Time
}

// OrderCreateInput describes the order placement payload.
type OrderCreateInput struct {
	Customer      domain.Customer
	ServiceID     string
	Package       string
	Requirements  domain.Requirements
	BasePrice     float64
	Features      []domain.PricedFeature
	Discount      float64
	Currency      string
	Timeline      domain.OrderTimeline
	Communication domain.Communication
	Source        domain.ContactSource
	Tags          []string
	Notes         *string
	CreatedBy     *string
}

// OrderUpdateInput describes admin edits to an order.
type OrderUpdateInput struct {
	Customer      domain.Customer
	Package       string
	Requirements  domain.Requirements
	BasePrice     float64
	Features      []domain.PricedFeature
	Discount      float64
	Currency      string
	Timeline      domain.OrderTimeline
	Communication domain.Communication
	Payment       domain.Payment
	Tags          []string
	Notes         *string
}

// OrderDetail is the read-side projection of an order with its thread.
type OrderDetail struct {
	Order    *domain.Order
	Messages []domain.OrderMessage
}

// NewOrderService constructs the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &OrderService{
		orders:     deps.OrderRepo,
		messages:   deps.MessageRepo,
		services:   deps.ServiceRepo,
		users:      deps.UserRepo,
		sequence:   deps.Sequence,
		dispatcher: deps.Dispatcher,
		now:        now,
	}
}

// Place creates an order. The order number is allocated exactly once here,
// from an atomic per-month sequence, and is immutable afterwards. The
// ordered service's title/slug/category are denormalized into the order as a
// point-in-time snapshot.
func (s *OrderService) Place(ctx context.Context, input OrderCreateInput) (*domain.Order, error) {
	svc, err := s.services.GetByID(ctx, input.ServiceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("referenced service does not exist", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if !svc.IsActive {
		return nil, apperrors.NewValidationError("service is not available for ordering", nil)
	}
	if input.Discount < 0 || input.Discount > 100 {
		return nil, apperrors.NewValidationError("discount must be between 0 and 100", nil)
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	now := s.now()
	number, err := s.allocateOrderNumber(ctx, now)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	order := &domain.Order{
		OrderNumber: number,
		Customer:    input.Customer,
		ServiceID:   svc.ID,
		ServiceDetails: domain.ServiceSnapshot{
			Title:    svc.Title,
			Slug:     svc.Slug,
			Category: string(svc.Category),
		},
		Package:      input.Package,
		Requirements: input.Requirements,
		Pricing: domain.Pricing{
			BasePrice:          input.BasePrice,
			AdditionalFeatures: input.Features,
			Discount:           input.Discount,
			TotalPrice:         computeTotalPrice(input.BasePrice, input.Features, input.Discount),
			Currency:           currency,
		},
		Status:        domain.OrderStatusPending,
		Priority:      domain.PriorityMedium,
		Timeline:      input.Timeline,
		Communication: input.Communication,
		Payment:       domain.Payment{Status: domain.PaymentStatusPending},
		CreatedBy:     input.CreatedBy,
		Source:        input.Source,
		Tags:          input.Tags,
		Notes:         input.Notes,
	}
	if order.Source == "" {
		order.Source = domain.SourceWebsite
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventOrderCreated,
		EntityID: order.ID,
		Actor:    actorFromCreator(input.CreatedBy),
		Payload: events.OrderCreatedPayload{
			OrderNumber:   order.OrderNumber,
			ServiceTitle:  order.ServiceDetails.Title,
			Package:       order.Package,
			TotalPrice:    order.Pricing.TotalPrice,
			CustomerEmail: order.Customer.Email,
		},
	})
	return order, nil
}

// ListForUser returns the caller's own orders, newest first.
func (s *OrderService) ListForUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, int64, error) {
	filter := repository.OrderFilter{
		CreatedBy: &userID,
		SortBy:    "created_at",
		SortDesc:  true,
		Limit:     limit,
		Offset:    offset,
	}
	items, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return items, total, nil
}

// List returns a filtered admin page of orders plus the total count.
func (s *OrderService) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int64, error) {
	items, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return items, total, nil
}

// Get fetches one order with its message thread, enforcing ownership for
// non-admin callers. Counterparty messages are flagged read on fetch.
func (s *OrderService) Get(ctx context.Context, caller Caller, orderID string) (*OrderDetail, error) {
	order, err := s.getOwned(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}

	counterparty := domain.SenderAdmin
	if caller.IsAdmin() {
		counterparty = domain.SenderCustomer
	}
	_ = s.messages.MarkRead(ctx, order.ID, counterparty)

	msgs, err := s.messages.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &OrderDetail{Order: order, Messages: msgs}, nil
}

// AddMessage appends to the order thread. The sender role is recorded from
// the caller's role at append time.
func (s *OrderService) AddMessage(ctx context.Context, caller Caller, orderID, body string) (*domain.OrderMessage, error) {
	order, err := s.getOwned(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}

	sender := domain.SenderCustomer
	if caller.IsAdmin() {
		sender = domain.SenderAdmin
	}
	msg := &domain.OrderMessage{
		OrderID: order.ID,
		Sender:  sender,
		Message: strings.TrimSpace(body),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.touch(ctx, order, caller.ID); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventOrderMessageAdded,
		EntityID: order.ID,
		Actor:    events.Actor{UserID: caller.ID, Role: caller.Role},
		Payload: events.OrderMessageAddedPayload{
			OrderNumber: order.OrderNumber,
			MessageID:   msg.ID,
			Sender:      msg.Sender,
			BodyPreview: preview(msg.Message, 120),
		},
	})
	return msg, nil
}

// Update applies admin edits. The order number, snapshot and creator are
// immutable; the total price is recomputed from the submitted pricing parts.
func (s *OrderService) Update(ctx context.Context, id string, input OrderUpdateInput, updatedBy string) (*domain.Order, error) {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Discount < 0 || input.Discount > 100 {
		return nil, apperrors.NewValidationError("discount must be between 0 and 100", nil)
	}

	currency := input.Currency
	if currency == "" {
		currency = order.Pricing.Currency
	}

	order.Customer = input.Customer
	order.Package = input.Package
	order.Requirements = input.Requirements
	order.Pricing = domain.Pricing{
		BasePrice:          input.BasePrice,
		AdditionalFeatures: input.Features,
		Discount:           input.Discount,
		TotalPrice:         computeTotalPrice(input.BasePrice, input.Features, input.Discount),
		Currency:           currency,
	}
	order.Timeline = input.Timeline
	order.Communication = input.Communication
	order.Payment = input.Payment
	order.Tags = input.Tags
	order.Notes = input.Notes
	order.UpdatedBy = &updatedBy

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, apperrors.MapError(err)
	}
	return order, nil
}

// UpdateStatus overwrites the status. Any state is reachable from any state;
// actual start/end dates are stamped the first time work starts or completes.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, updatedBy string) (*domain.Order, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": status})
	}
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := order.Status
	order.Status = status
	order.UpdatedBy = &updatedBy

	now := s.now()
	if status == domain.OrderStatusInProgress && order.Timeline.ActualStart == nil {
		order.Timeline.ActualStart = &now
	}
	if status == domain.OrderStatusCompleted && order.Timeline.ActualEnd == nil {
		order.Timeline.ActualEnd = &now
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventOrderStatusChanged,
		EntityID: order.ID,
		Actor:    events.Actor{UserID: updatedBy, Role: domain.RoleAdmin},
		Payload: events.OrderStatusChangedPayload{
			OrderNumber: order.OrderNumber,
			OldStatus:   oldStatus,
			NewStatus:   status,
		},
	})
	return order, nil
}

// Assign sets the owning admin for an order.
func (s *OrderService) Assign(ctx context.Context, id, assigneeID, updatedBy string) (*domain.Order, error) {
	if _, err := s.users.GetByID(ctx, assigneeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("assignee", map[string]any{"user_id": assigneeID})
		}
		return nil, apperrors.MapError(err)
	}
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	order.AssignedTo = &assigneeID
	order.UpdatedBy = &updatedBy
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventOrderAssigned,
		EntityID: order.ID,
		Actor:    events.Actor{UserID: updatedBy, Role: domain.RoleAdmin},
		Payload: events.OrderAssignedPayload{
			OrderNumber: order.OrderNumber,
			AssignedTo:  order.AssignedTo,
		},
	})
	return order, nil
}

// Delete removes an order permanently.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("order", map[string]any{"order_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// Stats returns the reporting rollup for orders.
func (s *OrderService) Stats(ctx context.Context) (*repository.OrderStats, error) {
	stats, err := s.orders.Stats(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return stats, nil
}

func (s *OrderService) allocateOrderNumber(ctx context.Context, now time.Time) (string, error) {
	from, to := domain.MonthWindow(now)
	seed, err := s.orders.CountCreatedBetween(ctx, from, to)
	if err != nil {
		return "", err
	}
	seq := seed + 1
	if s.sequence != nil {
		seq, err = s.sequence.Next(ctx, domain.MonthBucket(now), seed)
		if err != nil {
			return "", err
		}
	}
	return domain.FormatOrderNumber(now, seq), nil
}

func (s *OrderService) getOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("order", map[string]any{"order_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return order, nil
}

// getOwned enforces the ownership rule: non-admin callers may only act on
// orders they created.
func (s *OrderService) getOwned(ctx context.Context, caller Caller, id string) (*domain.Order, error) {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.IsAdmin() {
		return order, nil
	}
	if order.CreatedBy == nil || *order.CreatedBy != caller.ID {
		return nil, apperrors.NewForbidden("access denied")
	}
	return order, nil
}

func (s *OrderService) touch(ctx context.Context, order *domain.Order, userID string) error {
	order.UpdatedBy = &userID
	if err := s.orders.Update(ctx, order); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *OrderService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func computeTotalPrice(base float64, features []domain.PricedFeature, discount float64) float64 {
	subtotal := base
	for _, f := range features {
		subtotal += f.Price
	}
	return subtotal * (1 - discount/100)
}

func actorFromCreator(createdBy *string) events.Actor {
	if createdBy == nil {
		return events.Actor{}
	}
	return events.Actor{UserID: *createdBy, Role: domain.RoleUser}
}

func preview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
