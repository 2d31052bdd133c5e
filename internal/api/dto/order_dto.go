package dto

import (
	"time"

	"github.com/lumenworks/agency-service/internal/domain"
)

// PlaceOrderRequest is the public order placement payload.
type PlaceOrderRequest struct {
	Customer      domain.Customer        `json:"customer"`
	ServiceID     string                 `json:"service_id"`
	Package       string                 `json:"package"`
	Requirements  domain.Requirements    `json:"requirements"`
	BasePrice     float64                `json:"base_price"`
	Features      []domain.PricedFeature `json:"additional_features,omitempty"`
	Discount      float64                `json:"discount"`
	Currency      string                 `json:"currency,omitempty"`
	Timeline      domain.OrderTimeline   `json:"timeline,omitempty"`
	Communication domain.Communication   `json:"communication,omitempty"`
	Source        domain.ContactSource   `json:"source,omitempty"`
	Tags          []string               `json:"tags,omitempty"`
	Notes         *string                `json:"notes,omitempty"`
}

// UpdateOrderRequest is the admin edit payload.
type UpdateOrderRequest struct {
	Customer      domain.Customer        `json:"customer"`
	Package       string                 `json:"package"`
	Requirements  domain.Requirements    `json:"requirements"`
	BasePrice     float64                `json:"base_price"`
	Features      []domain.PricedFeature `json:"additional_features,omitempty"`
	Discount      float64                `json:"discount"`
	Currency      string                 `json:"currency,omitempty"`
	Timeline      domain.OrderTimeline   `json:"timeline,omitempty"`
	Communication domain.Communication   `json:"communication,omitempty"`
	Payment       domain.Payment         `json:"payment,omitempty"`
	Tags          []string               `json:"tags,omitempty"`
	Notes         *string                `json:"notes,omitempty"`
}

// OrderStatusRequest payload.
type OrderStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

// OrderMessageRequest payload.
type OrderMessageRequest struct {
	Message string `json:"message"`
}

// OrderSummary is the list row representation.
type OrderSummary struct {
	ID              string             `json:"id"`
	OrderNumber     string             `json:"order_number"`
	CustomerName    string             `json:"customer_name"`
	CustomerEmail   string             `json:"customer_email"`
	ServiceTitle    string             `json:"service_title"`
	Package         string             `json:"package"`
	Status          domain.OrderStatus `json:"status"`
	Priority        domain.Priority    `json:"priority"`
	TotalPrice      float64            `json:"total_price"`
	TotalPaid       float64            `json:"total_paid"`
	RemainingAmount float64            `json:"remaining_amount"`
	Currency        string             `json:"currency"`
	AssignedTo      *string            `json:"assigned_to,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// OrderMessageResponse is one thread entry.
type OrderMessageResponse struct {
	ID        string               `json:"id"`
	Sender    domain.MessageSender `json:"sender"`
	Message   string               `json:"message"`
	Read      bool                 `json:"read"`
	CreatedAt time.Time            `json:"created_at"`
}

// OrderDetailResponse provides the full order with its thread and derived
// payment figures.
type OrderDetailResponse struct {
	ID              string                 `json:"id"`
	OrderNumber     string                 `json:"order_number"`
	Customer        domain.Customer        `json:"customer"`
	ServiceID       string                 `json:"service_id"`
	ServiceDetails  domain.ServiceSnapshot `json:"service_details"`
	Package         string                 `json:"package"`
	Requirements    domain.Requirements    `json:"requirements"`
	Pricing         domain.Pricing         `json:"pricing"`
	Status          domain.OrderStatus     `json:"status"`
	Priority        domain.Priority        `json:"priority"`
	Timeline        domain.OrderTimeline   `json:"timeline"`
	Communication   domain.Communication   `json:"communication"`
	Files           []domain.OrderFile     `json:"files,omitempty"`
	Payment         domain.Payment         `json:"payment"`
	TotalPaid       float64                `json:"total_paid"`
	RemainingAmount float64                `json:"remaining_amount"`
	AssignedTo      *string                `json:"assigned_to,omitempty"`
	Source          domain.ContactSource   `json:"source"`
	Tags            []string               `json:"tags,omitempty"`
	Notes           *string                `json:"notes,omitempty"`
	Messages        []OrderMessageResponse `json:"messages"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// OrderStatsResponse is the reporting rollup for orders.
type OrderStatsResponse struct {
	Total         int64          `json:"total"`
	TotalRevenue  float64        `json:"total_revenue"`
	AvgOrderValue float64        `json:"avg_order_value"`
	ByStatus      []BreakdownRow `json:"by_status"`
	ByPriority    []BreakdownRow `json:"by_priority"`
	MonthlySeries []MonthRow     `json:"monthly_series"`
}
