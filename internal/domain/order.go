package domain

import (
	"fmt"
	"time"
)

// OrderStatus enumerates lifecycle states for orders.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusInProgress OrderStatus = "in-progress"
	OrderStatusReview     OrderStatus = "review"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether the status is one of the enumerated states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusInProgress,
		OrderStatusReview, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// MessageSender identifies who authored an order message.
type MessageSender string

const (
	SenderCustomer MessageSender = "customer"
	SenderAdmin    MessageSender = "admin"
)

// PaymentStatus enumerates states of the order-level payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPartial   PaymentStatus = "partial"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Customer holds the ordering party's details.
type Customer struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Company *string `json:"company,omitempty"`
	Website *string `json:"website,omitempty"`
}

// ServiceSnapshot is a point-in-time copy of the ordered service. It is
// captured at creation and never updated afterwards.
type ServiceSnapshot struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Category string `json:"category"`
}

// Requirements captures what the customer asked for.
type Requirements struct {
	Description  string   `json:"description"`
	Features     []string `json:"features,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Timeline     *string  `json:"timeline,omitempty"`
	Budget       *string  `json:"budget,omitempty"`
}

// PricedFeature is an add-on with its own price.
type PricedFeature struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// Pricing holds the commercial terms of an order.
type Pricing struct {
	BasePrice          float64         `json:"base_price"`
	AdditionalFeatures []PricedFeature `json:"additional_features,omitempty"`
	Discount           float64         `json:"discount"`
	TotalPrice         float64         `json:"total_price"`
	Currency           string          `json:"currency"`
}

// OrderTimeline tracks estimated and actual delivery dates.
type OrderTimeline struct {
	EstimatedStart *time.Time `json:"estimated_start,omitempty"`
	EstimatedEnd   *time.Time `json:"estimated_end,omitempty"`
	ActualStart    *time.Time `json:"actual_start,omitempty"`
	ActualEnd      *time.Time `json:"actual_end,omitempty"`
}

// Communication stores the customer's contact preferences.
type Communication struct {
	PreferredMethod string  `json:"preferred_method"`
	Timezone        *string `json:"timezone,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// OrderFile references an uploaded deliverable or brief.
type OrderFile struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Transaction records a single payment attempt.
type Transaction struct {
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	TransactionID string    `json:"transaction_id"`
	Status        string    `json:"status"`
	Date          time.Time `json:"date"`
}

// Payment aggregates payment state for an order.
type Payment struct {
	Method       string        `json:"method,omitempty"`
	Status       PaymentStatus `json:"status"`
	Transactions []Transaction `json:"transactions,omitempty"`
}

// Order is the aggregate for service orders.
type Order struct {
	ID             string
	OrderNumber    string
	Customer       Customer
	ServiceID      string
	ServiceDetails ServiceSnapshot
	Package        string
	Requirements   Requirements
	Pricing        Pricing
	Status         OrderStatus
	Priority       Priority
	Timeline       OrderTimeline
	Communication  Communication
	Files          []OrderFile
	Payment        Payment
	AssignedTo     *string
	CreatedBy      *string
	UpdatedBy      *string
	Source         ContactSource
	Tags           []string
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrderMessage is a thread entry between customer and admin on an order.
type OrderMessage struct {
	ID        string
	OrderID   string
	Sender    MessageSender
	Message   string
	Read      bool
	CreatedAt time.Time
}

// TotalPaid sums completed transaction amounts.
func (o *Order) TotalPaid() float64 {
	var total float64
	for _, tx := range o.Payment.Transactions {
		if tx.Status == "completed" {
			total += tx.Amount
		}
	}
	return total
}

// RemainingAmount is the outstanding balance against the agreed total.
func (o *Order) RemainingAmount() float64 {
	return o.Pricing.TotalPrice - o.TotalPaid()
}

// FormatOrderNumber renders the public order identifier for the month of t
// and the given per-month sequence number, e.g. ORD-202403-0001.
func FormatOrderNumber(t time.Time, seq int64) string {
	t = t.UTC()
	return fmt.Sprintf("ORD-%04d%02d-%04d", t.Year(), int(t.Month()), seq)
}

// MonthBucket returns the sequence bucket key for the month of t, e.g. 202403.
func MonthBucket(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%04d%02d", t.Year(), int(t.Month()))
}

// MonthWindow returns the [first of month, first of next month) interval
// containing t, in UTC.
func MonthWindow(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
