package events

import (
	"time"

	"github.com/lumenworks/agency-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventContactCreated       EventType = "contact_created"
	EventContactStatusChanged EventType = "contact_status_changed"
	EventOrderCreated         EventType = "order_created"
	EventOrderStatusChanged   EventType = "order_status_changed"
	EventOrderAssigned        EventType = "order_assigned"
	EventOrderMessageAdded    EventType = "order_message_added"
)

// Actor encapsulates actor metadata for an event. UserID is empty for
// anonymous public submissions.
type Actor struct {
	UserID string      `json:"user_id,omitempty"`
	Role   domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ContactCreatedPayload payload.
type ContactCreatedPayload struct {
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Subject   string               `json:"subject"`
	IsSpam    bool                 `json:"is_spam"`
	SpamScore int                  `json:"spam_score"`
	Status    domain.ContactStatus `json:"status"`
}

// ContactStatusChangedPayload payload.
type ContactStatusChangedPayload struct {
	OldStatus domain.ContactStatus `json:"old_status"`
	NewStatus domain.ContactStatus `json:"new_status"`
}

// OrderCreatedPayload payload.
type OrderCreatedPayload struct {
	OrderNumber   string  `json:"order_number"`
	ServiceTitle  string  `json:"service_title"`
	Package       string  `json:"package"`
	TotalPrice    float64 `json:"total_price"`
	CustomerEmail string  `json:"customer_email"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OrderNumber string             `json:"order_number"`
	OldStatus   domain.OrderStatus `json:"old_status"`
	NewStatus   domain.OrderStatus `json:"new_status"`
}

// OrderAssignedPayload payload.
type OrderAssignedPayload struct {
	OrderNumber string  `json:"order_number"`
	AssignedTo  *string `json:"assigned_to,omitempty"`
}

// OrderMessageAddedPayload payload.
type OrderMessageAddedPayload struct {
	OrderNumber string               `json:"order_number"`
	MessageID   string               `json:"message_id"`
	Sender      domain.MessageSender `json:"sender"`
	BodyPreview string               `json:"body_preview"`
}
