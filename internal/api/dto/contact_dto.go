package dto

import (
	"time"

	"github.com/lumenworks/agency-service/internal/domain"
)

// SubmitContactRequest is the public contact form payload.
type SubmitContactRequest struct {
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Phone     string               `json:"phone"`
	Company   *string              `json:"company,omitempty"`
	Subject   string               `json:"subject"`
	Message   string               `json:"message"`
	ServiceID *string              `json:"service_id,omitempty"`
	Budget    *string              `json:"budget,omitempty"`
	Timeline  *string              `json:"timeline,omitempty"`
	Source    domain.ContactSource `json:"source,omitempty"`
}

// UpdateContactRequest is the admin edit payload.
type UpdateContactRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
	Company  *string         `json:"company,omitempty"`
	Subject  string          `json:"subject"`
	Message  string          `json:"message"`
	Budget   *string         `json:"budget,omitempty"`
	Timeline *string         `json:"timeline,omitempty"`
	Priority domain.Priority `json:"priority,omitempty"`
	Tags     []string        `json:"tags,omitempty"`
	FollowUp domain.FollowUp `json:"follow_up,omitempty"`
}

// ContactStatusRequest payload.
type ContactStatusRequest struct {
	Status domain.ContactStatus `json:"status"`
}

// AssignRequest payload, shared by contacts and orders.
type AssignRequest struct {
	UserID string `json:"user_id"`
}

// NoteRequest payload.
type NoteRequest struct {
	Text string `json:"text"`
}

// ResponseRequest payload.
type ResponseRequest struct {
	Message string                `json:"message"`
	Method  domain.ResponseMethod `json:"method"`
}

// SpamFlagRequest payload for the manual override.
type SpamFlagRequest struct {
	IsSpam bool `json:"is_spam"`
}

// ContactSummary is the list row representation.
type ContactSummary struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Email      string               `json:"email"`
	Subject    string               `json:"subject"`
	Source     domain.ContactSource `json:"source"`
	Status     domain.ContactStatus `json:"status"`
	Priority   domain.Priority      `json:"priority"`
	AssignedTo *string              `json:"assigned_to,omitempty"`
	IsSpam     bool                 `json:"is_spam"`
	SpamScore  int                  `json:"spam_score"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// ContactNoteResponse is one thread note.
type ContactNoteResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactResponseEntry is one outbound response record.
type ContactResponseEntry struct {
	ID        string                `json:"id"`
	Message   string                `json:"message"`
	Method    domain.ResponseMethod `json:"method"`
	Author    string                `json:"author"`
	CreatedAt time.Time             `json:"created_at"`
}

// ContactDetailResponse provides the full contact with resolved references.
type ContactDetailResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Email        string                 `json:"email"`
	Phone        string                 `json:"phone"`
	Company      *string                `json:"company,omitempty"`
	Subject      string                 `json:"subject"`
	Message      string                 `json:"message"`
	ServiceID    *string                `json:"service_id,omitempty"`
	ServiceTitle *string                `json:"service_title,omitempty"`
	Budget       *string                `json:"budget,omitempty"`
	Timeline     *string                `json:"timeline,omitempty"`
	Source       domain.ContactSource   `json:"source"`
	Status       domain.ContactStatus   `json:"status"`
	Priority     domain.Priority        `json:"priority"`
	AssignedTo   *string                `json:"assigned_to,omitempty"`
	AssigneeName *string                `json:"assignee_name,omitempty"`
	Tags         []string               `json:"tags,omitempty"`
	FollowUp     domain.FollowUp        `json:"follow_up"`
	IPAddress    string                 `json:"ip_address,omitempty"`
	UserAgent    string                 `json:"user_agent,omitempty"`
	IsSpam       bool                   `json:"is_spam"`
	SpamScore    int                    `json:"spam_score"`
	Notes        []ContactNoteResponse  `json:"notes"`
	Responses    []ContactResponseEntry `json:"responses"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// BreakdownRow is one categorical bucket of a stats breakdown.
type BreakdownRow struct {
	Key     string  `json:"key"`
	Count   int64   `json:"count"`
	Revenue float64 `json:"revenue,omitempty"`
}

// MonthRow is one (year, month) bucket of a stats series.
type MonthRow struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Count   int64   `json:"count"`
	Revenue float64 `json:"revenue,omitempty"`
}

// ContactStatsResponse is the reporting rollup for contacts.
type ContactStatsResponse struct {
	Total         int64          `json:"total"`
	SpamCount     int64          `json:"spam_count"`
	AvgSpamScore  float64        `json:"avg_spam_score"`
	ByStatus      []BreakdownRow `json:"by_status"`
	BySource      []BreakdownRow `json:"by_source"`
	MonthlySeries []MonthRow     `json:"monthly_series"`
}
