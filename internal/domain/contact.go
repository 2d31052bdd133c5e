package domain

import (
	"strings"
	"time"
)

// ContactStatus enumerates lifecycle states for contact inquiries.
type ContactStatus string

const (
	ContactStatusNew        ContactStatus = "new"
	ContactStatusRead       ContactStatus = "read"
	ContactStatusInProgress ContactStatus = "in-progress"
	ContactStatusResponded  ContactStatus = "responded"
	ContactStatusClosed     ContactStatus = "closed"
	ContactStatusSpam       ContactStatus = "spam"
)

// Valid reports whether the status is one of the enumerated states.
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactStatusNew, ContactStatusRead, ContactStatusInProgress,
		ContactStatusResponded, ContactStatusClosed, ContactStatusSpam:
		return true
	}
	return false
}

// Priority enumerates triage urgency, shared by contacts and orders.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid reports whether the priority is one of the enumerated levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ContactSource enumerates where an inquiry came from.
type ContactSource string

const (
	SourceWebsite  ContactSource = "website"
	SourceEmail    ContactSource = "email"
	SourcePhone    ContactSource = "phone"
	SourceReferral ContactSource = "referral"
)

// ResponseMethod enumerates how an admin responded to an inquiry.
type ResponseMethod string

const (
	ResponseMethodEmail   ResponseMethod = "email"
	ResponseMethodPhone   ResponseMethod = "phone"
	ResponseMethodMeeting ResponseMethod = "meeting"
)

// FollowUp schedules a reminder against a contact.
type FollowUp struct {
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// Contact is the aggregate for inbound inquiries.
type Contact struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Company    *string
	Subject    string
	Message    string
	ServiceID  *string
	Budget     *string
	Timeline   *string
	Source     ContactSource
	Status     ContactStatus
	Priority   Priority
	AssignedTo *string
	Tags       []string
	FollowUp   FollowUp
	IPAddress  string
	UserAgent  string
	IsSpam     bool
	SpamScore  int
	CreatedBy  *string
	UpdatedBy  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ContactNote is an append-only internal note on a contact.
type ContactNote struct {
	ID        string
	ContactID string
	Text      string
	Author    string
	CreatedAt time.Time
}

// ContactResponse records an outbound reply to a contact.
type ContactResponse struct {
	ID        string
	ContactID string
	Message   string
	Method    ResponseMethod
	Author    string
	CreatedAt time.Time
}

// Spam scoring thresholds and rule weights. The rule contributions are
// additive and deliberately uncapped; the observed maximum with the current
// rule set is 150.
const (
	spamShortMessageScore = 20
	spamTriggerWordScore  = 50
	spamTestDomainScore   = 30
	spamThreshold         = 70
)

// ComputeSpamScore evaluates the spam heuristic over message, subject and
// email. It is invoked on every save through the normal path and overwrites
// any previously stored score.
func ComputeSpamScore(message, subject, email string) (score int, isSpam bool) {
	if message != "" && len(message) < 10 {
		score += spamShortMessageScore
	}
	if strings.Contains(strings.ToLower(subject), "viagra") {
		score += spamTriggerWordScore
	}
	if strings.Contains(strings.ToLower(message), "viagra") {
		score += spamTriggerWordScore
	}
	if strings.Contains(email, "@test.com") {
		score += spamTestDomainScore
	}
	return score, score > spamThreshold
}

// ApplySpamScore recomputes and stores the derived spam fields on the contact.
func (c *Contact) ApplySpamScore() {
	c.SpamScore, c.IsSpam = ComputeSpamScore(c.Message, c.Subject, c.Email)
}
